package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"turnero/internal/cancellations/service"
	"turnero/pkg/clock"
	httputil "turnero/pkg/http"
	"turnero/pkg/logger"
)

type CancellationHandler struct {
	service service.CancellationService
	log     *logger.Logger
}

func NewCancellationHandler(service service.CancellationService, log *logger.Logger) *CancellationHandler {
	return &CancellationHandler{
		service: service,
		log:     log,
	}
}

type cancelDayRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

func (h *CancellationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	var req cancelDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Cancel", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	date, err := clock.ParseDate(req.Date)
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid date, expected YYYY-MM-DD",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Cancel", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	day, err := h.service.Cancel(r.Context(), tenant, date, req.Reason)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, day); err != nil {
		h.log.Error("failed to write created response", "handler", "Cancel", "operation", "WriteCreated", "error", err)
	}
}

func (h *CancellationHandler) Restore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	date, err := clock.ParseDate(ps.ByName("date"))
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid date, expected YYYY-MM-DD",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Restore", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Restore(r.Context(), tenant, date); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Restore", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CancellationHandler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	from, err := httputil.ExtractDate(r, "from")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	days, err := h.service.ListFrom(r.Context(), tenant, from)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	total := int64(len(days))
	start := offset
	if start > total {
		start = total
	}
	end := start + int64(limit)
	if end > total {
		end = total
	}

	if err := httputil.WritePaginated(w, days[start:end], total, limit, int(offset)); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *CancellationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/tenants/:code/cancelled-days", h.Cancel)
	router.GET("/api/v1/tenants/:code/cancelled-days", h.List)
	router.DELETE("/api/v1/tenants/:code/cancelled-days/:date", h.Restore)
}
