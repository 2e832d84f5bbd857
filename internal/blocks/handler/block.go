package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"turnero/internal/blocks/service"
	"turnero/pkg/clock"
	httputil "turnero/pkg/http"
	"turnero/pkg/logger"
	"turnero/pkg/model"
)

type BlockHandler struct {
	service service.BlockService
	log     *logger.Logger
}

func NewBlockHandler(service service.BlockService, log *logger.Logger) *BlockHandler {
	return &BlockHandler{
		service: service,
		log:     log,
	}
}

type blockSlotRequest struct {
	Date           string `json:"date"`
	Time           string `json:"time"`
	ProfessionalID int    `json:"professional_id"`
	Reason         string `json:"reason"`
}

func (h *BlockHandler) Block(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	var req blockSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Block", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	date, err := clock.ParseDate(req.Date)
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid date, expected YYYY-MM-DD",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Block", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	slot, err := h.service.Block(r.Context(), tenant, model.BlockedSlot{
		Date:           date,
		Time:           req.Time,
		ProfessionalID: req.ProfessionalID,
		Reason:         req.Reason,
	})
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Block", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, slot); err != nil {
		h.log.Error("failed to write created response", "handler", "Block", "operation", "WriteCreated", "error", err)
	}
}

func (h *BlockHandler) Unblock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	date, err := httputil.ExtractDate(r, "date")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Unblock", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	timeOfDay := r.URL.Query().Get("time")
	professionalID, err := httputil.ExtractProfessionalID(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Unblock", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.Unblock(r.Context(), tenant, date, timeOfDay, professionalID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Unblock", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BlockHandler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	date, err := httputil.ExtractDate(r, "date")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	professionalID, err := httputil.ExtractProfessionalID(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	slots, err := h.service.List(r.Context(), tenant, date, professionalID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BlockHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/tenants/:code/blocked-slots", h.Block)
	router.GET("/api/v1/tenants/:code/blocked-slots", h.List)
	router.DELETE("/api/v1/tenants/:code/blocked-slots", h.Unblock)
}
