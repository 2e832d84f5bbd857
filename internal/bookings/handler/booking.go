package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"turnero/internal/bookings/service"
	"turnero/pkg/clock"
	httputil "turnero/pkg/http"
	"turnero/pkg/logger"
	"turnero/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

type createBookingRequest struct {
	Date           string             `json:"date"`
	StartTime      string             `json:"start_time"`
	ProfessionalID int                `json:"professional_id"`
	DurationMin    int                `json:"duration_min"`
	Service        *model.ServiceInfo `json:"service,omitempty"`
	Client         model.ClientRef    `json:"client"`
	Notes          string             `json:"notes,omitempty"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	date, err := clock.ParseDate(req.Date)
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid date, expected YYYY-MM-DD",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking := &model.Booking{
		Date:           date,
		StartTime:      req.StartTime,
		ProfessionalID: req.ProfessionalID,
		DurationMin:    req.DurationMin,
		Service:        req.Service,
		Client:         req.Client,
		Notes:          req.Notes,
	}

	created, err := h.service.Admit(r.Context(), tenant, booking)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) ListDay(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	date, err := httputil.ExtractDate(r, "date")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListDay", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	professionalID, err := httputil.ExtractProfessionalID(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListDay", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, err := h.service.ListDay(r.Context(), tenant, date, professionalID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListDay", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListDay", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")
	id := ps.ByName("id")
	if id == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "Delete", "operation", "WriteJSON", "error", err)
		}
		return
	}

	if err := h.service.Cancel(r.Context(), tenant, id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/tenants/:code/bookings", h.Create)
	router.GET("/api/v1/tenants/:code/bookings", h.ListDay)
	router.DELETE("/api/v1/tenants/:code/bookings/:id", h.Delete)
}
