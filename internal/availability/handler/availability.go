package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"turnero/internal/availability/service"
	apperrors "turnero/pkg/errors"
	httputil "turnero/pkg/http"
	"turnero/pkg/logger"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

type availabilityResponse struct {
	Date           string   `json:"date"`
	ProfessionalID int      `json:"professional_id"`
	DurationMin    int      `json:"duration_min"`
	Slots          []string `json:"slots"`
}

func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	date, err := httputil.ExtractDate(r, "date")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	professionalID, err := httputil.ExtractProfessionalID(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	durationStr := r.URL.Query().Get("duration_min")
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid duration_min parameter: "+durationStr)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	slots, err := h.service.ComputeAvailable(r.Context(), tenant, date, professionalID, duration)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := availabilityResponse{
		Date:           date.Format("2006-01-02"),
		ProfessionalID: professionalID,
		DurationMin:    duration,
		Slots:          slots,
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) GetOccupied(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")

	date, err := httputil.ExtractDate(r, "date")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetOccupied", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	professionalID, err := httputil.ExtractProfessionalID(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetOccupied", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	occupied, err := h.service.Occupied(r.Context(), tenant, date, professionalID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetOccupied", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, occupied); err != nil {
		h.log.Error("failed to write success response", "handler", "GetOccupied", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/tenants/:code/availability", h.GetAvailability)
	router.GET("/api/v1/tenants/:code/occupied-slots", h.GetOccupied)
}
