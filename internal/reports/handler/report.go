package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"turnero/internal/reports/service"
	apperrors "turnero/pkg/errors"
	httputil "turnero/pkg/http"
	"turnero/pkg/logger"
)

type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

func NewReportHandler(service service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

func (h *ReportHandler) MonthSummary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tenant := ps.ByName("code")
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid year parameter: "+query.Get("year"))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MonthSummary", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid month parameter: "+query.Get("month"))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MonthSummary", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	summary, err := h.service.MonthSummary(r.Context(), tenant, year, time.Month(month))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MonthSummary", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, summary); err != nil {
		h.log.Error("failed to write success response", "handler", "MonthSummary", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReportHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/tenants/:code/reports/month", h.MonthSummary)
}
