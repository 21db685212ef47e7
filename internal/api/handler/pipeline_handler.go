package handler

import (
	"log/slog"
	"net/http"

	"github.com/johnmclaughlin205/Mortgages/internal/api/handler/dto"
	"github.com/johnmclaughlin205/Mortgages/internal/domain/customer"
	"github.com/johnmclaughlin205/Mortgages/internal/domain/pipeline"
)

// PipelineHandler serves the aggregate view over the record set: summary
// metrics and the CSV export. Both honor the same filters as the list
// endpoint, so they operate on the currently displayed view.
type PipelineHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewPipelineHandler(s customer.CustomerService, l *slog.Logger) *PipelineHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &PipelineHandler{
		service: s,
		logger:  l.With("component", "PipelineHandler"),
	}
}

// GetSummary handles GET /customers/summary.
func (h *PipelineHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received pipeline summary request")

	customers, err := h.service.ListCustomers(r.Context(), filterFromQuery(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers for summary", slog.Any("error", err))
		respondError(w, err)
		return
	}

	metrics := pipeline.Summarize(customers)

	h.logger.InfoContext(r.Context(), "Pipeline summary computed", slog.Int("count", metrics.Count))
	respondJSON(w, http.StatusOK, dto.NewSummaryResponse(metrics))
}

// ExportCSV handles GET /customers/export, streaming the current view as
// a CSV attachment.
func (h *PipelineHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received pipeline export request")

	customers, err := h.service.ListCustomers(r.Context(), filterFromQuery(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers for export", slog.Any("error", err))
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="mortgage_pipeline_customers.csv"`)
	w.WriteHeader(http.StatusOK)

	if err := pipeline.WriteCSV(w, customers); err != nil {
		// Headers are already written; all we can do is log.
		h.logger.ErrorContext(r.Context(), "Failed to stream CSV export", slog.Any("error", err))
		return
	}

	h.logger.InfoContext(r.Context(), "Pipeline exported successfully", slog.Int("count", len(customers)))
}
