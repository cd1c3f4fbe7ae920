package http

import (
	"net/http"

	"equiprent-backend/internal/service"
)

type ReportHandler struct {
	reportSvc service.ReportService
}

func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

func (h *ReportHandler) RentalsPerDay(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	counts, err := h.reportSvc.RentalsPerDay(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"days": counts})
}

func (h *ReportHandler) RevenueByCategory(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	revenue, err := h.reportSvc.RevenueByCategory(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": revenue})
}

func (h *ReportHandler) TopClients(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	limit := int(parseInt32(r.URL.Query().Get("limit"), 5))
	clients, err := h.reportSvc.TopClients(r.Context(), from, to, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"clients": clients})
}

func (h *ReportHandler) TopEquipment(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	limit := int(parseInt32(r.URL.Query().Get("limit"), 5))
	equipment, err := h.reportSvc.TopEquipment(r.Context(), from, to, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"equipment": equipment})
}

func (h *ReportHandler) FinancialSummary(w http.ResponseWriter, r *http.Request) {
	from, to := dateRange(r)
	summary, err := h.reportSvc.FinancialSummary(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func dateRange(r *http.Request) (string, string) {
	q := r.URL.Query()
	return q.Get("from"), q.Get("to")
}
