package http

import (
	"net/http"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

type StockHandler struct {
	ledgerSvc service.LedgerService
}

func NewStockHandler(ledgerSvc service.LedgerService) *StockHandler {
	return &StockHandler{ledgerSvc: ledgerSvc}
}

type adjustmentRequest struct {
	EquipmentID string                `json:"equipment_id"`
	Kind        domain.AdjustmentKind `json:"kind"`
	Quantity    int32                 `json:"quantity"`
	Reason      string                `json:"reason"`
}

// Adjust applies a manual stock movement. The route is admin-only; the actor
// on the audit row comes from the verified token.
func (h *StockHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	eq, err := h.ledgerSvc.Adjust(
		r.Context(),
		req.EquipmentID,
		req.Kind,
		req.Quantity,
		req.Reason,
		ActorFromContext(r.Context()),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *StockHandler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := parseInt32(q.Get("limit"), 50)
	adjustments, err := h.ledgerSvc.ListAdjustments(r.Context(), q.Get("equipment_id"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"adjustments": adjustments})
}
