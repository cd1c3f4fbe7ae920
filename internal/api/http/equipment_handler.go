package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
	ledgerSvc    service.LedgerService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService, ledgerSvc service.LedgerService) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentSvc: equipmentSvc,
		ledgerSvc:    ledgerSvc,
	}
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var eq domain.Equipment
	if err := decodeJSON(r, &eq); err != nil {
		writeError(w, err)
		return
	}
	if err := h.equipmentSvc.CreateEquipment(r.Context(), &eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	eq, err := h.equipmentSvc.GetEquipment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var eq domain.Equipment
	if err := decodeJSON(r, &eq); err != nil {
		writeError(w, err)
		return
	}
	eq.ID = mux.Vars(r)["id"]
	if err := h.equipmentSvc.UpdateEquipment(r.Context(), &eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.equipmentSvc.DeleteEquipment(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.equipmentSvc.ListEquipment(
		r.Context(),
		q.Get("category"),
		domain.EquipmentStatus(q.Get("status")),
		q.Get("search"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"equipment": items})
}

// Stock returns the fresh counter snapshot straight from the ledger rather
// than the registry read path.
func (h *EquipmentHandler) Stock(w http.ResponseWriter, r *http.Request) {
	eq, err := h.ledgerSvc.Snapshot(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"equipment_id":       eq.ID,
		"total_quantity":     eq.TotalQuantity,
		"available_quantity": eq.AvailableQuantity,
		"rented_quantity":    eq.RentedQuantity,
		"status":             eq.Status,
	})
}

func (h *EquipmentHandler) InventoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.equipmentSvc.InventoryStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
