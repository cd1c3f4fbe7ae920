package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func (h *RentalHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterRentalInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	order, err := h.rentalSvc.RegisterRental(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.rentalSvc.GetRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt32(q.Get("page"), 1)
	pageSize := parseInt32(q.Get("page_size"), 20)

	orders, total, err := h.rentalSvc.ListRentals(
		r.Context(),
		domain.RentalStatus(q.Get("status")),
		page,
		pageSize,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rentals":     orders,
		"total_count": total,
		"page":        page,
		"page_size":   pageSize,
	})
}

func (h *RentalHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	order, err := h.rentalSvc.FinalizeRental(r.Context(), mux.Vars(r)["id"], ActorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	order, err := h.rentalSvc.CancelRental(r.Context(), mux.Vars(r)["id"], req.Reason, ActorFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func parseInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}
