package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/service"
)

type ClientHandler struct {
	clientSvc service.ClientService
}

func NewClientHandler(clientSvc service.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if err := decodeJSON(r, &client); err != nil {
		writeError(w, err)
		return
	}
	if err := h.clientSvc.CreateClient(r.Context(), &client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientSvc.GetClient(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var client domain.Client
	if err := decodeJSON(r, &client); err != nil {
		writeError(w, err)
		return
	}
	client.ID = mux.Vars(r)["id"]
	if err := h.clientSvc.UpdateClient(r.Context(), &client); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clientSvc.DeleteClient(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientSvc.ListClients(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"clients": clients})
}
