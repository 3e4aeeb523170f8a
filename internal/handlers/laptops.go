package handlers

import (
	"net/http"

	"github.com/israil64/laptop-galaxy/internal/models"
	"github.com/israil64/laptop-galaxy/internal/storage"
)

type LaptopHandler struct {
	Store storage.Store
}

func (h *LaptopHandler) List(w http.ResponseWriter, r *http.Request) {
	laptops, err := h.Store.Laptops().List(r.Context())
	if err != nil {
		storageError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, laptops)
}

func (h *LaptopHandler) Create(w http.ResponseWriter, r *http.Request) {
	var laptop models.Laptop
	if err := decodeBody(r, &laptop, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	laptop.ID = "" // ids are always server-assigned
	if laptop.Price < 0 {
		writeMessage(w, http.StatusBadRequest, "Price must not be negative")
		return
	}

	created, err := h.Store.Laptops().Create(r.Context(), laptop)
	if err != nil {
		storageError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Laptop Added!",
		"laptop":  created,
	})
}

func (h *LaptopHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.LaptopPatch
	if err := decodeBody(r, &patch, true); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patch.Price != nil && *patch.Price < 0 {
		writeMessage(w, http.StatusBadRequest, "Price must not be negative")
		return
	}

	if _, err := h.Store.Laptops().Update(r.Context(), r.PathValue("id"), patch); err != nil {
		storageError(w, err, "Laptop not found")
		return
	}
	writeMessage(w, http.StatusOK, "Laptop Updated!")
}

func (h *LaptopHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Laptops().Delete(r.Context(), r.PathValue("id")); err != nil {
		storageError(w, err, "")
		return
	}
	writeMessage(w, http.StatusOK, "Laptop Deleted!")
}
