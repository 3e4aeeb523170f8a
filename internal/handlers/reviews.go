package handlers

import (
	"net/http"
	"time"

	"github.com/israil64/laptop-galaxy/internal/models"
	"github.com/israil64/laptop-galaxy/internal/storage"
)

type ReviewHandler struct {
	Store storage.Store
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Store.Reviews().List(r.Context())
	if err != nil {
		storageError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var review models.Review
	if err := decodeBody(r, &review, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if review.Rating < 0 || review.Rating > 5 {
		writeMessage(w, http.StatusBadRequest, "Rating must be between 0 and 5")
		return
	}

	// New submissions are always hidden until an admin approves them,
	// whatever the client sent. Only legacy records lack the field.
	review.ID = ""
	hidden := false
	review.Approved = &hidden
	review.Date = time.Now().Format("02/01/2006")

	if _, err := h.Store.Reviews().Create(r.Context(), review); err != nil {
		storageError(w, err, "")
		return
	}
	writeMessage(w, http.StatusOK, "Review Submitted! Pending Approval.")
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	// The only mutable field is the moderation state; anything else in the
	// body is rejected.
	var patch models.ReviewPatch
	if err := decodeBody(r, &patch, true); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.Store.Reviews().Update(r.Context(), r.PathValue("id"), patch); err != nil {
		storageError(w, err, "Review not found")
		return
	}
	writeMessage(w, http.StatusOK, "Review Status Updated")
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reviews().Delete(r.Context(), r.PathValue("id")); err != nil {
		storageError(w, err, "")
		return
	}
	writeMessage(w, http.StatusOK, "Review Deleted")
}
