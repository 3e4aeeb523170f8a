package handlers

import (
	"net/http"
	"time"

	"github.com/israil64/laptop-galaxy/internal/models"
	"github.com/israil64/laptop-galaxy/internal/storage"
)

type MessageHandler struct {
	Store storage.Store
}

// Contact accepts a contact form submission from the public site.
func (h *MessageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var msg models.Message
	if err := decodeBody(r, &msg, false); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		writeMessage(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}

	msg.ID = ""
	msg.Date = time.Now().Format("02/01/2006")

	if _, err := h.Store.Messages().Create(r.Context(), msg); err != nil {
		storageError(w, err, "")
		return
	}
	writeMessage(w, http.StatusOK, "Message Received!")
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Store.Messages().List(r.Context())
	if err != nil {
		storageError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Messages().Delete(r.Context(), r.PathValue("id")); err != nil {
		storageError(w, err, "")
		return
	}
	writeMessage(w, http.StatusOK, "Message Deleted")
}
