package handler

import (
	"errors"
	"net/http"

	"github.com/bookmylastwishes/portal/internal/service"
)

type supportHandler struct {
	supportService *service.SupportService
}

func NewSupportHandler(supportService *service.SupportService) *supportHandler {
	return &supportHandler{supportService: supportService}
}

type supportRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *supportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req supportRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticket, err := h.supportService.Submit(req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTicket) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to file ticket")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"ticket_id": ticket.ID,
		"status":    ticket.Status,
	})
}
