package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookmylastwishes/portal/internal/service"
)

type adminHandler struct {
	patronService  *service.PatronService
	supportService *service.SupportService
}

func NewAdminHandler(patronService *service.PatronService, supportService *service.SupportService) *adminHandler {
	return &adminHandler{
		patronService:  patronService,
		supportService: supportService,
	}
}

// RecentPatrons lists the newest pledge records. The request context flows
// into the query so an abandoned page load cancels it.
func (h *adminHandler) RecentPatrons(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	patrons, err := h.patronService.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list patrons")
		return
	}
	respondJSON(w, http.StatusOK, patrons)
}

func (h *adminHandler) OpenTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.supportService.Open()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list tickets")
		return
	}
	respondJSON(w, http.StatusOK, tickets)
}

func (h *adminHandler) CloseTicket(w http.ResponseWriter, r *http.Request) {
	err := h.supportService.Close(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			respondError(w, http.StatusNotFound, "ticket not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to close ticket")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
