package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookmylastwishes/portal/internal/service"
	"github.com/bookmylastwishes/portal/internal/validation"
)

type contentHandler struct {
	contentService *service.ContentService
	emailService   *service.EmailService
}

func NewContentHandler(contentService *service.ContentService, emailService *service.EmailService) *contentHandler {
	return &contentHandler{
		contentService: contentService,
		emailService:   emailService,
	}
}

func (h *contentHandler) Sections(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.contentService.Sections())
}

func (h *contentHandler) Section(w http.ResponseWriter, r *http.Request) {
	section, err := h.contentService.Section(chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, service.ErrSectionNotFound) {
			respondError(w, http.StatusNotFound, "section not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load section")
		return
	}
	respondJSON(w, http.StatusOK, section)
}

type newsletterRequest struct {
	Email string `json:"email"`
}

func (h *contentHandler) SubscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var req newsletterRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = validation.ValidateEmail(req.Email)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	err = h.emailService.SubscribeNewsletter(req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "subscription failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "subscribed"})
}
