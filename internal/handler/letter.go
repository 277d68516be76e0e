package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/service"
)

type letterHandler struct {
	letterService *service.LetterService
}

func NewLetterHandler(letterService *service.LetterService) *letterHandler {
	return &letterHandler{letterService: letterService}
}

type letterRequest struct {
	RecipientName string `json:"recipient_name"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	DeliveryDate  string `json:"delivery_date,omitempty"` // YYYY-MM-DD, empty = draft
}

func (r letterRequest) deliveryDate() (*time.Time, error) {
	if r.DeliveryDate == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", r.DeliveryDate)
	if err != nil {
		return nil, errors.New("delivery_date must be YYYY-MM-DD")
	}
	return &t, nil
}

func (h *letterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req letterRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	deliveryDate, err := req.deliveryDate()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := ctxkeys.User(r.Context())
	letter, err := h.letterService.Create(user.ID, req.RecipientName, req.Title, req.Content, deliveryDate)
	if err != nil {
		if errors.Is(err, service.ErrLetterLimit) {
			respondError(w, http.StatusPaymentRequired, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, letter)
}

func (h *letterHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	letters, err := h.letterService.List(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list letters")
		return
	}
	respondJSON(w, http.StatusOK, letters)
}

func (h *letterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req letterRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	deliveryDate, err := req.deliveryDate()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := ctxkeys.User(r.Context())
	letter, err := h.letterService.Update(user.ID, chi.URLParam(r, "id"), req.RecipientName, req.Title, req.Content, deliveryDate)
	if err != nil {
		if errors.Is(err, service.ErrLetterNotFound) {
			respondError(w, http.StatusNotFound, "letter not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, letter)
}

func (h *letterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.letterService.Delete(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrLetterNotFound) {
			respondError(w, http.StatusNotFound, "letter not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete letter")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
