package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/service"
)

type wishHandler struct {
	wishService *service.WishService
}

func NewWishHandler(wishService *service.WishService) *wishHandler {
	return &wishHandler{wishService: wishService}
}

type wishRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (h *wishHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wishRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	wish, err := h.wishService.Create(user.ID, req.Title, req.Description, req.Type)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, wish)
}

func (h *wishHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	wishes, err := h.wishService.List(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list wishes")
		return
	}
	respondJSON(w, http.StatusOK, wishes)
}

func (h *wishHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req wishRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	wish, err := h.wishService.Update(user.ID, chi.URLParam(r, "id"), req.Title, req.Description, req.Type)
	if err != nil {
		if errors.Is(err, service.ErrWishNotFound) {
			respondError(w, http.StatusNotFound, "wish not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, wish)
}

func (h *wishHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.wishService.Delete(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrWishNotFound) {
			respondError(w, http.StatusNotFound, "wish not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete wish")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
