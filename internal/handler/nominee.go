package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/service"
)

type nomineeHandler struct {
	nomineeService *service.NomineeService
}

func NewNomineeHandler(nomineeService *service.NomineeService) *nomineeHandler {
	return &nomineeHandler{nomineeService: nomineeService}
}

type nomineeRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Relationship string          `json:"relationship"`
	Permissions  map[string]bool `json:"permissions"`
}

func (h *nomineeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nomineeRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	nominee, err := h.nomineeService.Create(user.ID, req.Name, req.Email, req.Relationship, req.Permissions)
	if err != nil {
		if errors.Is(err, service.ErrNomineeLimit) {
			respondError(w, http.StatusPaymentRequired, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, nominee)
}

func (h *nomineeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	nominees, err := h.nomineeService.List(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list nominees")
		return
	}
	respondJSON(w, http.StatusOK, nominees)
}

func (h *nomineeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req nomineeRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	nominee, err := h.nomineeService.Update(user.ID, chi.URLParam(r, "id"), req.Name, req.Email, req.Relationship, req.Permissions)
	if err != nil {
		if errors.Is(err, service.ErrNomineeNotFound) {
			respondError(w, http.StatusNotFound, "nominee not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, nominee)
}

func (h *nomineeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.nomineeService.Delete(user.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrNomineeNotFound) {
			respondError(w, http.StatusNotFound, "nominee not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete nominee")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
