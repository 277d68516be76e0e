package handler

import (
	"errors"
	"net/http"

	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/service"
)

type accountHandler struct {
	accountService *service.AccountService
	authService    *service.AuthService
}

func NewAccountHandler(accountService *service.AccountService, authService *service.AuthService) *accountHandler {
	return &accountHandler{
		accountService: accountService,
		authService:    authService,
	}
}

type deleteAccountRequest struct {
	Password string `json:"password"`
}

func (h *accountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteAccountRequest
	err := decodeJSON(r, &req)
	if err != nil || req.Password == "" {
		respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	user := ctxkeys.User(r.Context())
	err = h.accountService.Delete(r.Context(), user.ID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "password is incorrect")
			return
		}
		respondError(w, http.StatusInternalServerError, "account deletion failed")
		return
	}

	h.authService.ClearJWTCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "account_deleted"})
}
