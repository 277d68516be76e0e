package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/service"
)

type authHandler struct {
	authService      *service.AuthService
	mfaService       *service.MFAService
	migrationService *service.MigrationService
}

func NewAuthHandler(authService *service.AuthService, mfaService *service.MFAService, migrationService *service.MigrationService) *authHandler {
	return &authHandler{
		authService:      authService,
		mfaService:       mfaService,
		migrationService: migrationService,
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, session, err := h.authService.Signup(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.finishLogin(w, r, user, session)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, session, err := h.authService.Login(req.Email, req.Password, req.TOTPCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTOTPRequired):
			respondJSON(w, http.StatusUnauthorized, map[string]any{
				"error":         "totp code required",
				"totp_required": true,
			})
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidTOTPCode):
			respondError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			respondError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	h.finishLogin(w, r, user, session)
}

// finishLogin sets the cookie and kicks off the temp pledge migration in the
// background. The response never waits on, or reports, the migration.
func (h *authHandler) finishLogin(w http.ResponseWriter, r *http.Request, user *model.User, session *model.Session) {
	token, err := h.authService.GenerateJWT(user, session)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	h.authService.SetJWTCookie(w, token, session.ExpiresAt)

	go h.migrationService.RunForSession(context.Background(), user, session.ID)

	respondJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	if session != nil {
		err := h.authService.Logout(session.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "logout failed")
			return
		}
	}
	h.authService.ClearJWTCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (h *authHandler) LogoutOthers(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	session := ctxkeys.Session(r.Context())

	err := h.authService.LogoutOthers(user.ID, session.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to sign out other sessions")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "other_sessions_signed_out"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *authHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	err = h.authService.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "current password is incorrect")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password_changed"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *authHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.authService.RequestPasswordReset(req.Email)
	if err != nil && !errors.Is(err, service.ErrInvalidEmail) {
		respondError(w, http.StatusInternalServerError, "failed to send reset link")
		return
	}

	// Same answer whether or not the account exists
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset_link_sent"})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *authHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.authService.ResetPassword(req.Token, req.NewPassword)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password_reset"})
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	})
}

func (h *authHandler) EnrollMFA(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	secret, otpauthURL, err := h.mfaService.Enroll(user.ID, user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to start enrollment")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"secret":      secret,
		"otpauth_url": otpauthURL,
	})
}

type mfaCodeRequest struct {
	Code string `json:"code"`
}

func (h *authHandler) ConfirmMFA(w http.ResponseWriter, r *http.Request) {
	var req mfaCodeRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	err = h.mfaService.Confirm(user.ID, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTOTPCode) {
			respondError(w, http.StatusBadRequest, "invalid code")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to confirm enrollment")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "mfa_enabled"})
}

func (h *authHandler) DisableMFA(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.mfaService.Disable(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to disable mfa")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "mfa_disabled"})
}
