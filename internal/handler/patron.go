package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bookmylastwishes/portal/internal/config"
	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/service"
	"github.com/bookmylastwishes/portal/internal/storage"
)

type patronHandler struct {
	patronService *service.PatronService
	storage       storage.Storage
	maxUploadSize int64
}

func NewPatronHandler(patronService *service.PatronService, storage storage.Storage, cfg *config.Config) *patronHandler {
	return &patronHandler{
		patronService: patronService,
		storage:       storage,
		maxUploadSize: cfg.MaxUploadSize,
	}
}

type patronResponse struct {
	ID               string   `json:"id"`
	Email            string   `json:"email"`
	FullName         string   `json:"full_name"`
	DOB              string   `json:"dob"`
	Sex              string   `json:"sex"`
	Religion         string   `json:"religion"`
	Occupation       string   `json:"occupation"`
	Address          string   `json:"address"`
	ContactNumber    string   `json:"contact_number"`
	RelativesContact string   `json:"relatives_contact"`
	ServiceGrade     string   `json:"service_grade"`
	MemorableDeeds   string   `json:"memorable_deeds"`
	Memories         []string `json:"memories"`
	AvatarURL        string   `json:"avatar_url,omitempty"`
}

func (h *patronHandler) toResponse(p *model.Patron) *patronResponse {
	resp := &patronResponse{
		ID:               p.ID,
		Email:            p.Email,
		FullName:         p.FullName,
		DOB:              p.DOB,
		Sex:              p.Sex,
		Religion:         p.Religion,
		Occupation:       p.Occupation,
		Address:          p.Address,
		ContactNumber:    p.ContactNumber,
		RelativesContact: p.RelativesContact,
		ServiceGrade:     p.ServiceGrade,
		MemorableDeeds:   p.MemorableDeeds,
		Memories:         make([]string, 0, len(p.TopMemoriesURL)),
	}
	for _, path := range p.TopMemoriesURL {
		resp.Memories = append(resp.Memories, h.storage.PublicURL(path))
	}
	if p.AvatarURL != nil {
		resp.AvatarURL = h.storage.PublicURL(*p.AvatarURL)
	}
	return resp
}

func (h *patronHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	patron, err := h.patronService.Profile(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrPatronNotFound) {
			respondError(w, http.StatusNotFound, "no pledge on file yet")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, h.toResponse(patron))
}

type updateProfileRequest struct {
	FullName         string `json:"full_name"`
	DOB              string `json:"dob"`
	Sex              string `json:"sex"`
	Religion         string `json:"religion"`
	Occupation       string `json:"occupation"`
	Address          string `json:"address"`
	ContactNumber    string `json:"contact_number"`
	RelativesContact string `json:"relatives_contact"`
	ServiceGrade     string `json:"service_grade"`
	MemorableDeeds   string `json:"memorable_deeds"`
}

func (h *patronHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user := ctxkeys.User(r.Context())
	payload := &model.PledgePayload{
		FullName:         strings.TrimSpace(req.FullName),
		Email:            user.Email,
		DOB:              strings.TrimSpace(req.DOB),
		Sex:              req.Sex,
		Religion:         req.Religion,
		Occupation:       req.Occupation,
		Address:          req.Address,
		ContactNumber:    strings.TrimSpace(req.ContactNumber),
		RelativesContact: strings.TrimSpace(req.RelativesContact),
		ServiceGrade:     req.ServiceGrade,
		MemorableDeeds:   req.MemorableDeeds,
	}

	err = h.patronService.UpdateProfile(user, payload)
	if err != nil {
		if errors.Is(err, service.ErrPatronNotFound) {
			respondError(w, http.StatusNotFound, "no pledge on file yet")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "profile_updated"})
}

func (h *patronHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	err := r.ParseMultipartForm(h.maxUploadSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid or oversized form")
		return
	}

	files := r.MultipartForm.File["avatar"]
	if len(files) != 1 {
		respondError(w, http.StatusBadRequest, "exactly one avatar file is required")
		return
	}

	user := ctxkeys.User(r.Context())
	url, err := h.patronService.UploadAvatar(r.Context(), user.ID, files[0])
	if err != nil {
		if errors.Is(err, service.ErrPatronNotFound) {
			respondError(w, http.StatusNotFound, "no pledge on file yet")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"avatar_url": url})
}

func (h *patronHandler) RemoveAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.patronService.RemoveAvatar(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrPatronNotFound) {
			respondError(w, http.StatusNotFound, "no pledge on file yet")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to remove avatar")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "avatar_removed"})
}

func (h *patronHandler) AddMemory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	err := r.ParseMultipartForm(h.maxUploadSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid or oversized form")
		return
	}

	files := r.MultipartForm.File["memory"]
	if len(files) != 1 {
		respondError(w, http.StatusBadRequest, "exactly one file is required")
		return
	}

	user := ctxkeys.User(r.Context())
	url, err := h.patronService.AddMemory(r.Context(), user.ID, files[0])
	if err != nil {
		if errors.Is(err, service.ErrPatronNotFound) {
			respondError(w, http.StatusNotFound, "no pledge on file yet")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

type removeMemoryRequest struct {
	Path string `json:"path"`
}

func (h *patronHandler) RemoveMemory(w http.ResponseWriter, r *http.Request) {
	var req removeMemoryRequest
	err := decodeJSON(r, &req)
	if err != nil || req.Path == "" {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}

	user := ctxkeys.User(r.Context())

	// Only the caller's own memory keys are deletable
	if !strings.HasPrefix(req.Path, service.MemoryPath(user.ID, "")) {
		respondError(w, http.StatusForbidden, "path does not belong to caller")
		return
	}

	err = h.patronService.RemoveMemory(r.Context(), user.ID, req.Path)
	if err != nil {
		if errors.Is(err, service.ErrPatronNotFound) {
			respondError(w, http.StatusNotFound, "no pledge on file yet")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "memory_removed"})
}
