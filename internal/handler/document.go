package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookmylastwishes/portal/internal/config"
	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/service"
)

type documentHandler struct {
	documentService *service.DocumentService
	maxUploadSize   int64
	presignExpiry   time.Duration
}

func NewDocumentHandler(documentService *service.DocumentService, cfg *config.Config) *documentHandler {
	return &documentHandler{
		documentService: documentService,
		maxUploadSize:   cfg.MaxUploadSize,
		presignExpiry:   cfg.S3PresignExpiryPrivate,
	}
}

func (h *documentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	err := r.ParseMultipartForm(h.maxUploadSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid or oversized form")
		return
	}

	files := r.MultipartForm.File["document"]
	if len(files) != 1 {
		respondError(w, http.StatusBadRequest, "exactly one document file is required")
		return
	}

	user := ctxkeys.User(r.Context())
	doc, err := h.documentService.Upload(r.Context(), user.ID, files[0])
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, doc)
}

func (h *documentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	docs, err := h.documentService.List(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

// DownloadURL hands out a short-lived presigned URL instead of proxying the
// bytes through the server.
func (h *documentHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	url, err := h.documentService.DownloadURL(user.ID, chi.URLParam(r, "id"), h.presignExpiry)
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			respondError(w, http.StatusNotFound, "document not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to generate download link")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *documentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.documentService.Delete(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			respondError(w, http.StatusNotFound, "document not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete document")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
