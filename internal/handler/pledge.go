package handler

import (
	"net/http"
	"strings"

	"github.com/bookmylastwishes/portal/internal/config"
	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/service"
)

type pledgeHandler struct {
	patronService *service.PatronService
	maxUploadSize int64
}

func NewPledgeHandler(patronService *service.PatronService, cfg *config.Config) *pledgeHandler {
	return &pledgeHandler{
		patronService: patronService,
		maxUploadSize: cfg.MaxUploadSize,
	}
}

// Submit accepts the pledge form as multipart/form-data. The same endpoint
// serves visitors and signed-in patrons; the service routes on the presence
// of a user in the context.
func (h *pledgeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	err := r.ParseMultipartForm(h.maxUploadSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid or oversized form")
		return
	}

	user := ctxkeys.User(r.Context())

	payload := &model.PledgePayload{
		FullName:         strings.TrimSpace(r.FormValue("full_name")),
		Email:            strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		DOB:              strings.TrimSpace(r.FormValue("dob")),
		Sex:              r.FormValue("sex"),
		Religion:         r.FormValue("religion"),
		Occupation:       r.FormValue("occupation"),
		Address:          r.FormValue("address"),
		ContactNumber:    strings.TrimSpace(r.FormValue("contact_number")),
		RelativesContact: strings.TrimSpace(r.FormValue("relatives_contact")),
		ServiceGrade:     r.FormValue("service_grade"),
		MemorableDeeds:   r.FormValue("memorable_deeds"),
	}

	// A signed-in patron's pledge always lands on their own account
	if user != nil {
		payload.Email = user.Email
	}

	files := r.MultipartForm.File["memories"]

	err = h.patronService.SubmitPledge(r.Context(), user, payload, files)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := map[string]string{"status": "pledge_received"}
	if user == nil {
		// Anonymous pledges park until sign-up; hand the client the prefill.
		resp["next"] = "signup"
		resp["email"] = payload.Email
		resp["name"] = payload.FullName
	}

	respondJSON(w, http.StatusCreated, resp)
}
