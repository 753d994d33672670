// Package handlers exposes the onboarding service over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/souravsharma24/onboarding-form-sub000/internal/common/errors"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
	"github.com/souravsharma24/onboarding-form-sub000/internal/invite"
	"github.com/souravsharma24/onboarding-form-sub000/internal/onboarding"
	"github.com/souravsharma24/onboarding-form-sub000/internal/profile"
	"github.com/souravsharma24/onboarding-form-sub000/internal/progress"
	"github.com/souravsharma24/onboarding-form-sub000/internal/section"
)

// Pinger is the health-check dependency; the redis client satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// API bundles the service components behind the HTTP surface.
type API struct {
	manager   *onboarding.Manager
	submitter *onboarding.Submitter
	registry  *section.Registry
	calc      *progress.Calculator
	profiles  *profile.Service
	invites   *invite.Service
	health    Pinger
	logger    logger.Logger
}

func NewAPI(manager *onboarding.Manager, submitter *onboarding.Submitter, registry *section.Registry,
	calc *progress.Calculator, profiles *profile.Service, invites *invite.Service,
	health Pinger, log logger.Logger) *API {
	return &API{
		manager:   manager,
		submitter: submitter,
		registry:  registry,
		calc:      calc,
		profiles:  profiles,
		invites:   invites,
		health:    health,
		logger:    log.WithFields(map[string]interface{}{"component": "http"}),
	}
}

// --- GET /api/dashboard ---

func (a *API) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]interface{}{
		"summary": a.manager.Dashboard(r.Context()),
		"screen":  a.manager.Current(),
	})
}

// --- GET /api/progress ---

func (a *API) GetProgress(w http.ResponseWriter, r *http.Request) {
	sections := map[string]int{}
	for _, s := range forms.All() {
		sections[s.ID] = a.calc.SectionProgress(r.Context(), s.ID)
	}
	writeData(w, http.StatusOK, map[string]interface{}{
		"snapshot": a.calc.Overall(r.Context()),
		"sections": sections,
	})
}

// --- GET /api/sections ---

func (a *API) ListSections(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]interface{}{"sections": forms.All()})
}

// --- GET /api/sections/{id} ---

func (a *API) GetSection(w http.ResponseWriter, r *http.Request) {
	ctrl, err := a.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	sectionDef, _ := forms.ByID(chi.URLParam(r, "id"))
	writeData(w, http.StatusOK, map[string]interface{}{
		"section": sectionDef,
		"state":   ctrl.View(),
	})
}

// --- PUT /api/sections/{id}/fields/{fieldID} ---

type setFieldRequest struct {
	Value forms.FieldValue `json:"value"`
}

// SetField records an edit. A failing validation rule is data, not an HTTP
// error: the response is 200 with the field error in the returned state.
func (a *API) SetField(w http.ResponseWriter, r *http.Request) {
	ctrl, err := a.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req setFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := ctrl.SetField(r.Context(), chi.URLParam(r, "fieldID"), req.Value); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, ctrl.View())
}

// --- DELETE /api/sections/{id}/fields/{fieldID} ---

func (a *API) ClearField(w http.ResponseWriter, r *http.Request) {
	ctrl, err := a.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := ctrl.ClearField(r.Context(), chi.URLParam(r, "fieldID")); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, ctrl.View())
}

// --- POST /api/sections/{id}/save ---

func (a *API) SaveSection(w http.ResponseWriter, r *http.Request) {
	ctrl, err := a.registry.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := ctrl.SaveDraft(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, ctrl.View())
}

// --- POST /api/sections/{id}/advance ---

func (a *API) AdvanceSection(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "id")
	ctrl, err := a.registry.Get(r.Context(), sectionID)
	if err != nil {
		writeError(w, err)
		return
	}

	next, ok, err := ctrl.Advance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	screen := onboarding.Screen{Kind: onboarding.ScreenDashboard}
	if ok {
		screen = onboarding.Screen{Kind: onboarding.ScreenForm, SectionID: next}
	}
	// Keep the navigation state machine in step when the wizard is the
	// active screen; a direct API advance outside the wizard is fine too.
	if current := a.manager.Current(); current.Kind == onboarding.ScreenForm && current.SectionID == sectionID {
		if moved, navErr := a.manager.NextSection(); navErr == nil {
			screen = moved
		}
	}

	writeData(w, http.StatusOK, map[string]interface{}{
		"screen": screen,
		"state":  ctrl.View(),
	})
}

// --- POST /api/navigate ---

type navigateRequest struct {
	Action    string `json:"action"`
	SectionID string `json:"sectionId,omitempty"`
}

func (a *API) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	var (
		screen onboarding.Screen
		err    error
	)
	switch strings.ToLower(req.Action) {
	case "open-section":
		screen, err = a.manager.OpenSection(req.SectionID)
	case "continue":
		screen, err = a.manager.Continue(r.Context())
	case "next":
		screen, err = a.manager.NextSection()
	case "previous":
		screen, err = a.manager.PrevSection()
	case "back":
		screen, err = a.manager.BackToDashboard()
	case "collaborators":
		screen, err = a.manager.OpenCollaborators()
	default:
		writeBadRequest(w, "unknown action: "+req.Action)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]interface{}{"screen": screen})
}

// --- GET /api/profile ---

func (a *API) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, a.profiles.Get(r.Context()))
}

// --- PUT /api/profile ---

func (a *API) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var updated profile.User
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	user, err := a.profiles.Update(r.Context(), updated)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// --- POST /api/invite/validate ---

type inviteRequest struct {
	Code string `json:"code"`
}

func (a *API) ValidateInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if !a.invites.Validate(r.Context(), req.Code) {
		writeError(w, apperrors.NewInviteInvalidError("code was not accepted"))
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"valid": true})
}

// --- POST /api/submit ---

func (a *API) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := a.submitter.Submit(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

// --- GET /api/kyc/{customerID} ---

func (a *API) GetKYCStatus(w http.ResponseWriter, r *http.Request) {
	status, err := a.submitter.KYCStatus(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"kycStatus": string(status)})
}

// --- GET /healthz ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := a.health.Ping(r.Context()); err != nil {
		a.logger.WithError(err).Error("health check failed", nil)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "onboarding"})
}
