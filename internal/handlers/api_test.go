package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souravsharma24/onboarding-form-sub000/internal/bridge"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/config"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/observability"
	"github.com/souravsharma24/onboarding-form-sub000/internal/events"
	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
	"github.com/souravsharma24/onboarding-form-sub000/internal/invite"
	"github.com/souravsharma24/onboarding-form-sub000/internal/onboarding"
	"github.com/souravsharma24/onboarding-form-sub000/internal/profile"
	"github.com/souravsharma24/onboarding-form-sub000/internal/progress"
	"github.com/souravsharma24/onboarding-form-sub000/internal/section"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
)

type nopPinger struct{ err error }

func (p nopPinger) Ping(ctx context.Context) error { return p.err }

func createTestServer(t *testing.T) (*httptest.Server, *storage.Drafts) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	log := logger.NewTestLogger(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := storage.NewRedisStore(client, "tradedesk_", log)
	drafts := storage.NewDrafts(store, "1.0", 0, 0)

	bus := events.NewBus()
	calc := progress.NewCalculator(drafts, log)
	registry := section.NewRegistry(drafts, bus, log, 10*time.Millisecond)
	manager := onboarding.NewManager(calc, drafts, log)
	submitter := onboarding.NewSubmitter(calc, drafts, registry,
		bridge.NewMockClient(log), observability.New("handlers-test"), log)
	profiles := profile.NewService(drafts, log)
	invites := invite.NewService(config.InviteConfig{RequestTimeout: time.Second}, drafts, log)

	api := NewAPI(manager, submitter, registry, calc, profiles, invites, nopPinger{}, log)
	srv := httptest.NewServer(NewRouter(api, []string{"*"}, log))
	t.Cleanup(srv.Close)
	return srv, drafts
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthz(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetDashboard_FreshUser(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/dashboard", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	summary := data["summary"].(map[string]interface{})
	assert.Equal(t, onboarding.StatusNotStarted, summary["status"])
}

func TestListSections(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/sections", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	sections := data["sections"].([]interface{})
	assert.Len(t, sections, forms.Count())
}

func TestGetSection_Unknown(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/sections/retirement-plans", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestSetField_ValidationErrorIsData(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, body := doJSON(t, http.MethodPut,
		srv.URL+"/api/sections/your-info/fields/email",
		setFieldRequest{Value: forms.TextValue("not-an-email")})

	// A failing rule must not fail the request.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	fieldErrors := data["fieldErrors"].(map[string]interface{})
	assert.Contains(t, fieldErrors, "email")
}

func TestSetField_ThenGetSectionShowsValue(t *testing.T) {
	srv, _ := createTestServer(t)

	_, _ = doJSON(t, http.MethodPut,
		srv.URL+"/api/sections/your-info/fields/firstName",
		setFieldRequest{Value: forms.TextValue("Jane")})

	_, body := doJSON(t, http.MethodGet, srv.URL+"/api/sections/your-info", nil)
	data := body["data"].(map[string]interface{})
	state := data["state"].(map[string]interface{})
	values := state["values"].(map[string]interface{})
	first := values["firstName"].(map[string]interface{})
	assert.Equal(t, "Jane", first["text"])
}

func TestSaveSection_BlocksIncomplete(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/sections/your-info/save", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAdvance_CompleteSectionMovesForward(t *testing.T) {
	srv, _ := createTestServer(t)

	for field, value := range map[string]string{
		"firstName": "Jane",
		"lastName":  "Doe",
		"email":     "jane@x.com",
	} {
		resp, _ := doJSON(t, http.MethodPut,
			srv.URL+"/api/sections/your-info/fields/"+field,
			setFieldRequest{Value: forms.TextValue(value)})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/sections/your-info/advance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	screen := data["screen"].(map[string]interface{})
	assert.Equal(t, string(onboarding.ScreenForm), screen["kind"])
	assert.Equal(t, forms.SectionBusinessInfo, screen["sectionId"])
}

func TestNavigate_IllegalTransition(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/navigate",
		navigateRequest{Action: "back"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestNavigate_OpenSectionAndBack(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/navigate",
		navigateRequest{Action: "open-section", SectionID: forms.SectionDocs})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	screen := data["screen"].(map[string]interface{})
	assert.Equal(t, forms.SectionDocs, screen["sectionId"])

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/navigate",
		navigateRequest{Action: "back"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfile_GetSeedsDefault(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/profile", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "New Trader", data["displayName"])
	assert.NotEmpty(t, data["id"])
}

func TestProfile_Update(t *testing.T) {
	srv, _ := createTestServer(t)

	_, body := doJSON(t, http.MethodPut, srv.URL+"/api/profile",
		map[string]string{"displayName": "Ada Lovelace", "email": "ada@x.com"})
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Ada Lovelace", data["displayName"])
	assert.Equal(t, "AL", data["initials"])
}

func TestInviteValidate_FallbackList(t *testing.T) {
	srv, _ := createTestServer(t)

	// No verify URL configured, so the allow-list decides.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/invite/validate",
		inviteRequest{Code: "WELCOME123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["valid"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/invite/validate",
		inviteRequest{Code: "NOPE"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestSubmit_IncompleteIsConflict(t *testing.T) {
	srv, _ := createTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/submit", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestSubmit_CompleteApplication(t *testing.T) {
	srv, drafts := createTestServer(t)
	ctx := context.Background()

	for _, s := range forms.All() {
		data := forms.SectionData{}
		for _, f := range s.RequiredFields() {
			data[f.ID] = testAnswer(f)
		}
		require.NoError(t, drafts.SaveSection(ctx, s.ID, data))
		require.NoError(t, drafts.MergeIntoMainForm(ctx, s.ID, data))
	}

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["success"])
	assert.NotEmpty(t, data["customerId"])

	_, ok := drafts.LoadMainForm(ctx)
	assert.False(t, ok, "drafts cleared after acceptance")
}

func testAnswer(f forms.Field) forms.FieldValue {
	switch f.Type {
	case forms.TypeEmail:
		return forms.TextValue("jane@x.com")
	case forms.TypeURL:
		return forms.TextValue("https://example.com")
	case forms.TypeTextarea:
		return forms.TextValue("A sufficiently long description of the answer.")
	case forms.TypeFile:
		return forms.FieldValue{File: &forms.FileMeta{Name: "document.pdf"}}
	case forms.TypeSelect, forms.TypeRadio:
		return forms.TextValue(f.Options[0])
	case forms.TypeCheckbox:
		return forms.TextValue("true")
	case forms.TypeDate:
		return forms.TextValue("2019-04-01")
	default:
		if f.Kind == forms.KindBusinessName {
			return forms.TextValue("Acme Trading Co.")
		}
		return forms.TextValue("Jane Doe")
	}
}
