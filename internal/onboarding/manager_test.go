package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/souravsharma24/onboarding-form-sub000/internal/common/errors"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/events"
	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
	"github.com/souravsharma24/onboarding-form-sub000/internal/progress"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestManager(t *testing.T) (*Manager, *storage.Drafts) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := storage.NewRedisStore(client, "tradedesk_", logger.NewTestLogger(t))
	drafts := storage.NewDrafts(store, "1.0", 0, 0)
	calc := progress.NewCalculator(drafts, logger.NewTestLogger(t))

	return NewManager(calc, drafts, logger.NewTestLogger(t)), drafts
}

func fillSection(t *testing.T, drafts *storage.Drafts, sectionID string) {
	t.Helper()
	section, ok := forms.ByID(sectionID)
	require.True(t, ok)

	data := forms.SectionData{}
	for _, f := range section.RequiredFields() {
		data[f.ID] = answerFor(f)
	}
	require.NoError(t, drafts.SaveSection(context.Background(), sectionID, data))
	require.NoError(t, drafts.MergeIntoMainForm(context.Background(), sectionID, data))
}

func answerFor(f forms.Field) forms.FieldValue {
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
		if len(f.Options) > 0 {
			return forms.TextValue(f.Options[0])
		}
		return forms.TextValue("yes")
	case forms.TypeCheckbox:
		return forms.TextValue("true")
	case forms.TypeDate:
		return forms.TextValue("2019-04-01")
	default:
		switch f.Kind {
		case forms.KindPersonalName:
			return forms.TextValue("Jane Doe")
		case forms.KindBusinessName:
			return forms.TextValue("Acme Trading Co.")
		default:
			return forms.TextValue("some answer")
		}
	}
}

// ==========================
// Navigation Tests
// ==========================

func TestManager_StartsOnDashboard(t *testing.T) {
	m, _ := createTestManager(t)
	assert.Equal(t, Screen{Kind: ScreenDashboard}, m.Current())
}

func TestOpenSection_FromDashboard(t *testing.T) {
	m, _ := createTestManager(t)

	screen, err := m.OpenSection(forms.SectionBusinessInfo)
	require.NoError(t, err)
	assert.Equal(t, ScreenForm, screen.Kind)
	assert.Equal(t, forms.SectionBusinessInfo, screen.SectionID)
}

func TestOpenSection_UnknownSection(t *testing.T) {
	m, _ := createTestManager(t)

	_, err := m.OpenSection("retirement-plans")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSectionUnknown, apperrors.CodeOf(err))
	assert.Equal(t, ScreenDashboard, m.Current().Kind, "failed navigation must not move the screen")
}

func TestOpenSection_NotFromForm(t *testing.T) {
	m, _ := createTestManager(t)
	_, err := m.OpenSection(forms.SectionYourInfo)
	require.NoError(t, err)

	_, err = m.OpenSection(forms.SectionDocs)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNavigationInvalid, apperrors.CodeOf(err))
}

func TestNextSection_WalksForward(t *testing.T) {
	m, _ := createTestManager(t)
	_, err := m.OpenSection(forms.SectionYourInfo)
	require.NoError(t, err)

	screen, err := m.NextSection()
	require.NoError(t, err)
	assert.Equal(t, forms.SectionBusinessInfo, screen.SectionID)
}

func TestNextSection_PastLastReturnsToDashboard(t *testing.T) {
	m, _ := createTestManager(t)
	all := forms.All()
	_, err := m.OpenSection(all[len(all)-1].ID)
	require.NoError(t, err)

	screen, err := m.NextSection()
	require.NoError(t, err)
	assert.Equal(t, ScreenDashboard, screen.Kind)
	assert.Empty(t, screen.SectionID)
}

func TestPrevSection_BeforeFirstReturnsToDashboard(t *testing.T) {
	m, _ := createTestManager(t)
	_, err := m.OpenSection(forms.All()[0].ID)
	require.NoError(t, err)

	screen, err := m.PrevSection()
	require.NoError(t, err)
	assert.Equal(t, ScreenDashboard, screen.Kind)
}

func TestNextSection_InvalidFromDashboard(t *testing.T) {
	m, _ := createTestManager(t)

	_, err := m.NextSection()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNavigationInvalid, apperrors.CodeOf(err))
}

func TestBackToDashboard(t *testing.T) {
	m, _ := createTestManager(t)

	_, err := m.BackToDashboard()
	assert.Error(t, err, "back has nowhere to go from the dashboard")

	_, err = m.OpenSection(forms.SectionFunds)
	require.NoError(t, err)
	screen, err := m.BackToDashboard()
	require.NoError(t, err)
	assert.Equal(t, ScreenDashboard, screen.Kind)
}

func TestOpenCollaborators_AndBack(t *testing.T) {
	m, _ := createTestManager(t)

	screen, err := m.OpenCollaborators()
	require.NoError(t, err)
	assert.Equal(t, ScreenCollaborators, screen.Kind)

	_, err = m.OpenCollaborators()
	assert.Error(t, err)

	screen, err = m.BackToDashboard()
	require.NoError(t, err)
	assert.Equal(t, ScreenDashboard, screen.Kind)
}

func TestContinue_OpensFirstIncompleteSection(t *testing.T) {
	m, drafts := createTestManager(t)
	fillSection(t, drafts, forms.SectionYourInfo)

	screen, err := m.Continue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScreenForm, screen.Kind)
	assert.Equal(t, forms.SectionBusinessInfo, screen.SectionID)
}

func TestContinue_AllCompleteStaysOnDashboard(t *testing.T) {
	m, drafts := createTestManager(t)
	for _, s := range forms.All() {
		fillSection(t, drafts, s.ID)
	}

	screen, err := m.Continue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ScreenDashboard, screen.Kind)
}

// ==========================
// Dashboard Summary Tests
// ==========================

func TestDashboard_FreshUser(t *testing.T) {
	m, _ := createTestManager(t)

	summary := m.Dashboard(context.Background())
	assert.Equal(t, StatusNotStarted, summary.Status)
	assert.Empty(t, summary.CompanyName)
	assert.Equal(t, 0, summary.Progress.OverallProgress)
}

func TestDashboard_PicksUpCompanyName(t *testing.T) {
	m, drafts := createTestManager(t)
	fillSection(t, drafts, forms.SectionBusinessInfo)

	summary := m.RebuildDashboard(context.Background(), forms.SectionBusinessInfo, time.Now())
	assert.Equal(t, "Acme Trading Co.", summary.CompanyName)
	assert.Equal(t, StatusInProgress, summary.Status)
	assert.Equal(t, forms.SectionBusinessInfo, summary.LastEditedSection)
}

func TestDashboard_ServesCachedCopy(t *testing.T) {
	m, drafts := createTestManager(t)
	ctx := context.Background()

	fillSection(t, drafts, forms.SectionBusinessInfo)
	m.RebuildDashboard(ctx, forms.SectionBusinessInfo, time.Now())

	// A later Dashboard call must come from the cache, not a rescan.
	var cached Summary
	require.True(t, drafts.LoadDashboard(ctx, &cached))
	assert.Equal(t, cached, m.Dashboard(ctx))
}

func TestDashboard_CacheMissRecoversLastEditedFromRecord(t *testing.T) {
	m, drafts := createTestManager(t)
	fillSection(t, drafts, forms.SectionFunds)

	summary := m.RebuildDashboard(context.Background(), "", time.Time{})
	assert.Equal(t, forms.SectionFunds, summary.LastEditedSection)
	assert.False(t, summary.LastEditedAt.IsZero())
}

func TestDashboard_AllSectionsCompleteIsReadyToSubmit(t *testing.T) {
	m, drafts := createTestManager(t)
	for _, s := range forms.All() {
		fillSection(t, drafts, s.ID)
	}

	summary := m.RebuildDashboard(context.Background(), "", time.Time{})
	assert.Equal(t, StatusComplete, summary.Status)
	assert.Equal(t, 100, summary.Progress.OverallProgress)
}

func TestWatchSectionChanges_RefreshesCache(t *testing.T) {
	m, drafts := createTestManager(t)
	ctx := context.Background()
	bus := events.NewBus()

	stop := m.WatchSectionChanges(ctx, bus)
	defer stop()

	fillSection(t, drafts, forms.SectionBusinessInfo)
	bus.Publish(events.SectionChanged{SectionID: forms.SectionBusinessInfo})

	assert.Eventually(t, func() bool {
		var cached Summary
		return drafts.LoadDashboard(ctx, &cached) &&
			cached.LastEditedSection == forms.SectionBusinessInfo
	}, time.Second, 5*time.Millisecond)
}
