// Package onboarding owns the top-level wizard flow: which screen is
// visible, the dashboard summary, and the final submission. Which screen is
// showing is a pure visibility switch; completion state lives in storage.
package onboarding

import (
	"context"
	"sync"

	apperrors "github.com/souravsharma24/onboarding-form-sub000/internal/common/errors"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
	"github.com/souravsharma24/onboarding-form-sub000/internal/progress"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
)

// ScreenKind enumerates the three visible screens.
type ScreenKind string

const (
	ScreenDashboard     ScreenKind = "dashboard"
	ScreenForm          ScreenKind = "form"
	ScreenCollaborators ScreenKind = "collaborators"
)

// Screen identifies what is currently shown; SectionID is set only for form.
type Screen struct {
	Kind      ScreenKind `json:"kind"`
	SectionID string     `json:"sectionId,omitempty"`
}

// Manager is the navigation state machine.
type Manager struct {
	calc   *progress.Calculator
	drafts *storage.Drafts
	logger logger.Logger

	mu      sync.Mutex
	current Screen
}

func NewManager(calc *progress.Calculator, drafts *storage.Drafts, log logger.Logger) *Manager {
	return &Manager{
		calc:    calc,
		drafts:  drafts,
		logger:  log.WithFields(map[string]interface{}{"component": "onboarding"}),
		current: Screen{Kind: ScreenDashboard},
	}
}

// Current returns the visible screen.
func (m *Manager) Current() Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) transition(to Screen) Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger.Debug("screen transition", map[string]interface{}{
		"from": m.current.Kind, "to": to.Kind, "sectionId": to.SectionID,
	})
	m.current = to
	return to
}

// OpenSection moves dashboard -> form(section).
func (m *Manager) OpenSection(sectionID string) (Screen, error) {
	if _, ok := forms.ByID(sectionID); !ok {
		return m.Current(), apperrors.NewSectionUnknownError(sectionID)
	}
	if m.Current().Kind != ScreenDashboard {
		return m.Current(), navigationError(m.Current(), "open-section")
	}
	return m.transition(Screen{Kind: ScreenForm, SectionID: sectionID}), nil
}

// Continue moves dashboard -> form(first incomplete section), or stays on
// the dashboard when everything is already complete.
func (m *Manager) Continue(ctx context.Context) (Screen, error) {
	if m.Current().Kind != ScreenDashboard {
		return m.Current(), navigationError(m.Current(), "continue")
	}
	incomplete := m.calc.IncompleteSections(ctx)
	if len(incomplete) == 0 {
		return m.Current(), nil
	}
	return m.transition(Screen{Kind: ScreenForm, SectionID: incomplete[0]}), nil
}

// NextSection moves form(n) -> form(n+1), or to the dashboard past the last
// section. Saving and validation happen in the section controller before
// this is called.
func (m *Manager) NextSection() (Screen, error) {
	current := m.Current()
	if current.Kind != ScreenForm {
		return current, navigationError(current, "next")
	}
	if next, ok := forms.Next(current.SectionID); ok {
		return m.transition(Screen{Kind: ScreenForm, SectionID: next}), nil
	}
	return m.transition(Screen{Kind: ScreenDashboard}), nil
}

// PrevSection moves form(n) -> form(n-1), or to the dashboard before the
// first section.
func (m *Manager) PrevSection() (Screen, error) {
	current := m.Current()
	if current.Kind != ScreenForm {
		return current, navigationError(current, "previous")
	}
	if prev, ok := forms.Prev(current.SectionID); ok {
		return m.transition(Screen{Kind: ScreenForm, SectionID: prev}), nil
	}
	return m.transition(Screen{Kind: ScreenDashboard}), nil
}

// BackToDashboard is the explicit back action from form or collaborators.
func (m *Manager) BackToDashboard() (Screen, error) {
	if m.Current().Kind == ScreenDashboard {
		return m.Current(), navigationError(m.Current(), "back")
	}
	return m.transition(Screen{Kind: ScreenDashboard}), nil
}

// OpenCollaborators moves dashboard -> collaborators.
func (m *Manager) OpenCollaborators() (Screen, error) {
	if m.Current().Kind != ScreenDashboard {
		return m.Current(), navigationError(m.Current(), "collaborators")
	}
	return m.transition(Screen{Kind: ScreenCollaborators}), nil
}

func navigationError(current Screen, action string) *apperrors.StandardError {
	return apperrors.NewNavigationInvalidError(action, string(current.Kind))
}
