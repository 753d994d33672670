package onboarding

import (
	"context"
	"time"

	"github.com/souravsharma24/onboarding-form-sub000/internal/events"
	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
	"github.com/souravsharma24/onboarding-form-sub000/internal/progress"
)

// Summary is the cached per-user dashboard card. It is a denormalized view
// over the draft data; Rebuild recomputes it from the source of truth.
type Summary struct {
	CompanyName       string            `json:"companyName"`
	Status            string            `json:"status"`
	LastEditedSection string            `json:"lastEditedSection,omitempty"`
	LastEditedAt      time.Time         `json:"lastEditedAt,omitempty"`
	Progress          progress.Snapshot `json:"progress"`
}

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusComplete   = "ready_to_submit"
)

// Dashboard returns the summary card, preferring the cached copy and
// rebuilding it from draft data on a cache miss.
func (m *Manager) Dashboard(ctx context.Context) Summary {
	var cached Summary
	if m.drafts.LoadDashboard(ctx, &cached) {
		return cached
	}
	return m.RebuildDashboard(ctx, "", time.Time{})
}

// RebuildDashboard recomputes the summary from draft data and caches it.
// lastEdited identifies the section whose persist triggered the rebuild;
// pass "" when the trigger is a cache miss.
func (m *Manager) RebuildDashboard(ctx context.Context, lastEdited string, at time.Time) Summary {
	snapshot := m.calc.Overall(ctx)

	summary := Summary{
		CompanyName: m.companyName(ctx),
		Status:      statusFor(snapshot.OverallProgress),
		Progress:    snapshot,
	}
	if lastEdited != "" {
		summary.LastEditedSection = lastEdited
		summary.LastEditedAt = at
	} else if record, ok := m.drafts.LoadWholeForm(ctx); ok {
		summary.LastEditedSection = record.LastSection
		summary.LastEditedAt = record.UpdatedAt
	}

	if err := m.drafts.SaveDashboard(ctx, summary); err != nil {
		m.logger.WithError(err).Warn("dashboard cache write failed", nil)
	}
	return summary
}

func (m *Manager) companyName(ctx context.Context) string {
	combined, ok := m.drafts.LoadMainForm(ctx)
	if !ok {
		return ""
	}
	if name := combined["legalBusinessName"].Scalar(); name != "" {
		return name
	}
	return combined["doingBusinessAs"].Scalar()
}

func statusFor(overall int) string {
	switch {
	case overall == 0:
		return StatusNotStarted
	case overall >= 100:
		return StatusComplete
	default:
		return StatusInProgress
	}
}

// WatchSectionChanges refreshes the dashboard cache whenever a section
// persists. It runs until the bus subscription is cancelled or ctx ends;
// the returned func stops the watcher.
func (m *Manager) WatchSectionChanges(ctx context.Context, bus *events.Bus) func() {
	ch, cancel := bus.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if _, known := forms.ByID(ev.SectionID); !known {
					continue
				}
				m.RebuildDashboard(ctx, ev.SectionID, ev.At)
			}
		}
	}()
	return cancel
}
