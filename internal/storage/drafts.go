package storage

import (
	"context"
	"sync"
	"time"

	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
)

// Drafts applies the service's fixed expiry policy on top of a Store:
// every draft entry (whole-form, per-section, flat mirror, dashboard cache)
// lives 7 days by default, invite codes 24 hours, the user profile forever.
type Drafts struct {
	store     Store
	version   string
	draftTTL  time.Duration
	inviteTTL time.Duration

	// mergeMu serializes the read-modify-write of the accumulated records,
	// so concurrent section autosaves cannot drop each other's fields.
	mergeMu sync.Mutex
}

func NewDrafts(store Store, version string, draftTTL, inviteTTL time.Duration) *Drafts {
	if draftTTL == 0 {
		draftTTL = 7 * 24 * time.Hour
	}
	if inviteTTL == 0 {
		inviteTTL = 24 * time.Hour
	}
	return &Drafts{
		store:     store,
		version:   version,
		draftTTL:  draftTTL,
		inviteTTL: inviteTTL,
	}
}

// Store exposes the underlying Store for callers with bespoke needs.
func (d *Drafts) Store() Store {
	return d.store
}

func (d *Drafts) draftOpts() Options {
	return Options{Version: d.version, TTL: d.draftTTL, Checksum: true}
}

// SaveSection persists one section's draft.
func (d *Drafts) SaveSection(ctx context.Context, sectionID string, data forms.SectionData) error {
	return d.store.Save(ctx, SectionKey(sectionID), data, d.draftOpts())
}

// LoadSection returns one section's draft, or false when absent.
func (d *Drafts) LoadSection(ctx context.Context, sectionID string) (forms.SectionData, bool) {
	data := forms.SectionData{}
	ok, _ := d.store.Load(ctx, SectionKey(sectionID), &data, d.draftOpts())
	return data, ok
}

// SaveMainForm persists the flat mirror of all section fields.
func (d *Drafts) SaveMainForm(ctx context.Context, data forms.SectionData) error {
	return d.store.Save(ctx, KeyMainForm, data, d.draftOpts())
}

// LoadMainForm returns the flat mirror, or false when absent.
func (d *Drafts) LoadMainForm(ctx context.Context) (forms.SectionData, bool) {
	data := forms.SectionData{}
	ok, _ := d.store.Load(ctx, KeyMainForm, &data, d.draftOpts())
	return data, ok
}

// WholeForm is the accumulated whole-form draft record: every collected
// field plus which section was touched last and when.
type WholeForm struct {
	Fields      forms.SectionData `json:"fields"`
	LastSection string            `json:"lastSection,omitempty"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// MergeIntoMainForm overlays one section's data onto the flat mirror and the
// whole-form record, last write wins per field. The read-modify-write is
// serialized so concurrent autosaves of different sections cannot drop each
// other's fields.
func (d *Drafts) MergeIntoMainForm(ctx context.Context, sectionID string, data forms.SectionData) error {
	d.mergeMu.Lock()
	defer d.mergeMu.Unlock()

	combined, _ := d.LoadMainForm(ctx)
	if combined == nil {
		combined = forms.SectionData{}
	}
	combined.Merge(data)
	if err := d.SaveMainForm(ctx, combined); err != nil {
		return err
	}

	return d.store.Save(ctx, KeyOnboardingData, WholeForm{
		Fields:      combined,
		LastSection: sectionID,
		UpdatedAt:   time.Now().UTC(),
	}, d.draftOpts())
}

// LoadWholeForm reads the accumulated whole-form draft record.
func (d *Drafts) LoadWholeForm(ctx context.Context) (WholeForm, bool) {
	var record WholeForm
	ok, _ := d.store.Load(ctx, KeyOnboardingData, &record, d.draftOpts())
	return record, ok
}

// SaveInvite persists a validated invite code for 24 hours.
func (d *Drafts) SaveInvite(ctx context.Context, code string) error {
	return d.store.Save(ctx, KeyInviteCode, code,
		Options{Version: d.version, TTL: d.inviteTTL, Checksum: true})
}

// LoadInvite returns the stored invite code, or false when absent/expired.
func (d *Drafts) LoadInvite(ctx context.Context) (string, bool) {
	var code string
	ok, _ := d.store.Load(ctx, KeyInviteCode, &code,
		Options{Version: d.version, TTL: d.inviteTTL, Checksum: true})
	return code, ok
}

// SaveDashboard caches the dashboard summary for display continuity.
func (d *Drafts) SaveDashboard(ctx context.Context, v interface{}) error {
	return d.store.Save(ctx, KeyDashboard, v, d.draftOpts())
}

// LoadDashboard reads the cached dashboard summary.
func (d *Drafts) LoadDashboard(ctx context.Context, dst interface{}) bool {
	ok, _ := d.store.Load(ctx, KeyDashboard, dst, d.draftOpts())
	return ok
}

// SaveUser persists the user profile with no expiry.
func (d *Drafts) SaveUser(ctx context.Context, v interface{}) error {
	return d.store.Save(ctx, KeyUserData, v, Options{Version: d.version, Checksum: true})
}

// LoadUser reads the user profile.
func (d *Drafts) LoadUser(ctx context.Context, dst interface{}) bool {
	ok, _ := d.store.Load(ctx, KeyUserData, dst, Options{Version: d.version, Checksum: true})
	return ok
}

// ClearOnboarding removes every onboarding draft key after a successful
// final submission. The user profile survives.
func (d *Drafts) ClearOnboarding(ctx context.Context) {
	keys := []string{KeyOnboardingData, KeyMainForm, KeyDashboard, KeyInviteCode}
	for _, s := range forms.All() {
		keys = append(keys, SectionKey(s.ID))
	}
	for _, key := range keys {
		_ = d.store.Remove(ctx, key)
	}
}
