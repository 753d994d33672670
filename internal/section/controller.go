// Package section owns the editing state of one form section: field values,
// per-field errors, touched flags, and the debounced autosave that mirrors
// edits into the draft store.
package section

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/souravsharma24/onboarding-form-sub000/internal/common/errors"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/metrics"
	"github.com/souravsharma24/onboarding-form-sub000/internal/events"
	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
	"github.com/souravsharma24/onboarding-form-sub000/internal/validation"
)

// View is the controller state handed to the HTTP layer.
type View struct {
	SectionID   string            `json:"sectionId"`
	Values      forms.SectionData `json:"values"`
	FieldErrors map[string]string `json:"fieldErrors"`
	Touched     []string          `json:"touched"`
	Saving      bool              `json:"saving"`
	LastSavedAt *time.Time        `json:"lastSavedAt,omitempty"`
}

// Controller manages one section instance.
type Controller struct {
	section  forms.Section
	drafts   *storage.Drafts
	bus      *events.Bus
	logger   logger.Logger
	debounce time.Duration

	mu          sync.Mutex
	values      forms.SectionData
	fieldErrors map[string]string
	touched     map[string]bool
	saving      bool
	lastSavedAt time.Time
	timer       *time.Timer
	autosaves   sync.WaitGroup
}

func NewController(sectionID string, drafts *storage.Drafts, bus *events.Bus, log logger.Logger, debounce time.Duration) (*Controller, error) {
	section, ok := forms.ByID(sectionID)
	if !ok {
		return nil, apperrors.NewSectionUnknownError(sectionID)
	}
	if debounce <= 0 {
		debounce = time.Second
	}
	return &Controller{
		section:     section,
		drafts:      drafts,
		bus:         bus,
		logger:      log.WithFields(map[string]interface{}{"sectionId": sectionID}),
		debounce:    debounce,
		values:      forms.SectionData{},
		fieldErrors: map[string]string{},
		touched:     map[string]bool{},
	}, nil
}

// Load populates values from the section draft, falling back to this
// section's fields in the flat main-form record, then to hardcoded defaults.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data, ok := c.drafts.LoadSection(ctx, c.section.ID); ok {
		c.values = data
		return
	}

	if combined, ok := c.drafts.LoadMainForm(ctx); ok {
		data := forms.SectionData{}
		for _, f := range c.section.Fields {
			if v, present := combined[f.ID]; present {
				data[f.ID] = v
			}
		}
		if len(data) > 0 {
			c.values = data
			return
		}
	}

	c.values = c.section.Defaults()
}

// SetField records an edit: value updated, field marked touched, validated
// synchronously, and an autosave scheduled after the debounce window.
func (c *Controller) SetField(ctx context.Context, fieldID string, value forms.FieldValue) error {
	field, ok := c.section.FieldByID(fieldID)
	if !ok {
		return apperrors.NewSectionUnknownError(c.section.ID + "/" + fieldID)
	}

	c.mu.Lock()
	c.values[fieldID] = value
	c.touched[fieldID] = true

	if result := validation.ValidateValue(field, value); result.Valid {
		delete(c.fieldErrors, fieldID)
	} else {
		c.fieldErrors[fieldID] = result.Message
		metrics.ValidationFailures.WithLabelValues(c.section.ID, string(field.Type)).Inc()
	}
	c.mu.Unlock()

	c.scheduleAutosave()
	return nil
}

// ClearField resets one field to empty, leaving others untouched.
func (c *Controller) ClearField(ctx context.Context, fieldID string) error {
	if _, ok := c.section.FieldByID(fieldID); !ok {
		return apperrors.NewSectionUnknownError(c.section.ID + "/" + fieldID)
	}

	c.mu.Lock()
	c.values[fieldID] = forms.TextValue("")
	c.touched[fieldID] = true
	delete(c.fieldErrors, fieldID)
	c.mu.Unlock()

	c.scheduleAutosave()
	return nil
}

// scheduleAutosave restarts the debounce timer: only the last edit within
// the window triggers a write.
func (c *Controller) scheduleAutosave() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil && c.timer.Stop() {
		c.autosaves.Done()
	}
	c.autosaves.Add(1)
	c.timer = time.AfterFunc(c.debounce, func() {
		defer c.autosaves.Done()
		if err := c.persist(context.Background(), "autosave"); err != nil {
			c.logger.WithError(err).Warn("autosave failed", nil)
		}
	})
}

// Flush forces a pending autosave immediately. If the timer already fired,
// it waits for the in-flight write to finish. Used on shutdown and by tests.
func (c *Controller) Flush(ctx context.Context) error {
	c.mu.Lock()
	timer := c.timer
	c.timer = nil
	c.mu.Unlock()

	if timer != nil && timer.Stop() {
		c.autosaves.Done()
		return c.persist(ctx, "autosave")
	}
	c.autosaves.Wait()
	return nil
}

// persist writes the section draft and merges it into the flat main form.
func (c *Controller) persist(ctx context.Context, trigger string) error {
	c.mu.Lock()
	c.saving = true
	snapshot := forms.SectionData{}
	snapshot.Merge(c.values)
	c.mu.Unlock()

	err := c.drafts.SaveSection(ctx, c.section.ID, snapshot)
	if err == nil {
		err = c.drafts.MergeIntoMainForm(ctx, c.section.ID, snapshot)
	}

	c.mu.Lock()
	c.saving = false
	if err == nil {
		c.lastSavedAt = time.Now().UTC()
	}
	c.mu.Unlock()

	if err != nil {
		return err
	}

	metrics.SectionSaves.WithLabelValues(c.section.ID, trigger).Inc()
	c.bus.Publish(events.SectionChanged{SectionID: c.section.ID})
	return nil
}

// validateRequired runs the full required-field check used by explicit saves.
func (c *Controller) validateRequired() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	failed := map[string]string{}
	for _, f := range c.section.RequiredFields() {
		if result := validation.ValidateValue(f, c.values[f.ID]); !result.Valid {
			failed[f.ID] = result.Message
			c.fieldErrors[f.ID] = result.Message
		}
	}
	return failed
}

// SaveDraft is the explicit "Save Draft" action: all required fields must
// pass before anything is written.
func (c *Controller) SaveDraft(ctx context.Context) error {
	if failed := c.validateRequired(); len(failed) > 0 {
		return apperrors.NewValidationFailedError(c.section.ID, failed)
	}
	return c.persist(ctx, "draft")
}

// Advance is "Next & Save": validate, persist, and return the id of the
// next section. ok is false at the last section, where navigation returns
// to the dashboard.
func (c *Controller) Advance(ctx context.Context) (next string, ok bool, err error) {
	if failed := c.validateRequired(); len(failed) > 0 {
		return "", false, apperrors.NewValidationFailedError(c.section.ID, failed)
	}
	if err := c.persist(ctx, "advance"); err != nil {
		return "", false, err
	}
	next, ok = forms.Next(c.section.ID)
	return next, ok, nil
}

// View returns a copy of the current controller state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	values := forms.SectionData{}
	values.Merge(c.values)

	fieldErrors := make(map[string]string, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		fieldErrors[k] = v
	}

	touched := make([]string, 0, len(c.touched))
	for id := range c.touched {
		touched = append(touched, id)
	}

	view := View{
		SectionID:   c.section.ID,
		Values:      values,
		FieldErrors: fieldErrors,
		Touched:     touched,
		Saving:      c.saving,
	}
	if !c.lastSavedAt.IsZero() {
		at := c.lastSavedAt
		view.LastSavedAt = &at
	}
	return view
}
