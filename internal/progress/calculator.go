// Package progress derives completion percentages from persisted draft data.
// Progress is never authoritative state: every call rescans all sections.
package progress

import (
	"context"
	"math"
	"time"

	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/metrics"
	"github.com/souravsharma24/onboarding-form-sub000/internal/forms"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
	"github.com/souravsharma24/onboarding-form-sub000/internal/validation"
)

// TotalSteps is the wizard step count shown to the user: the seven form
// sections plus the review and submit screens.
const TotalSteps = 9

// Snapshot is a derived view over SectionData. It is mirrored into the
// dashboard cache for display continuity but recomputed on every read.
type Snapshot struct {
	OverallProgress     int `json:"overallProgress"`
	CurrentStepProgress int `json:"currentStepProgress"`
	CurrentStep         int `json:"currentStep"`
	TotalSteps          int `json:"totalSteps"`
}

type Calculator struct {
	drafts *storage.Drafts
	logger logger.Logger
}

func NewCalculator(drafts *storage.Drafts, log logger.Logger) *Calculator {
	return &Calculator{
		drafts: drafts,
		logger: log.WithFields(map[string]interface{}{"component": "progress"}),
	}
}

// sectionData loads a section's draft, falling back to that section's
// fields in the flat main-form record when the section key is absent.
func (c *Calculator) sectionData(ctx context.Context, section forms.Section) forms.SectionData {
	if data, ok := c.drafts.LoadSection(ctx, section.ID); ok {
		return data
	}

	combined, ok := c.drafts.LoadMainForm(ctx)
	if !ok {
		return forms.SectionData{}
	}
	data := forms.SectionData{}
	for _, f := range section.Fields {
		if v, present := combined[f.ID]; present {
			data[f.ID] = v
		}
	}
	return data
}

// sectionCounts returns completed and total required fields for a section.
// A field counts as completed only when it is present AND passes validation.
func (c *Calculator) sectionCounts(ctx context.Context, section forms.Section) (completed, total int) {
	required := section.RequiredFields()
	total = len(required)
	if total == 0 {
		return 0, 0
	}

	data := c.sectionData(ctx, section)
	for _, f := range required {
		if validation.Completed(f, data[f.ID]) {
			completed++
		}
	}
	return completed, total
}

func percent(completed, total int) int {
	if total == 0 {
		// A section with nothing required is complete by definition.
		return 100
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// SectionProgress returns 0..100 for one section.
func (c *Calculator) SectionProgress(ctx context.Context, sectionID string) int {
	section, ok := forms.ByID(sectionID)
	if !ok {
		c.logger.Warn("progress requested for unknown section", map[string]interface{}{"sectionId": sectionID})
		return 0
	}
	completed, total := c.sectionCounts(ctx, section)
	return percent(completed, total)
}

// Overall computes the snapshot field-weighted across all sections:
// round(100 * sum(completed) / sum(required)).
func (c *Calculator) Overall(ctx context.Context) Snapshot {
	start := time.Now()
	defer func() {
		metrics.ProgressRecomputeDuration.Observe(time.Since(start).Seconds())
	}()

	var sumCompleted, sumRequired int
	currentStep := 0
	currentStepProgress := 100

	for i, section := range forms.All() {
		completed, total := c.sectionCounts(ctx, section)
		sumCompleted += completed
		sumRequired += total

		if currentStep == 0 && percent(completed, total) < 100 {
			currentStep = i + 1
			currentStepProgress = percent(completed, total)
		}
	}

	if currentStep == 0 {
		// All sections complete; the user is on the review step.
		currentStep = forms.Count() + 1
	}

	return Snapshot{
		OverallProgress:     percent(sumCompleted, sumRequired),
		CurrentStepProgress: currentStepProgress,
		CurrentStep:         currentStep,
		TotalSteps:          TotalSteps,
	}
}

// IncompleteSections lists section ids still below 100%.
func (c *Calculator) IncompleteSections(ctx context.Context) []string {
	var out []string
	for _, section := range forms.All() {
		completed, total := c.sectionCounts(ctx, section)
		if percent(completed, total) < 100 {
			out = append(out, section.ID)
		}
	}
	return out
}
