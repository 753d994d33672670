package onboarding

import (
	"context"
	"strings"
	"time"

	"github.com/souravsharma24/onboarding-form-sub000/internal/bridge"
	apperrors "github.com/souravsharma24/onboarding-form-sub000/internal/common/errors"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/logger"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/metrics"
	"github.com/souravsharma24/onboarding-form-sub000/internal/common/observability"
	"github.com/souravsharma24/onboarding-form-sub000/internal/progress"
	"github.com/souravsharma24/onboarding-form-sub000/internal/section"
	"github.com/souravsharma24/onboarding-form-sub000/internal/storage"
)

// Submitter drives the one-shot final submission to the compliance provider.
type Submitter struct {
	calc     *progress.Calculator
	drafts   *storage.Drafts
	registry *section.Registry
	client   bridge.Client
	obs      *observability.Observability
	logger   logger.Logger
}

func NewSubmitter(calc *progress.Calculator, drafts *storage.Drafts, registry *section.Registry,
	client bridge.Client, obs *observability.Observability, log logger.Logger) *Submitter {
	return &Submitter{
		calc:     calc,
		drafts:   drafts,
		registry: registry,
		client:   client,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "submitter"}),
	}
}

// Submit flushes pending autosaves, verifies every section is complete,
// builds and validates the provider payload, and sends it in a single call.
// On acceptance all onboarding draft keys are cleared; the user profile
// survives. On failure the drafts are left untouched so the user can retry.
func (s *Submitter) Submit(ctx context.Context) (*bridge.SubmissionResult, error) {
	s.registry.FlushAll(ctx)

	if incomplete := s.calc.IncompleteSections(ctx); len(incomplete) > 0 {
		s.record(ctx, "incomplete")
		s.logger.Warn("submission blocked: sections incomplete", map[string]interface{}{
			"incompleteSections": incomplete,
		})
		return nil, apperrors.NewSubmissionIncompleteError(incomplete)
	}

	combined, ok := s.drafts.LoadMainForm(ctx)
	if !ok {
		s.record(ctx, "incomplete")
		return nil, apperrors.NewSubmissionIncompleteError(nil)
	}

	app := bridge.BuildApplication(combined)
	problems, err := bridge.ValidateApplication(app)
	if err != nil {
		s.record(ctx, "error")
		return nil, apperrors.NewSubmissionFailedError(err)
	}
	if len(problems) > 0 {
		s.record(ctx, "invalid_payload")
		return nil, apperrors.NewSubmissionRejectedError("payload validation: " + strings.Join(problems, "; "))
	}

	start := time.Now()
	result, err := s.client.SubmitApplication(ctx, app)
	s.obs.RecordSubmissionDuration(ctx, time.Since(start), outcomeOf(result, err))

	if err != nil {
		s.record(ctx, "error")
		return nil, apperrors.NewSubmissionFailedError(err)
	}
	if !result.Success {
		s.record(ctx, "rejected")
		s.logger.Warn("compliance provider rejected application", map[string]interface{}{
			"message": result.Message,
			"errors":  result.Errors,
		})
		return result, apperrors.NewSubmissionRejectedError(result.Message)
	}

	s.record(ctx, "accepted")
	s.logger.Info("application accepted", map[string]interface{}{
		"customerId": result.CustomerID,
		"kycStatus":  result.KYCStatus,
	})

	// Acceptance ends the wizard: draft state is gone, controllers reset.
	s.drafts.ClearOnboarding(ctx)
	s.registry.Reset()
	return result, nil
}

// KYCStatus polls the provider for the post-submission verification state.
func (s *Submitter) KYCStatus(ctx context.Context, customerID string) (bridge.KYCStatus, error) {
	return s.client.GetKYCStatus(ctx, customerID)
}

func (s *Submitter) record(ctx context.Context, outcome string) {
	metrics.Submissions.WithLabelValues(outcome).Inc()
	s.obs.RecordSubmission(ctx, outcome)
}

func outcomeOf(result *bridge.SubmissionResult, err error) string {
	switch {
	case err != nil:
		return "error"
	case result == nil || !result.Success:
		return "rejected"
	default:
		return "accepted"
	}
}
