// Package metrics registers the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StorageOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_storage_operations_total",
			Help: "Total draft store operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	StorageDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_storage_discarded_total",
			Help: "Entries discarded on load by reason (expired, corrupt, undecodable)",
		},
		[]string{"reason"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_validation_failures_total",
			Help: "Field validation failures by section and field type",
		},
		[]string{"section", "field_type"},
	)

	ProgressRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "onboarding_progress_recompute_seconds",
			Help: "Duration of a full progress rescan across sections",
		},
	)

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_submissions_total",
			Help: "Final submissions to the compliance provider by outcome",
		},
		[]string{"outcome"},
	)

	SectionSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_section_saves_total",
			Help: "Section persists by section id and trigger (autosave, draft, advance)",
		},
		[]string{"section", "trigger"},
	)
)
