package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
)

var (
	ApplicantSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applicant_saves_total",
			Help: "Applicant aggregate save attempts by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	ApplicantSaveErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "applicant_save_errors_total",
			Help: "Failed applicant saves by error kind",
		},
		[]string{"kind"},
	)

	ReferenceActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personal_reference_actions_total",
			Help: "Personal reference actions applied in committed saves",
		},
		[]string{"action"},
	)
)
