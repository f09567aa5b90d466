package waitlist

import (
	apperrors "github.com/postie/waitlist/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeJoined    = "joined"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeError     = "error"
)

type submissionMetrics struct {
	submissions *prometheus.CounterVec
}

func newSubmissionMetrics(reg prometheus.Registerer) *submissionMetrics {
	submissions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Waitlist submissions by outcome.",
		},
		[]string{"outcome"},
	)

	if reg != nil {
		if err := reg.Register(submissions); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !apperrors.As(err, &already) {
				panic(err)
			}
			submissions = already.ExistingCollector.(*prometheus.CounterVec)
		}
	}

	for _, outcome := range []string{OutcomeJoined, OutcomeInvalid, OutcomeDuplicate, OutcomeError} {
		submissions.WithLabelValues(outcome)
	}

	return &submissionMetrics{submissions: submissions}
}

func (m *submissionMetrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func outcomeFor(err error) string {
	if err == nil {
		return OutcomeJoined
	}

	switch apperrors.GetErrorType(err) {
	case apperrors.ErrorTypeInvalidRequest:
		return OutcomeInvalid
	case apperrors.ErrorTypeConflict:
		return OutcomeDuplicate
	default:
		return OutcomeError
	}
}
