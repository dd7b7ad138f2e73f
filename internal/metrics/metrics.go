package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the registration workflow.
type Metrics struct {
	RegistrationsSubmitted prometheus.Counter
	RegistrationConflicts  prometheus.Counter
	StatusTransitions      *prometheus.CounterVec
	Logins                 prometheus.Counter
}

// New creates and registers all metrics against the given registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsSubmitted: factory.NewCounter(prometheus.CounterOpts{
			Name: "player_registry_registrations_submitted_total",
			Help: "Total number of player registrations accepted.",
		}),
		RegistrationConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "player_registry_registration_conflicts_total",
			Help: "Total number of submissions rejected for a duplicate email or national ID.",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "player_registry_status_transitions_total",
			Help: "Total number of status transitions, by target status.",
		}, []string{"status"}),
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Name: "player_registry_logins_total",
			Help: "Total number of successful staff logins.",
		}),
	}
}
