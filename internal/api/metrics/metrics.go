// Package metrics defines and registers all custom Prometheus metrics for the
// course marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// UsersRegisteredTotal counts successful account registrations.
// Label:
//   - role: "student", "instructor", or "admin"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests rejected by the authorization guard.
// Label:
//   - reason: "no_credential", "malformed_credential", "empty_credential",
//     "invalid_credential", or "stale_credential"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authorization guard, by reason.",
	},
	[]string{"reason"},
)

// CoursesCreatedTotal counts newly created courses.
// Label:
//   - level: "beginner", "intermediate", or "advanced"
var CoursesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courses_created_total",
		Help:      "Total number of courses created, by level.",
	},
	[]string{"level"},
)

// EnrollmentsTotal counts successful enrollments.
var EnrollmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of successful course enrollments.",
	},
)

// RatingsSubmittedTotal counts accepted ratings.
// Label:
//   - value: the submitted rating, "1" through "5"
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of accepted course ratings, by value.",
	},
	[]string{"value"},
)
