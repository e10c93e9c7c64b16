// Package metrics defines the custom Prometheus metrics for the tailoring
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tailormate"

// SignupsTotal counts successful account registrations.
// Label:
//   - role: "Customer", "Tailor", or "Admin"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
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

// PasswordResetsTotal counts password-reset flow steps.
// Label:
//   - step: "requested", "dispatched", or "redeemed"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset requests and redemptions.",
	},
	[]string{"step"},
)

// OrderTogglesTotal counts order status toggles.
// Label:
//   - to: the status the toggle landed on ("Pending" or "Completed")
var OrderTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_toggles_total",
		Help:      "Total number of order status toggles, by resulting status.",
	},
	[]string{"to"},
)

// AppointmentValidationsTotal counts appointment confirmations.
var AppointmentValidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_validations_total",
		Help:      "Total number of appointments validated.",
	},
)

// NotificationsPublishedTotal counts notifications broadcast on the bus.
// Label:
//   - event: "newNotification" or "updateNotification"
var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of notification events broadcast to listeners.",
	},
	[]string{"event"},
)
