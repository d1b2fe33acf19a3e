// Package metrics defines all custom Prometheus metrics for the hospital
// API. It is the single source of truth for metric names, labels, and help
// strings. Registration happens at import time via promauto against the
// default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hospital"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome ("success" / "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts completed registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations, by role.",
	},
	[]string{"role"},
)

// AuthzDecisionsTotal counts role-guard decisions.
// Label:
//   - decision: "allowed", "unauthenticated", or "forbidden"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by decision.",
	},
	[]string{"decision"},
)

// RouteClassTotal counts route classifications.
// Label:
//   - class: "public", "protected", "account", "default", or "error" when the
//     classifier failed open
var RouteClassTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_class_total",
		Help:      "Total number of route classifications, by class.",
	},
	[]string{"class"},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// AppointmentsCreatedTotal counts newly booked appointments.
var AppointmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_created_total",
		Help:      "Total number of appointments created.",
	},
)

// RemindersProcessedTotal counts reminder deliveries by kind.
var RemindersProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_processed_total",
		Help:      "Total number of appointment reminders processed, by kind.",
	},
	[]string{"kind"},
)

// ReminderQueueDepth tracks events waiting in each dispatcher worker channel.
var ReminderQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reminder_queue_depth",
		Help:      "Current number of reminders pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
