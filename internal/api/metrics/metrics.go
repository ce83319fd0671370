// Package metrics defines and registers all custom Prometheus metrics for
// the module catalog API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ModulesSubmittedTotal counts new module submissions accepted into the
// moderation queue.
var ModulesSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "modules_submitted_total",
		Help:      "Total number of modules submitted for moderation.",
	},
)

// ModerationTransitionsTotal counts moderation decisions.
// Label:
//   - to_status: the target status applied ("pending", "approved", "rejected")
var ModerationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_transitions_total",
		Help:      "Total number of module status transitions, by target status.",
	},
	[]string{"to_status"},
)

// RatingsSubmittedTotal counts rating submissions.
// Label:
//   - result: "created" for a first rating, "updated" for an overwrite
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of rating submissions, by upsert result.",
	},
	[]string{"result"},
)

// SearchesTotal counts catalog searches.
// Label:
//   - scope: "public" or "all"
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of catalog searches, by corpus scope.",
	},
	[]string{"scope"},
)
