// Package metrics defines the custom Prometheus metrics of the listings API.
// It is the single source of truth for metric names, labels, and help
// strings; request-level HTTP metrics come from the echoprometheus
// middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "realestate"

// RegistrationsTotal counts new accounts, self-service and admin-created.
// Label:
//   - origin: "register" or "admin"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user accounts created.",
	},
	[]string{"origin"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "wrong_password" or "unknown_email"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ListingsCreatedTotal counts new property listings.
// Label:
//   - announce_type: "sale" or "rent"
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of property listings created, by announce type.",
	},
	[]string{"announce_type"},
)

// ImagesUploadedTotal counts images successfully pushed to the object store.
var ImagesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of listing images uploaded to the object store.",
	},
)

// CacheTotal counts response-cache decisions.
// Label:
//   - result: "hit" or "miss"
var CacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "response_cache_total",
		Help:      "Total number of response cache lookups, by result.",
	},
	[]string{"result"},
)
