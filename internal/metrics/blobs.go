package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameBlobsLive  = "blobs_live"
	NameBlobsBytes = "blobs_bytes"
)

// BlobsLive counts the object URLs that were created and not revoked yet.
// A value that only grows is the symptom of a caller forgetting to revoke.
var BlobsLive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name:      NameBlobsLive,
		Help:      "Current number of registered object urls",
		Namespace: Namespace,
	},
)

var BlobsBytes = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name:      NameBlobsBytes,
		Help:      "Current size in bytes of the registered blobs",
		Namespace: Namespace,
	},
)
