// Package ecfile implements the collaborator file format around the
// reedsolomon core: a basename-keyed sidecar (`<basename>.info`) plus one
// file per data shard (`<basename>.d<i>`) and per recovery shard
// (`<basename>.r<i>`), as named in the core's external-interface
// collaborator contract. None of this is part of the hard core — it is
// the file-splitting utility layer the core spec explicitly treats as an
// external concern.
package ecfile

import "github.com/prometheus/client_golang/prometheus"

var (
	blocksEncoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cauchyrs",
		Subsystem: "ecfile",
		Name:      "blocks_encoded_total",
		Help:      "Number of data+recovery blocks written by Split.",
	})
	blocksReconstructed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cauchyrs",
		Subsystem: "ecfile",
		Name:      "blocks_reconstructed_total",
		Help:      "Number of data blocks rebuilt by Reconstruct.",
	})
	reconstructDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cauchyrs",
		Subsystem: "ecfile",
		Name:      "reconstruct_duration_seconds",
		Help:      "Wall-clock time spent in Reconstruct, including file I/O.",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(blocksEncoded, blocksReconstructed, reconstructDuration)
}
