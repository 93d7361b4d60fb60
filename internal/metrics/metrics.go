package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NodesAttached = promauto.NewCounter(prometheus.CounterOpts{
		Name: "duitrack_nodes_attached_total",
		Help: "Total number of nodes successfully attached to the tree.",
	})

	AttachFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "duitrack_attach_failures_total",
		Help: "Total number of rejected attach attempts, labelled by reason.",
	}, []string{"reason"})

	TreeNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "duitrack_tree_nodes",
		Help: "Current number of nodes in the tree.",
	})

	TreeImports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "duitrack_tree_imports_total",
		Help: "Total number of full-tree imports accepted.",
	})

	SnapshotWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "duitrack_snapshot_writes_total",
		Help: "Total number of tree snapshots written to disk.",
	})
)
