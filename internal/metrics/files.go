package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameFileOperations = "file_operations"
	LabelOperation     = "operation"
	LabelStatus        = "status"
)

const (
	OperationList   = "list"
	OperationRead   = "read"
	OperationWrite  = "write"
	OperationDelete = "delete"
)

var FileOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name:      NameFileOperations,
		Help:      "Total file store operations",
		Namespace: Namespace,
	},
	[]string{LabelOperation, LabelStatus},
)
