// Package broker abstracts the distributed work queue that carries scan
// requests from the front-end to workers.
package broker

import (
	"context"

	"github.com/reconvoy/reconvoy/pkg/types"
)

// JobID identifies a queued scan job.
type JobID string

// JobStatus represents job state
type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobRunning JobStatus = "running"
	JobSuccess JobStatus = "success"
	JobFailure JobStatus = "failure"
)

// ScanHandler executes one queued scan request.
type ScanHandler func(ctx context.Context, req types.ScanRequest) error

// Broker abstracts distributed scan execution.
type Broker interface {
	EnqueueScan(ctx context.Context, req types.ScanRequest) (JobID, error)
	Status(ctx context.Context, jobID JobID) (JobStatus, error)
	StartWorker(ctx context.Context, concurrency int) error
	Close() error
}
