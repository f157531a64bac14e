package worker

import "time"

// Log messages for worker pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobDropped      = "Worker queue full, job dropped"
	LogMsgPoolStopped     = "Worker pool stopped"
	LogMsgMaintenanceRun  = "Maintenance purge completed"
)

// DefaultJobTimeout bounds a single job execution
const DefaultJobTimeout = 30 * time.Second

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
	TestWaitTimeout      = time.Second
)
