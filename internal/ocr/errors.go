package ocr

import (
	"fmt"
	"time"

	"docbridge/internal/port"
)

// JobStartError indicates the recognition service accepted the start request
// but returned no job identifier, or rejected the start outright.
type JobStartError struct {
	Err error
	Key string
}

func (e *JobStartError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("text detection job for %q started without a job id", e.Key)
	}
	return fmt.Sprintf("starting text detection job for %q: %v", e.Key, e.Err)
}

func (e *JobStartError) Unwrap() error {
	return e.Err
}

// JobIncompleteError indicates a recognition job ended without usable
// results: the service reported a non-success terminal status, or the
// wall-clock budget ran out while the job was still running.
type JobIncompleteError struct {
	JobID         string
	Status        port.JobStatus
	StatusMessage string
	TimedOut      bool
	Waited        time.Duration
}

func (e *JobIncompleteError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("text detection job %s still %s after %s", e.JobID, e.Status, e.Waited)
	}
	if e.StatusMessage != "" {
		return fmt.Sprintf("text detection job %s ended with status %s: %s", e.JobID, e.Status, e.StatusMessage)
	}
	return fmt.Sprintf("text detection job %s ended with status %s", e.JobID, e.Status)
}
