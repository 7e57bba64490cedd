package domain

import "time"

// JobResult summarizes one scheduled sync run. Success is true iff the
// run recorded zero errors.
type JobResult struct {
	Success   bool      `json:"success"`
	Processed int       `json:"processed"`
	Errors    []string  `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
}

// JobStatus reports the manager's current state.
type JobStatus struct {
	Running  bool          `json:"running"`
	LastRun  *time.Time    `json:"last_run,omitempty"`
	Interval time.Duration `json:"interval"`
}
