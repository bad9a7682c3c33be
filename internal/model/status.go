package model

// JobStatus represents the status of a removal job within a batch.
type JobStatus string

const (
	// JobStatusPending means the job is queued but not started.
	JobStatusPending JobStatus = "Pending"

	// JobStatusRunning means the removal invocation is in progress.
	JobStatusRunning JobStatus = "Running"

	// JobStatusSucceeded means the output replaced the original file.
	JobStatusSucceeded JobStatus = "Succeeded"

	// JobStatusFailed means the invocation failed; the original is intact.
	JobStatusFailed JobStatus = "Failed"
)

// String returns the string representation of JobStatus.
func (js JobStatus) String() string {
	return string(js)
}

// IsTerminal returns true if no further transition is allowed.
func (js JobStatus) IsTerminal() bool {
	return js == JobStatusSucceeded || js == JobStatusFailed
}
