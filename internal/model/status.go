package model

// TaskStatus represents the status of a single pair merge
type TaskStatus string

const (
	// TaskStatusMerging means ffmpeg is running for the pair
	TaskStatusMerging TaskStatus = "Merging"

	// TaskStatusCompleted means the merge finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the merge failed
	TaskStatusError TaskStatus = "Error"

	// TaskStatusCancelled means the batch was cancelled before the pair was merged
	TaskStatusCancelled TaskStatus = "Cancelled"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusMerging
}

// IsFinished returns true if the task is in a finished state (completed, cancelled, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusCancelled || ts == TaskStatusError
}

// BatchOutcome describes how a batch run ended
type BatchOutcome string

const (
	// OutcomeCompleted means every discovered pair was attempted
	OutcomeCompleted BatchOutcome = "completed"

	// OutcomeNothingToDo means discovery found no pairs
	OutcomeNothingToDo BatchOutcome = "nothing_to_do"

	// OutcomeCancelled means the run was cancelled between pairs
	OutcomeCancelled BatchOutcome = "cancelled"
)

// String returns the string representation of BatchOutcome
func (o BatchOutcome) String() string {
	return string(o)
}
