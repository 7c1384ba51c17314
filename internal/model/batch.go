package model

import "time"

// Configuration is the read-only input of a batch run
type Configuration struct {
	SourceFolder    string
	DestFolder      string
	DeleteOriginals bool
	ContainerExt    string // defaults to .mp4 when empty
	AudioExt        string // defaults to .m4a when empty
}

// Default pair extensions
const (
	DefaultContainerExt = ".mp4"
	DefaultAudioExt     = ".m4a"
)

// Extensions returns the container and audio extensions, falling back to defaults
func (c Configuration) Extensions() (string, string) {
	containerExt, audioExt := c.ContainerExt, c.AudioExt
	if containerExt == "" {
		containerExt = DefaultContainerExt
	}
	if audioExt == "" {
		audioExt = DefaultAudioExt
	}
	return containerExt, audioExt
}

// ProgressEvent is emitted once per pair after its merge finished
type ProgressEvent struct {
	JobID    string
	Index    int // 1-based position in discovery order
	Total    int
	Filename string // container filename
	Status   TaskStatus
	Message  string
	Result   MergeResult
}

// Percent returns the share of pairs finished, 0 to 100.
// A pair that is still merging does not count as finished.
func (e ProgressEvent) Percent() int {
	if e.Total <= 0 {
		return 0
	}
	done := e.Index
	if e.Status.IsActive() {
		done--
	}
	return done * 100 / e.Total
}

// Skipped reports an event for a pair left unmerged by a cancelled batch
func (e ProgressEvent) Skipped() bool {
	return e.Status == TaskStatusCancelled
}

// BatchSummary aggregates all merge results of one run
type BatchSummary struct {
	JobID      string
	Outcome    BatchOutcome
	Total      int      // pairs discovered
	Processed  int      // pairs attempted
	Succeeded  int
	Failed     []string // container filenames of failed pairs
	StartedAt  time.Time
	FinishedAt time.Time
}

// FailedCount returns the number of failed pairs
func (s BatchSummary) FailedCount() int {
	return len(s.Failed)
}

// NothingToDo reports whether discovery found no pairs
func (s BatchSummary) NothingToDo() bool {
	return s.Outcome == OutcomeNothingToDo
}

// AllSucceeded reports whether at least one pair ran and none failed
func (s BatchSummary) AllSucceeded() bool {
	return s.Total > 0 && s.Outcome == OutcomeCompleted && s.Succeeded == s.Total
}
