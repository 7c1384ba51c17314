package batch

import (
	"context"
	"sync"

	"github.com/ytget/merge-replays/internal/model"
)

// Job is a handle on a running batch
type Job struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	summary model.BatchSummary
	err     error
}

// ID returns the job identifier carried by every event of this batch
func (j *Job) ID() string {
	return j.id
}

// Done is closed once the summary has been delivered
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel asks the batch to stop before the next pair. The pair being
// merged when Cancel is called still completes.
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the batch finishes and returns its summary
func (j *Job) Wait() (model.BatchSummary, error) {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.summary, j.err
}

func (j *Job) finish(summary model.BatchSummary, err error) {
	j.mu.Lock()
	j.summary = summary
	j.err = err
	j.mu.Unlock()
	j.cancel()
	close(j.done)
}
