package batch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/ytget/merge-replays/internal/merge"
	"github.com/ytget/merge-replays/internal/model"
	"github.com/ytget/merge-replays/internal/platform"
)

// Sentinel errors returned by the runner.
var (
	ErrAlreadyRunning = errors.New("a batch is already running")
	ErrSameDirectory  = errors.New("source and destination are the same folder")
	ErrDeleteFailed   = errors.New("could not delete originals")

	// Marks telling which folder failed validation. Both also match
	// platform.ErrDirectoryNotFound.
	ErrInvalidSource = errors.New("invalid source folder")
	ErrInvalidDest   = errors.New("invalid destination folder")
)

// JobIDPrefix prefixes generated job IDs
const JobIDPrefix = "batch-"

// Runner drives one batch at a time over a folder of replay pairs
type Runner struct {
	fs      afero.Fs
	merger  merge.Merger
	running atomic.Bool

	callbackMutex sync.RWMutex
	onStart       func(model.ProgressEvent) // before each merge
	onUpdate      func(model.ProgressEvent) // one call per pair
	onSummary     func(model.BatchSummary)  // one call per job
}

// NewRunner creates a runner that reads and deletes files through fs
func NewRunner(fs afero.Fs, merger merge.Merger) *Runner {
	return &Runner{fs: fs, merger: merger}
}

// SetStartCallback sets the callback fired before each pair is merged.
// Its events carry TaskStatusMerging and an empty Result.
func (r *Runner) SetStartCallback(callback func(model.ProgressEvent)) {
	r.callbackMutex.Lock()
	defer r.callbackMutex.Unlock()
	r.onStart = callback
}

// SetUpdateCallback sets the callback function for per-pair progress
func (r *Runner) SetUpdateCallback(callback func(model.ProgressEvent)) {
	r.callbackMutex.Lock()
	defer r.callbackMutex.Unlock()
	r.onUpdate = callback
}

// SetSummaryCallback sets the callback function for the final summary
func (r *Runner) SetSummaryCallback(callback func(model.BatchSummary)) {
	r.callbackMutex.Lock()
	defer r.callbackMutex.Unlock()
	r.onSummary = callback
}

// IsRunning reports whether a batch is active
func (r *Runner) IsRunning() bool {
	return r.running.Load()
}

// Start validates cfg and launches the batch on a background goroutine.
// Validation errors are returned before any work starts and no events are
// emitted for them. Cancelling ctx stops the batch between pairs.
func (r *Runner) Start(ctx context.Context, cfg model.Configuration) (*Job, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}

	if err := r.validate(ctx, cfg); err != nil {
		r.running.Store(false)
		return nil, err
	}

	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{
		id:     generateJobID(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go r.run(jobCtx, job, cfg)

	return job, nil
}

// Run starts a batch and waits for it to finish
func (r *Runner) Run(ctx context.Context, cfg model.Configuration) (model.BatchSummary, error) {
	job, err := r.Start(ctx, cfg)
	if err != nil {
		return model.BatchSummary{}, err
	}
	return job.Wait()
}

// validate checks both folders and the external tool
func (r *Runner) validate(ctx context.Context, cfg model.Configuration) error {
	if err := platform.RequireDirectory(r.fs, cfg.SourceFolder); err != nil {
		return errors.Mark(errors.Wrap(err, "source folder"), ErrInvalidSource)
	}
	if err := platform.RequireDirectory(r.fs, cfg.DestFolder); err != nil {
		return errors.Mark(errors.Wrap(err, "destination folder"), ErrInvalidDest)
	}
	if platform.SameDirectory(cfg.SourceFolder, cfg.DestFolder) {
		return errors.Wrapf(ErrSameDirectory, "%s", cfg.SourceFolder)
	}

	version, err := r.merger.CheckAvailable(ctx)
	if err != nil {
		return err
	}
	log.Printf("Using %s", version)
	return nil
}

// run is the worker goroutine for one job
func (r *Runner) run(ctx context.Context, job *Job, cfg model.Configuration) {
	summary := model.BatchSummary{
		JobID:     job.id,
		Outcome:   model.OutcomeCompleted,
		StartedAt: time.Now(),
	}

	var runErr error
	defer func() {
		summary.FinishedAt = time.Now()
		// Release the flag first so a summary handler may start the next batch
		r.running.Store(false)
		r.notifySummary(summary)
		job.finish(summary, runErr)
	}()

	containerExt, audioExt := cfg.Extensions()
	log.Printf("Scanning %s for %s/%s pairs", cfg.SourceFolder, containerExt, audioExt)

	pairs, err := platform.DiscoverPairs(r.fs, cfg.SourceFolder, containerExt, audioExt)
	if err != nil {
		// The folder vanished between validation and discovery
		log.Printf("Pair discovery failed: %v", err)
		runErr = err
		summary.Outcome = model.OutcomeNothingToDo
		return
	}

	summary.Total = len(pairs)
	if len(pairs) == 0 {
		log.Printf("No matching file pairs found in %s", cfg.SourceFolder)
		summary.Outcome = model.OutcomeNothingToDo
		return
	}

	log.Printf("Found %d file pair(s) to merge", len(pairs))

	for i, pair := range pairs {
		if ctx.Err() != nil {
			log.Printf("Batch %s cancelled after %d/%d pairs", job.id, i, len(pairs))
			summary.Outcome = model.OutcomeCancelled
			r.skipRemaining(job.id, cfg, pairs, i)
			return
		}

		r.notifyStart(model.ProgressEvent{
			JobID:    job.id,
			Index:    i + 1,
			Total:    len(pairs),
			Filename: pair.ContainerName(),
			Status:   model.TaskStatusMerging,
			Message:  fmt.Sprintf("Processing %d/%d: %s", i+1, len(pairs), pair.ContainerName()),
		})

		result := r.processPair(ctx, cfg, pair)

		summary.Processed++
		if result.Succeeded {
			summary.Succeeded++
		} else {
			summary.Failed = append(summary.Failed, pair.ContainerName())
		}

		r.notifyUpdate(model.ProgressEvent{
			JobID:    job.id,
			Index:    i + 1,
			Total:    len(pairs),
			Filename: pair.ContainerName(),
			Status:   result.Status(),
			Message:  eventMessage(result),
			Result:   result,
		})
	}

	log.Printf("Batch %s complete: %d/%d files merged successfully", job.id, summary.Succeeded, summary.Total)
}

// processPair merges one pair and deletes its originals when requested.
// A panic while handling the pair is recorded as that pair's failure.
func (r *Runner) processPair(ctx context.Context, cfg model.Configuration, pair model.FilePair) (result model.MergeResult) {
	outputPath := pair.OutputPath(cfg.DestFolder)
	result = model.MergeResult{Pair: pair, OutputPath: outputPath}

	defer func() {
		if p := recover(); p != nil {
			log.Printf("Recovered while merging %s: %v", pair.ContainerName(), p)
			result.Succeeded = false
			result.Error = fmt.Sprintf("unexpected failure: %v", p)
		}
	}()

	log.Printf("Merging: %s", pair.ContainerName())

	// The current merge finishes even if the batch is cancelled meanwhile
	result = r.merger.Merge(context.WithoutCancel(ctx), pair, outputPath)
	if !result.Succeeded {
		log.Printf("Failed to merge %s: %v", pair.ContainerName(), merge.MergeError(result))
		return result
	}

	log.Printf("Successfully merged: %s", outputPath)

	if cfg.DeleteOriginals {
		if err := r.deleteOriginals(pair); err != nil {
			log.Printf("Warning: could not delete originals for %s: %v", pair.ContainerName(), err)
			result.DeleteError = err.Error()
		} else {
			result.Deleted = true
		}
	}

	return result
}

// deleteOriginals removes both input files of a merged pair
func (r *Runner) deleteOriginals(pair model.FilePair) error {
	var combined error
	for _, path := range []string{pair.ContainerPath, pair.AudioPath} {
		if err := r.fs.Remove(path); err != nil {
			combined = errors.CombineErrors(combined, errors.Wrapf(err, "remove %s", path))
		}
	}
	if combined == nil {
		return nil
	}
	return errors.Mark(combined, ErrDeleteFailed)
}

// notifyStart calls the start callback if set
func (r *Runner) notifyStart(event model.ProgressEvent) {
	r.callbackMutex.RLock()
	callback := r.onStart
	r.callbackMutex.RUnlock()

	if callback != nil {
		callback(event)
	}
}

// notifyUpdate calls the update callback if set
func (r *Runner) notifyUpdate(event model.ProgressEvent) {
	r.callbackMutex.RLock()
	callback := r.onUpdate
	r.callbackMutex.RUnlock()

	if callback != nil {
		callback(event)
	}
}

// notifySummary calls the summary callback if set
func (r *Runner) notifySummary(summary model.BatchSummary) {
	r.callbackMutex.RLock()
	callback := r.onSummary
	r.callbackMutex.RUnlock()

	if callback != nil {
		callback(summary)
	}
}

// skipRemaining reports every pair from index start on as cancelled, so a
// cancelled batch still emits one update per discovered pair.
func (r *Runner) skipRemaining(jobID string, cfg model.Configuration, pairs []model.FilePair, start int) {
	for i := start; i < len(pairs); i++ {
		pair := pairs[i]
		r.notifyUpdate(model.ProgressEvent{
			JobID:    jobID,
			Index:    i + 1,
			Total:    len(pairs),
			Filename: pair.ContainerName(),
			Status:   model.TaskStatusCancelled,
			Message:  fmt.Sprintf("Skipped %s: batch cancelled", pair.ContainerName()),
			Result:   model.MergeResult{Pair: pair, OutputPath: pair.OutputPath(cfg.DestFolder)},
		})
	}
}

// eventMessage renders the log line for a finished pair
func eventMessage(result model.MergeResult) string {
	name := result.Pair.ContainerName()
	switch {
	case !result.Succeeded:
		return fmt.Sprintf("Failed to merge %s: %s", name, result.Error)
	case result.DeleteError != "":
		return fmt.Sprintf("Merged %s, but could not delete originals: %s", name, result.DeleteError)
	case result.Deleted:
		return fmt.Sprintf("Merged %s and deleted original files", name)
	default:
		return fmt.Sprintf("Merged %s", name)
	}
}

// generateJobID generates a unique job ID using UUID v7 so IDs sort by start time
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
