package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/remux"
	"github.com/trackcut/trackcut/internal/selection"
	"github.com/trackcut/trackcut/internal/tools"
)

// Job ID prefix for history records
const jobIDPrefix = "job-"

// Detail texts for jobs that terminate without an invocation
const (
	DetailNothingSelected = "no matching tracks; file unchanged"
	DetailNotInspected    = "file could not be inspected"
	DetailCanceled        = "canceled before completion"
)

// HistoryAppender receives terminal job results for persistence. Appending
// is best-effort: a storage error is logged, never propagated into the run.
type HistoryAppender interface {
	Append(ctx context.Context, job *model.JobResult) error
}

// Runner creates batch runs. A Runner is reusable; each Start call returns
// a fresh, single-use Run.
type Runner struct {
	ts       tools.Toolset
	history  HistoryAppender
	onUpdate func(*model.JobResult) // callback for UI updates
}

// NewRunner creates a batch runner.
func NewRunner(ts tools.Toolset, history HistoryAppender) *Runner {
	return &Runner{
		ts:      ts,
		history: history,
	}
}

// SetUpdateCallback sets the callback invoked on every job transition. The
// callback may fire from worker goroutines; for a given job its calls are
// strictly ordered pending -> running -> terminal.
func (r *Runner) SetUpdateCallback(callback func(*model.JobResult)) {
	r.onUpdate = callback
}

// Run is one batch execution: one JobResult per submitted file, processed
// in submission order. A Run is not restartable; retrying requires a new
// Start call.
type Run struct {
	jobs    []*model.JobResult
	results chan *model.JobResult
	done    []chan struct{}
	cancel  context.CancelFunc

	mu       sync.Mutex
	summary  model.BatchSummary
	finished chan struct{}
}

// Start submits files for processing against the current selections and
// returns immediately, handling workers files at a time; counts below one
// fall back to sequential processing. Selections are snapshotted per file
// as the worker reaches it; the UI should not mutate them while a run is
// active.
func (r *Runner) Start(ctx context.Context, files []*model.MediaFile, sel *selection.Model, workers int) *Run {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)

	run := &Run{
		jobs:     make([]*model.JobResult, len(files)),
		results:  make(chan *model.JobResult, len(files)),
		done:     make([]chan struct{}, len(files)),
		cancel:   cancel,
		finished: make(chan struct{}),
	}

	for i, file := range files {
		run.jobs[i] = &model.JobResult{
			ID:     generateJobID(),
			File:   file,
			Status: model.JobStatusPending,
		}
		run.done[i] = make(chan struct{})
		r.notifyUpdate(run.jobs[i])
	}

	indices := make(chan int)
	var pool sync.WaitGroup
	for w := 0; w < workers; w++ {
		pool.Add(1)
		go func() {
			defer pool.Done()
			for i := range indices {
				r.processJob(ctx, run, run.jobs[i], sel)
				close(run.done[i])
			}
		}()
	}

	// Feed jobs in submission order; stop claiming new files once the run
	// is canceled. Unclaimed jobs stay pending.
	go func() {
		defer close(indices)
		for i := range run.jobs {
			select {
			case indices <- i:
			case <-ctx.Done():
				for k := i; k < len(run.jobs); k++ {
					close(run.done[k])
				}
				return
			}
		}
	}()

	// Emit terminal results in submission order and build the summary.
	go func() {
		defer cancel()
		summary := model.BatchSummary{Total: len(run.jobs)}
		for i, job := range run.jobs {
			<-run.done[i]
			switch job.Status {
			case model.JobStatusSucceeded:
				summary.Succeeded++
			case model.JobStatusFailed:
				summary.Failed++
			default:
				summary.Skipped++
			}
			summary.Results = append(summary.Results, job)
			if job.Status.IsTerminal() {
				run.results <- job
			}
		}
		pool.Wait()
		close(run.results)

		run.mu.Lock()
		run.summary = summary
		run.mu.Unlock()
		close(run.finished)
	}()

	return run
}

// processJob drives one file through its state machine.
func (r *Runner) processJob(ctx context.Context, run *Run, job *model.JobResult, sel *selection.Model) {
	if ctx.Err() != nil {
		return // stays pending; counted as skipped
	}

	job.Status = model.JobStatusRunning
	job.StartedAt = time.Now()
	r.notifyUpdate(job)

	job.Removed = sel.SelectionFor(job.File.Path)

	switch {
	case job.File.ProbeError != "":
		r.finishJob(job, model.JobStatusFailed, DetailNotInspected+": "+job.File.ProbeError)
	case len(job.Removed) == 0:
		r.finishJob(job, model.JobStatusSucceeded, DetailNothingSelected)
	default:
		err := remux.RemoveStreams(ctx, r.ts, job.File, job.Removed)
		switch {
		case err == nil:
			r.finishJob(job, model.JobStatusSucceeded, "")
		case ctx.Err() != nil:
			r.finishJob(job, model.JobStatusFailed, DetailCanceled)
		default:
			r.finishJob(job, model.JobStatusFailed, diagnostic(err))
		}
	}
}

// finishJob applies the terminal transition and records the result. A job
// already terminal is left untouched.
func (r *Runner) finishJob(job *model.JobResult, status model.JobStatus, detail string) {
	if job.Status.IsTerminal() {
		return
	}
	job.Status = status
	job.Detail = detail
	job.FinishedAt = time.Now()
	r.notifyUpdate(job)

	if r.history != nil {
		// Use a fresh context so a canceled run still records its results.
		appendCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.history.Append(appendCtx, job); err != nil {
			log.Printf("Failed to record job %s in history: %v", job.ID, err)
		}
	}
}

// notifyUpdate calls the update callback if set.
func (r *Runner) notifyUpdate(job *model.JobResult) {
	if r.onUpdate != nil {
		r.onUpdate(job)
	}
}

func diagnostic(err error) string {
	var ie *remux.InvocationError
	if errors.As(err, &ie) {
		return ie.Diagnostic()
	}
	return err.Error()
}

// Results returns the stream of terminal JobResults in submission order.
// The channel closes when every submitted file has been accounted for.
func (run *Run) Results() <-chan *model.JobResult {
	return run.results
}

// Jobs returns all JobResults of this run in submission order, including
// pending ones.
func (run *Run) Jobs() []*model.JobResult {
	return run.jobs
}

// Cancel stops the run: no new file is started and the in-flight external
// process is killed. Already-succeeded files are not rolled back.
func (run *Run) Cancel() {
	run.cancel()
}

// Wait blocks until the run has fully settled and returns its summary.
func (run *Run) Wait() model.BatchSummary {
	<-run.finished
	run.mu.Lock()
	defer run.mu.Unlock()
	return run.summary
}

// generateJobID generates a unique job ID using UUID v7 so IDs sort
// chronologically in the history store.
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(jobIDPrefix+"%d", time.Now().UnixNano())
	}
	return jobIDPrefix + id.String()
}
