package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trackcut/trackcut/internal/model"
	"github.com/trackcut/trackcut/internal/selection"
	"github.com/trackcut/trackcut/internal/tools"
)

// fakeFFmpeg installs a shell script standing in for ffmpeg. The script
// fails for any invocation whose arguments mention "bad", and otherwise
// writes a small output file to its last argument.
func fakeFFmpeg(t *testing.T, body string) tools.Toolset {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures are not executable on windows")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\nfor last; do :; done\n" + body + "\n"
	path := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write fake ffmpeg: %v", err)
	}
	return tools.Toolset{FFmpeg: path, FFprobe: path}
}

const standardScript = `case "$*" in *bad*) echo "demux error" >&2; exit 1;; esac
echo remuxed > "$last"`

func mediaFile(t *testing.T, dir, name string) *model.MediaFile {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("video bytes"), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return &model.MediaFile{
		Path:         path,
		AllIndices:   []int{0, 1, 2},
		AudioStreams: []model.AudioStream{{Index: 1, Language: "eng"}, {Index: 2, Language: "jpn"}},
	}
}

func selectAll(t *testing.T, sel *selection.Model, files ...*model.MediaFile) {
	t.Helper()
	for _, f := range files {
		if err := sel.Select(f, []int{2}); err != nil {
			t.Fatalf("Select() error: %v", err)
		}
	}
}

func TestRunAllSucceed(t *testing.T) {
	ts := fakeFFmpeg(t, standardScript)
	dir := t.TempDir()
	files := []*model.MediaFile{
		mediaFile(t, dir, "a.mkv"),
		mediaFile(t, dir, "b.mkv"),
		mediaFile(t, dir, "c.mkv"),
	}
	sel := selection.NewModel()
	selectAll(t, sel, files...)

	runner := NewRunner(ts, nil)
	run := runner.Start(context.Background(), files, sel, 1)

	var got []*model.JobResult
	for job := range run.Results() {
		got = append(got, job)
	}

	if len(got) != 3 {
		t.Fatalf("Expected 3 terminal results, got %d", len(got))
	}
	for i, job := range got {
		if job.Status != model.JobStatusSucceeded {
			t.Errorf("Job %d status = %s, expected Succeeded", i, job.Status)
		}
		if job.File != files[i] {
			t.Errorf("Result %d out of submission order", i)
		}
	}

	summary := run.Wait()
	if summary.Succeeded != 3 || summary.Failed != 0 || summary.Skipped != 0 {
		t.Errorf("Summary = %+v, expected 3 succeeded", summary)
	}
}

func TestRunOneFailureDoesNotAbortBatch(t *testing.T) {
	ts := fakeFFmpeg(t, standardScript)
	dir := t.TempDir()
	files := []*model.MediaFile{
		mediaFile(t, dir, "a.mkv"),
		mediaFile(t, dir, "bad.mkv"),
		mediaFile(t, dir, "c.mkv"),
	}
	sel := selection.NewModel()
	selectAll(t, sel, files...)

	runner := NewRunner(ts, nil)
	run := runner.Start(context.Background(), files, sel, 1)
	summary := run.Wait()

	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("Summary = %+v, expected 2 succeeded / 1 failed", summary)
	}

	failed := summary.Results[1]
	if failed.Status != model.JobStatusFailed {
		t.Errorf("bad.mkv status = %s, expected Failed", failed.Status)
	}
	if !strings.Contains(failed.Detail, "demux error") {
		t.Errorf("Detail = %q, expected captured diagnostic", failed.Detail)
	}

	// The failed file must be untouched.
	data, _ := os.ReadFile(files[1].Path)
	if string(data) != "video bytes" {
		t.Error("Failed file should keep its original content")
	}
}

func TestRunEmptySelectionSucceedsWithoutInvocation(t *testing.T) {
	// The fake fails every invocation; success proves ffmpeg never ran.
	ts := fakeFFmpeg(t, "exit 97")
	dir := t.TempDir()
	file := mediaFile(t, dir, "a.mkv")
	sel := selection.NewModel()

	runner := NewRunner(ts, nil)
	run := runner.Start(context.Background(), []*model.MediaFile{file}, sel, 1)
	summary := run.Wait()

	if summary.Succeeded != 1 {
		t.Fatalf("Summary = %+v, expected 1 succeeded", summary)
	}
	if summary.Results[0].Detail != DetailNothingSelected {
		t.Errorf("Detail = %q, expected %q", summary.Results[0].Detail, DetailNothingSelected)
	}
}

func TestRunUninspectedFileFails(t *testing.T) {
	ts := fakeFFmpeg(t, standardScript)
	file := &model.MediaFile{Path: "/videos/broken.mkv", ProbeError: "not a container"}
	sel := selection.NewModel()

	runner := NewRunner(ts, nil)
	run := runner.Start(context.Background(), []*model.MediaFile{file}, sel, 1)
	summary := run.Wait()

	if summary.Failed != 1 {
		t.Fatalf("Summary = %+v, expected 1 failed", summary)
	}
	if !strings.Contains(summary.Results[0].Detail, "not a container") {
		t.Errorf("Detail = %q, expected the probe error", summary.Results[0].Detail)
	}
}

func TestRunTransitionsReportedExactlyOnceInOrder(t *testing.T) {
	ts := fakeFFmpeg(t, standardScript)
	dir := t.TempDir()
	files := []*model.MediaFile{
		mediaFile(t, dir, "a.mkv"),
		mediaFile(t, dir, "b.mkv"),
	}
	sel := selection.NewModel()
	selectAll(t, sel, files...)

	var mu sync.Mutex
	transitions := make(map[string][]model.JobStatus)

	runner := NewRunner(ts, nil)
	runner.SetUpdateCallback(func(job *model.JobResult) {
		mu.Lock()
		transitions[job.File.Path] = append(transitions[job.File.Path], job.Status)
		mu.Unlock()
	})

	run := runner.Start(context.Background(), files, sel, 1)
	run.Wait()

	mu.Lock()
	defer mu.Unlock()
	for _, file := range files {
		got := transitions[file.Path]
		expected := []model.JobStatus{model.JobStatusPending, model.JobStatusRunning, model.JobStatusSucceeded}
		if len(got) != len(expected) {
			t.Fatalf("%s transitions = %v, expected %v", file.Name(), got, expected)
		}
		for i := range expected {
			if got[i] != expected[i] {
				t.Errorf("%s transition %d = %s, expected %s", file.Name(), i, got[i], expected[i])
			}
		}
	}
}

func TestRunCancelSkipsRemainingFiles(t *testing.T) {
	// First invocation blocks until killed; the rest would succeed.
	ts := fakeFFmpeg(t, `case "$*" in *slow*) sleep 30;; esac
echo remuxed > "$last"`)
	dir := t.TempDir()
	files := []*model.MediaFile{
		mediaFile(t, dir, "slow.mkv"),
		mediaFile(t, dir, "b.mkv"),
		mediaFile(t, dir, "c.mkv"),
	}
	sel := selection.NewModel()
	selectAll(t, sel, files...)

	started := make(chan struct{}, 8)
	runner := NewRunner(ts, nil)
	runner.SetUpdateCallback(func(job *model.JobResult) {
		if job.Status == model.JobStatusRunning {
			started <- struct{}{}
		}
	})

	run := runner.Start(context.Background(), files, sel, 1)

	<-started
	time.Sleep(100 * time.Millisecond) // let the invocation begin
	run.Cancel()

	summary := run.Wait()
	if summary.Failed != 1 {
		t.Errorf("Summary = %+v, expected the in-flight job to fail", summary)
	}
	if summary.Skipped != 2 {
		t.Errorf("Summary = %+v, expected 2 skipped", summary)
	}
	for _, job := range summary.Results[1:] {
		if job.Status != model.JobStatusPending {
			t.Errorf("Skipped job status = %s, expected Pending", job.Status)
		}
	}
}

func TestRunParallelKeepsSubmissionOrder(t *testing.T) {
	// The first file is the slowest; with two workers the second and third
	// finish first, but results must still arrive in submission order.
	ts := fakeFFmpeg(t, `case "$*" in *a.mkv*) sleep 1;; esac
echo remuxed > "$last"`)
	dir := t.TempDir()
	files := []*model.MediaFile{
		mediaFile(t, dir, "a.mkv"),
		mediaFile(t, dir, "b.mkv"),
		mediaFile(t, dir, "c.mkv"),
	}
	sel := selection.NewModel()
	selectAll(t, sel, files...)

	runner := NewRunner(ts, nil)
	run := runner.Start(context.Background(), files, sel, 2)

	var order []string
	for job := range run.Results() {
		order = append(order, job.File.Name())
	}

	expected := []string{"a.mkv", "b.mkv", "c.mkv"}
	for i := range expected {
		if order[i] != expected[i] {
			t.Fatalf("Results order = %v, expected %v", order, expected)
		}
	}
}

func TestRunWorkerCountPerStart(t *testing.T) {
	// Both invocations block until two run at once; a sequential run would
	// deadlock, so completion proves the per-Start worker count was used.
	dir := t.TempDir()
	gate := filepath.Join(dir, "gate")
	script := fmt.Sprintf(`touch %q.$$
while [ "$(ls %q.* 2>/dev/null | wc -l)" -lt 2 ]; do sleep 1; done
echo remuxed > "$last"`, gate, gate)
	ts := fakeFFmpeg(t, script)
	files := []*model.MediaFile{
		mediaFile(t, dir, "a.mkv"),
		mediaFile(t, dir, "b.mkv"),
	}
	sel := selection.NewModel()
	selectAll(t, sel, files...)

	runner := NewRunner(ts, nil)
	run := runner.Start(context.Background(), files, sel, 2)

	summary := run.Wait()
	if summary.Succeeded != 2 {
		t.Fatalf("Summary = %+v, expected both files to succeed in parallel", summary)
	}
}

func TestRunWorkerCountBelowOneIsSequential(t *testing.T) {
	ts := fakeFFmpeg(t, standardScript)
	dir := t.TempDir()
	files := []*model.MediaFile{
		mediaFile(t, dir, "a.mkv"),
		mediaFile(t, dir, "b.mkv"),
	}
	sel := selection.NewModel()
	selectAll(t, sel, files...)

	runner := NewRunner(ts, nil)
	run := runner.Start(context.Background(), files, sel, 0)

	summary := run.Wait()
	if summary.Succeeded != 2 {
		t.Fatalf("Summary = %+v, expected 2 succeeded with clamped worker count", summary)
	}
}

type recordingHistory struct {
	mu   sync.Mutex
	jobs []*model.JobResult
}

func (h *recordingHistory) Append(_ context.Context, job *model.JobResult) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.jobs = append(h.jobs, job)
	return nil
}

func TestRunRecordsHistory(t *testing.T) {
	ts := fakeFFmpeg(t, standardScript)
	dir := t.TempDir()
	files := []*model.MediaFile{
		mediaFile(t, dir, "a.mkv"),
		mediaFile(t, dir, "bad.mkv"),
	}
	sel := selection.NewModel()
	selectAll(t, sel, files...)

	history := &recordingHistory{}
	runner := NewRunner(ts, history)
	run := runner.Start(context.Background(), files, sel, 1)
	run.Wait()

	history.mu.Lock()
	defer history.mu.Unlock()
	if len(history.jobs) != 2 {
		t.Fatalf("Expected 2 history records, got %d", len(history.jobs))
	}
}
