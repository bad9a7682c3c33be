package model

import (
	"sort"
	"time"
)

// IndexSet is a set of container stream indices marked for removal.
type IndexSet map[int]struct{}

// NewIndexSet builds a set from a list of indices.
func NewIndexSet(indices ...int) IndexSet {
	set := make(IndexSet, len(indices))
	for _, idx := range indices {
		set[idx] = struct{}{}
	}
	return set
}

// Contains reports whether idx is in the set.
func (s IndexSet) Contains(idx int) bool {
	_, ok := s[idx]
	return ok
}

// Sorted returns the indices in ascending order.
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for idx := range s {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy of the set.
func (s IndexSet) Clone() IndexSet {
	out := make(IndexSet, len(s))
	for idx := range s {
		out[idx] = struct{}{}
	}
	return out
}

// JobResult tracks one file through a batch run. One JobResult exists per
// submitted file; Status moves Pending -> Running -> {Succeeded, Failed}
// and never leaves a terminal state.
type JobResult struct {
	ID         string
	File       *MediaFile
	Removed    IndexSet
	Status     JobStatus
	Detail     string // captured diagnostic text when failed
	StartedAt  time.Time
	FinishedAt time.Time
}

// BatchSummary aggregates the terminal results of one batch run.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int // files left pending after cancellation
	Results   []*JobResult
}
