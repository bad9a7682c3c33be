package batch

// Package batch sequences track-removal invocations across a file list.
// Each file moves pending -> running -> succeeded/failed exactly once; a
// failure marks that file and the run continues. Results are published in
// submission order regardless of the worker count.
