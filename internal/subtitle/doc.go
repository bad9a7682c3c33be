package subtitle

// Package subtitle parses SRT files and offers two cleanups: merging
// duplicated adjacent cues into one, and flattening a subtitle file into a
// single plain-text transcript.
