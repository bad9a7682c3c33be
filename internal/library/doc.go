package library

// Package library enumerates the video files of a folder and builds their
// stream listings by probing concurrently. Files that fail inspection are
// still listed, flagged as unreadable, so one bad file never hides the
// rest of the folder.
