package remux

// Package remux builds and executes ffmpeg invocations that repackage
// streams without re-encoding: track removal, trimming, audio extraction
// and replacement, and muxing external subtitles. Track removal writes to
// a temporary path and atomically replaces the source only after the tool
// reports success and the output validates.
