package thumbs

// Package thumbs extracts one preview frame per video through ffmpeg and
// caches the encoded JPEG bytes keyed by (path, modification time), so a
// rewritten file invalidates its own entry. Extraction failures degrade to
// a placeholder at the call site and never block file listing.
