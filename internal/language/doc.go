package language

// Package language normalizes the language tags found in container stream
// metadata so that selections like "jpn", "ja" and "Japanese" all identify
// the same track language across differently-tagged files.
