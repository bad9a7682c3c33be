package ui

// Package ui contains the Fyne-based desktop user interface. It wires user
// interactions to the library scanner, selection model, and batch runner,
// and renders file rows with thumbnails, stream summaries, and job status.
