package model

// Package model defines domain data structures used across the app: media
// files with their audio and subtitle streams, removal jobs, and status
// enums. Structures are designed for direct binding in the UI and explicit
// state transitions.
