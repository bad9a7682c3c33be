package platform

// Package platform contains OS integration glue: filesystem helpers and
// open/reveal actions delegated to the desktop environment.
