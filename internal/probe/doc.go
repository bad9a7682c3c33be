package probe

// Package probe inspects video containers with a single ffprobe JSON call
// and converts the output into domain stream listings. Container order is
// preserved: the stream indices reported here are the ones a removal
// invocation must reference.
