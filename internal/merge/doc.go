package merge

// Package merge wraps ffmpeg: it compiles the stream-copy command that muxes a
// container's video and audio with a second audio file, runs one process per
// pair, and probes that the binary is installed before a batch starts.
