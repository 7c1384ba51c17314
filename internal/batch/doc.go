package batch

// Package batch drives a merge run: it validates the folders and ffmpeg,
// discovers pairs once, merges them one at a time on a background goroutine,
// optionally deletes originals, and reports progress and a final summary
// through callbacks. Only one batch runs per Runner at a time.
