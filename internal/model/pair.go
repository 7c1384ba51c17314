package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FilePair is one container file and one audio file sharing a stem
type FilePair struct {
	ContainerPath string // video container, e.g. clip1.mp4
	AudioPath     string // audio-only file, e.g. clip1.m4a
}

// Stem returns the shared filename without extension
func (p FilePair) Stem() string {
	name := filepath.Base(p.ContainerPath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// ContainerName returns the container filename without its directory
func (p FilePair) ContainerName() string {
	return filepath.Base(p.ContainerPath)
}

// AudioName returns the audio filename without its directory
func (p FilePair) AudioName() string {
	return filepath.Base(p.AudioPath)
}

// OutputPath returns <destDir>/<stem><container extension>
func (p FilePair) OutputPath(destDir string) string {
	return filepath.Join(destDir, p.ContainerName())
}

// MergeResult is the outcome of merging one FilePair
type MergeResult struct {
	Pair        FilePair
	OutputPath  string
	Succeeded   bool
	Error       string        // diagnostic from ffmpeg when Succeeded is false
	Deleted     bool          // originals removed after success
	DeleteError string        // set when removing originals failed
	Duration    time.Duration // wall time of the ffmpeg run
}

// Status maps the result to a task status
func (r MergeResult) Status() TaskStatus {
	if r.Succeeded {
		return TaskStatusCompleted
	}
	return TaskStatusError
}

// GetDurationString returns duration formatted as mm:ss or hh:mm:ss, or "—" if unknown
func (r MergeResult) GetDurationString() string {
	total := int(r.Duration.Round(time.Second).Seconds())
	if total <= 0 {
		return "—"
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
