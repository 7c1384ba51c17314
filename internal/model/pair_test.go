package model

import (
	"path/filepath"
	"testing"
	"time"
)

func TestFilePair_Names(t *testing.T) {
	pair := FilePair{
		ContainerPath: filepath.Join("replays", "clip1.mp4"),
		AudioPath:     filepath.Join("replays", "clip1.m4a"),
	}

	if pair.Stem() != "clip1" {
		t.Errorf("Expected stem 'clip1', got '%s'", pair.Stem())
	}
	if pair.ContainerName() != "clip1.mp4" {
		t.Errorf("Expected container name 'clip1.mp4', got '%s'", pair.ContainerName())
	}
	if pair.AudioName() != "clip1.m4a" {
		t.Errorf("Expected audio name 'clip1.m4a', got '%s'", pair.AudioName())
	}

	expected := filepath.Join("out", "clip1.mp4")
	if pair.OutputPath("out") != expected {
		t.Errorf("Expected output path '%s', got '%s'", expected, pair.OutputPath("out"))
	}
}

func TestFilePair_StemWithDots(t *testing.T) {
	pair := FilePair{ContainerPath: "/r/match 2024.01.02.mp4", AudioPath: "/r/match 2024.01.02.m4a"}
	if pair.Stem() != "match 2024.01.02" {
		t.Errorf("Expected stem 'match 2024.01.02', got '%s'", pair.Stem())
	}
}

func TestMergeResult_Status(t *testing.T) {
	if (MergeResult{Succeeded: true}).Status() != TaskStatusCompleted {
		t.Error("Expected succeeded result to map to Completed")
	}
	if (MergeResult{}).Status() != TaskStatusError {
		t.Error("Expected failed result to map to Error")
	}
}

func TestMergeResult_GetDurationString(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "—"},
		{-time.Second, "—"},
		{30 * time.Second, "00:30"},
		{90 * time.Second, "01:30"},
		{time.Hour, "01:00:00"},
		{3661 * time.Second, "01:01:01"},
	}

	for _, test := range tests {
		result := MergeResult{Duration: test.duration}.GetDurationString()
		if result != test.expected {
			t.Errorf("GetDurationString() with Duration=%v = %s, expected %s", test.duration, result, test.expected)
		}
	}
}
