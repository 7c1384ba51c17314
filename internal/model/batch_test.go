package model

import "testing"

func TestConfiguration_Extensions(t *testing.T) {
	containerExt, audioExt := Configuration{}.Extensions()
	if containerExt != ".mp4" || audioExt != ".m4a" {
		t.Errorf("Expected default extensions .mp4/.m4a, got %s/%s", containerExt, audioExt)
	}

	containerExt, audioExt = Configuration{ContainerExt: ".mkv", AudioExt: ".aac"}.Extensions()
	if containerExt != ".mkv" || audioExt != ".aac" {
		t.Errorf("Expected configured extensions .mkv/.aac, got %s/%s", containerExt, audioExt)
	}
}

func TestProgressEvent_Percent(t *testing.T) {
	tests := []struct {
		index, total int
		status       TaskStatus
		expected     int
	}{
		{1, 4, TaskStatusCompleted, 25},
		{4, 4, TaskStatusError, 100},
		{1, 3, TaskStatusCompleted, 33},
		{0, 0, TaskStatusCompleted, 0},
		{1, 4, TaskStatusMerging, 0},
		{3, 4, TaskStatusMerging, 50},
	}

	for _, test := range tests {
		result := ProgressEvent{Index: test.index, Total: test.total, Status: test.status}.Percent()
		if result != test.expected {
			t.Errorf("Percent() for %d/%d = %d, expected %d", test.index, test.total, result, test.expected)
		}
	}
}

func TestProgressEvent_Skipped(t *testing.T) {
	for _, status := range []TaskStatus{TaskStatusMerging, TaskStatusCompleted, TaskStatusError} {
		if (ProgressEvent{Status: status}).Skipped() {
			t.Errorf("Expected %s not to be skipped", status)
		}
	}
	if !(ProgressEvent{Status: TaskStatusCancelled}).Skipped() {
		t.Error("Expected cancelled event to be skipped")
	}
}

func TestBatchSummary(t *testing.T) {
	summary := BatchSummary{Outcome: OutcomeCompleted, Total: 2, Processed: 2, Succeeded: 1, Failed: []string{"clip2.mp4"}}
	if summary.FailedCount() != 1 {
		t.Errorf("Expected 1 failure, got %d", summary.FailedCount())
	}
	if summary.AllSucceeded() {
		t.Error("Expected AllSucceeded to be false with a failure")
	}

	empty := BatchSummary{Outcome: OutcomeNothingToDo}
	if !empty.NothingToDo() {
		t.Error("Expected NothingToDo to be true")
	}
	if empty.AllSucceeded() {
		t.Error("Expected AllSucceeded to be false when nothing ran")
	}

	full := BatchSummary{Outcome: OutcomeCompleted, Total: 3, Processed: 3, Succeeded: 3}
	if !full.AllSucceeded() {
		t.Error("Expected AllSucceeded to be true")
	}
}
