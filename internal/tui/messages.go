package tui

import (
	"github.com/ytget/merge-replays/internal/batch"
	"github.com/ytget/merge-replays/internal/model"
)

type jobStartedMsg struct {
	job *batch.Job
}

type startErrMsg struct {
	err error
}

type pairStartedMsg struct {
	event model.ProgressEvent
}

type pairDoneMsg struct {
	event model.ProgressEvent
}

type batchDoneMsg struct {
	summary model.BatchSummary
	err     error
}
