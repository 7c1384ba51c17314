package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"github.com/ytget/merge-replays/internal/batch"
	"github.com/ytget/merge-replays/internal/model"
)

// Run shows the batch in the terminal and returns its outcome
func Run(runner *batch.Runner, cfg model.Configuration) (model.BatchSummary, error) {
	program := tea.NewProgram(NewModel(runner, cfg))
	finalModel, runErr := program.Run()

	m, ok := finalModel.(Model)
	if ok && m.job != nil && !m.done {
		// The program was stopped from outside; let the current merge finish
		m.job.Cancel()
		go drain(m.events, m.job.Done())
		summary, err := m.job.Wait()
		if runErr != nil {
			return summary, errors.Wrap(runErr, "terminal ui")
		}
		return summary, err
	}
	if runErr != nil {
		return model.BatchSummary{}, errors.Wrap(runErr, "terminal ui")
	}
	if !ok {
		return model.BatchSummary{}, nil
	}
	return m.Summary()
}

// drain keeps the runner callbacks from blocking once nothing renders them
func drain(events <-chan tea.Msg, done <-chan struct{}) {
	for {
		select {
		case <-events:
		case <-done:
			return
		}
	}
}
