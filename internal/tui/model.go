package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/merge-replays/internal/batch"
	"github.com/ytget/merge-replays/internal/model"
)

// Sizing
const (
	maxLogLines      = 12
	minProgressWidth = 20
	maxProgressWidth = 80
	eventBuffer      = 16
)

// Model renders one batch run in the terminal
type Model struct {
	runner   *batch.Runner
	cfg      model.Configuration
	job      *batch.Job
	events   chan tea.Msg
	keys     KeyMap
	spinner  spinner.Model
	progress progress.Model

	status     string
	percent    float64
	lines      []string
	running    bool
	cancelling bool
	done       bool
	summary    model.BatchSummary
	err        error
	width      int
}

// NewModel wires the runner callbacks into the model's event channel
func NewModel(runner *batch.Runner, cfg model.Configuration) Model {
	events := make(chan tea.Msg, eventBuffer)

	runner.SetStartCallback(func(event model.ProgressEvent) {
		events <- pairStartedMsg{event: event}
	})
	runner.SetUpdateCallback(func(event model.ProgressEvent) {
		events <- pairDoneMsg{event: event}
	})

	return Model{
		runner:   runner,
		cfg:      cfg,
		events:   events,
		keys:     DefaultKeyMap(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		status:   "Scanning for file pairs...",
		width:    80,
	}
}

// Summary returns the final batch summary and error once the run is over
func (m Model) Summary() (model.BatchSummary, error) {
	return m.summary, m.err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

// start launches the batch; its errors are validation errors
func (m Model) start() tea.Msg {
	job, err := m.runner.Start(context.Background(), m.cfg)
	if err != nil {
		return startErrMsg{err: err}
	}
	return jobStartedMsg{job: job}
}

// waitForEvent delivers the next runner callback
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// waitForJob forwards the result once every callback has been queued
func waitForJob(job *batch.Job, events chan<- tea.Msg) {
	summary, err := job.Wait()
	events <- batchDoneMsg{summary: summary, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.progress.Width = clamp(typed.Width-4, minProgressWidth, maxProgressWidth)
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case startErrMsg:
		m.done = true
		m.err = typed.err
		m.status = fmt.Sprintf("Error: %v", typed.err)
		return m, tea.Quit
	case jobStartedMsg:
		m.job = typed.job
		m.running = true
		go waitForJob(typed.job, m.events)
		return m, waitForEvent(m.events)
	case pairStartedMsg:
		event := typed.event
		if event.Index == 1 {
			m.appendLine(fmt.Sprintf("Found %d file pair(s) to merge", event.Total))
		}
		m.percent = float64(event.Percent()) / 100
		if !m.cancelling {
			m.status = fmt.Sprintf("Processing %d/%d: %s", event.Index, event.Total, event.Filename)
		}
		return m, waitForEvent(m.events)
	case pairDoneMsg:
		if !typed.event.Skipped() {
			m.percent = float64(typed.event.Percent()) / 100
		}
		if typed.event.Status.IsFinished() {
			m.appendLine(eventLine(typed.event))
		}
		return m, waitForEvent(m.events)
	case batchDoneMsg:
		m.running = false
		m.done = true
		m.summary = typed.summary
		m.err = typed.err
		if typed.summary.Outcome == model.OutcomeCompleted && typed.summary.Total > 0 {
			m.percent = 1
		}
		m.status = summaryLine(typed.summary, typed.err)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		// Quit waits for batchDoneMsg while a merge is in flight
		if m.job != nil && m.running {
			m.cancel()
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if m.job != nil && m.running {
			m.cancel()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) cancel() {
	if m.cancelling {
		return
	}
	m.job.Cancel()
	m.cancelling = true
	m.status = "Cancelling after the current file..."
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
}

func eventLine(event model.ProgressEvent) string {
	prefix := fmt.Sprintf("[%d/%d] ", event.Index, event.Total)
	result := event.Result
	switch {
	case event.Skipped():
		return prefix + fmt.Sprintf("- Skipped %s (cancelled)", event.Filename)
	case !result.Succeeded:
		return prefix + fmt.Sprintf("✗ Failed to merge %s: %s", event.Filename, result.Error)
	case result.DeleteError != "":
		return prefix + fmt.Sprintf("⚠ Merged %s, but could not delete originals: %s", event.Filename, result.DeleteError)
	case result.Deleted:
		return prefix + fmt.Sprintf("✓ Merged %s and deleted original files (%s)", event.Filename, result.GetDurationString())
	default:
		return prefix + fmt.Sprintf("✓ Merged %s (%s)", event.Filename, result.GetDurationString())
	}
}

func summaryLine(summary model.BatchSummary, err error) string {
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	switch summary.Outcome {
	case model.OutcomeNothingToDo:
		return "No matching file pairs found in source folder"
	case model.OutcomeCancelled:
		return fmt.Sprintf("Cancelled after %d/%d files.", summary.Processed, summary.Total)
	default:
		return fmt.Sprintf("Complete! %d/%d files merged successfully.", summary.Succeeded, summary.Total)
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
