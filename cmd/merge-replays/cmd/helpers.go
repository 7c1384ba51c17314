package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/ytget/merge-replays/internal/batch"
	"github.com/ytget/merge-replays/internal/config"
	"github.com/ytget/merge-replays/internal/merge"
)

// Output sinks; tests replace them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Line styles.
var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// newFs returns the filesystem batches run against; tests replace it.
var newFs = func() afero.Fs {
	return afero.NewOsFs()
}

// newMerger builds the ffmpeg service; tests replace it.
var newMerger = func(fs afero.Fs, cfg config.Config) merge.Merger {
	return merge.NewService(fs, cfg.MergeOptions())
}

// setupStyles drops colors when requested.
func setupStyles(disable bool) {
	if !disable {
		return
	}
	for _, style := range []*lipgloss.Style{&okStyle, &failStyle, &warnStyle, &dimStyle} {
		*style = lipgloss.NewStyle()
	}
}

// resolveConfigPath returns --config or the per-user default.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the config file. A missing file yields defaults; a corrupt
// one yields defaults with a warning.
func loadConfig() (config.Config, string, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return config.Config{}, "", err
	}

	cfg, status, err := config.Load(path)
	if err != nil {
		return config.Config{}, path, errors.Wrapf(err, "loading config %s", path)
	}

	switch status {
	case config.StatusCorrupt:
		warnf("config %s is unreadable, using defaults", path)
	case config.StatusMissing:
		detail("no config at %s, using defaults", path)
	}
	for _, folder := range cfg.DroppedFolders {
		warnf("saved folder no longer exists: %s", folder)
	}
	return cfg, path, nil
}

// newRunner wires the filesystem and merger into a batch runner.
func newRunner(cfg config.Config) *batch.Runner {
	fs := newFs()
	return batch.NewRunner(fs, newMerger(fs, cfg))
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Fprintf(stdout, "  "+format+"\n", args...)
	}
}

// success prints a green line unless quiet mode is active.
func success(format string, args ...any) {
	if !quiet {
		fmt.Fprintln(stdout, okStyle.Render(fmt.Sprintf(format, args...)))
	}
}

// warnf prints a warning to stderr.
func warnf(format string, args ...any) {
	fmt.Fprintln(stderr, warnStyle.Render("warning: "+fmt.Sprintf(format, args...)))
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintln(stderr, failStyle.Render("error: "+fmt.Sprintf(format, args...)))
}
