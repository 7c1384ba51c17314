package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ytget/merge-replays/internal/config"
	"github.com/ytget/merge-replays/internal/merge"
	"github.com/ytget/merge-replays/internal/model"
)

type fakeMerger struct {
	fs      afero.Fs
	fail    map[string]bool
	missing bool
}

func (f fakeMerger) CheckAvailable(ctx context.Context) (string, error) {
	if f.missing {
		return "", errors.Mark(errors.New("not found"), merge.ErrToolMissing)
	}
	return "ffmpeg version 7.0-test", nil
}

func (f fakeMerger) Merge(ctx context.Context, pair model.FilePair, outputPath string) model.MergeResult {
	result := model.MergeResult{Pair: pair, OutputPath: outputPath}
	if f.fail[pair.ContainerName()] {
		result.Error = "moov atom not found"
		return result
	}
	_ = afero.WriteFile(f.fs, outputPath, []byte("merged"), 0644)
	result.Succeeded = true
	return result
}

// testEnv swaps the filesystem, merger, output sinks and config path.
type testEnv struct {
	fs     afero.Fs
	merger *fakeMerger
	out    *bytes.Buffer
	errOut *bytes.Buffer
	config string
}

func newTestEnv(t *testing.T, files ...string) *testEnv {
	t.Helper()
	setupStyles(true)

	env := &testEnv{
		fs:     afero.NewMemMapFs(),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		config: filepath.Join(t.TempDir(), config.ConfigFileName),
	}
	env.merger = &fakeMerger{fs: env.fs}

	for _, dir := range []string{"/src", "/dst"} {
		if err := env.fs.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range files {
		if err := afero.WriteFile(env.fs, filepath.Join("/src", name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	oldFs, oldMerger, oldOut, oldErr, oldConfig := newFs, newMerger, stdout, stderr, configPath
	oldVerbose, oldQuiet := verbose, quiet
	newFs = func() afero.Fs { return env.fs }
	newMerger = func(afero.Fs, config.Config) merge.Merger { return *env.merger }
	stdout, stderr = env.out, env.errOut
	configPath = env.config
	t.Cleanup(func() {
		newFs, newMerger, stdout, stderr, configPath = oldFs, oldMerger, oldOut, oldErr, oldConfig
		verbose, quiet = oldVerbose, oldQuiet
	})
	return env
}

// setFlags sets flags on cmd as if parsed and resets them after the test.
func setFlags(t *testing.T, cmd *cobra.Command, values map[string]string) {
	t.Helper()
	for name, value := range values {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set --%s: %v", name, err)
		}
	}
	t.Cleanup(func() {
		for name := range values {
			f := cmd.Flags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
}

func TestFormatIndex(t *testing.T) {
	tests := []struct {
		index, total int
		want         string
	}{
		{1, 1, "[1/1]"},
		{1, 9, "[1/9]"},
		{3, 12, "[ 3/12]"},
		{12, 12, "[12/12]"},
		{7, 100, "[  7/100]"},
	}

	for _, tt := range tests {
		got := formatIndex(tt.index, tt.total)
		if got != tt.want {
			t.Errorf("formatIndex(%d, %d) = %q, want %q", tt.index, tt.total, got, tt.want)
		}
	}
}

func TestResolveConfigPath(t *testing.T) {
	env := newTestEnv(t)

	path, err := resolveConfigPath()
	if err != nil {
		t.Fatalf("resolveConfigPath: %v", err)
	}
	if path != env.config {
		t.Errorf("path = %s, want %s", path, env.config)
	}
}

func TestInfoRespectsQuiet(t *testing.T) {
	env := newTestEnv(t)

	quiet = true
	info("hidden")
	success("hidden too")
	errorf("shown")

	if env.out.Len() != 0 {
		t.Errorf("expected no stdout in quiet mode, got %q", env.out.String())
	}
	if env.errOut.String() != "error: shown\n" {
		t.Errorf("stderr = %q", env.errOut.String())
	}
}

func TestDetailRequiresVerbose(t *testing.T) {
	env := newTestEnv(t)

	verbose = false
	detail("hidden")
	verbose = true
	detail("shown")

	if env.out.String() != "  shown\n" {
		t.Errorf("stdout = %q", env.out.String())
	}
}
