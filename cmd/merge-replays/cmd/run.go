package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ytget/merge-replays/internal/config"
	"github.com/ytget/merge-replays/internal/model"
)

// Overrides shared by run, check and tui.
var (
	flagSource string
	flagDest   string
	flagDelete bool
	flagFFmpeg string
	flagSave   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Merge every video/audio pair in the source folder",
	Long: `Scans the source folder once, merges each pair into the destination folder
in name order, and prints one line per pair. A failed pair does not stop the
batch. Ctrl+C stops after the file being merged.
Exit 0 when every pair merged; non-zero when any pair failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := prepareConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		runner := newRunner(cfg)
		runner.SetStartCallback(func(event model.ProgressEvent) {
			detail("%s", event.Message)
		})
		runner.SetUpdateCallback(printEvent)

		summary, err := runner.Run(ctx, cfg.Batch())
		if err != nil {
			return err
		}

		if flagSave {
			if err := config.Save(path, cfg); err != nil {
				warnf("could not save config: %v", err)
			} else {
				detail("saved settings to %s", path)
			}
		}

		return reportSummary(summary)
	},
}

func init() {
	addOverrideFlags(runCmd)
	runCmd.Flags().BoolVar(&flagSave, "save", false, "store the folder and delete settings in the config file")
	rootCmd.AddCommand(runCmd)
}

// addOverrideFlags registers the flags that override config values.
func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagSource, "source", "s", "", "source folder with .mp4/.m4a pairs")
	cmd.Flags().StringVarP(&flagDest, "dest", "d", "", "destination folder for merged files")
	cmd.Flags().BoolVar(&flagDelete, "delete-originals", false, "delete both originals after a successful merge")
	cmd.Flags().StringVar(&flagFFmpeg, "ffmpeg", "", "path to the ffmpeg binary")
}

// prepareConfig loads the config file and applies the flags the user set.
func prepareConfig(cmd *cobra.Command) (config.Config, string, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return cfg, path, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.SourceFolder = flagSource
	}
	if flags.Changed("dest") {
		cfg.DestFolder = flagDest
	}
	if flags.Changed("delete-originals") {
		cfg.DeleteOriginals = flagDelete
	}
	if flags.Changed("ffmpeg") {
		cfg.FFmpegPath = flagFFmpeg
	}

	if err := cfg.Validate(); err != nil {
		return cfg, path, err
	}
	if cfg.SourceFolder == "" {
		return cfg, path, errors.New("no source folder: pass --source or run 'merge-replays config set source_folder <dir>'")
	}
	if cfg.DestFolder == "" {
		return cfg, path, errors.New("no destination folder: pass --dest or run 'merge-replays config set dest_folder <dir>'")
	}

	detail("source: %s", cfg.SourceFolder)
	detail("dest:   %s", cfg.DestFolder)
	return cfg, path, nil
}

// printEvent writes one line per finished pair.
func printEvent(event model.ProgressEvent) {
	prefix := dimStyle.Render(formatIndex(event.Index, event.Total))
	result := event.Result

	switch {
	case event.Skipped():
		info("%s %s %s%s", prefix, dimStyle.Render("-"), event.Filename, dimStyle.Render(" (skipped)"))
		return
	case !result.Succeeded:
		info("%s %s %s", prefix, failStyle.Render("✗"), event.Filename)
		errorf("%s: %s", event.Filename, result.Error)
	case result.DeleteError != "":
		info("%s %s %s", prefix, okStyle.Render("✓"), event.Filename)
		warnf("could not delete originals of %s: %s", event.Filename, result.DeleteError)
	default:
		suffix := ""
		if result.Deleted {
			suffix = dimStyle.Render(" (originals deleted)")
		}
		info("%s %s %s %s%s", prefix, okStyle.Render("✓"), event.Filename, dimStyle.Render(result.GetDurationString()), suffix)
	}
	detail("output: %s", result.OutputPath)
}

// reportSummary prints the final line and turns failures into an error.
func reportSummary(summary model.BatchSummary) error {
	switch summary.Outcome {
	case model.OutcomeNothingToDo:
		info("No matching file pairs found in source folder.")
		return nil
	case model.OutcomeCancelled:
		warnf("cancelled after %d/%d files", summary.Processed, summary.Total)
	default:
		info("")
		success("Complete! %d/%d files merged successfully.", summary.Succeeded, summary.Total)
	}

	if summary.FailedCount() > 0 {
		return errors.Newf("%d file(s) failed to merge: %s", summary.FailedCount(), strings.Join(summary.Failed, ", "))
	}
	if summary.Outcome == model.OutcomeCancelled {
		return errors.New("batch cancelled")
	}
	return nil
}

// formatIndex right-aligns the index so columns line up.
func formatIndex(index, total int) string {
	width := len(strconv.Itoa(total))
	return fmt.Sprintf("[%*d/%d]", width, index, total)
}
