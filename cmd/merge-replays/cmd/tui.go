package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ytget/merge-replays/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Merge with a live progress view in the terminal",
	Long: `Same batch as 'run', rendered as a progress bar with a rolling log.
Press c or q to stop after the current file; the summary is printed on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := prepareConfig(cmd)
		if err != nil {
			return err
		}

		summary, err := tui.Run(newRunner(cfg), cfg.Batch())
		if err != nil {
			return err
		}
		return reportSummary(summary)
	},
}

func init() {
	addOverrideFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}
