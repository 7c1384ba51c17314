package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ytget/merge-replays/internal/platform"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify ffmpeg and the folders, and list the pairs a run would merge",
	Long: `Runs the same checks as 'run' without merging anything: ffmpeg must answer
a version query, both folders must exist and differ. Prints every pair found
in the source folder and the output path it would be written to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := prepareConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		fs := newFs()
		version, err := newMerger(fs, cfg).CheckAvailable(ctx)
		if err != nil {
			return err
		}
		success("✓ %s", version)

		if err := platform.RequireDirectory(fs, cfg.DestFolder); err != nil {
			return err
		}
		if platform.SameDirectory(cfg.SourceFolder, cfg.DestFolder) {
			warnf("source and destination are the same folder; 'run' will refuse it")
		}

		batchCfg := cfg.Batch()
		containerExt, audioExt := batchCfg.Extensions()
		pairs, err := platform.DiscoverPairs(fs, cfg.SourceFolder, containerExt, audioExt)
		if err != nil {
			return err
		}

		if len(pairs) == 0 {
			info("No matching file pairs found in source folder.")
			return nil
		}

		info("Found %d file pair(s) to merge:", len(pairs))
		for i, pair := range pairs {
			info("%s %s + %s", dimStyle.Render(formatIndex(i+1, len(pairs))), pair.ContainerName(), pair.AudioName())
			detail("-> %s", pair.OutputPath(cfg.DestFolder))
		}
		return nil
	},
}

func init() {
	addOverrideFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
