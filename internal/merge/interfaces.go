package merge

import (
	"context"

	"github.com/ytget/merge-replays/internal/model"
)

// Merger defines the interface the batch driver uses to merge pairs.
type Merger interface {
	// CheckAvailable verifies the external tool can be invoked and returns its version line
	CheckAvailable(ctx context.Context) (string, error)

	// Merge muxes pair into outputPath, overwriting any existing file
	Merge(ctx context.Context, pair model.FilePair, outputPath string) model.MergeResult
}
