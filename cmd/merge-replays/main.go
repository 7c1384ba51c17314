package main

import (
	"os"

	"github.com/ytget/merge-replays/cmd/merge-replays/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
