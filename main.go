package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/afero"

	"github.com/ytget/merge-replays/internal/batch"
	"github.com/ytget/merge-replays/internal/config"
	"github.com/ytget/merge-replays/internal/merge"
	"github.com/ytget/merge-replays/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.merge-replays"
	AppName = "Merge Replays"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	// Load stored folders and tool settings
	configPath, err := config.DefaultPath()
	if err != nil {
		log.Printf("Config will not be saved: %v", err)
	}
	cfg, status, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to read config, using defaults: %v", err)
	}
	log.Printf("Config %s: %s", status, configPath)
	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid tool settings, using defaults: %v", err)
		defaults := config.Default()
		defaults.SourceFolder, defaults.DestFolder, defaults.DeleteOriginals = cfg.SourceFolder, cfg.DestFolder, cfg.DeleteOriginals
		cfg = defaults
	}

	// Initialize services
	fs := afero.NewOsFs()
	mergeSvc := merge.NewService(fs, cfg.MergeOptions())
	runner := batch.NewRunner(fs, mergeSvc)

	ui.NewRootUI(myWindow, myApp, ui.Options{
		Runner:     runner,
		Config:     cfg,
		ConfigPath: configPath,
		LoadStatus: status,
	})

	myWindow.ShowAndRun()
}
