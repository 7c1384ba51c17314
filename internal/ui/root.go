package ui

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/cockroachdb/errors"

	"github.com/ytget/merge-replays/internal/batch"
	"github.com/ytget/merge-replays/internal/config"
	"github.com/ytget/merge-replays/internal/merge"
	"github.com/ytget/merge-replays/internal/model"
	"github.com/ytget/merge-replays/internal/platform"
)

// Options carries what the main window needs from main
type Options struct {
	Runner     *batch.Runner
	Config     config.Config
	ConfigPath string
	LoadStatus config.LoadStatus
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	runner       *batch.Runner
	settings     *config.Settings
	localization *Localization

	configPath string
	cfgMutex   sync.Mutex
	cfg        config.Config

	// Inputs
	sourceTitle  *widget.Label
	sourceEntry  *widget.Entry
	sourceBtn    *widget.Button
	destTitle    *widget.Label
	destEntry    *widget.Entry
	destBtn      *widget.Button
	deleteCheck  *widget.Check
	configTitle  *widget.Label
	configButton *widget.Button

	// Progress
	progressTitle *widget.Label
	progressBar   *widget.ProgressBar
	progressLabel *widget.Label
	statusTitle   *widget.Label
	statusLog     *widget.Label
	statusScroll  *container.Scroll
	logLines      []string

	// Actions
	startBtn  *widget.Button
	cancelBtn *widget.Button

	jobMutex sync.Mutex
	job      *batch.Job

	closeWindow func()
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, opts Options) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		runner:       opts.Runner,
		settings:     settings,
		localization: localization,
		configPath:   opts.ConfigPath,
		cfg:          opts.Config,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.runner.SetStartCallback(ui.onPairStart)
	ui.runner.SetUpdateCallback(ui.onPairUpdate)
	ui.runner.SetSummaryCallback(ui.onSummary)

	ui.setupUI()
	ui.reportConfigLoad(opts.LoadStatus)

	ui.closeWindow = window.Close
	window.SetCloseIntercept(ui.onCloseRequest)

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.sourceTitle = widget.NewLabelWithStyle(ui.localization.GetText(KeySourceFolder), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.sourceEntry = widget.NewEntry()
	ui.sourceEntry.SetText(ui.cfg.SourceFolder)
	ui.sourceBtn = widget.NewButton(ui.browseLabel(), func() {
		ui.browseFolder(ui.sourceEntry)
	})

	ui.destTitle = widget.NewLabelWithStyle(ui.localization.GetText(KeyDestFolder), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.destEntry = widget.NewEntry()
	ui.destEntry.SetText(ui.cfg.DestFolder)
	ui.destBtn = widget.NewButton(ui.browseLabel(), func() {
		ui.browseFolder(ui.destEntry)
	})

	ui.deleteCheck = widget.NewCheck(ui.localization.GetText(KeyDeleteOriginals), func(bool) {
		ui.saveConfig()
	})
	ui.deleteCheck.SetChecked(ui.cfg.DeleteOriginals)

	ui.configTitle = widget.NewLabel(ui.localization.GetText(KeyConfigLocation))
	ui.configButton = widget.NewButton(ui.configPath, ui.onRevealConfig)
	ui.configButton.Importance = widget.LowImportance

	ui.progressTitle = widget.NewLabelWithStyle(ui.localization.GetText(KeyProgress), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.progressBar = widget.NewProgressBar()
	ui.progressLabel = widget.NewLabel(ui.localization.GetText(KeyReady))
	ui.progressLabel.Truncation = fyne.TextTruncateEllipsis

	ui.statusTitle = widget.NewLabelWithStyle(ui.localization.GetText(KeyStatus), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.statusLog = widget.NewLabel("")
	ui.statusLog.Wrapping = fyne.TextWrapWord
	ui.statusLog.TextStyle = fyne.TextStyle{Monospace: true}
	ui.statusScroll = container.NewVScroll(ui.statusLog)

	ui.startBtn = widget.NewButton(ui.localization.GetText(KeyStartMerge), ui.onStartClick)
	ui.startBtn.Importance = widget.SuccessImportance
	ui.cancelBtn = widget.NewButton(ui.localization.GetText(KeyCancel), ui.onCancelClick)
	ui.cancelBtn.Disable()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	var header fyne.CanvasObject = container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewHBox(logoImage, settingsBtn)
	}

	inputs := container.NewVBox(
		ui.sourceTitle,
		container.NewBorder(nil, nil, nil, ui.sourceBtn, ui.sourceEntry),
		ui.destTitle,
		container.NewBorder(nil, nil, nil, ui.destBtn, ui.destEntry),
		ui.deleteCheck,
		container.NewHBox(ui.configTitle, ui.configButton),
		widget.NewSeparator(),
		container.NewBorder(nil, nil, ui.progressTitle, nil, ui.progressLabel),
		ui.progressBar,
		ui.statusTitle,
	)

	actions := container.NewCenter(container.NewHBox(ui.startBtn, ui.cancelBtn))

	content := container.NewBorder(
		container.NewVBox(header, inputs), // top
		actions,                           // bottom
		nil,                               // left
		nil,                               // right
		ui.statusScroll,                   // center
	)

	ui.window.SetContent(content)
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.sourceTitle.SetText(ui.localization.GetText(KeySourceFolder))
	ui.destTitle.SetText(ui.localization.GetText(KeyDestFolder))
	ui.sourceBtn.SetText(ui.browseLabel())
	ui.destBtn.SetText(ui.browseLabel())
	ui.deleteCheck.Text = ui.localization.GetText(KeyDeleteOriginals)
	ui.deleteCheck.Refresh()
	ui.configTitle.SetText(ui.localization.GetText(KeyConfigLocation))
	ui.progressTitle.SetText(ui.localization.GetText(KeyProgress))
	ui.statusTitle.SetText(ui.localization.GetText(KeyStatus))
	ui.startBtn.SetText(ui.localization.GetText(KeyStartMerge))
	ui.cancelBtn.SetText(ui.localization.GetText(KeyCancel))
	if !ui.runner.IsRunning() {
		ui.progressLabel.SetText(ui.localization.GetText(KeyReady))
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}

// browseFolder lets the user pick a folder into entry
func (ui *RootUI) browseFolder(entry *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			log.Printf("Folder selection failed: %v", err)
			return
		}
		if uri == nil {
			return
		}
		entry.SetText(uri.Path())
		ui.saveConfig()
	}, ui.window)
}

// currentConfig copies the form into the stored config
func (ui *RootUI) currentConfig() config.Config {
	ui.cfgMutex.Lock()
	defer ui.cfgMutex.Unlock()

	ui.cfg.SourceFolder = strings.TrimSpace(ui.sourceEntry.Text)
	ui.cfg.DestFolder = strings.TrimSpace(ui.destEntry.Text)
	ui.cfg.DeleteOriginals = ui.deleteCheck.Checked
	return ui.cfg
}

// saveConfig persists the form. Failures are logged only.
func (ui *RootUI) saveConfig() {
	if ui.configPath == "" || ui.sourceEntry == nil {
		return
	}
	if err := config.Save(ui.configPath, ui.currentConfig()); err != nil {
		log.Printf("%s: %v", ui.localization.GetText(KeyConfigNotSaved), err)
	}
}

// reportConfigLoad writes config load warnings to the status log
func (ui *RootUI) reportConfigLoad(status config.LoadStatus) {
	if status == config.StatusCorrupt {
		ui.appendLog(ui.localization.GetText(KeyConfigCorrupt))
	}
	for _, folder := range ui.cfg.DroppedFolders {
		ui.appendLog(fmt.Sprintf(ui.localization.GetText(KeyFolderForgotten), folder))
	}
}

// onRevealConfig shows the config file, or its folder if it was never saved
func (ui *RootUI) onRevealConfig() {
	if ui.configPath == "" {
		return
	}

	var err error
	if _, statErr := os.Stat(ui.configPath); statErr == nil {
		err = platform.OpenFileInManager(ui.configPath)
	} else {
		err = platform.OpenFolder(filepath.Dir(ui.configPath))
	}
	if err != nil {
		log.Printf("Error revealing config %s: %v", ui.configPath, err)
		dialog.ShowError(errors.Wrap(err, ui.localization.GetText(KeyErrorOpeningFile)), ui.window)
	}
}

// onStartClick validates the form and starts a batch
func (ui *RootUI) onStartClick() {
	cfg := ui.currentConfig()
	ui.saveConfig()

	if cfg.SourceFolder == "" {
		ui.showError(ui.localization.GetText(KeySelectSource))
		return
	}
	if cfg.DestFolder == "" {
		ui.showError(ui.localization.GetText(KeySelectDest))
		return
	}

	if cfg.DeleteOriginals && ui.settings.GetConfirmDelete() {
		dialog.ShowConfirm(
			ui.localization.GetText(KeyConfirmDeleteTitle),
			ui.localization.GetText(KeyConfirmDeleteBody),
			func(confirmed bool) {
				if confirmed {
					ui.startBatch(cfg)
				}
			},
			ui.window,
		)
		return
	}

	ui.startBatch(cfg)
}

// startBatch hands the configuration to the runner
func (ui *RootUI) startBatch(cfg config.Config) {
	ui.clearLog()
	ui.progressBar.SetValue(0)

	job, err := ui.runner.Start(context.Background(), cfg.Batch())
	if err != nil {
		log.Printf("Batch not started: %v", err)
		ui.progressLabel.SetText(ui.localization.GetText(KeyReady))
		ui.showError(ui.errorMessage(err))
		return
	}

	log.Printf("Batch started: id=%s source=%s dest=%s delete=%v", job.ID(), cfg.SourceFolder, cfg.DestFolder, cfg.DeleteOriginals)

	ui.jobMutex.Lock()
	ui.job = job
	ui.jobMutex.Unlock()
	ui.setRunning(true)

	go func() {
		// Errors after start only come from discovery
		if _, err := job.Wait(); err != nil {
			fyne.Do(func() {
				ui.showError(ui.errorMessage(err))
			})
		}
	}()
}

// currentJob returns the running batch or nil
func (ui *RootUI) currentJob() *batch.Job {
	ui.jobMutex.Lock()
	defer ui.jobMutex.Unlock()
	return ui.job
}

// onCancelClick stops the batch after the current pair
func (ui *RootUI) onCancelClick() {
	job := ui.currentJob()
	if job == nil {
		return
	}
	ui.cancelJob(job)
}

func (ui *RootUI) cancelJob(job *batch.Job) {
	job.Cancel()
	ui.cancelBtn.Disable()
	ui.progressLabel.SetText(ui.localization.GetText(KeyCancelling))
}

// onCloseRequest saves the config. A running batch is confirmed, cancelled
// and awaited before the window closes.
func (ui *RootUI) onCloseRequest() {
	ui.saveConfig()

	job := ui.currentJob()
	if job == nil {
		ui.closeWindow()
		return
	}

	dialog.ShowConfirm(
		ui.localization.GetText(KeyAppTitle),
		ui.localization.GetText(KeyCloseWhileRunning),
		func(confirmed bool) {
			if confirmed {
				ui.closeAfterJob(job)
			}
		},
		ui.window,
	)
}

// closeAfterJob cancels the batch and closes the window once the current merge is done
func (ui *RootUI) closeAfterJob(job *batch.Job) {
	ui.cancelJob(job)
	ui.startBtn.Disable()

	go func() {
		<-job.Done()
		log.Printf("Batch %s stopped, closing window", job.ID())
		fyne.Do(ui.closeWindow)
	}()
}

// onPairStart is called on the runner goroutine before each merge
func (ui *RootUI) onPairStart(event model.ProgressEvent) {
	log.Printf("Pair started: job=%s index=%d/%d file=%s", event.JobID, event.Index, event.Total, event.Filename)

	fyne.Do(func() {
		if event.Index == 1 {
			ui.appendLog(fmt.Sprintf(ui.localization.GetText(KeyFoundPairs), event.Total))
		}
		ui.progressBar.SetValue(float64(event.Percent()) / 100)
		ui.progressLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyProcessing), event.Index, event.Total, event.Filename))
	})
}

// onPairUpdate is called on the runner goroutine after each merge
func (ui *RootUI) onPairUpdate(event model.ProgressEvent) {
	log.Printf("Task update received: id=%s status=%s file=%s duration=%s", event.JobID, event.Status, event.Filename, event.Result.GetDurationString())

	line := ui.eventLine(event)
	fyne.Do(func() {
		if !event.Skipped() {
			ui.progressBar.SetValue(float64(event.Percent()) / 100)
		}
		ui.appendLog(line)
	})
}

// onSummary is called once when the batch ends
func (ui *RootUI) onSummary(summary model.BatchSummary) {
	log.Printf("Batch finished: id=%s outcome=%s succeeded=%d/%d", summary.JobID, summary.Outcome, summary.Succeeded, summary.Total)

	line := ui.summaryLine(summary)
	fyne.Do(func() {
		ui.jobMutex.Lock()
		ui.job = nil
		ui.jobMutex.Unlock()
		ui.setRunning(false)

		if summary.Outcome == model.OutcomeCompleted {
			ui.progressBar.SetValue(1)
		}
		ui.progressLabel.SetText(line)
		ui.appendLog(line)
		if len(summary.Failed) > 0 {
			ui.appendLog(fmt.Sprintf(ui.localization.GetText(KeyFailedFiles), strings.Join(summary.Failed, ListSeparator)))
		}

		if summary.NothingToDo() {
			dialog.ShowInformation(ui.localization.GetText(KeyAppTitle), line, ui.window)
			return
		}
		if summary.Succeeded > 0 && ui.settings.GetAutoRevealOnComplete() {
			ui.revealDestination()
		}
	})
}

// revealDestination opens the destination folder in the file manager
func (ui *RootUI) revealDestination() {
	ui.cfgMutex.Lock()
	dest := ui.cfg.DestFolder
	ui.cfgMutex.Unlock()

	if err := platform.OpenFolder(dest); err != nil {
		log.Printf("Error opening destination %s: %v", dest, err)
	}
}

// setRunning toggles the controls that must not change mid-batch
func (ui *RootUI) setRunning(running bool) {
	for _, w := range []fyne.Disableable{ui.startBtn, ui.sourceEntry, ui.sourceBtn, ui.destEntry, ui.destBtn, ui.deleteCheck} {
		if running {
			w.Disable()
		} else {
			w.Enable()
		}
	}
	if running {
		ui.cancelBtn.Enable()
	} else {
		ui.cancelBtn.Disable()
	}
}

// eventLine renders a finished pair for the status log
func (ui *RootUI) eventLine(event model.ProgressEvent) string {
	result := event.Result

	switch {
	case event.Skipped():
		return eventPrefix(event, IconSkipped) + fmt.Sprintf(ui.localization.GetText(KeySkipped), event.Filename)
	case !result.Succeeded:
		return eventPrefix(event, IconFailure) + fmt.Sprintf(ui.localization.GetText(KeyMergeFailed), event.Filename, result.Error)
	case result.DeleteError != "":
		return eventPrefix(event, IconWarning) + fmt.Sprintf(ui.localization.GetText(KeyDeleteWarning), event.Filename, result.DeleteError)
	case result.Deleted:
		return eventPrefix(event, IconSuccess) + fmt.Sprintf(ui.localization.GetText(KeyMergedDeleted), event.Filename)
	default:
		return eventPrefix(event, IconSuccess) + fmt.Sprintf(ui.localization.GetText(KeyMerged), event.Filename)
	}
}

func eventPrefix(event model.ProgressEvent, icon string) string {
	return fmt.Sprintf(LogLinePrefixFormat, event.Index, event.Total, icon)
}

func (ui *RootUI) browseLabel() string {
	return IconFolder + " " + ui.localization.GetText(KeyBrowse)
}

// summaryLine renders the final status for a batch
func (ui *RootUI) summaryLine(summary model.BatchSummary) string {
	switch summary.Outcome {
	case model.OutcomeNothingToDo:
		return ui.localization.GetText(KeyNoPairs)
	case model.OutcomeCancelled:
		return fmt.Sprintf(ui.localization.GetText(KeyCancelled), summary.Processed, summary.Total)
	default:
		return fmt.Sprintf(ui.localization.GetText(KeyComplete), summary.Succeeded, summary.Total)
	}
}

// errorMessage maps core errors to localized text
func (ui *RootUI) errorMessage(err error) string {
	switch {
	case errors.Is(err, batch.ErrAlreadyRunning):
		return ui.localization.GetText(KeyErrAlreadyRunning)
	case errors.Is(err, batch.ErrSameDirectory):
		return ui.localization.GetText(KeyErrSameDirectory)
	case errors.Is(err, merge.ErrToolMissing):
		return ui.localization.GetText(KeyErrToolMissing)
	case errors.Is(err, batch.ErrInvalidDest):
		return ui.localization.GetText(KeyErrDestMissing)
	case errors.Is(err, platform.ErrDirectoryNotFound):
		return ui.localization.GetText(KeyErrSourceMissing)
	default:
		return err.Error()
	}
}

func (ui *RootUI) showError(message string) {
	dialog.ShowError(errors.New(message), ui.window)
}

func (ui *RootUI) appendLog(line string) {
	ui.logLines = append(ui.logLines, line)
	ui.statusLog.SetText(strings.Join(ui.logLines, "\n"))
	ui.statusScroll.ScrollToBottom()
}

func (ui *RootUI) clearLog() {
	ui.logLines = nil
	ui.statusLog.SetText("")
}
