// Package ui contains the Fyne-based desktop user interface for the application.
// It collects the source and destination folders, starts a merge batch and
// renders its progress and status log. All UI strings are localized via Localization.
package ui
