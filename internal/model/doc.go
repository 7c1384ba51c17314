package model

// Package model defines domain data structures used across the app: file
// pairs, merge results, batch summaries, progress events, and status enums.
// Structures are plain values so they can be handed to any presentation layer.
