package platform

// Package platform contains OS/platform integration and filesystem glue:
// replay pair discovery, folder validation, and OS open/reveal helpers.
