package main

// Default limits for CLI commands.
const (
	DefaultListLimit    = 20
	DefaultHistoryLimit = 20
	DefaultSimilarLimit = 5
)

// Valid output formats for read commands.
var validFormats = []string{"text", "json"}
