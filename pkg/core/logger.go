package core

import "fmt"

// Logger is the Printf-style sink for the renderer's informational output
// (the CLI's status and anomaly-summary lines, per-pixel debug traces).
// Errors are not routed through it: the CLI prints them to stderr.
type Logger interface {
	Printf(format string, args ...interface{})
}

// StdoutLogger is the default Logger, writing directly to stdout.
type StdoutLogger struct{}

func (StdoutLogger) Printf(format string, args ...interface{}) { fmt.Printf(format, args...) }
