// Package xlog wraps k8s.io/klog the same way the teacher's log.go adapts
// it for an injectable logger, here threaded through the engine instead of
// called directly from business logic, so counting stays testable without
// klog's global state. Human-readable lines get a kyokomi/emoji decoration;
// the stdout protocol stream never goes through this package.
package xlog

import (
	"github.com/kyokomi/emoji"
	"k8s.io/klog"
)

// Logger is the minimal shape the engine needs to report diagnostics.
// klogLogger and discardLogger both satisfy it.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Discard drops every message, used when a case runs with -65 (logging
// off) or when the caller supplies no logger.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Printf(string, ...interface{}) {}

// klogLogger delegates to klog.Infof, matching the teacher's klogAdapter.
type klogLogger struct{}

// New returns the klog-backed Logger used by cmd/rcipestv.
func New() Logger {
	return klogLogger{}
}

func (klogLogger) Printf(format string, args ...interface{}) {
	klog.Infof(format, args...)
}

// Decorate adds an emoji sigil in front of a human-readable log line,
// matching the decoration style of the teacher's messages.go — used only
// for operator-facing text, never for anything written to stdout.
func Decorate(sigil, format string, args ...interface{}) string {
	return emoji.Sprintf(sigil+" "+format, args...)
}
