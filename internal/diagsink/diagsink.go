// Package diagsink provides the line-oriented diagnostic sink emobsread's
// core parser writes non-fatal warnings to (version drift, suspicious
// values). Each sink is stamped with a run-correlation id so that
// diagnostics from multiple files processed in the same invocation can be
// told apart in a combined log stream.
package diagsink

import (
	"fmt"
	"log"

	"github.com/google/uuid"
)

// LogSink writes one line per warning to an underlying *log.Logger, prefixed
// with a run-correlation id and the file currently being processed.
type LogSink struct {
	logger *log.Logger
	runID  string
	file   string
}

// New builds a LogSink writing through logger, stamped with a fresh
// run-correlation id.
func New(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger, runID: uuid.NewString()}
}

// ForFile returns a sink that behaves like s but prefixes lines with file.
// Use it per source file so warnings can be traced back to their origin
// without threading a path argument through the core.
func (s *LogSink) ForFile(file string) *LogSink {
	return &LogSink{logger: s.logger, runID: s.runID, file: file}
}

// Warn implements emobs.Sink.
func (s *LogSink) Warn(context string, args ...any) {
	msg := fmt.Sprintf(context, args...)
	if s.file != "" {
		s.logger.Printf("[%s] %s: %s", s.runID, s.file, msg)
		return
	}
	s.logger.Printf("[%s] %s", s.runID, msg)
}
