package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/dartdoc"
)

// Ensure LoggingExtractor implements dartdoc.Extractor.
var _ dartdoc.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   dartdoc.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next dartdoc.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs section and table counts.
func (e *LoggingExtractor) Extract(text string) (tree *dartdoc.DocumentTree, err error) {
	defer func(begin time.Time) {
		e.logger.Debug("section extraction",
			"bytes", len(text),
			"sections", tree.Len(),
			"tables", tree.TableCount(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(text)
}
