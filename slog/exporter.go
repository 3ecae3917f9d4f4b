package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/stratchat"
)

// Ensure LoggingKnowledgeExporter implements stratchat.KnowledgeExporter.
var _ stratchat.KnowledgeExporter = (*LoggingKnowledgeExporter)(nil)

// LoggingKnowledgeExporter wraps a KnowledgeExporter with logging.
type LoggingKnowledgeExporter struct {
	next   stratchat.KnowledgeExporter
	logger *slog.Logger
}

// NewLoggingKnowledgeExporter creates a new LoggingKnowledgeExporter.
func NewLoggingKnowledgeExporter(next stratchat.KnowledgeExporter, logger *slog.Logger) *LoggingKnowledgeExporter {
	return &LoggingKnowledgeExporter{next: next, logger: logger}
}

// ExportKnowledge delegates to the wrapped exporter and logs the export.
func (e *LoggingKnowledgeExporter) ExportKnowledge(ctx context.Context, k *stratchat.Knowledge) (err error) {
	defer func(begin time.Time) {
		e.logger.Info("knowledge export",
			"entries", len(k.Entries()),
			"fingerprint", k.Fingerprint,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExportKnowledge(ctx, k)
}
