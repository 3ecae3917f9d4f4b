package mock

import (
	"context"

	"github.com/fwojciec/stratchat"
)

var (
	_ stratchat.KnowledgeSource   = (*KnowledgeSource)(nil)
	_ stratchat.KnowledgeExporter = (*KnowledgeExporter)(nil)
)

// KnowledgeSource is a mock implementation of stratchat.KnowledgeSource.
type KnowledgeSource struct {
	KnowledgeFn func() *stratchat.Knowledge
}

func (s *KnowledgeSource) Knowledge() *stratchat.Knowledge {
	return s.KnowledgeFn()
}

// KnowledgeExporter is a mock implementation of stratchat.KnowledgeExporter.
type KnowledgeExporter struct {
	ExportKnowledgeFn func(ctx context.Context, k *stratchat.Knowledge) error
}

func (e *KnowledgeExporter) ExportKnowledge(ctx context.Context, k *stratchat.Knowledge) error {
	return e.ExportKnowledgeFn(ctx, k)
}

var _ stratchat.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of stratchat.EntryService.
type EntryService struct {
	ExportKnowledgeFn func(ctx context.Context, k *stratchat.Knowledge) error
	FindSnapshotsFn   func(ctx context.Context) ([]*stratchat.Snapshot, error)
	FindEntriesFn     func(ctx context.Context, filter stratchat.EntryFilter) ([]*stratchat.StoredEntry, error)
}

func (s *EntryService) ExportKnowledge(ctx context.Context, k *stratchat.Knowledge) error {
	return s.ExportKnowledgeFn(ctx, k)
}

func (s *EntryService) FindSnapshots(ctx context.Context) ([]*stratchat.Snapshot, error) {
	return s.FindSnapshotsFn(ctx)
}

func (s *EntryService) FindEntries(ctx context.Context, filter stratchat.EntryFilter) ([]*stratchat.StoredEntry, error) {
	return s.FindEntriesFn(ctx, filter)
}
