package stratchat

import (
	"context"
	"time"
)

// Snapshot describes one exported knowledge snapshot.
type Snapshot struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Fingerprint uint64    `json:"fingerprint"`
	EntryCount  int       `json:"entryCount"`
	ExportedAt  time.Time `json:"exportedAt"`
}

// StoredEntry is an exported knowledge entry with its position in the
// snapshot's insertion order.
type StoredEntry struct {
	Entry
	SnapshotID string `json:"snapshotId"`
	Position   int    `json:"position"`
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	// SnapshotID selects a snapshot. Nil selects the most recent export.
	SnapshotID *string `json:"snapshotId"`

	// SourcePrefix keeps entries whose source path starts with the prefix.
	SourcePrefix string `json:"sourcePrefix"`

	// Prompt keeps entries whose prompt contains the text.
	Prompt string `json:"prompt"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// EntryService stores exported knowledge snapshots for review.
type EntryService interface {
	KnowledgeExporter

	// FindSnapshots lists exports, most recent first.
	FindSnapshots(ctx context.Context) ([]*Snapshot, error)

	// FindEntries retrieves entries matching the filter in insertion order.
	// Returns ENOTFOUND if no snapshot matches.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*StoredEntry, error)
}
