package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/stratchat"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ stratchat.EntryService = (*EntryService)(nil)

// EntryService implements stratchat.EntryService using SQLite.
type EntryService struct {
	db *DB

	// Now returns the export timestamp. Defaults to time.Now.
	Now func() time.Time
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db, Now: time.Now}
}

// ExportKnowledge writes every entry of k as a new snapshot in one
// transaction.
func (s *EntryService) ExportKnowledge(ctx context.Context, k *stratchat.Knowledge) error {
	if k == nil {
		return stratchat.Errorf(stratchat.EINVALID, "knowledge required")
	}
	entries := k.Entries()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := uuid.New().String()
	exportedAt := s.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, path, fingerprint, entry_count, exported_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, k.Path, formatFingerprint(k.Fingerprint), len(entries), exportedAt.Format(timestampFormat)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (snapshot_id, position, prompt, completion, source_path)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, id, i, e.Prompt, e.Completion, e.SourcePath); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FindSnapshots lists exports, most recent first.
func (s *EntryService) FindSnapshots(ctx context.Context) ([]*stratchat.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, fingerprint, entry_count, exported_at
		FROM snapshots
		ORDER BY exported_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*stratchat.Snapshot
	for rows.Next() {
		var snap stratchat.Snapshot
		var fingerprint, exportedAt string
		if err := rows.Scan(&snap.ID, &snap.Path, &fingerprint, &snap.EntryCount, &exportedAt); err != nil {
			return nil, err
		}
		if snap.Fingerprint, err = parseFingerprint(fingerprint); err != nil {
			return nil, err
		}
		if snap.ExportedAt, err = parseRFC3339(exportedAt, "exported_at"); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &snap)
	}
	return snapshots, rows.Err()
}

// FindEntries retrieves entries matching the filter in insertion order.
func (s *EntryService) FindEntries(ctx context.Context, filter stratchat.EntryFilter) ([]*stratchat.StoredEntry, error) {
	snapshotID, err := s.resolveSnapshot(ctx, filter.SnapshotID)
	if err != nil {
		return nil, err
	}

	var query strings.Builder
	args := []any{snapshotID}

	query.WriteString("SELECT snapshot_id, position, prompt, completion, source_path FROM entries WHERE snapshot_id = ?")
	if filter.SourcePrefix != "" {
		query.WriteString(" AND substr(source_path, 1, length(?)) = ?")
		args = append(args, filter.SourcePrefix, filter.SourcePrefix)
	}
	if filter.Prompt != "" {
		query.WriteString(" AND instr(prompt, ?) > 0")
		args = append(args, filter.Prompt)
	}
	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*stratchat.StoredEntry
	for rows.Next() {
		var e stratchat.StoredEntry
		if err := rows.Scan(&e.SnapshotID, &e.Position, &e.Prompt, &e.Completion, &e.SourcePath); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// resolveSnapshot returns id when set, or the most recent snapshot.
func (s *EntryService) resolveSnapshot(ctx context.Context, id *string) (string, error) {
	var found string
	var err error
	if id != nil {
		err = s.db.QueryRowContext(ctx, `SELECT id FROM snapshots WHERE id = ?`, *id).Scan(&found)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT id FROM snapshots ORDER BY exported_at DESC LIMIT 1`).Scan(&found)
	}
	if err == sql.ErrNoRows {
		return "", stratchat.Errorf(stratchat.ENOTFOUND, "snapshot not found")
	}
	return found, err
}

func formatFingerprint(f uint64) string {
	return fmt.Sprintf("%016x", f)
}

func parseFingerprint(s string) (uint64, error) {
	f, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse fingerprint: %w", err)
	}
	return f, nil
}
