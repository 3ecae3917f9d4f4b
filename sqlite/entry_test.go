package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKnowledge(fingerprint uint64, entries ...stratchat.Entry) *stratchat.Knowledge {
	k := stratchat.EmptyKnowledge()
	for _, e := range entries {
		k.Base.Put(e)
	}
	k.Fingerprint = fingerprint
	k.Path = "data_dt_v03.json"
	return k
}

// clock returns a Now function advancing one second per call.
func clock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestEntryService_ExportKnowledge(t *testing.T) {
	t.Parallel()

	t.Run("writes a snapshot with entries in order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))
		svc.Now = clock()
		ctx := context.Background()
		k := testKnowledge(0xfeedfacecafebeef,
			stratchat.Entry{Prompt: "رؤية التحول الرقمي", Completion: "رؤية", SourcePath: "digitalTransformationStrategy.strategicHouse.vision"},
			stratchat.Entry{Prompt: "رسالة التحول الرقمي", Completion: "رسالة", SourcePath: "digitalTransformationStrategy.strategicHouse.mission"},
		)

		require.NoError(t, svc.ExportKnowledge(ctx, k))

		snapshots, err := svc.FindSnapshots(ctx)
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, uint64(0xfeedfacecafebeef), snapshots[0].Fingerprint)
		assert.Equal(t, 2, snapshots[0].EntryCount)
		assert.Equal(t, "data_dt_v03.json", snapshots[0].Path)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC), snapshots[0].ExportedAt)

		entries, err := svc.FindEntries(ctx, stratchat.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "رؤية التحول الرقمي", entries[0].Prompt)
		assert.Equal(t, 0, entries[0].Position)
		assert.Equal(t, "رسالة", entries[1].Completion)
		assert.Equal(t, snapshots[0].ID, entries[1].SnapshotID)
	})

	t.Run("rejects nil knowledge", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))

		err := svc.ExportKnowledge(context.Background(), nil)

		assert.Equal(t, stratchat.EINVALID, stratchat.ErrorCode(err))
	})

	t.Run("exports an empty snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.ExportKnowledge(ctx, stratchat.EmptyKnowledge()))

		entries, err := svc.FindEntries(ctx, stratchat.EntryFilter{})
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestEntryService_FindEntries(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*sqlite.EntryService, []*stratchat.Snapshot) {
		t.Helper()
		svc := sqlite.NewEntryService(setupTestDB(t))
		svc.Now = clock()
		ctx := context.Background()
		require.NoError(t, svc.ExportKnowledge(ctx, testKnowledge(1,
			stratchat.Entry{Prompt: "قديم", Completion: "أ", SourcePath: "old"},
		)))
		require.NoError(t, svc.ExportKnowledge(ctx, testKnowledge(2,
			stratchat.Entry{Prompt: "ما هي تفاصيل مشروع أ", Completion: "1", SourcePath: "digitalTransformationStrategy.futureProjects.projects.PR-01"},
			stratchat.Entry{Prompt: "رؤية التحول الرقمي", Completion: "2", SourcePath: "digitalTransformationStrategy.strategicHouse.vision"},
			stratchat.Entry{Prompt: "ما هي تفاصيل مشروع ب", Completion: "3", SourcePath: "digitalTransformationStrategy.futureProjects.projects.PR-02"},
		)))
		snapshots, err := svc.FindSnapshots(ctx)
		require.NoError(t, err)
		require.Len(t, snapshots, 2)
		return svc, snapshots
	}

	t.Run("defaults to the latest snapshot", func(t *testing.T) {
		t.Parallel()

		svc, snapshots := setup(t)

		entries, err := svc.FindEntries(context.Background(), stratchat.EntryFilter{})

		require.NoError(t, err)
		assert.Len(t, entries, 3)
		assert.Equal(t, uint64(2), snapshots[0].Fingerprint)
	})

	t.Run("selects a snapshot by ID", func(t *testing.T) {
		t.Parallel()

		svc, snapshots := setup(t)

		entries, err := svc.FindEntries(context.Background(), stratchat.EntryFilter{SnapshotID: &snapshots[1].ID})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "قديم", entries[0].Prompt)
	})

	t.Run("filters by source prefix", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)

		entries, err := svc.FindEntries(context.Background(), stratchat.EntryFilter{
			SourcePrefix: "digitalTransformationStrategy.futureProjects",
		})

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "1", entries[0].Completion)
		assert.Equal(t, "3", entries[1].Completion)
	})

	t.Run("filters by prompt text", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)

		entries, err := svc.FindEntries(context.Background(), stratchat.EntryFilter{Prompt: "رؤية"})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "2", entries[0].Completion)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)

		entries, err := svc.FindEntries(context.Background(), stratchat.EntryFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 1, entries[0].Position)
	})

	t.Run("unknown snapshot", func(t *testing.T) {
		t.Parallel()

		svc, _ := setup(t)
		id := "missing"

		_, err := svc.FindEntries(context.Background(), stratchat.EntryFilter{SnapshotID: &id})

		assert.Equal(t, stratchat.ENOTFOUND, stratchat.ErrorCode(err))
	})

	t.Run("no snapshots yet", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewEntryService(setupTestDB(t))

		_, err := svc.FindEntries(context.Background(), stratchat.EntryFilter{})

		assert.Equal(t, stratchat.ENOTFOUND, stratchat.ErrorCode(err))
	})
}
