package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/linkcheck"
)

func report(id string, started time.Time, broken ...linkcheck.BrokenLink) *linkcheck.Report {
	if broken == nil {
		broken = []linkcheck.BrokenLink{}
	}
	return &linkcheck.Report{
		RunID:      id,
		StartedAt:  started,
		FinishedAt: started.Add(250 * time.Millisecond),
		Checked:    10,
		Skipped:    2,
		Broken:     broken,
	}
}

func TestStore_RecordAndRecent(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := t.Context()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Record(ctx, report("run-a", base)))
	require.NoError(t, store.Record(ctx, report("run-b", base.Add(time.Hour),
		linkcheck.BrokenLink{Source: linkcheck.SourceNav, Path: "themeConfig.nav[0].link", Target: "/x", Reason: "no page for route"})))
	require.NoError(t, store.Record(ctx, report("run-c", base.Add(2*time.Hour))))

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].RunID)
	assert.Equal(t, "run-b", runs[1].RunID)
	assert.Equal(t, 1, runs[1].Broken)
	assert.Equal(t, base.Add(time.Hour), runs[1].StartedAt)
	assert.Equal(t, 250*time.Millisecond, runs[1].FinishedAt.Sub(runs[1].StartedAt))
	require.NotNil(t, runs[1].Report)
	assert.Equal(t, "/x", runs[1].Report.Broken[0].Target)

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_DuplicateRunID(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	r := report("same", time.Now())
	require.NoError(t, store.Record(t.Context(), r))
	err = store.Record(t.Context(), r)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryStorage))
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Record(t.Context(), report("persisted", time.Now())))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runs, err := store.Recent(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "persisted", runs[0].RunID)
}
