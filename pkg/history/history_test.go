//go:build !js

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spaedge/pkg/report"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	base := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	outcomes := report.Evaluate([]string{"/about/team", "/app.js", ""})
	for i, o := range outcomes {
		require.NoError(t, s.recordAt(ctx, o, base.Add(time.Duration(i)*time.Minute)))
	}
	// Seen again, later than everything else.
	require.NoError(t, s.recordAt(ctx, outcomes[0], base.Add(time.Hour)))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []string{"/about/team", "", "/app.js"}, Inputs(entries))

	first := entries[0]
	assert.Equal(t, "/index.html", first.Output)
	assert.True(t, first.Rewritten)
	assert.Equal(t, 2, first.Hits)
	assert.True(t, first.LastSeen.Equal(base.Add(time.Hour)), "last seen %s", first.LastSeen)

	assert.Equal(t, "request uri is empty", entries[1].Error)
	assert.False(t, entries[2].Rewritten)
	assert.Equal(t, 1, entries[2].Hits)
}

func TestRecentLimit(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	for _, o := range report.Evaluate([]string{"/a", "/b", "/c.css"}) {
		require.NoError(t, s.Record(ctx, o))
	}
	entries, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.Record(ctx, report.Evaluate([]string{"/x"})[0]))
	require.NoError(t, s.Clear(ctx))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReopenKeepsHistory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, report.Evaluate([]string{"/pricing"})[0]))
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"/pricing"}, Inputs(entries))
}
