package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

func newTestServer(t *testing.T, session *mockSession, history *mockHistoryService) *Server {
	t.Helper()
	ports := &Ports{NewSession: session.factory()}
	if history != nil {
		ports.History = history
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleFind(t *testing.T) {
	ctx := context.Background()

	t.Run("returns duplicate groups", func(t *testing.T) {
		session := &mockSession{
			detailed: true,
			entries: []domain.Entry{
				entry("  -rw-r--r--    2 me me      12 Oct 14 12:00 /data/a.txt", domain.EntryFile),
				entry("  -rw-r--r--    2 me me      12 Oct 14 12:00 /data/b c.txt", domain.EntryFile),
				entry("", domain.EntrySeparator),
				entry("  -rw-r--r--    1 me me     512 Oct 14 12:00 /data/x.bin", domain.EntryFile),
				entry("  -rw-r--r--    1 me me     512 Oct 14 12:00 /data/y.bin", domain.EntryFile),
				entry("", domain.EntrySeparator),
				entry("  fdupes finished at Wed Oct 14 12:00:01", domain.EntrySummary),
			},
		}
		server := newTestServer(t, session, nil)

		_, output, err := server.handleFind(ctx, nil, FindInput{Directories: []string{"/data"}})

		require.NoError(t, err)
		assert.Equal(t, "fdupes -r /data/ | ls -ld", output.Command)
		assert.Equal(t, domain.StatusExited, output.Status)
		assert.Equal(t, [][]string{
			{"/data/a.txt", "/data/b c.txt"},
			{"/data/x.bin", "/data/y.bin"},
		}, output.Groups)
		assert.Equal(t, 4, output.Files)
		assert.Equal(t, "fdupes finished at Wed Oct 14 12:00:01", output.Summary)
		assert.True(t, session.closed)
	})

	t.Run("passes search parameters", func(t *testing.T) {
		session := &mockSession{}
		server := newTestServer(t, session, nil)

		input := FindInput{
			Directories: []string{"/a", "/b"},
			Flags:       []string{"-S"},
			Size:        "+1M",
			ExtraArgs:   "-n",
		}
		_, _, err := server.handleFind(ctx, nil, input)

		require.NoError(t, err)
		require.NotNil(t, session.request)
		assert.Equal(t, []string{"/a", "/b"}, session.request.Directories)
		assert.Equal(t, []string{"-S"}, session.request.Flags)
		assert.Equal(t, "+1M", session.request.Size)
		assert.Equal(t, "-n", session.request.ExtraArgs)
	})

	t.Run("omitted flags select defaults", func(t *testing.T) {
		session := &mockSession{}
		server := newTestServer(t, session, nil)

		_, output, err := server.handleFind(ctx, nil, FindInput{Directories: []string{"/a"}})

		require.NoError(t, err)
		assert.Nil(t, session.request.Flags)
		assert.Empty(t, output.Groups)
		assert.NotNil(t, output.Groups)
	})

	t.Run("returns error when the search cannot start", func(t *testing.T) {
		session := &mockSession{beginErr: &domain.NotADirectoryError{Path: "/nope"}}
		server := newTestServer(t, session, nil)

		_, _, err := server.handleFind(ctx, nil, FindInput{Directories: []string{"/nope"}})

		var notDir *domain.NotADirectoryError
		require.ErrorAs(t, err, &notDir)
		assert.True(t, session.closed)
	})

	t.Run("returns error when waiting is cancelled", func(t *testing.T) {
		session := &mockSession{waitErr: context.Canceled}
		server := newTestServer(t, session, nil)

		_, _, err := server.handleFind(ctx, nil, FindInput{Directories: []string{"/a"}})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestServer_handleHistory(t *testing.T) {
	ctx := context.Background()
	finished := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	t.Run("returns recorded runs", func(t *testing.T) {
		history := &mockHistoryService{runs: []domain.RunRecord{{
			ID:         "run-1",
			Search:     domain.SearchState{Directories: []string{"/data/"}},
			Command:    "fdupes -r /data/",
			Status:     domain.ExitStatus{Code: 1},
			Entries:    7,
			FinishedAt: finished,
		}}}
		server := newTestServer(t, &mockSession{}, history)

		_, output, err := server.handleHistory(ctx, nil, HistoryInput{Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 5, history.limit)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Runs, 1)
		assert.Equal(t, "run-1", output.Runs[0].ID)
		assert.Equal(t, []string{"/data/"}, output.Runs[0].Directories)
		assert.Equal(t, "exited abnormally with code 1", output.Runs[0].Status)
		assert.Equal(t, 7, output.Runs[0].Entries)
		assert.Equal(t, "2026-10-14T12:00:00Z", output.Runs[0].FinishedAt)
	})

	t.Run("no history service returns empty list", func(t *testing.T) {
		server := newTestServer(t, &mockSession{}, nil)

		_, output, err := server.handleHistory(ctx, nil, HistoryInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Runs)
	})

	t.Run("returns error on history failure", func(t *testing.T) {
		server := newTestServer(t, &mockSession{}, &mockHistoryService{err: errors.New("db locked")})

		_, _, err := server.handleHistory(ctx, nil, HistoryInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "db locked")
	})
}
