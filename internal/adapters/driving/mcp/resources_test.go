package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
)

func TestExtractRunID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid run URI",
			uri:      "dupes://runs/run-123",
			expected: "run-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://runs/run-123",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "dupes://runs/run-123/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractRunID(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns runs as JSON", func(t *testing.T) {
		history := &mockHistoryService{runs: []domain.RunRecord{
			{ID: "run-1", Command: "fdupes -r /a/"},
			{ID: "run-2", Command: "fdupes /b/"},
		}}
		server := newTestServer(t, &mockSession{}, history)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("dupes://history"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "dupes://history", result.Contents[0].URI)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var runs []domain.RunRecord
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &runs))
		require.Len(t, runs, 2)
		assert.Equal(t, "run-1", runs[0].ID)
		assert.Equal(t, 0, history.limit)
	})

	t.Run("no history service returns empty array", func(t *testing.T) {
		server := newTestServer(t, &mockSession{}, nil)

		result, err := server.handleHistoryResource(ctx, makeReadResourceRequest("dupes://history"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on history failure", func(t *testing.T) {
		server := newTestServer(t, &mockSession{}, &mockHistoryService{err: errors.New("db locked")})

		_, err := server.handleHistoryResource(ctx, makeReadResourceRequest("dupes://history"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing runs")
	})
}

func TestServer_handleRunResource(t *testing.T) {
	ctx := context.Background()
	history := &mockHistoryService{runs: []domain.RunRecord{{
		ID:     "run-1",
		Search: domain.SearchState{Directories: []string{"/a/"}, ToggleFlags: []string{"-r"}},
	}}}

	t.Run("returns the run", func(t *testing.T) {
		server := newTestServer(t, &mockSession{}, history)

		result, err := server.handleRunResource(ctx, makeReadResourceRequest("dupes://runs/run-1"))

		require.NoError(t, err)
		var run domain.RunRecord
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &run))
		assert.Equal(t, "run-1", run.ID)
		assert.Equal(t, []string{"-r"}, run.Search.ToggleFlags)
	})

	t.Run("unknown run is not found", func(t *testing.T) {
		server := newTestServer(t, &mockSession{}, history)

		_, err := server.handleRunResource(ctx, makeReadResourceRequest("dupes://runs/missing"))

		require.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server := newTestServer(t, &mockSession{}, history)

		_, err := server.handleRunResource(ctx, makeReadResourceRequest("dupes://runs/"))

		require.Error(t, err)
	})

	t.Run("no history service is not found", func(t *testing.T) {
		server := newTestServer(t, &mockSession{}, nil)

		_, err := server.handleRunResource(ctx, makeReadResourceRequest("dupes://runs/run-1"))

		require.Error(t, err)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		server := newTestServer(t, &mockSession{}, &mockHistoryService{err: errors.New("db locked")})

		_, err := server.handleRunResource(ctx, makeReadResourceRequest("dupes://runs/run-1"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting run")
	})
}
