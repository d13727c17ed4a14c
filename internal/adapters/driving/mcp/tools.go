package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dupes-cli/internal/logger"
)

// FindInput is the input schema for the find_duplicates tool.
type FindInput struct {
	Directories []string `json:"directories" jsonschema:"directories to search for duplicate files"`
	Flags       []string `json:"flags,omitempty" jsonschema:"finder flags such as -r; omit to use the configured defaults"`
	Size        string   `json:"size,omitempty" jsonschema:"size filter passed to the finder as --size"`
	ExtraArgs   string   `json:"extra_args,omitempty" jsonschema:"extra finder arguments passed verbatim"`
}

// FindOutput is the output schema for the find_duplicates tool.
type FindOutput struct {
	Command string     `json:"command"`
	Status  string     `json:"status"`
	Groups  [][]string `json:"groups"`
	Files   int        `json:"files"`
	Summary string     `json:"summary"`
}

// HistoryInput is the input schema for the history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of runs to return (default history.limit)"`
}

// HistoryOutput is the output schema for the history tool.
type HistoryOutput struct {
	Runs  []RunOutput `json:"runs"`
	Count int         `json:"count"`
}

// RunOutput represents a single recorded run.
type RunOutput struct {
	ID          string   `json:"id"`
	Directories []string `json:"directories"`
	Command     string   `json:"command"`
	Status      string   `json:"status"`
	Entries     int      `json:"entries"`
	FinishedAt  string   `json:"finished_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_duplicates",
		Description: "Run fdupes/jdupes over directories and return the groups of duplicate files",
	}, s.handleFind)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "history",
		Description: "List recently finished duplicate searches",
	}, s.handleHistory)
}

// handleFind runs one search to completion.
func (s *Server) handleFind(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInput,
) (*mcp.CallToolResult, FindOutput, error) {
	c := &collector{}
	session := s.ports.NewSession(c)
	defer func() {
		if err := session.Close(context.Background()); err != nil {
			logger.Warn("closing session: %v", err)
		}
	}()

	req := driving.SearchRequest{
		Directories: input.Directories,
		ExtraArgs:   input.ExtraArgs,
		Size:        input.Size,
		Flags:       input.Flags,
	}
	if err := session.Begin(ctx, req, nil); err != nil {
		return nil, FindOutput{}, err
	}
	if err := session.Wait(ctx); err != nil {
		return nil, FindOutput{}, err
	}

	return nil, c.output(session.Detailed()), nil
}

// handleHistory handles the history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	output := HistoryOutput{Runs: []RunOutput{}}
	if s.ports.History == nil {
		return nil, output, nil
	}

	runs, err := s.ports.History.Recent(ctx, input.Limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	for i := range runs {
		output.Runs = append(output.Runs, runOutput(&runs[i]))
	}
	output.Count = len(output.Runs)
	return nil, output, nil
}

func runOutput(run *domain.RunRecord) RunOutput {
	return RunOutput{
		ID:          run.ID,
		Directories: run.Search.Directories,
		Command:     run.Command,
		Status:      run.StatusText(),
		Entries:     run.Entries,
		FinishedAt:  run.FinishedAt.Format(time.RFC3339),
	}
}
