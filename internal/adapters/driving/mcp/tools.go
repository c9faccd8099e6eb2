package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_journal tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find journal entries"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
	From  string `json:"from,omitempty" jsonschema:"earliest entry date to include, YYYY-MM-DD"`
	To    string `json:"to,omitempty" jsonschema:"latest entry date to include, YYYY-MM-DD"`
}

// SearchOutput is the output schema for the search_journal tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	EntryDate  string  `json:"entry_date"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
	Text       string  `json:"text"`
}

// AskInput is the input schema for the ask_journal tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the journal"`
	Context  int    `json:"context,omitempty" jsonschema:"number of journal chunks to retrieve as context (default 5)"`
}

// AskOutput is the output schema for the ask_journal tool.
type AskOutput struct {
	Answer      string           `json:"answer"`
	Synthesized bool             `json:"synthesized"`
	Citations   []CitationOutput `json:"citations"`
}

// CitationOutput identifies a journal chunk the answer drew from.
type CitationOutput struct {
	EntryDate  string `json:"entry_date"`
	ChunkIndex int    `json:"chunk_index"`
	Excerpt    string `json:"excerpt"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_journal",
		Description: "Search journal entries semantically, optionally within a date range",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_journal",
		Description: "Ask a question answered from the content of journal entries",
	}, s.handleAsk)
}

// handleSearch handles the search_journal tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	var dateRange *domain.DateRange
	if input.From != "" || input.To != "" {
		if input.From != "" && !domain.ValidDate(input.From) {
			return nil, SearchOutput{}, fmt.Errorf("invalid from date %q", input.From)
		}
		if input.To != "" && !domain.ValidDate(input.To) {
			return nil, SearchOutput{}, fmt.Errorf("invalid to date %q", input.To)
		}
		dateRange = &domain.DateRange{Start: input.From, End: input.To}
	}

	opts := domain.SearchOptions{K: limit, DateRange: dateRange}
	results, err := s.ports.Query.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			EntryDate:  results[i].EntryDate,
			ChunkIndex: results[i].ChunkIndex,
			Score:      results[i].Score,
			Text:       results[i].Text,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask_journal tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Answer == nil {
		return nil, AskOutput{}, errors.New("answer service is not configured")
	}

	k := input.Context
	if k <= 0 {
		k = 5
	}

	answer, err := s.ports.Answer.Answer(ctx, input.Question, k)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:      answer.Text,
		Synthesized: answer.Synthesized,
		Citations:   make([]CitationOutput, len(answer.Citations)),
	}
	for i, c := range answer.Citations {
		output.Citations[i] = CitationOutput{
			EntryDate:  c.EntryDate,
			ChunkIndex: c.ChunkIndex,
			Excerpt:    c.Excerpt,
		}
	}

	return nil, output, nil
}
