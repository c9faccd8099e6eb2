package mcp

import (
	"context"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results  []domain.SearchResult
	dates    []string
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockQueryService) Search(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockQueryService) ListDates(_ context.Context) ([]string, error) {
	return m.dates, m.err
}

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer *domain.Answer
	err    error
	lastK  int
}

func (m *mockAnswerService) Answer(_ context.Context, _ string, k int) (*domain.Answer, error) {
	m.lastK = k
	return m.answer, m.err
}

// mockAdminService is a mock implementation of driving.AdminService.
type mockAdminService struct {
	entries []domain.EntrySummary
	stats   *domain.IndexStats
	err     error
}

func (m *mockAdminService) ListEntries(_ context.Context) ([]domain.EntrySummary, error) {
	return m.entries, m.err
}

func (m *mockAdminService) Stats(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockAdminService) DeleteEntry(_ context.Context, _ string) (int, error) {
	return 0, m.err
}

func (m *mockAdminService) Clear(_ context.Context, _ string) (int, error) {
	return 0, m.err
}

func testPorts() *Ports {
	return &Ports{
		Query: &mockQueryService{
			results: []domain.SearchResult{
				{Text: "walked along the harbour wall", EntryDate: "2024-02-10", ChunkIndex: 0, Score: 0.91},
				{Text: "rain all afternoon", EntryDate: "2024-02-09", ChunkIndex: 1, Score: 0.72},
			},
		},
		Answer: &mockAnswerService{
			answer: &domain.Answer{
				Text:        "You walked along the harbour wall.",
				Synthesized: true,
				Citations: []domain.Citation{
					{EntryDate: "2024-02-10", ChunkIndex: 0, Excerpt: "walked along the harbour wall"},
				},
			},
		},
		Admin: &mockAdminService{
			entries: []domain.EntrySummary{{Date: "2024-02-10", Chunks: 1, WordCount: 5}},
			stats:   &domain.IndexStats{Entries: 1, Chunks: 1, Words: 5, FirstDate: "2024-02-10", LastDate: "2024-02-10"},
		},
	}
}
