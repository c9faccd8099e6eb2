package cli

import (
	"context"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driving"
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
}

func (m *mockAnswerService) Answer(_ context.Context, _ string, _ int) (*domain.Answer, error) {
	return m.answer, m.err
}

// mockAdminService is a mock implementation of driving.AdminService.
type mockAdminService struct {
	entries     []domain.EntrySummary
	stats       *domain.IndexStats
	deleted     int
	cleared     int
	err         error
	lastConfirm string
}

func (m *mockAdminService) ListEntries(_ context.Context) ([]domain.EntrySummary, error) {
	return m.entries, m.err
}

func (m *mockAdminService) Stats(_ context.Context) (*domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockAdminService) DeleteEntry(_ context.Context, _ string) (int, error) {
	return m.deleted, m.err
}

func (m *mockAdminService) Clear(_ context.Context, confirm string) (int, error) {
	m.lastConfirm = confirm
	if confirm != driving.ClearConfirmation {
		return 0, domain.ErrConfirmationRequired
	}
	return m.cleared, m.err
}

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	result   *domain.IngestResult
	err      error
	lastOpts driving.IngestOptions
}

func (m *mockIngestor) Ingest(_ context.Context, opts driving.IngestOptions) (*domain.IngestResult, error) {
	m.lastOpts = opts
	return m.result, m.err
}

// mockSnapshotter is a mock implementation of driven.Snapshotter.
type mockSnapshotter struct {
	backups []driven.BackupInfo
	path    string
	err     error
}

func (m *mockSnapshotter) Backup(_ string) (string, error) {
	return m.path, m.err
}

func (m *mockSnapshotter) Restore(_ string) error {
	return m.err
}

func (m *mockSnapshotter) ListBackups() ([]driven.BackupInfo, error) {
	return m.backups, m.err
}

// setupTestServices installs mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldWired := servicesWired
	oldQuery := queryService
	oldAnswer := answerService
	oldAdmin := adminService
	oldIngest := ingestService
	oldSnapshot := snapshotter

	servicesWired = true

	queryService = &mockQueryService{
		results: []domain.SearchResult{
			{Text: "walked along the harbour wall", EntryDate: "2024-02-10", ChunkIndex: 0, Score: 0.91},
		},
		dates: []string{"2024-02-10"},
	}
	answerService = &mockAnswerService{
		answer: &domain.Answer{
			Text:        "You walked along the harbour wall.",
			Synthesized: true,
			Citations: []domain.Citation{
				{EntryDate: "2024-02-10", ChunkIndex: 0, Excerpt: "walked along the harbour wall"},
			},
		},
	}
	adminService = &mockAdminService{
		entries: []domain.EntrySummary{{Date: "2024-02-10", Chunks: 1, WordCount: 5}},
		stats:   &domain.IndexStats{Entries: 1, Chunks: 1, Words: 5, FirstDate: "2024-02-10", LastDate: "2024-02-10"},
		deleted: 1,
		cleared: 1,
	}
	ingestService = &mockIngestor{
		result: &domain.IngestResult{RunID: "run-1", Inserted: 2, Skipped: 1},
	}
	snapshotter = &mockSnapshotter{path: "/tmp/backup_test.db"}

	return func() {
		servicesWired = oldWired
		queryService = oldQuery
		answerService = oldAnswer
		adminService = oldAdmin
		ingestService = oldIngest
		snapshotter = oldSnapshot
	}
}
