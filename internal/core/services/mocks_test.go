package services

import (
	"context"
	"sort"
	"sync"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
)

// mockEntrySource is a mock implementation of driven.EntrySource.
type mockEntrySource struct {
	entries []domain.Entry
	err     error
}

func (m *mockEntrySource) ListEntries(_ context.Context) ([]domain.Entry, error) {
	return m.entries, m.err
}

// mockEmbeddingService is a mock implementation of driven.EmbeddingService.
// By default it returns a fixed-size vector whose first element encodes the
// text length, which is deterministic and cheap.
type mockEmbeddingService struct {
	failOn map[string]error
	err    error
	calls  int
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if err, ok := m.failOn[text]; ok {
		return nil, err
	}
	return []float32{float32(len(text)), 1, 0}, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int          { return 3 }
func (m *mockEmbeddingService) ModelName() string        { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error             { return nil }

// mockLLMService is a mock implementation of driven.LLMService.
type mockLLMService struct {
	response   string
	err        error
	lastPrompt string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string            { return "mock-llm" }
func (m *mockLLMService) Ping(_ context.Context) error { return nil }
func (m *mockLLMService) Close() error                 { return nil }

// mockVectorIndex is an in-memory mock of driven.VectorIndex with failure
// injection. Query scores each record by the first element of its stored
// embedding so tests can dictate the ranking directly.
type mockVectorIndex struct {
	mu      sync.Mutex
	records map[string]domain.IndexRecord

	upsertErr      func(domain.IndexRecord) error
	deleteWhereErr error
	listErr        error
	countErr       error
	queryErr       error

	// ignoreFilter makes Query behave like an index that cannot push the
	// filter down and returns unfiltered neighbours.
	ignoreFilter bool

	// queryFetches records the k passed to each Query call.
	queryFetches []int
}

func newMockVectorIndex() *mockVectorIndex {
	return &mockVectorIndex{records: make(map[string]domain.IndexRecord)}
}

func (m *mockVectorIndex) add(date string, index int, text string, score float32, words int) {
	m.records[domain.RecordID(date, index)] = domain.IndexRecord{
		ID:        domain.RecordID(date, index),
		Text:      text,
		Embedding: []float32{score, 0, 0},
		Meta: domain.RecordMeta{
			EntryDate:  date,
			ChunkIndex: index,
			WordCount:  words,
		},
	}
}

func (m *mockVectorIndex) Upsert(_ context.Context, rec domain.IndexRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		if err := m.upsertErr(rec); err != nil {
			return err
		}
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *mockVectorIndex) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, id)
	return nil
}

func (m *mockVectorIndex) DeleteWhere(_ context.Context, filter driven.MetaFilter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteWhereErr != nil {
		return 0, m.deleteWhereErr
	}
	removed := 0
	for id, rec := range m.records {
		if filter.Matches(rec.Meta.EntryDate) {
			delete(m.records, id)
			removed++
		}
	}
	return removed, nil
}

func (m *mockVectorIndex) Query(_ context.Context, _ []float32, k int, filter driven.MetaFilter) ([]driven.VectorHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	m.queryFetches = append(m.queryFetches, k)

	hits := make([]driven.VectorHit, 0, len(m.records))
	for _, rec := range m.records {
		if !m.ignoreFilter && !filter.Matches(rec.Meta.EntryDate) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ID:    rec.ID,
			Text:  rec.Text,
			Meta:  rec.Meta,
			Score: float64(rec.Embedding[0]),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (m *mockVectorIndex) List(_ context.Context) ([]domain.RecordMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	metas := make([]domain.RecordMeta, 0, len(m.records))
	for _, rec := range m.records {
		metas = append(metas, rec.Meta)
	}
	return metas, nil
}

func (m *mockVectorIndex) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.records), nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockSnapshotter is a mock implementation of driven.Snapshotter.
type mockSnapshotter struct {
	backups []string
	err     error
}

func (m *mockSnapshotter) Backup(reason string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.backups = append(m.backups, reason)
	return "/tmp/backup_" + reason + ".db", nil
}

func (m *mockSnapshotter) Restore(_ string) error { return m.err }

func (m *mockSnapshotter) ListBackups() ([]driven.BackupInfo, error) {
	return nil, m.err
}
