// Package sqlite provides the persistent vector index backed by SQLite.
// Embeddings are stored as little-endian float32 blobs; similarity search
// is a cosine scan over the candidate rows, with metadata filters applied
// in SQL before scoring.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/quillstone-labs/daybook-cli/internal/adapters/driven/vector/sqlite/migrations"
	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
)

// Ensure Index implements the interfaces.
var (
	_ driven.VectorIndex = (*Index)(nil)
	_ driven.Snapshotter = (*Index)(nil)
)

// DBFileName is the index database file name inside the data directory.
const DBFileName = "index.db"

// Index is a SQLite-backed vector index.
type Index struct {
	db   *sql.DB
	path string
}

// NewIndex opens (or creates) the vector index in the given data
// directory. If dataDir is empty, defaults to ~/.daybook/data.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".daybook", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	// WAL mode for readers concurrent with the single writer.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{
		db:   db,
		path: dbPath,
	}

	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return idx, nil
}

// Close closes the database connection.
func (i *Index) Close() error {
	return i.db.Close()
}

// Path returns the database file path.
func (i *Index) Path() string {
	return i.path
}

// migrate runs all pending migrations.
func (i *Index) migrate(fsys embed.FS) error {
	_, err := i.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := i.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := i.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := i.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Upsert inserts or replaces the record at rec.ID.
func (i *Index) Upsert(ctx context.Context, rec domain.IndexRecord) error {
	if err := domain.ValidateIdentity(rec.Meta.EntryDate, rec.Meta.ChunkIndex); err != nil {
		return err
	}

	_, err := i.db.ExecContext(ctx, `
		INSERT INTO records (id, entry_date, chunk_index, word_count, source_path, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entry_date = excluded.entry_date,
			chunk_index = excluded.chunk_index,
			word_count = excluded.word_count,
			source_path = excluded.source_path,
			content = excluded.content,
			embedding = excluded.embedding
	`, rec.ID, rec.Meta.EntryDate, rec.Meta.ChunkIndex, rec.Meta.WordCount,
		rec.Meta.SourcePath, rec.Text, float32SliceToBytes(rec.Embedding))

	if err != nil {
		return fmt.Errorf("upserting record: %w", err)
	}
	return nil
}

// Delete removes the record with the given identity.
func (i *Index) Delete(ctx context.Context, id string) error {
	if _, _, err := domain.ParseRecordID(id); err != nil {
		return err
	}

	if _, err := i.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	return nil
}

// DeleteWhere removes every record matching the filter.
func (i *Index) DeleteWhere(ctx context.Context, filter driven.MetaFilter) (int, error) {
	where, args := filterClause(filter)

	res, err := i.db.ExecContext(ctx, "DELETE FROM records"+where, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting records: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted records: %w", err)
	}
	return int(removed), nil
}

// Query returns the k nearest neighbours by cosine similarity. The
// metadata filter is applied in the SQL WHERE clause, before scoring, so
// a date-constrained query can never be starved by unrelated records.
func (i *Index) Query(ctx context.Context, vector []float32, k int, filter driven.MetaFilter) ([]driven.VectorHit, error) {
	where, args := filterClause(filter)

	rows, err := i.db.QueryContext(ctx, `
		SELECT id, entry_date, chunk_index, word_count, source_path, content, embedding
		FROM records`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var hits []driven.VectorHit
	for rows.Next() {
		var hit driven.VectorHit
		var blob []byte
		if err := rows.Scan(&hit.ID, &hit.Meta.EntryDate, &hit.Meta.ChunkIndex,
			&hit.Meta.WordCount, &hit.Meta.SourcePath, &hit.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		hit.Score = cosine(vector, bytesToFloat32Slice(blob))
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	sort.Slice(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// List returns the metadata of every record.
func (i *Index) List(ctx context.Context) ([]domain.RecordMeta, error) {
	rows, err := i.db.QueryContext(ctx, `
		SELECT entry_date, chunk_index, word_count, source_path FROM records
	`)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var metas []domain.RecordMeta
	for rows.Next() {
		var meta domain.RecordMeta
		if err := rows.Scan(&meta.EntryDate, &meta.ChunkIndex, &meta.WordCount, &meta.SourcePath); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		metas = append(metas, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metadata: %w", err)
	}

	return metas, nil
}

// Count returns the number of records in the index.
func (i *Index) Count(ctx context.Context) (int, error) {
	var count int
	row := i.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return count, nil
}

// filterClause builds the WHERE clause for a metadata filter.
func filterClause(filter driven.MetaFilter) (string, []any) {
	if filter.Date != "" {
		return " WHERE entry_date = ?", []any{filter.Date}
	}
	if filter.Range == nil {
		return "", nil
	}

	// Either bound of the range may be open.
	var conds []string
	var args []any
	if filter.Range.Start != "" {
		conds = append(conds, "entry_date >= ?")
		args = append(args, filter.Range.Start)
	}
	if filter.Range.End != "" {
		conds = append(conds, "entry_date <= ?")
		args = append(args, filter.Range.End)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// cosine computes the cosine similarity between two vectors.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// float32SliceToBytes converts a float32 slice to a little-endian byte blob.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte blob back to a []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
