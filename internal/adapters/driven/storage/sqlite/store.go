// Package sqlite implements the document store on SQLite via the pure-Go
// modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is the SQLite-backed document store. It owns three tables:
// documents, chunks, and doc_index (the per-document centroid index).
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docchat/data/library.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docchat", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")

	// WAL mode for better concurrency between reads and the single writer.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
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
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// InsertDocument stores a document, replacing any existing row with the
// same id in full.
func (s *Store) InsertDocument(ctx context.Context, doc domain.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, size, chunk_count, date, type)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			size = excluded.size,
			chunk_count = excluded.chunk_count,
			date = excluded.date,
			type = excluded.type
	`, doc.ID, doc.Title, doc.Size, doc.ChunkCount, doc.Date, string(doc.Type))
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// UpdateDocumentChunkCount sets the chunk count of a document.
func (s *Store) UpdateDocumentChunkCount(ctx context.Context, id string, n int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE documents SET chunk_count = ? WHERE id = ?", n, id)
	if err != nil {
		return fmt.Errorf("updating chunk count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating chunk count: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// InsertChunk stores a chunk, replacing any existing row with the same id.
func (s *Store) InsertChunk(ctx context.Context, chunk domain.Chunk) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, document_id, seq, content, embedding)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_id = excluded.document_id,
			seq = excluded.seq,
			content = excluded.content,
			embedding = excluded.embedding
	`, chunk.ID, chunk.DocumentID, chunk.Seq, chunk.Content, chunk.Embedding)
	if err != nil {
		return fmt.Errorf("inserting chunk: %w", err)
	}
	return nil
}

// ListDocuments returns all documents ordered by descending date.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, size, chunk_count, date, type
		FROM documents ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		var docType string
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Size, &doc.ChunkCount, &doc.Date, &docType); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Type = domain.DocType(docType)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// GetDocumentByID retrieves a document, or domain.ErrNotFound.
func (s *Store) GetDocumentByID(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, size, chunk_count, date, type
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	var docType string
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Size, &doc.ChunkCount, &doc.Date, &docType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	doc.Type = domain.DocType(docType)
	return &doc, nil
}

// DeleteDocument removes the document, all its chunks, and its centroid
// entry in one transaction. Deleting an unknown id is not an error.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", id); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM doc_index WHERE document_id = ?", id); err != nil {
		return fmt.Errorf("deleting centroid: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

// ChunksForDocument returns a document's chunks in insertion order.
func (s *Store) ChunksForDocument(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, seq, content, embedding
		FROM chunks WHERE document_id = ? ORDER BY seq
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var chunk domain.Chunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Seq, &chunk.Content, &chunk.Embedding); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// filterClauses translates a SearchFilter into a WHERE fragment over the
// joined documents alias d. Zero values add no predicate.
func filterClauses(filter domain.SearchFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.DocType != "" {
		conds = append(conds, "d.type = ?")
		args = append(args, string(filter.DocType))
	}
	if filter.DateStart != 0 {
		conds = append(conds, "d.date >= ?")
		args = append(args, filter.DateStart)
	}
	if filter.DateEnd != 0 {
		conds = append(conds, "d.date <= ?")
		args = append(args, filter.DateEnd)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// SearchChunks returns chunks joined with parent document metadata for
// every document passing the filter, ordered by descending document date.
func (s *Store) SearchChunks(ctx context.Context, filter domain.SearchFilter) ([]domain.ChunkWithDoc, error) {
	where, args := filterClauses(filter)
	query := `
		SELECT c.id, c.document_id, c.seq, c.content, c.embedding, d.date, d.type
		FROM chunks c
		JOIN documents d ON d.id = c.document_id` + where + `
		ORDER BY d.date DESC, c.seq`
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.ChunkWithDoc
	for rows.Next() {
		var cwd domain.ChunkWithDoc
		var docType string
		if err := rows.Scan(&cwd.ID, &cwd.DocumentID, &cwd.Seq, &cwd.Content, &cwd.Embedding, &cwd.DocDate, &docType); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		cwd.DocType = domain.DocType(docType)
		results = append(results, cwd)
	}
	return results, rows.Err()
}

// UpsertDocCentroid stores or replaces a document's centroid entry.
func (s *Store) UpsertDocCentroid(ctx context.Context, documentID, centroid string, chunkCount int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO doc_index (document_id, centroid, chunk_count)
		VALUES (?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			centroid = excluded.centroid,
			chunk_count = excluded.chunk_count
	`, documentID, centroid, chunkCount)
	if err != nil {
		return fmt.Errorf("upserting centroid: %w", err)
	}
	return nil
}

// DeleteDocCentroid removes a document's centroid entry.
func (s *Store) DeleteDocCentroid(ctx context.Context, documentID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM doc_index WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("deleting centroid: %w", err)
	}
	return nil
}

// CentroidsForFilter returns centroid entries whose parent document passes
// the filter, ordered by descending document date.
func (s *Store) CentroidsForFilter(ctx context.Context, filter domain.SearchFilter) ([]domain.DocCentroid, error) {
	where, args := filterClauses(filter)
	query := `
		SELECT i.document_id, i.centroid, i.chunk_count
		FROM doc_index i
		JOIN documents d ON d.id = i.document_id` + where + `
		ORDER BY d.date DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying centroids: %w", err)
	}
	defer rows.Close()

	var centroids []domain.DocCentroid
	for rows.Next() {
		var c domain.DocCentroid
		if err := rows.Scan(&c.DocumentID, &c.Centroid, &c.ChunkCount); err != nil {
			return nil, fmt.Errorf("scanning centroid: %w", err)
		}
		centroids = append(centroids, c)
	}
	return centroids, rows.Err()
}

// RebuildDocIndex recomputes every document's centroid from its persisted
// chunk embeddings, replacing the whole index in one transaction.
func (s *Store) RebuildDocIndex(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT document_id, embedding FROM chunks ORDER BY document_id, seq")
	if err != nil {
		return fmt.Errorf("querying chunk embeddings: %w", err)
	}

	type acc struct {
		sum []float64
		n   int
	}
	sums := make(map[string]*acc)
	var order []string
	for rows.Next() {
		var docID, embedding string
		if err := rows.Scan(&docID, &embedding); err != nil {
			rows.Close()
			return fmt.Errorf("scanning embedding: %w", err)
		}
		vec, err := domain.DecodeVector(embedding)
		if err != nil {
			rows.Close()
			return fmt.Errorf("decoding embedding of document %s: %w", docID, err)
		}
		a, ok := sums[docID]
		if !ok {
			a = &acc{sum: make([]float64, len(vec))}
			sums[docID] = a
			order = append(order, docID)
		}
		for j := 0; j < len(a.sum) && j < len(vec); j++ {
			a.sum[j] += vec[j]
		}
		a.n++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("reading chunk embeddings: %w", err)
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, "DELETE FROM doc_index"); err != nil {
		return fmt.Errorf("clearing doc index: %w", err)
	}
	for _, docID := range order {
		a := sums[docID]
		centroid := make([]float64, len(a.sum))
		for j, v := range a.sum {
			centroid[j] = v / float64(a.n)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO doc_index (document_id, centroid, chunk_count)
			VALUES (?, ?, ?)
		`, docID, domain.EncodeVector(centroid), a.n); err != nil {
			return fmt.Errorf("inserting centroid for %s: %w", docID, err)
		}
	}
	return tx.Commit()
}
