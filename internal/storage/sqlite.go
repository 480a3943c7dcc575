package storage

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/openshelf/colophon/internal/snapshot"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database holding an index over filtered rows.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the row index at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS rows (
			id INTEGER PRIMARY KEY,
			primary_author TEXT NOT NULL,
			title TEXT NOT NULL,
			year TEXT,
			journal TEXT,
			pdf_url TEXT,
			doi_url TEXT,
			full_json TEXT NOT NULL
		);

		-- Full-text search over the human-facing columns
		CREATE VIRTUAL TABLE IF NOT EXISTS rows_fts USING fts5(
			title,
			primary_author,
			journal,
			content='rows',
			content_rowid='id'
		);
	`
	_, err := db.Exec(schema)
	return err
}

// ImportCSV rebuilds the index from a filtered-rows CSV, replacing any
// previous contents. Returns the number of rows imported.
func (d *DB) ImportCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening rows file: %w", err)
	}
	defer f.Close()

	if _, err := d.db.Exec("DELETE FROM rows"); err != nil {
		return 0, fmt.Errorf("clearing rows table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM rows_fts"); err != nil {
		return 0, fmt.Errorf("clearing rows_fts table: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	rowStmt, err := tx.Prepare(`
		INSERT INTO rows (primary_author, title, year, journal, pdf_url, doi_url, full_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer rowStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO rows_fts (rowid, title, primary_author, journal)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	reader := NewRowReader(f)
	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", count+1, err)
		}

		res, err := rowStmt.Exec(row.PrimaryAuthor, row.Title, row.Year, row.Journal, row.PDF, row.DOI, row.FullJSON)
		if err != nil {
			return 0, fmt.Errorf("inserting row %d: %w", count+1, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("row id for row %d: %w", count+1, err)
		}
		if _, err := ftsStmt.Exec(id, row.Title, row.PrimaryAuthor, row.Journal); err != nil {
			return 0, fmt.Errorf("indexing row %d: %w", count+1, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	return count, nil
}

// Search runs a full-text query over the index and returns matching rows
// in relevance order.
func (d *DB) Search(query string, limit int) ([]snapshot.Row, error) {
	rows, err := d.db.Query(`
		SELECT r.primary_author, r.title, r.year, r.journal, r.pdf_url, r.doi_url, r.full_json
		FROM rows_fts f
		JOIN rows r ON r.id = f.rowid
		WHERE rows_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []snapshot.Row
	for rows.Next() {
		var row snapshot.Row
		if err := rows.Scan(&row.PrimaryAuthor, &row.Title, &row.Year, &row.Journal, &row.PDF, &row.DOI, &row.FullJSON); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Count returns the number of indexed rows.
func (d *DB) Count() (int, error) {
	var n int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM rows").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}
