package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Journal records every issue and return in an in-memory SQLite database.
// Nothing is written to disk; the history lives as long as the process.
type Journal struct {
	db *sql.DB

	issueStmt *sql.Stmt
}

// NewJournal opens a fresh in-memory database, applies the schema and
// prepares common statements.
func NewJournal() (*Journal, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every :memory: connection is its own database, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	j := &Journal{db: db}
	if j.issueStmt, err = db.Prepare(`INSERT INTO loans(id,member_id,book_id,issued_at) VALUES(?,?,?,?)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return j, nil
}

// Close releases prepared statements and closes the DB.
func (j *Journal) Close() error {
	if j.issueStmt != nil {
		j.issueStmt.Close()
	}
	return j.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS loans (
            id TEXT PRIMARY KEY,
            member_id TEXT NOT NULL,
            book_id TEXT NOT NULL,
            issued_at DATETIME NOT NULL,
            returned_at DATETIME
        );`,
		`CREATE INDEX IF NOT EXISTS idx_loans_open ON loans(member_id, book_id, returned_at);`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Loans
// ---------------------------------------------------------------------------

// RecordIssue opens a new loan.
func (j *Journal) RecordIssue(ctx context.Context, memberID, bookID string, at time.Time) (Loan, error) {
	loan := Loan{
		ID:       uuid.New(),
		MemberID: memberID,
		BookID:   bookID,
		IssuedAt: at.UTC(),
	}
	if _, err := j.issueStmt.ExecContext(ctx, loan.ID, memberID, bookID, loan.IssuedAt); err != nil {
		return Loan{}, fmt.Errorf("record issue: %w", err)
	}
	return loan, nil
}

// RecordReturn closes the oldest open loan of bookID held by memberID.
func (j *Journal) RecordReturn(ctx context.Context, memberID, bookID string, at time.Time) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM loans
        WHERE member_id=? AND book_id=? AND returned_at IS NULL
        ORDER BY rowid LIMIT 1`, memberID, bookID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no open loan of book %q for member %q", bookID, memberID)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE loans SET returned_at=? WHERE id=?`, at.UTC(), id); err != nil {
		return err
	}
	return tx.Commit()
}

// History returns the member's loans in the order they were issued.
func (j *Journal) History(ctx context.Context, memberID string) ([]Loan, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT id,member_id,book_id,issued_at,returned_at
        FROM loans WHERE member_id=? ORDER BY rowid`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []Loan{}
	for rows.Next() {
		var (
			l        Loan
			returned sql.NullTime
		)
		if err := rows.Scan(&l.ID, &l.MemberID, &l.BookID, &l.IssuedAt, &returned); err != nil {
			return nil, err
		}
		if returned.Valid {
			t := returned.Time
			l.ReturnedAt = &t
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// OpenLoans counts loans that have not been returned.
func (j *Journal) OpenLoans(ctx context.Context) (int, error) {
	var n int
	err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM loans WHERE returned_at IS NULL`).Scan(&n)
	return n, err
}
