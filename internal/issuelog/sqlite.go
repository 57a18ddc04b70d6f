package issuelog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spacesedan/reviewlens/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS issue_log (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	review     TEXT NOT NULL,
	issues     TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type SQLiteBackend struct {
	db *sqlx.DB
}

type sqliteRow struct {
	Seq       int64     `db:"seq"`
	ID        string    `db:"id"`
	Review    string    `db:"review"`
	Issues    string    `db:"issues"`
	CreatedAt time.Time `db:"created_at"`
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("[SQLiteBackend] failed to open %s: %w", path, err)
	}
	// One connection keeps sqlite writers strictly serialized.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("[SQLiteBackend] failed to apply schema: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Name() string { return "sqlite" }

func (s *SQLiteBackend) Put(ctx context.Context, entry models.IssueLogEntry) (models.IssueLogEntry, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO issue_log (id, review, issues, created_at) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.Review, strings.Join(models.IssueTagStrings(entry.Issues), ","), entry.CreatedAt,
	)
	if err != nil {
		return entry, fmt.Errorf("[SQLiteBackend] insert failed: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return entry, fmt.Errorf("[SQLiteBackend] failed to read seq: %w", err)
	}
	entry.Seq = seq
	return entry, nil
}

func (s *SQLiteBackend) List(ctx context.Context) ([]models.IssueLogEntry, error) {
	var rows []sqliteRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT seq, id, review, issues, created_at FROM issue_log ORDER BY seq ASC`); err != nil {
		return nil, fmt.Errorf("[SQLiteBackend] select failed: %w", err)
	}

	entries := make([]models.IssueLogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.IssueLogEntry{
			ID:        row.ID,
			Seq:       row.Seq,
			Review:    row.Review,
			Issues:    models.ParseIssueTags(strings.Split(row.Issues, ",")),
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return entries, nil
}

func (s *SQLiteBackend) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
