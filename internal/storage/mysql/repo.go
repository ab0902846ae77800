// Package mysql persists the console's mutation audit trail.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"unicode/utf8"

	_ "github.com/go-sql-driver/mysql"

	"hosfind_admin/internal/domain"
)

// messages longer than the column are cut rather than rejected
const maxMessageLen = 512

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func valInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *Repo) RecordMutation(ctx context.Context, e domain.AuditEntry) error {
	msg := truncate(e.Message, maxMessageLen)
	_, err := r.db.ExecContext(ctx, insertMutationSQL,
		string(e.Kind),
		valStr(e.EntityID),
		e.Action,
		e.Outcome,
		valInt(e.Status),
		valStr(msg),
	)
	if err != nil {
		return fmt.Errorf("record %s %s: %w", e.Action, e.Kind, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.AuditRecord, error) {
	rows, err := r.db.QueryContext(ctx, recentMutationsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.AuditRecord{}
	for rows.Next() {
		var (
			rec      domain.AuditRecord
			kind     string
			entityID sql.NullString
			status   sql.NullInt64
			message  sql.NullString
		)
		if err := rows.Scan(
			&rec.ID,
			&kind,
			&entityID,
			&rec.Action,
			&rec.Outcome,
			&status,
			&message,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Kind = domain.Kind(kind)
		rec.EntityID = entityID.String
		rec.Status = int(status.Int64)
		rec.Message = message.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
