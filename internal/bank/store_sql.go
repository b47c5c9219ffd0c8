package bank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/edukita/educbt-studio/internal/question"
	syncx "github.com/edukita/educbt-studio/internal/sync"
)

// SQLStore persists each workspace as one JSON document in the workspaces
// table and records every mutation in the event log. Works against sqlite
// or postgres, whichever db.Open was given.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	events *syncx.EventRepo
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver, events: syncx.NewEventRepo(db)}
}

func (s *SQLStore) Load(ctx context.Context, id string) ([]question.Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT questions_json FROM workspaces WHERE id=$1`, id)
	var qjson string
	if err := row.Scan(&qjson); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var qs []question.Question
	if err := json.Unmarshal([]byte(qjson), &qs); err != nil {
		return nil, fmt.Errorf("workspace %s: corrupt questions_json: %w", id, err)
	}
	return qs, nil
}

func (s *SQLStore) Replace(ctx context.Context, id, op string, fn Mutator) ([]question.Question, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var qs []question.Question
	var qjson string
	exists := true
	err = tx.QueryRowContext(ctx, `SELECT questions_json FROM workspaces WHERE id=$1`, id).Scan(&qjson)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		exists = false
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal([]byte(qjson), &qs); err != nil {
			return nil, fmt.Errorf("workspace %s: corrupt questions_json: %w", id, err)
		}
	}

	next := fn(qs)
	buf, err := json.Marshal(next)
	if err != nil {
		return nil, err
	}
	subject := ""
	if len(next) > 0 {
		subject = next[0].Subject
	}
	now := time.Now().Unix()
	if exists {
		_, err = tx.ExecContext(ctx,
			`UPDATE workspaces SET subject=$1, questions_json=$2, updated_at=$3 WHERE id=$4`,
			subject, string(buf), now, id)
	} else {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO workspaces (id, subject, questions_json, created_at, updated_at)
			 VALUES ($1,$2,$3,$4,$5)`,
			id, subject, string(buf), now, now)
	}
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// best-effort audit; a failed append must not undo the replace
	payload, _ := json.Marshal(map[string]int{"count": len(next)})
	_ = s.events.Append(ctx, syncx.Event{Type: op, Key: id, DataJSON: string(payload)})
	return next, nil
}

func (s *SQLStore) List(ctx context.Context) ([]WorkspaceSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, questions_json, updated_at FROM workspaces ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []WorkspaceSummary
	for rows.Next() {
		var id, qjson string
		var updatedAt int64
		if err := rows.Scan(&id, &qjson, &updatedAt); err != nil {
			return nil, err
		}
		var qs []question.Question
		if err := json.Unmarshal([]byte(qjson), &qs); err != nil {
			continue
		}
		out = append(out, summarize(id, qs, updatedAt))
	}
	return out, rows.Err()
}
