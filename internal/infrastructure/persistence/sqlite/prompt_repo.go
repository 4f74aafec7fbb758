package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
	"github.com/mattmireles/Hyperchat-sub000/internal/domain/repository"
)

// PromptRepo is the SQLite implementation of repository.PromptRepository.
type PromptRepo struct {
	db *sql.DB
}

var _ repository.PromptRepository = (*PromptRepo)(nil)

// NewPromptRepo creates a prompt repository over db.
func NewPromptRepo(db *sql.DB) *PromptRepo {
	return &PromptRepo{db: db}
}

// SavePrompt persists one submission and returns it with its assigned ID.
func (r *PromptRepo) SavePrompt(ctx context.Context, record entity.PromptRecord) (entity.PromptRecord, error) {
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = time.Now()
	}
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO prompts (text, mode, submitted_at) VALUES (?, ?, ?)",
		record.Text, record.Mode.String(), record.SubmittedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return entity.PromptRecord{}, fmt.Errorf("insert prompt: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return entity.PromptRecord{}, fmt.Errorf("prompt insert id: %w", err)
	}
	record.ID = id
	return record, nil
}

// Recent returns the most recent submissions, newest first.
func (r *PromptRepo) Recent(ctx context.Context, limit int) ([]entity.PromptRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, text, mode, submitted_at FROM prompts ORDER BY submitted_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []entity.PromptRecord
	for rows.Next() {
		var (
			rec     entity.PromptRecord
			mode    string
			rawTime string
		)
		if err := rows.Scan(&rec.ID, &rec.Text, &mode, &rawTime); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		rec.Mode = parseMode(mode)
		rec.SubmittedAt = parseTime(rawTime)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prompts: %w", err)
	}
	return records, nil
}

// DeleteOlderThan removes submissions older than the given number of days.
func (r *PromptRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -days).UTC().Format(time.RFC3339Nano)
	result, err := r.db.ExecContext(ctx, "DELETE FROM prompts WHERE submitted_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old prompts: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted prompts: %w", err)
	}
	return deleted, nil
}

func parseMode(raw string) entity.PromptMode {
	if raw == entity.PromptReplyToAll.String() {
		return entity.PromptReplyToAll
	}
	return entity.PromptNewThread
}

func parseTime(raw string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	// CURRENT_TIMESTAMP default stores this format.
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t
	}
	return time.Time{}
}
