// Package repository defines persistence interfaces for the domain model.
package repository

import (
	"context"

	"github.com/mattmireles/Hyperchat-sub000/internal/domain/entity"
)

// PromptRepository stores shared-prompt submissions.
type PromptRepository interface {
	// SavePrompt persists one submission and returns it with its assigned ID.
	SavePrompt(ctx context.Context, record entity.PromptRecord) (entity.PromptRecord, error)
	// Recent returns the most recent submissions, newest first.
	Recent(ctx context.Context, limit int) ([]entity.PromptRecord, error)
	// DeleteOlderThan removes submissions older than the given number of
	// days and returns how many were deleted.
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}
