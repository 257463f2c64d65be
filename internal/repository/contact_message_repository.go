package repository

import (
	"app/internal/domain/model"
	"context"
)

type ContactMessageRepository interface {
	Create(ctx context.Context, m model.ContactMessage) (int64, error)
	List(ctx context.Context, page int, limit int) ([]model.ContactMessage, int64, error)
	MarkRead(ctx context.Context, messageID int64) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}
