package repository

import (
	"app/internal/domain/model"
	"context"
)

type AuditLogFilter struct {
	Page         int
	Limit        int
	Action       string
	ResourceType string
	ActorUserID  *int64
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
