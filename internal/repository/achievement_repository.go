package repository

import (
	"app/internal/domain/model"
	"context"
)

type AchievementRepository interface {
	ListActive(ctx context.Context) ([]model.Achievement, error)
	ListAll(ctx context.Context) ([]model.Achievement, error)
	Create(ctx context.Context, a model.Achievement) (model.Achievement, error)
	Update(ctx context.Context, a model.Achievement) error
	DeleteByID(ctx context.Context, id int64) error
}
