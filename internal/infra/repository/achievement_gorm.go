package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type AchievementGormRepository struct {
	db *gorm.DB
}

func NewAchievementGormRepository(db *gorm.DB) *AchievementGormRepository {
	return &AchievementGormRepository{db: db}
}

func (r *AchievementGormRepository) ListActive(ctx context.Context) ([]model.Achievement, error) {
	var items []model.Achievement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order asc").
		Find(&items).Error
	if err != nil {
		return []model.Achievement{}, err
	}
	return items, nil
}

func (r *AchievementGormRepository) ListAll(ctx context.Context) ([]model.Achievement, error) {
	var items []model.Achievement
	err := r.db.WithContext(ctx).
		Order("display_order asc").
		Find(&items).Error
	if err != nil {
		return []model.Achievement{}, err
	}
	return items, nil
}

func (r *AchievementGormRepository) Create(ctx context.Context, a model.Achievement) (model.Achievement, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.Achievement{}, err
	}
	return a, nil
}

func (r *AchievementGormRepository) Update(ctx context.Context, a model.Achievement) error {
	res := r.db.WithContext(ctx).Model(&model.Achievement{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"title":         a.Title,
			"description":   a.Description,
			"image_url":     a.ImageURL,
			"year":          a.Year,
			"display_order": a.DisplayOrder,
			"is_active":     a.IsActive,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AchievementGormRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Achievement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
