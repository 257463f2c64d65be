package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AchievementUsecase struct {
	achievementRepo repo.AchievementRepository
}

func NewAchievementUsecase(achievementRepo repo.AchievementRepository) *AchievementUsecase {
	return &AchievementUsecase{achievementRepo: achievementRepo}
}

type AchievementInput struct {
	Title        string
	Description  string
	ImageURL     string
	Year         string
	DisplayOrder int64
	IsActive     bool
}

// 公開側はis_activeのみをdisplay_order順で返す。
func (u *AchievementUsecase) ListPublic(ctx context.Context) ([]model.Achievement, error) {
	items, err := u.achievementRepo.ListActive(ctx)
	if err != nil {
		return []model.Achievement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *AchievementUsecase) AdminList(ctx context.Context) ([]model.Achievement, error) {
	items, err := u.achievementRepo.ListAll(ctx)
	if err != nil {
		return []model.Achievement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *AchievementUsecase) AdminCreate(ctx context.Context, in AchievementInput) (model.Achievement, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Achievement{}, NewHTTPError(http.StatusBadRequest, "title is required")
	}

	created, err := u.achievementRepo.Create(ctx, model.Achievement{
		Title:        in.Title,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		Year:         in.Year,
		DisplayOrder: in.DisplayOrder,
		IsActive:     in.IsActive,
	})
	if err != nil {
		return model.Achievement{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AchievementUsecase) AdminDelete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.achievementRepo.DeleteByID(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
