package usecase

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ContactUsecase struct {
	contactRepo repo.ContactMessageRepository
}

func NewContactUsecase(contactRepo repo.ContactMessageRepository) *ContactUsecase {
	return &ContactUsecase{contactRepo: contactRepo}
}

type SubmitMessageInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

var contactEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 問い合わせフォームの受付。認証は不要。
func (u *ContactUsecase) Submit(ctx context.Context, in SubmitMessageInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if !contactEmailRe.MatchString(strings.TrimSpace(in.Email)) {
		return NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if strings.TrimSpace(in.Message) == "" {
		return NewHTTPError(http.StatusBadRequest, "message is required")
	}

	if _, err := u.contactRepo.Create(ctx, model.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   in.Phone,
		Subject: in.Subject,
		Message: in.Message,
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type MessageListOutput struct {
	Items []model.ContactMessage `json:"items"`
	Total int64                  `json:"total"`
}

func (u *ContactUsecase) AdminList(ctx context.Context, page int, limit int) (MessageListOutput, error) {
	if page < 1 {
		return MessageListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return MessageListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.contactRepo.List(ctx, page, limit)
	if err != nil {
		return MessageListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return MessageListOutput{Items: items, Total: total}, nil
}

func (u *ContactUsecase) AdminMarkRead(ctx context.Context, messageID int64) error {
	if messageID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.contactRepo.MarkRead(ctx, messageID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
