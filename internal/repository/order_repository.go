package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page          int
	Limit         int
	Status        string
	PaymentStatus string
	UserID        *int64
	From          *time.Time
	To            *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, bool, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error
	UpdatePaymentReference(ctx context.Context, orderID int64, ref string) error

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	//履歴削除の対象（ステータスで絞る）。Tx内で行ロックして取る。
	ListIDsByUserAndStatuses(ctx context.Context, userID int64, statuses []model.OrderStatus) ([]int64, error)
	//削除も同じステータス述語で絞る。選別後にステータスが動いた行は消さない。
	DeleteByUserAndStatuses(ctx context.Context, userID int64, statuses []model.OrderStatus) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)

	//ダッシュボード用の集計
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	SumTotals(ctx context.Context) (int64, error)
}
