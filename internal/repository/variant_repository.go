package repository

import (
	"app/internal/domain/model"
	"context"
)

type VariantRepository interface {
	ListByProductID(ctx context.Context, productID int64) ([]model.ProductVariant, error)
	FindByID(ctx context.Context, variantID int64) (model.ProductVariant, error)

	Create(ctx context.Context, v model.ProductVariant) (model.ProductVariant, error)
	Update(ctx context.Context, v model.ProductVariant) error
	DeleteByID(ctx context.Context, variantID int64) error
}

// 在庫の永続化。バリアント単位。
type InventoryRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, variantID int64, newStock int64) error

	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, variantID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, variantID int64, qty int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.StockAdjustment) error
}
