package model

import "time"

// カートの明細。
// (user_id, variant_id) は1行のみ。同じバリアントの追加は数量加算になる。
// 価格はスナップショットせず、表示時に商品の現在価格を参照する。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_cart_user_variant" json:"user_id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	VariantID int64     `gorm:"not null;uniqueIndex:idx_cart_user_variant" json:"variant_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
