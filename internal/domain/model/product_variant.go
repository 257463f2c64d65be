package model

import "time"

// サイズ×カラーの組み合わせ。在庫はバリアント単位で持つ。
type ProductVariant struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     int64     `gorm:"not null;index" json:"product_id"`
	Size          string    `gorm:"type:varchar(20);not null" json:"size"`
	Color         string    `gorm:"type:varchar(50);not null" json:"color"`
	ColorHex      string    `gorm:"type:varchar(10)" json:"color_hex"`
	SKU           string    `gorm:"type:varchar(100);column:sku" json:"sku"`
	StockQuantity int64     `gorm:"not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
