package model

import "time"

//在庫調整の履歴。バリアント単位で残す。

type StockAdjustment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VariantID   int64     `gorm:"not null;index" json:"variant_id"`
	AdminUserID int64     `gorm:"not null;index" json:"admin_user_id"`
	OldStock    int64     `gorm:"not null" json:"old_stock"`
	NewStock    int64     `gorm:"not null" json:"new_stock"`
	Reason      string    `gorm:"type:varchar(255);not null" json:"reason"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
