package model

import (
	"time"

	"gorm.io/gorm"
)

// 価格はルピーの整数で保存する。
type Product struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID     *int64         `gorm:"index" json:"category_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug           string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description    string         `gorm:"type:text" json:"description"`
	Price          int64          `gorm:"not null" json:"price"`
	CompareAtPrice *int64         `json:"compare_at_price"`
	ImageURL       string         `gorm:"type:text" json:"image_url"`
	IsFeatured     bool           `gorm:"not null;default:false" json:"is_featured"`
	IsActive       bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt      time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}
