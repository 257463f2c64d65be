package model

import "time"

// 配送ステータス。管理者がどの値にも直接変更できる。
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPacked     OrderStatus = "packed"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// 入金確認のステータス。配送ステータスとは独立に動く。
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// 注文。作成後は status / payment_status / payment_method /
// payment_reference 以外は変更しない。
// total = subtotal + shipping_cost は作成時に確定し再計算しない。
type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64         `gorm:"not null;index" json:"user_id"`
	OrderNumber   string        `gorm:"type:varchar(40);not null;uniqueIndex" json:"order_number"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	PaymentMethod string        `gorm:"type:varchar(50)" json:"payment_method"`

	// 入金エビデンス（スクリーンショットのURLなど）。承認前に管理者が確認する。
	PaymentReference string `gorm:"type:text" json:"payment_reference"`

	Subtotal     int64 `gorm:"not null" json:"subtotal"`
	ShippingCost int64 `gorm:"not null" json:"shipping_cost"`
	Total        int64 `gorm:"not null" json:"total"`

	ShippingName    string `gorm:"type:varchar(255);not null" json:"shipping_name"`
	ShippingPhone   string `gorm:"type:varchar(20);not null" json:"shipping_phone"`
	ShippingEmail   string `gorm:"type:varchar(255);not null" json:"shipping_email"`
	ShippingAddress string `gorm:"type:text;not null" json:"shipping_address"`
	// 住所2行目は任意
	ShippingAddress2 string `gorm:"type:text" json:"shipping_address2"`
	ShippingCity     string `gorm:"type:varchar(100);not null" json:"shipping_city"`
	ShippingState    string `gorm:"type:varchar(100);not null" json:"shipping_state"`
	ShippingPincode  string `gorm:"type:varchar(10);not null" json:"shipping_pincode"`

	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
