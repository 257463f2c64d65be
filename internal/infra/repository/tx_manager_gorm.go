package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders          repo.OrderRepository
	orderItems      repo.OrderItemRepository
	cartItems       repo.CartItemRepository
	products        repo.ProductRepository
	variants        repo.VariantRepository
	inventory       repo.InventoryRepository
	contactMessages repo.ContactMessageRepository
	auditLogs       repo.AuditLogRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                   { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository           { return r.orderItems }
func (r *txReposGorm) CartItems() repo.CartItemRepository             { return r.cartItems }
func (r *txReposGorm) Products() repo.ProductRepository               { return r.products }
func (r *txReposGorm) Variants() repo.VariantRepository               { return r.variants }
func (r *txReposGorm) Inventory() repo.InventoryRepository            { return r.inventory }
func (r *txReposGorm) ContactMessages() repo.ContactMessageRepository { return r.contactMessages }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository             { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:          NewOrderGormRepository(tx),
			orderItems:      NewOrderItemGormRepository(tx),
			cartItems:       NewCartGormRepository(tx),
			products:        NewProductGormRepository(tx),
			variants:        NewVariantGormRepository(tx),
			inventory:       NewInventoryGormRepository(tx),
			contactMessages: NewContactGormRepository(tx),
			auditLogs:       NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
