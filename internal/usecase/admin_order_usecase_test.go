package usecase_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type EvidenceStoreMock struct{ mock.Mock }

func (m *EvidenceStoreMock) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

func newAdminOrderUsecase(strictFlow bool) (*usecase.AdminOrderUsecase, *txReposStub, *AuditRepoMock, *EvidenceStoreMock) {
	repos := &txReposStub{
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		cartItems:  new(CartItemRepoMock),
		products:   new(ProductRepoMock),
		variants:   new(VariantRepoMock),
		inventory:  new(InventoryRepoMock),
		contacts:   new(ContactRepoMock),
	}
	auditRepo := new(AuditRepoMock)
	repos.audits = auditRepo
	evidence := new(EvidenceStoreMock)
	uc := usecase.NewAdminOrderUsecase(&txManagerStub{repos: repos}, evidence, strictFlow)
	return uc, repos, auditRepo, evidence
}

func TestAdminOrderUsecase_List_InvalidStatusFilter(t *testing.T) {
	uc, _, _, _ := newAdminOrderUsecase(false)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 50, Status: "onhold"})
	assertErrContains(t, err, "invalid status")
}

// 大文字で来た絞り込みは小文字に正規化してから渡す
func TestAdminOrderUsecase_List_NormalizesStatusFilter(t *testing.T) {
	uc, repos, _, _ := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("ListAdmin", mock.Anything, mock.MatchedBy(func(f repo.AdminOrderListFilter) bool {
		return f.Status == "shipped" && f.PaymentStatus == "approved"
	})).Return([]model.Order{}, int64(0), nil)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{
		Page: 1, Limit: 50, Status: "SHIPPED", PaymentStatus: "Approved",
	})
	assert.NoError(t, err)

	orderRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_List_InvalidPaymentStatusFilter(t *testing.T) {
	uc, _, _, _ := newAdminOrderUsecase(false)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 1, Limit: 50, PaymentStatus: "refunded"})
	assertErrContains(t, err, "invalid payment_status")
}

func TestAdminOrderUsecase_List_InvalidPage(t *testing.T) {
	uc, _, _, _ := newAdminOrderUsecase(false)

	_, err := uc.List(context.Background(), repo.AdminOrderListFilter{Page: 0, Limit: 50})
	assertErrContains(t, err, "invalid page")
}

func TestAdminOrderUsecase_UpdateStatus_BogusStatus(t *testing.T) {
	uc, repos, _, _ := newAdminOrderUsecase(false)

	err := uc.UpdateStatus(context.Background(), 9, 5, usecase.AdminUpdateOrderStatusInput{Status: "teleported"})
	assertErrContains(t, err, "invalid status")

	repos.orders.(*OrderRepoMock).AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// 大文字や前後の空白は吸収する
func TestAdminOrderUsecase_UpdateStatus_NormalizesInput(t *testing.T) {
	uc, repos, auditRepo, _ := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusPending}, nil)
	orderRepo.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatusShipped).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.UpdateStatus(context.Background(), 9, 5, usecase.AdminUpdateOrderStatusInput{Status: " SHIPPED "})
	assert.NoError(t, err)

	orderRepo.AssertExpectations(t)
}

// 同じステータスへの再設定は成功扱いで何もしない
func TestAdminOrderUsecase_UpdateStatus_SameStatusNoop(t *testing.T) {
	uc, repos, auditRepo, _ := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusShipped}, nil)

	err := uc.UpdateStatus(context.Background(), 9, 5, usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assert.NoError(t, err)

	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 通常モードでは後退も許す（管理者が直接直せる）
func TestAdminOrderUsecase_UpdateStatus_BackwardsAllowedByDefault(t *testing.T) {
	uc, repos, auditRepo, _ := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusDelivered}, nil)
	orderRepo.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatusPending).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.UpdateStatus(context.Background(), 9, 5, usecase.AdminUpdateOrderStatusInput{Status: "pending"})
	assert.NoError(t, err)
}

func TestAdminOrderUsecase_UpdateStatus_StrictFlowRejectsBackwards(t *testing.T) {
	uc, repos, _, _ := newAdminOrderUsecase(true)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusDelivered}, nil)

	err := uc.UpdateStatus(context.Background(), 9, 5, usecase.AdminUpdateOrderStatusInput{Status: "pending"})
	assertErrContains(t, err, "cannot move status backwards")

	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_UpdateStatus_StrictFlowRejectsCancelledChange(t *testing.T) {
	uc, repos, _, _ := newAdminOrderUsecase(true)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusCancelled}, nil)

	err := uc.UpdateStatus(context.Background(), 9, 5, usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "cannot change cancelled order")
}

// キャンセルへの変更で在庫が戻る
func TestAdminOrderUsecase_UpdateStatus_CancelRestoresStock(t *testing.T) {
	uc, repos, auditRepo, _ := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	itemRepo := repos.orderItems.(*OrderItemRepoMock)
	variantRepo := repos.variants.(*VariantRepoMock)
	inv := repos.inventory.(*InventoryRepoMock)

	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusProcessing}, nil)
	itemRepo.On("ListByOrderID", mock.Anything, int64(5)).Return([]model.OrderItem{
		{ID: 1, OrderID: 5, ProductID: ptrInt64(100), Size: "9", Color: "Black", Quantity: 2},
		{ID: 2, OrderID: 5, ProductID: nil, Size: "8", Color: "White", Quantity: 1}, // 商品が消えた明細
	}, nil)
	variantRepo.On("ListByProductID", mock.Anything, int64(100)).Return([]model.ProductVariant{
		{ID: 200, ProductID: 100, Size: "9", Color: "Black"},
		{ID: 201, ProductID: 100, Size: "10", Color: "Black"},
	}, nil)
	inv.On("IncreaseStock", mock.Anything, int64(200), int64(2)).Return(nil)
	orderRepo.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatusCancelled).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.UpdateStatus(context.Background(), 9, 5, usecase.AdminUpdateOrderStatusInput{Status: "cancelled"})
	assert.NoError(t, err)

	inv.AssertExpectations(t)
	// 商品が消えた明細には触らない
	inv.AssertNumberOfCalls(t, "IncreaseStock", 1)
}

func TestAdminOrderUsecase_UpdateStatus_WritesAuditLog(t *testing.T) {
	uc, repos, auditRepo, _ := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusPending}, nil)
	orderRepo.On("UpdateStatus", mock.Anything, int64(5), model.OrderStatusPacked).Return(nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus &&
			l.ActorUserID == 9 &&
			l.ResourceID == 5 &&
			strings.Contains(l.BeforeJSON, "pending") &&
			strings.Contains(l.AfterJSON, "packed")
	})).Return(nil)

	err := uc.UpdateStatus(context.Background(), 9, 5, usecase.AdminUpdateOrderStatusInput{Status: "packed"})
	assert.NoError(t, err)

	auditRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_ApprovePayment_Idempotent(t *testing.T) {
	uc, repos, auditRepo, _ := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, PaymentStatus: model.PaymentStatusApproved}, nil)

	// すでに承認済み → 成功だが何も書かない
	err := uc.ApprovePayment(context.Background(), 9, 5)
	assert.NoError(t, err)

	orderRepo.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything)
	auditRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_ApprovePayment_DoesNotTouchOrderStatus(t *testing.T) {
	uc, repos, auditRepo, _ := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5, Status: model.OrderStatusPending, PaymentStatus: model.PaymentStatusPending}, nil)
	orderRepo.On("UpdatePaymentStatus", mock.Anything, int64(5), model.PaymentStatusApproved).Return(nil)
	auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.ApprovePayment(context.Background(), 9, 5)
	assert.NoError(t, err)

	// 配送ステータスは独立の軸
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_RejectPayment_NotFound(t *testing.T) {
	uc, repos, _, _ := newAdminOrderUsecase(false)

	repos.orders.(*OrderRepoMock).On("FindByID", mock.Anything, int64(404)).Return(model.Order{}, repo.ErrNotFound)

	err := uc.RejectPayment(context.Background(), 9, 404)
	assertErrContains(t, err, "not found")
}

func TestAdminOrderUsecase_AttachPaymentEvidence_StorageNotConfigured(t *testing.T) {
	repos := &txReposStub{orders: new(OrderRepoMock), audits: new(AuditRepoMock)}
	uc := usecase.NewAdminOrderUsecase(&txManagerStub{repos: repos}, nil, false)

	_, err := uc.AttachPaymentEvidence(context.Background(), 9, 5, "image/png", strings.NewReader("x"))
	assertErrContains(t, err, "evidence storage not configured")
}

func TestAdminOrderUsecase_AttachPaymentEvidence_StoresURL(t *testing.T) {
	uc, repos, _, evidence := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Order{ID: 5}, nil)

	evidence.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "payment-evidence/5-")
	}), "image/png", mock.Anything).Return("https://bucket.s3.amazonaws.com/payment-evidence/5-x.png", nil)

	orderRepo.On("UpdatePaymentReference", mock.Anything, int64(5), "https://bucket.s3.amazonaws.com/payment-evidence/5-x.png").Return(nil)

	url, err := uc.AttachPaymentEvidence(context.Background(), 9, 5, "image/png", strings.NewReader("screenshot"))
	assert.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.amazonaws.com/payment-evidence/5-x.png", url)

	orderRepo.AssertExpectations(t)
	evidence.AssertExpectations(t)
}

// リセットは注文・明細・問い合わせだけ。商品や在庫には触らない。
func TestAdminOrderUsecase_ResetOperationalData(t *testing.T) {
	uc, repos, auditRepo, _ := newAdminOrderUsecase(false)

	orderRepo := repos.orders.(*OrderRepoMock)
	itemRepo := repos.orderItems.(*OrderItemRepoMock)
	contactRepo := repos.contacts.(*ContactRepoMock)

	itemRepo.On("DeleteAll", mock.Anything).Return(nil)
	orderRepo.On("DeleteAll", mock.Anything).Return(int64(12), nil)
	contactRepo.On("DeleteAll", mock.Anything).Return(int64(4), nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionResetData &&
			strings.Contains(l.AfterJSON, `"deleted_orders":12`) &&
			strings.Contains(l.AfterJSON, `"deleted_messages":4`)
	})).Return(nil)

	err := uc.ResetOperationalData(context.Background(), 9)
	assert.NoError(t, err)

	itemRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	contactRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)

	repos.products.(*ProductRepoMock).AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestAdminOrderUsecase_ResetOperationalData_Unauthorized(t *testing.T) {
	uc, _, _, _ := newAdminOrderUsecase(false)

	err := uc.ResetOperationalData(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}

func TestAdminOrderUsecase_GetDashboardStats(t *testing.T) {
	uc, repos, _, _ := newAdminOrderUsecase(false)

	repos.products.(*ProductRepoMock).On("Count", mock.Anything).Return(int64(24), nil)
	orderRepo := repos.orders.(*OrderRepoMock)
	orderRepo.On("Count", mock.Anything).Return(int64(120), nil)
	orderRepo.On("CountByStatus", mock.Anything, model.OrderStatusPending).Return(int64(7), nil)
	orderRepo.On("SumTotals", mock.Anything).Return(int64(358200), nil)
	repos.contacts.(*ContactRepoMock).On("Count", mock.Anything).Return(int64(15), nil)

	stats, err := uc.GetDashboardStats(context.Background(), 9)
	assert.NoError(t, err)

	assert.Equal(t, int64(24), stats.Products)
	assert.Equal(t, int64(120), stats.Orders)
	assert.Equal(t, int64(7), stats.PendingOrders)
	assert.Equal(t, int64(358200), stats.Revenue)
	assert.Equal(t, int64(15), stats.Messages)
}

func TestAdminOrderUsecase_GetDashboardStats_Unauthorized(t *testing.T) {
	uc, _, _, _ := newAdminOrderUsecase(false)

	_, err := uc.GetDashboardStats(context.Background(), 0)
	assertErrContains(t, err, "unauthorized")
}
