package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// 入金スクリーンショットの置き場（S3実装はinfra/storage）。
// 返ってくるURLは不透明な文字列として保存するだけ。
type EvidenceStore interface {
	Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

type AdminOrderUsecase struct {
	tx       repo.TransactionManager
	evidence EvidenceStore // nilなら未設定

	// trueなら配送ステータスの後退を拒否する
	strictFlow bool
}

func NewAdminOrderUsecase(tx repo.TransactionManager, evidence EvidenceStore, strictFlow bool) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		tx:         tx,
		evidence:   evidence,
		strictFlow: strictFlow,
	}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// 配送ステータスの順序（strictFlow用）。cancelledは順序外。
var statusRank = map[model.OrderStatus]int{
	model.OrderStatusPending:    0,
	model.OrderStatusProcessing: 1,
	model.OrderStatusPacked:     2,
	model.OrderStatusShipped:    3,
	model.OrderStatusDelivered:  4,
	model.OrderStatusCompleted:  5,
}

func parseOrderStatus(s string) (model.OrderStatus, bool) {
	switch model.OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case model.OrderStatusPending:
		return model.OrderStatusPending, true
	case model.OrderStatusProcessing:
		return model.OrderStatusProcessing, true
	case model.OrderStatusPacked:
		return model.OrderStatusPacked, true
	case model.OrderStatusShipped:
		return model.OrderStatusShipped, true
	case model.OrderStatusDelivered:
		return model.OrderStatusDelivered, true
	case model.OrderStatusCompleted:
		return model.OrderStatusCompleted, true
	case model.OrderStatusCancelled:
		return model.OrderStatusCancelled, true
	default:
		return "", false
	}
}

func parsePaymentStatus(s string) (model.PaymentStatus, bool) {
	switch model.PaymentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case model.PaymentStatusPending:
		return model.PaymentStatusPending, true
	case model.PaymentStatusApproved:
		return model.PaymentStatusApproved, true
	case model.PaymentStatusRejected:
		return model.PaymentStatusRejected, true
	default:
		return "", false
	}
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) ([]OrderOutput, error) {
	// page/limitの最低限チェック
	if f.Page < 1 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	// ステータスは小文字で保存しているので、絞り込みも正規化した値で渡す
	if f.Status != "" {
		st, ok := parseOrderStatus(f.Status)
		if !ok {
			return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		f.Status = string(st)
	}
	if f.PaymentStatus != "" {
		ps, ok := parsePaymentStatus(f.PaymentStatus)
		if !ok {
			return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
		}
		f.PaymentStatus = string(ps)
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

type DashboardStats struct {
	Products      int64 `json:"products"`
	Orders        int64 `json:"orders"`
	PendingOrders int64 `json:"pending_orders"`
	Revenue       int64 `json:"revenue"`
	Messages      int64 `json:"messages"`
}

// 管理ダッシュボードの集計。
// revenue は全注文のtotal合計（入金確認前も含む）。
func (u *AdminOrderUsecase) GetDashboardStats(ctx context.Context, actorAdminUserID int64) (DashboardStats, error) {
	if actorAdminUserID <= 0 {
		return DashboardStats{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var stats DashboardStats

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		products, err := r.Products().Count(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		orders, err := r.Orders().Count(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		pending, err := r.Orders().CountByStatus(ctx, model.OrderStatusPending)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		revenue, err := r.Orders().SumTotals(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		messages, err := r.ContactMessages().Count(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		stats = DashboardStats{
			Products:      products,
			Orders:        orders,
			PendingOrders: pending,
			Revenue:       revenue,
			Messages:      messages,
		}
		return nil
	})

	if err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

// ステータス更新。管理者は任意のステータスを直接設定できる
// （strictFlowのときだけ後退を拒否）。入金ステータスには触らない。
// キャンセルへの変更時だけ在庫を戻す。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus, ok := parseOrderStatus(in.Status)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}

		if u.strictFlow && newStatus != model.OrderStatusCancelled {
			if o.Status == model.OrderStatusCancelled {
				return NewHTTPError(http.StatusBadRequest, "cannot change cancelled order")
			}
			if statusRank[newStatus] < statusRank[o.Status] {
				return NewHTTPError(http.StatusBadRequest, "cannot move status backwards")
			}
		}

		// キャンセルになるときだけ在庫を戻す
		if newStatus == model.OrderStatusCancelled {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			for _, it := range items {
				// 商品が消えた明細は戻し先がないのでスキップ
				if it.ProductID == nil {
					continue
				}
				v, err := findVariantForItem(ctx, r, it)
				if err != nil {
					continue
				}
				if err := r.Inventory().IncreaseStock(ctx, v.ID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		beforeStatus := string(o.Status)
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（UPDATE_ORDER_STATUS）。同じTxで書いてcommit失敗時に残さない
		beforeJSON := `{"status":"` + beforeStatus + `"}`
		afterJSON := `{"status":"` + string(newStatus) + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// ApprovePayment は入金を承認済みにする。配送ステータスには影響しない。
// すでに承認済みなら何もしない（冪等）。
func (u *AdminOrderUsecase) ApprovePayment(ctx context.Context, actorAdminUserID int64, orderID int64) error {
	return u.setPaymentStatus(ctx, actorAdminUserID, orderID, model.PaymentStatusApproved)
}

// RejectPayment は入金を却下にする。配送ステータスには影響しない（独立の軸）。
func (u *AdminOrderUsecase) RejectPayment(ctx context.Context, actorAdminUserID int64, orderID int64) error {
	return u.setPaymentStatus(ctx, actorAdminUserID, orderID, model.PaymentStatusRejected)
}

func (u *AdminOrderUsecase) setPaymentStatus(ctx context.Context, actorAdminUserID int64, orderID int64, newStatus model.PaymentStatus) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//冪等：同じ値への再設定は成功扱い
		if o.PaymentStatus == newStatus {
			return nil
		}

		before := string(o.PaymentStatus)
		if err := r.Orders().UpdatePaymentStatus(ctx, orderID, newStatus); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		beforeJSON := `{"payment_status":"` + before + `"}`
		afterJSON := `{"payment_status":"` + string(newStatus) + `"}`
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdatePaymentStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// AttachPaymentEvidence はスクリーンショットをアップロードしてURLを注文に残す。
// 承認・却下の判断材料で、ステータスは変えない。
func (u *AdminOrderUsecase) AttachPaymentEvidence(ctx context.Context, actorAdminUserID int64, orderID int64, contentType string, body io.Reader) (string, error) {
	if actorAdminUserID <= 0 {
		return "", NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if u.evidence == nil {
		return "", NewHTTPError(http.StatusServiceUnavailable, "evidence storage not configured")
	}

	var url string

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		key := fmt.Sprintf("payment-evidence/%d-%s", orderID, uuid.NewString())
		uploaded, err := u.evidence.Upload(ctx, key, contentType, body)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "upload failed")
		}

		if err := r.Orders().UpdatePaymentReference(ctx, orderID, uploaded); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		url = uploaded
		return nil
	})

	if err != nil {
		return "", err
	}
	return url, nil
}

// ResetOperationalData は全注文・全明細・全問い合わせを無条件で削除する。
// 商品・カテゴリ・バリアントには触らない。取り消しはできない。
func (u *AdminOrderUsecase) ResetOperationalData(ctx context.Context, actorAdminUserID int64) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//明細から先に消す
		if err := r.OrderItems().DeleteAll(ctx); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		deletedOrders, err := r.Orders().DeleteAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		deletedMessages, err := r.ContactMessages().DeleteAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		afterJSON := fmt.Sprintf(`{"deleted_orders":%d,"deleted_messages":%d}`, deletedOrders, deletedMessages)
		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionResetData,
			ResourceType: model.AuditResourceStore,
			ResourceID:   0,
			BeforeJSON:   `{}`,
			AfterJSON:    afterJSON,
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// 明細のスナップショット（サイズ×カラー）から現在のバリアントを引く。
// バリアントが消えていたらErrNotFound。
func findVariantForItem(ctx context.Context, r repo.TxRepos, it model.OrderItem) (model.ProductVariant, error) {
	variants, err := r.Variants().ListByProductID(ctx, *it.ProductID)
	if err != nil {
		return model.ProductVariant{}, err
	}
	for _, v := range variants {
		if v.Size == it.Size && v.Color == it.Color {
			return v, nil
		}
	}
	return model.ProductVariant{}, repo.ErrNotFound
}
