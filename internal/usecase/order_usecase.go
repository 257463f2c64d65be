package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"

	"github.com/google/uuid"
)

// 送料ポリシー（ルピー）。subtotal >= 2999 で送料無料、未満は一律99。
const (
	FreeShippingThreshold int64 = 2999
	ShippingFee           int64 = 99
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type PlaceOrderInput struct {
	Shipping      validator.ShippingInput
	PaymentMethod string // "upi" | "bank"
	Notes         string
}

type OrderItemOutput struct {
	ProductID    *int64 `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	TotalPrice   int64  `json:"total_price"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	OrderNumber   string            `json:"order_number"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	PaymentMethod string            `json:"payment_method"`
	Subtotal      int64             `json:"subtotal"`
	ShippingCost  int64             `json:"shipping_cost"`
	Total         int64             `json:"total"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// 管理画面に出す支払い方法の表示名に変換する。
func paymentMethodLabel(method string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "upi":
		return "UPI", true
	case "bank":
		return "Bank Transfer", true
	default:
		return "", false
	}
}

// 注文番号はサーバー側で必ず採番する。クライアント値は受け取らない。
func newOrderNumber(now time.Time) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), token)
}

// PlaceOrder はカートを注文に確定する。
// 注文・明細の作成、在庫減算、カートのクリアは1トランザクション。
// 失敗したら全部ロールバックされるので中途半端な注文は残らない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	// 入力検証はネットワーク呼び出しの前（fail fast）
	if err := validator.ValidateShipping(in.Shipping); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	methodLabel, ok := paymentMethodLabel(in.PaymentMethod)
	if !ok {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート明細取得
		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//明細スナップショットを作りつつ在庫を減らす
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var subtotal int64 = 0

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}

			v, err := r.Variants().FindByID(ctx, ci.VariantID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.VariantID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "out of stock")
			}

			//この時点の商品情報をスナップショット
			productID := ci.ProductID
			orderItems = append(orderItems, model.OrderItem{
				ProductID:    &productID,
				ProductName:  p.Name,
				ProductImage: p.ImageURL,
				Size:         v.Size,
				Color:        v.Color,
				Quantity:     ci.Quantity,
				UnitPrice:    p.Price,
				TotalPrice:   p.Price * ci.Quantity,
			})

			subtotal += p.Price * ci.Quantity
		}

		shippingCost := int64(0)
		if subtotal < FreeShippingThreshold {
			shippingCost = ShippingFee
		}
		total := subtotal + shippingCost

		// 注文番号は一意制約つき。衝突したら振り直して1回だけやり直す。
		now := time.Now()
		orderNumber := newOrderNumber(now)
		if _, exists, err := r.Orders().FindByOrderNumber(ctx, orderNumber); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		} else if exists {
			orderNumber = newOrderNumber(now)
		}

		order := model.Order{
			UserID:           userID,
			OrderNumber:      orderNumber,
			Status:           model.OrderStatusPending,
			PaymentStatus:    model.PaymentStatusPending,
			PaymentMethod:    methodLabel,
			Subtotal:         subtotal,
			ShippingCost:     shippingCost,
			Total:            total,
			ShippingName:     in.Shipping.FullName,
			ShippingPhone:    in.Shipping.Phone,
			ShippingEmail:    in.Shipping.Email,
			ShippingAddress:  in.Shipping.AddressLine1,
			ShippingAddress2: in.Shipping.AddressLine2,
			ShippingCity:     in.Shipping.City,
			ShippingState:    in.Shipping.State,
			ShippingPincode:  in.Shipping.Pincode,
			Notes:            in.Notes,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//確定できたのでカートを空にする
		if err := r.CartItems().ClearByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//ページングはまず固定で取る
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
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

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID int64, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ClearHistory は配達済み・完了の注文だけを削除する。
// 対象の絞り込みは削除時点のステータスでSQL述語として評価される。
// それ以外のステータスの注文には触らない。
func (u *OrderUsecase) ClearHistory(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	terminal := []model.OrderStatus{
		model.OrderStatusDelivered,
		model.OrderStatusCompleted,
	}

	var deleted int64 = 0

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ids, err := r.Orders().ListIDsByUserAndStatuses(ctx, userID, terminal)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(ids) == 0 {
			return nil
		}

		//明細から先に消す（カスケード）
		if err := r.OrderItems().DeleteByOrderIDs(ctx, ids); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 削除側でも同じ述語で絞る
		n, err := r.Orders().DeleteByUserAndStatuses(ctx, userID, terminal)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		deleted = n
		return nil
	})

	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			Size:         it.Size,
			Color:        it.Color,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalPrice:   it.TotalPrice,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		UserID:        o.UserID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PaymentMethod: o.PaymentMethod,
		Subtotal:      o.Subtotal,
		ShippingCost:  o.ShippingCost,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
