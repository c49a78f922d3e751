package order

import (
	"context"
	"errors"

	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/domain/order"
)

// ListOrdersUseCase 订单查询用例
// 设计说明:
// 1. 会员只能看到自己的订单,归属不符按"订单不存在"处理(不泄露存在性)
// 2. 店员工作台展示全部未核销订单,携带提货码供当面比对
type ListOrdersUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
}

// NewListOrdersUseCase 创建订单查询用例
func NewListOrdersUseCase(orderRepo order.Repository, bookRepo book.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
	}
}

// OrderItemView 订单行DTO
type OrderItemView struct {
	BookID      uint   `json:"book_id"`
	Title       string `json:"title"`
	Quantity    int    `json:"quantity"`
	PriceAtTime int64  `json:"price_at_time"` // 下单时刻单价快照(分)
	Subtotal    int64  `json:"subtotal"`      // 分
}

// OrderView 订单DTO
type OrderView struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	Status      string          `json:"status"`
	TotalAmount int64           `json:"total_amount"` // 分
	TotalYuan   string          `json:"total_yuan"`
	ClaimCode   string          `json:"claim_code"`
	IsCompleted bool            `json:"is_completed"`
	CompletedAt string          `json:"completed_at,omitempty"`
	CreatedAt   string          `json:"created_at"`
	Items       []OrderItemView `json:"items"`
}

// ListByUser 会员订单列表
func (uc *ListOrdersUseCase) ListByUser(ctx context.Context, userID uint) ([]*OrderView, error) {
	orders, err := uc.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.toViews(ctx, orders)
}

// GetByUser 会员订单详情,校验归属
func (uc *ListOrdersUseCase) GetByUser(ctx context.Context, userID, orderID uint) (*OrderView, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, order.ErrOrderNotFound
	}
	return uc.toView(ctx, o)
}

// ListIncomplete 店员工作台:全部未核销订单
func (uc *ListOrdersUseCase) ListIncomplete(ctx context.Context) ([]*OrderView, error) {
	orders, err := uc.orderRepo.ListIncomplete(ctx)
	if err != nil {
		return nil, err
	}
	return uc.toViews(ctx, orders)
}

func (uc *ListOrdersUseCase) toViews(ctx context.Context, orders []*order.Order) ([]*OrderView, error) {
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		v, err := uc.toView(ctx, o)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (uc *ListOrdersUseCase) toView(ctx context.Context, o *order.Order) (*OrderView, error) {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		title := ""
		b, err := uc.bookRepo.FindByID(ctx, item.BookID)
		if err == nil {
			title = b.Title
		} else if !errors.Is(err, book.ErrBookNotFound) {
			return nil, err
		}
		items = append(items, OrderItemView{
			BookID:      item.BookID,
			Title:       title,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
			Subtotal:    item.PriceAtTime * int64(item.Quantity),
		})
	}

	v := &OrderView{
		ID:          o.ID,
		UserID:      o.UserID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		TotalYuan:   formatPrice(o.TotalAmount),
		ClaimCode:   o.ClaimCode,
		IsCompleted: o.IsCompleted,
		CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:       items,
	}
	if o.CompletedAt != nil {
		v.CompletedAt = o.CompletedAt.Format("2006-01-02 15:04:05")
	}
	return v, nil
}
