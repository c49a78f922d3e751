package cart

import (
	"context"
	"time"

	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/domain/cart"
)

// ManageCartUseCase 购物车用例
// 设计说明:
// 1. 合并加购、零数量删除、越权校验等规则在领域服务内实现
// 2. 列表查询在应用层补充图书信息与当前生效价,供购物车页直接渲染
type ManageCartUseCase struct {
	cartService cart.Service
	bookRepo    book.Repository
}

// NewManageCartUseCase 创建购物车用例
func NewManageCartUseCase(cartService cart.Service, bookRepo book.Repository) *ManageCartUseCase {
	return &ManageCartUseCase{
		cartService: cartService,
		bookRepo:    bookRepo,
	}
}

// AddItem 加购(已在购物车则合并数量)
func (uc *ManageCartUseCase) AddItem(ctx context.Context, userID uint, req AddItemRequest) (*CartItemResponse, error) {
	item, err := uc.cartService.AddItem(ctx, userID, req.BookID, req.Quantity)
	if err != nil {
		return nil, err
	}
	return uc.toItemResponse(ctx, item)
}

// UpdateQuantity 调整数量(数量为零等价删除,返回nil条目)
func (uc *ManageCartUseCase) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity int) (*CartItemResponse, error) {
	item, err := uc.cartService.UpdateQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return uc.toItemResponse(ctx, item)
}

// RemoveItem 删除条目
func (uc *ManageCartUseCase) RemoveItem(ctx context.Context, userID, itemID uint) error {
	return uc.cartService.RemoveItem(ctx, userID, itemID)
}

// Clear 清空购物车
func (uc *ManageCartUseCase) Clear(ctx context.Context, userID uint) error {
	return uc.cartService.Clear(ctx, userID)
}

// List 购物车列表(含图书信息与合计金额)
func (uc *ManageCartUseCase) List(ctx context.Context, userID uint) (*CartResponse, error) {
	items, err := uc.cartService.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{Items: make([]CartItemResponse, 0, len(items))}
	for _, item := range items {
		ir, err := uc.toItemResponse(ctx, item)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, *ir)
		resp.TotalQuantity += ir.Quantity
		resp.TotalAmount += ir.Subtotal
	}
	return resp, nil
}

func (uc *ManageCartUseCase) toItemResponse(ctx context.Context, item *cart.Item) (*CartItemResponse, error) {
	b, err := uc.bookRepo.FindByID(ctx, item.BookID)
	if err != nil {
		return nil, err
	}

	price := b.EffectivePrice(time.Now())
	return &CartItemResponse{
		ID:        item.ID,
		BookID:    b.ID,
		Title:     b.Title,
		Author:    b.Author,
		UnitPrice: price,
		Quantity:  item.Quantity,
		Subtotal:  price * int64(item.Quantity),
		InStock:   b.IsAvailable(),
	}, nil
}

// =========================================
// 应用层DTO
// =========================================

// AddItemRequest 加购请求
type AddItemRequest struct {
	BookID   uint
	Quantity int
}

// CartItemResponse 购物车条目DTO
type CartItemResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	UnitPrice int64  `json:"unit_price"` // 当前生效价(分)
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"` // 小计(分)
	InStock   bool   `json:"in_stock"`
}

// CartResponse 购物车响应DTO
type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	TotalAmount   int64              `json:"total_amount"` // 合计(分)
}
