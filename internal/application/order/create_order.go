package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/domain/cart"
	"github.com/xiebiao/bookbazar/internal/domain/order"
	"github.com/xiebiao/bookbazar/internal/domain/user"
	"github.com/xiebiao/bookbazar/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookbazar/pkg/mailer"
	"github.com/xiebiao/bookbazar/pkg/metrics"
)

// 提货码撞唯一索引时的重试上限
const maxClaimCodeRetries = 3

// CreateOrderUseCase 下单用例
// 教学要点:这是整个项目最核心的用例之一
// 涉及:事务处理、并发控制、价格快照、提货码生成
type CreateOrderUseCase struct {
	orderRepo       order.Repository
	cartRepo        cart.Repository
	bookRepo        book.Repository
	userService     user.Service
	txManager       *mysql.TxManager
	mailer          *mailer.Mailer // 可为nil,邮件通知是可选能力
	claimCodeLength int
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	bookRepo book.Repository,
	userService user.Service,
	txManager *mysql.TxManager,
	m *mailer.Mailer,
	claimCodeLength int,
) *CreateOrderUseCase {
	if claimCodeLength <= 0 {
		claimCodeLength = order.DefaultClaimCodeLength
	}
	return &CreateOrderUseCase{
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		bookRepo:        bookRepo,
		userService:     userService,
		txManager:       txManager,
		mailer:          m,
		claimCodeLength: claimCodeLength,
	}
}

// CreateOrderRequest 下单请求DTO
// 订单内容取自用户当前购物车,请求本身只携带用户身份
type CreateOrderRequest struct {
	UserID uint // 买家用户ID(从JWT中提取)
}

// CreateOrderResponse 下单响应DTO
type CreateOrderResponse struct {
	OrderID   uint   `json:"order_id"`
	ClaimCode string `json:"claim_code"`
	Total     int64  `json:"total"` // 分
	TotalYuan string `json:"total_yuan"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行下单用例
// 教学重点:防止超卖的完整流程
//
// 核心问题:库存超卖
// 场景:图书库存10本,100人同时下单
// 错误实现:先查库存再扣减,并发下所有请求都能通过库存判断
//
// 正确实现:悲观锁
//  1. SELECT FOR UPDATE 锁定库存行
//  2. 判断库存是否充足
//  3. 按锁定时刻的有效价格生成快照
//  4. 创建订单、扣减库存、清空购物车
//  5. COMMIT释放锁
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	start := time.Now()

	result, err := uc.createOrder(ctx, req)
	if err != nil {
		metrics.OrdersFailedTotal.Inc()
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderCreationDuration.Observe(time.Since(start).Seconds())

	// 下单成功后发送提货码邮件,失败不影响订单结果
	uc.notifyCreated(ctx, req.UserID, result)

	return &CreateOrderResponse{
		OrderID:   result.ID,
		ClaimCode: result.ClaimCode,
		Total:     result.TotalAmount,
		TotalYuan: formatPrice(result.TotalAmount),
		Status:    result.Status,
		CreatedAt: result.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func (uc *CreateOrderUseCase) createOrder(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	// 1. 读取购物车(订单内容的唯一来源)
	cartItems, err := uc.cartRepo.ListByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, order.ErrEmptyOrder
	}

	// 使用事务执行整个下单流程
	// 教学要点:事务保证原子性,要么全成功,要么全失败
	var result *order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		now := time.Now()

		// ========================================
		// 步骤1:锁定库存并生成价格快照
		// ========================================
		// 教学要点:SELECT FOR UPDATE会锁定查询的行,
		// 其他事务必须等待当前事务COMMIT或ROLLBACK后才能访问。
		// 价格快照取"锁定时刻"的有效价(含折扣窗口判定),
		// 后续改价或促销结束不影响已生成的订单
		orderItems := make([]*order.Item, 0, len(cartItems))
		for _, ci := range cartItems {
			b, err := uc.bookRepo.LockByID(txCtx, ci.BookID)
			if err != nil {
				return err
			}

			// 必须在锁定后检查库存,否则并发扣减会导致超卖
			if b.Stock < ci.Quantity {
				return book.ErrInsufficientStock
			}

			orderItems = append(orderItems, &order.Item{
				BookID:      ci.BookID,
				Quantity:    ci.Quantity,
				PriceAtTime: b.EffectivePrice(now),
			})
		}

		// ========================================
		// 步骤2:生成提货码并创建订单
		// ========================================
		// 提货码全局唯一,撞唯一索引时换码重试
		newOrder, err := uc.createWithClaimCode(txCtx, req.UserID, orderItems)
		if err != nil {
			return err
		}

		// ========================================
		// 步骤3:扣减库存
		// ========================================
		// UpdateStock使用原子更新: stock = stock + ? AND stock + ? >= 0
		for _, item := range newOrder.Items {
			if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, -item.Quantity); err != nil {
				return err
			}
		}

		// ========================================
		// 步骤4:清空购物车
		// ========================================
		// 在同一事务内清空,下单失败时购物车原样保留
		if err := uc.cartRepo.DeleteByUserID(txCtx, req.UserID); err != nil {
			return err
		}

		result = newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// createWithClaimCode 生成提货码并落库,码冲突时重试
func (uc *CreateOrderUseCase) createWithClaimCode(ctx context.Context, userID uint, items []*order.Item) (*order.Order, error) {
	for i := 0; i < maxClaimCodeRetries; i++ {
		code, err := order.GenerateClaimCode(uc.claimCodeLength)
		if err != nil {
			return nil, err
		}

		o, err := order.NewOrder(userID, code, items)
		if err != nil {
			return nil, err
		}

		err = uc.orderRepo.Create(ctx, o)
		if err == nil {
			return o, nil
		}
		if !errors.Is(err, order.ErrClaimCodeCollision) {
			return nil, err
		}
	}
	return nil, order.ErrClaimCodeCollision
}

// notifyCreated 下单成功通知(携带提货码)
func (uc *CreateOrderUseCase) notifyCreated(ctx context.Context, userID uint, o *order.Order) {
	if uc.mailer == nil {
		return
	}
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return
	}
	_ = uc.mailer.SendOrderCreated(u.Email, u.Name, o.ID, o.ClaimCode, o.TotalAmount)
}

// formatPrice 分 → 元字符串
func formatPrice(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
