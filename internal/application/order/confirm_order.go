package order

import (
	"context"
	"time"

	"github.com/xiebiao/bookbazar/internal/domain/order"
	"github.com/xiebiao/bookbazar/internal/domain/user"
	"github.com/xiebiao/bookbazar/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookbazar/pkg/mailer"
	"github.com/xiebiao/bookbazar/pkg/metrics"
	"github.com/xiebiao/bookbazar/pkg/mq"
)

// 订单核销事件的路由键
const routingKeyOrderConfirmed = "order.confirmed"

// ConfirmOrderUseCase 订单核销用例(店员工作台)
// 设计说明:
// 1. 核销必须持提货码,码比对采用归一化后的严格相等
// 2. 行锁防止两个店员并发核销同一订单
// 3. 核销是单向操作,已完成订单再次核销直接报错
// 4. 核销成功后累加会员成功订单数,并发布领域事件
type ConfirmOrderUseCase struct {
	orderRepo   order.Repository
	userRepo    user.Repository
	txManager   *mysql.TxManager
	publisher   *mq.Publisher  // 可为nil,事件发布是可选能力
	orderMailer *mailer.Mailer // 可为nil
}

// NewConfirmOrderUseCase 创建核销用例
func NewConfirmOrderUseCase(
	orderRepo order.Repository,
	userRepo user.Repository,
	txManager *mysql.TxManager,
	publisher *mq.Publisher,
	m *mailer.Mailer,
) *ConfirmOrderUseCase {
	return &ConfirmOrderUseCase{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		publisher:   publisher,
		orderMailer: m,
	}
}

// ConfirmOrderRequest 核销请求DTO
type ConfirmOrderRequest struct {
	OrderID   uint
	ClaimCode string // 顾客出示的提货码,忽略大小写与首尾空白
}

// ConfirmOrderResponse 核销响应DTO
type ConfirmOrderResponse struct {
	OrderID     uint   `json:"order_id"`
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at"`
}

// OrderConfirmedEvent 订单核销事件(发布到消息队列)
// 携带收件信息,邮件工作者无需回查数据库
type OrderConfirmedEvent struct {
	OrderID     uint      `json:"order_id"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	TotalAmount int64     `json:"total_amount"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// Execute 执行核销
func (uc *ConfirmOrderUseCase) Execute(ctx context.Context, req ConfirmOrderRequest) (*ConfirmOrderResponse, error) {
	// 提货码必填,归一化后为空直接拒绝
	if order.NormalizeClaimCode(req.ClaimCode) == "" {
		return nil, order.ErrClaimCodeRequired
	}

	var confirmed *order.Order
	var member *user.User
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 行锁加载订单,防止并发重复核销
		o, err := uc.orderRepo.LockByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}

		// 2. 提货码比对
		if !order.MatchClaimCode(req.ClaimCode, o.ClaimCode) {
			return order.ErrClaimCodeMismatch
		}

		// 3. 状态流转(单向)
		if err := o.Confirm(time.Now()); err != nil {
			return err
		}
		if err := uc.orderRepo.Update(txCtx, o); err != nil {
			return err
		}

		// 4. 累加会员成功订单数
		u, err := uc.userRepo.FindByID(txCtx, o.UserID)
		if err != nil {
			return err
		}
		u.RecordSuccessfulOrder()
		if err := uc.userRepo.Update(txCtx, u); err != nil {
			return err
		}

		confirmed = o
		member = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersConfirmedTotal.Inc()

	// 事务提交后发布事件与邮件,失败不回滚订单
	uc.notifyConfirmed(confirmed, member)

	return &ConfirmOrderResponse{
		OrderID:     confirmed.ID,
		Status:      confirmed.Status,
		CompletedAt: confirmed.CompletedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// notifyConfirmed 核销成功通知
// 有消息队列时只发布事件,确认邮件由邮件工作者异步发出;
// 队列缺席时退化为进程内直接发信
func (uc *ConfirmOrderUseCase) notifyConfirmed(o *order.Order, u *user.User) {
	if uc.publisher != nil {
		_ = uc.publisher.Publish(routingKeyOrderConfirmed, OrderConfirmedEvent{
			OrderID:     o.ID,
			UserID:      o.UserID,
			Username:    u.Name,
			Email:       u.Email,
			TotalAmount: o.TotalAmount,
			ConfirmedAt: *o.CompletedAt,
		})
		return
	}
	if uc.orderMailer != nil {
		_ = uc.orderMailer.SendOrderConfirmed(u.Email, u.Name, o.ID, o.TotalAmount)
	}
}
