package order

import "context"

// Repository 订单仓储接口
type Repository interface {
	// Create 创建订单及订单行,提货码撞唯一索引时返回 ErrClaimCodeCollision
	Create(ctx context.Context, o *Order) error

	// FindByID 按主键查询,预加载订单行
	FindByID(ctx context.Context, id uint) (*Order, error)

	// LockByID 加行锁查询,核销在事务内调用防止并发重复核销
	LockByID(ctx context.Context, id uint) (*Order, error)

	// ListByUserID 查询用户订单列表,按创建时间倒序
	ListByUserID(ctx context.Context, userID uint) ([]*Order, error)

	// ListIncomplete 查询全部未核销订单,店员工作台使用
	ListIncomplete(ctx context.Context) ([]*Order, error)

	// Update 保存订单状态变更
	Update(ctx context.Context, o *Order) error
}
