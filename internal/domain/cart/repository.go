package cart

import "context"

// Repository 购物车仓储接口
type Repository interface {
	// Save 创建或更新条目
	Save(ctx context.Context, item *Item) error

	// FindByID 按主键查询
	FindByID(ctx context.Context, id uint) (*Item, error)

	// FindByUserAndBook 按用户与图书查询,不存在返回 ErrItemNotFound
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Item, error)

	// ListByUserID 查询用户的全部购物车条目
	ListByUserID(ctx context.Context, userID uint) ([]*Item, error)

	// Delete 删除条目
	Delete(ctx context.Context, id uint) error

	// DeleteByUserID 清空用户购物车,下单成功后调用
	DeleteByUserID(ctx context.Context, userID uint) error
}
