package bookmark

import "context"

// Repository 书签仓储接口
type Repository interface {
	// Create 新增书签
	Create(ctx context.Context, bm *Bookmark) error

	// FindByUserAndBook 查询某用户对某图书的书签,不存在返回 ErrBookmarkNotFound
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Bookmark, error)

	// ListByUserID 查询用户全部书签,按创建时间倒序
	ListByUserID(ctx context.Context, userID uint) ([]*Bookmark, error)

	// ListBookIDsByUserID 仅返回用户收藏的图书 ID 集合,供前端标记收藏态
	ListBookIDsByUserID(ctx context.Context, userID uint) ([]uint, error)

	// Delete 删除书签
	Delete(ctx context.Context, id uint) error
}
