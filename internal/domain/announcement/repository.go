package announcement

import (
	"context"
	"time"
)

// Repository 公告仓储接口
type Repository interface {
	// Create 新增公告
	Create(ctx context.Context, a *Announcement) error

	// FindByID 按主键查询,不存在返回 ErrAnnouncementNotFound
	FindByID(ctx context.Context, id uint) (*Announcement, error)

	// ListVisible 查询在指定时刻对会员可见的公告,按创建时间倒序
	ListVisible(ctx context.Context, now time.Time) ([]*Announcement, error)

	// ListAll 查询全部公告,管理后台使用
	ListAll(ctx context.Context) ([]*Announcement, error)

	// Update 保存公告变更
	Update(ctx context.Context, a *Announcement) error

	// Delete 删除公告
	Delete(ctx context.Context, id uint) error
}
