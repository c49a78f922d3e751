package user

import (
	"context"
)

// Repository 用户仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByName 根据用户名查找用户(登录用)
	FindByName(ctx context.Context, name string) (*User, error)

	// Count 用户总数(首个注册用户自动成为管理员)
	Count(ctx context.Context) (int64, error)

	// ExistsByName/ExistsByEmail/ExistsByPhone 唯一性预检
	// excludeID>0时排除该用户自身(更新场景)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ExistsByPhone(ctx context.Context, phone string, excludeID uint) (bool, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error

	// Delete 删除用户(软删除)
	Delete(ctx context.Context, id uint) error

	// ListNonAdmin 查询所有非管理员用户(用户管理页)
	ListNonAdmin(ctx context.Context) ([]*User, error)

	// ListAll 查询所有用户(管理员总览)
	ListAll(ctx context.Context) ([]*User, error)
}
