package mysql

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookbazar/internal/domain/user"
	apperrors "github.com/xiebiao/bookbazar/pkg/errors"
)

// userRepository 用户仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 唯一索引冲突按冲突字段转换为对应业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return duplicateUserError(err)
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	// 回填自增ID与时间戳
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := r.getDB(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByName 根据用户名查找用户(登录用)
func (r *userRepository) FindByName(ctx context.Context, name string) (*user.User, error) {
	var model UserModel
	err := r.getDB(ctx).Where("name = ?", name).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// Count 用户总数
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.getDB(ctx).Model(&UserModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计用户数失败")
	}
	return total, nil
}

// ExistsByName 用户名是否已被占用
func (r *userRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	return r.existsBy(ctx, "name = ?", name, excludeID)
}

// ExistsByEmail 邮箱是否已被占用
func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.existsBy(ctx, "email = ?", email, excludeID)
}

// ExistsByPhone 手机号是否已被占用
func (r *userRepository) ExistsByPhone(ctx context.Context, phone string, excludeID uint) (bool, error) {
	return r.existsBy(ctx, "phone_number = ?", phone, excludeID)
}

func (r *userRepository) existsBy(ctx context.Context, cond string, value string, excludeID uint) (bool, error) {
	var total int64
	query := r.getDB(ctx).Model(&UserModel{}).Where(cond, value)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&total).Error; err != nil {
		return false, apperrors.Wrap(err, "唯一性检查失败")
	}
	return total > 0, nil
}

// Update 更新用户信息
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	model.ID = u.ID
	model.CreatedAt = u.CreatedAt

	if err := r.getDB(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return duplicateUserError(err)
		}
		return apperrors.Wrap(err, "更新用户失败")
	}

	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除用户(软删除)
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&UserModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除用户失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ListNonAdmin 查询所有非管理员用户(用户管理页)
func (r *userRepository) ListNonAdmin(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	err := r.getDB(ctx).
		Where("role <> ?", string(user.RoleAdmin)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户列表失败")
	}
	return toUserEntities(models), nil
}

// ListAll 查询所有用户(管理员总览)
func (r *userRepository) ListAll(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	err := r.getDB(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户列表失败")
	}
	return toUserEntities(models), nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		PhoneNumber:        u.PhoneNumber,
		Password:           u.PasswordHash,
		Role:               string(u.Role),
		MembershipID:       u.MembershipID.String(),
		MembershipDate:     u.MembershipDate,
		SuccessfulOrders:   u.SuccessfulOrders,
		HasActiveDiscount:  u.HasActiveDiscount,
		DiscountPercentage: u.DiscountPercentage,
	}
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:                 model.ID,
		Name:               model.Name,
		Email:              model.Email,
		PhoneNumber:        model.PhoneNumber,
		PasswordHash:       model.Password,
		Role:               user.Role(model.Role),
		MembershipID:       parseMembershipID(model.MembershipID),
		MembershipDate:     model.MembershipDate,
		SuccessfulOrders:   model.SuccessfulOrders,
		HasActiveDiscount:  model.HasActiveDiscount,
		DiscountPercentage: model.DiscountPercentage,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func toUserEntities(models []UserModel) []*user.User {
	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users
}

// duplicateUserError 按冲突的索引字段映射到具体业务错误
func duplicateUserError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return user.ErrEmailDuplicate
	case strings.Contains(msg, "phone"):
		return user.ErrPhoneDuplicate
	default:
		return user.ErrNameDuplicate
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制
func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
