package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookbazar/internal/domain/cart"
	apperrors "github.com/xiebiao/bookbazar/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Save 创建或更新条目
func (r *cartRepository) Save(ctx context.Context, item *cart.Item) error {
	model := &CartItemModel{
		ID:       item.ID,
		UserID:   item.UserID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}
	if item.ID > 0 {
		model.CreatedAt = item.CreatedAt
	}

	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "保存购物车条目失败")
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 按主键查询
func (r *cartRepository) FindByID(ctx context.Context, id uint) (*cart.Item, error) {
	var model CartItemModel
	err := r.getDB(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}
	return toCartItemEntity(&model), nil
}

// FindByUserAndBook 按用户与图书查询
func (r *cartRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*cart.Item, error) {
	var model CartItemModel
	err := r.getDB(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}
	return toCartItemEntity(&model), nil
}

// ListByUserID 查询用户的全部购物车条目
func (r *cartRepository) ListByUserID(ctx context.Context, userID uint) ([]*cart.Item, error) {
	var models []CartItemModel
	err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	items := make([]*cart.Item, len(models))
	for i := range models {
		items[i] = toCartItemEntity(&models[i])
	}
	return items, nil
}

// Delete 删除条目
func (r *cartRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&CartItemModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

// DeleteByUserID 清空用户购物车,下单事务内调用
func (r *cartRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Delete(&CartItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "清空购物车失败")
	}
	return nil
}

func toCartItemEntity(model *CartItemModel) *cart.Item {
	return &cart.Item{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *cartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
