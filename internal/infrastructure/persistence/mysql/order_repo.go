package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookbazar/internal/domain/order"
	apperrors "github.com/xiebiao/bookbazar/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. 订单头与订单行在同一事务中写入(GORM关联自动处理)
// 2. 提货码唯一索引冲突转换为ErrClaimCodeCollision,由应用层重新生成
// 3. LockByID供核销事务使用,防止并发重复核销
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单及订单行
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := &OrderModel{
		UserID:      o.UserID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		ClaimCode:   o.ClaimCode,
		IsCompleted: o.IsCompleted,
		Items:       make([]OrderItemModel, len(o.Items)),
	}
	for i, item := range o.Items {
		model.Items[i] = OrderItemModel{
			BookID:      item.BookID,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
		}
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return order.ErrClaimCodeCollision
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填主键与时间戳
	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 按主键查询,预加载订单行
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := r.getDB(ctx).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// LockByID 加行锁查询,核销时在事务内调用
// 教学要点:行锁只锁订单头,订单行不参与核销状态变更
func (r *orderRepository) LockByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	db := r.getDB(ctx)
	err := withRowLock(db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "锁定订单失败")
	}

	// 行数据单独加载(FOR UPDATE不支持Preload连表)
	if err := db.Where("order_id = ?", id).Find(&model.Items).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询订单明细失败")
	}
	return toOrderEntity(&model), nil
}

// ListByUserID 查询用户订单列表,按创建时间倒序
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint) ([]*order.Order, error) {
	var models []OrderModel
	err := r.getDB(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), nil
}

// ListIncomplete 查询全部未核销订单,店员工作台使用
func (r *orderRepository) ListIncomplete(ctx context.Context) ([]*order.Order, error) {
	var models []OrderModel
	err := r.getDB(ctx).Preload("Items").
		Where("is_completed = ?", false).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询待核销订单失败")
	}
	return toOrderEntities(models), nil
}

// Update 保存订单状态变更(核销)
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	err := r.getDB(ctx).Model(&OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":       o.Status,
			"is_completed": o.IsCompleted,
			"completed_at": o.CompletedAt,
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新订单失败")
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	o := &order.Order{
		ID:          model.ID,
		UserID:      model.UserID,
		Status:      model.Status,
		TotalAmount: model.TotalAmount,
		ClaimCode:   model.ClaimCode,
		IsCompleted: model.IsCompleted,
		CompletedAt: model.CompletedAt,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		Items:       make([]*order.Item, len(model.Items)),
	}
	for i, item := range model.Items {
		o.Items[i] = &order.Item{
			ID:          item.ID,
			OrderID:     item.OrderID,
			BookID:      item.BookID,
			Quantity:    item.Quantity,
			PriceAtTime: item.PriceAtTime,
		}
	}
	return o
}

func toOrderEntities(models []OrderModel) []*order.Order {
	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制
func (r *orderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
