package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookbazar/internal/domain/announcement"
	apperrors "github.com/xiebiao/bookbazar/pkg/errors"
)

// announcementRepository 公告仓储实现(MySQL)
type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository 创建公告仓储
func NewAnnouncementRepository(db *gorm.DB) announcement.Repository {
	return &announcementRepository{db: db}
}

// Create 新增公告
func (r *announcementRepository) Create(ctx context.Context, a *announcement.Announcement) error {
	model := toAnnouncementModel(a)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建公告失败")
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 按主键查询
func (r *announcementRepository) FindByID(ctx context.Context, id uint) (*announcement.Announcement, error) {
	var model AnnouncementModel
	err := r.getDB(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, announcement.ErrAnnouncementNotFound
		}
		return nil, apperrors.Wrap(err, "查询公告失败")
	}
	return toAnnouncementEntity(&model), nil
}

// ListVisible 查询对会员可见的公告
// 可见条件:已启用,且当前时间落在生效窗口内(缺省侧的边界不限制)
func (r *announcementRepository) ListVisible(ctx context.Context, now time.Time) ([]*announcement.Announcement, error) {
	var models []AnnouncementModel
	err := r.getDB(ctx).
		Where("is_active = ?", true).
		Where("start_at IS NULL OR start_at <= ?", now).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询可见公告失败")
	}
	return toAnnouncementEntities(models), nil
}

// ListAll 查询全部公告,管理后台使用
func (r *announcementRepository) ListAll(ctx context.Context) ([]*announcement.Announcement, error) {
	var models []AnnouncementModel
	err := r.getDB(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询公告列表失败")
	}
	return toAnnouncementEntities(models), nil
}

// Update 保存公告变更
func (r *announcementRepository) Update(ctx context.Context, a *announcement.Announcement) error {
	model := toAnnouncementModel(a)
	model.ID = a.ID
	model.CreatedAt = a.CreatedAt

	if err := r.getDB(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新公告失败")
	}
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除公告
func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&AnnouncementModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除公告失败")
	}
	if result.RowsAffected == 0 {
		return announcement.ErrAnnouncementNotFound
	}
	return nil
}

func toAnnouncementModel(a *announcement.Announcement) *AnnouncementModel {
	return &AnnouncementModel{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		IsActive:  a.IsActive,
		StartAt:   a.StartAt,
		ExpiresAt: a.ExpiresAt,
		CreatedBy: a.CreatedBy,
	}
}

func toAnnouncementEntity(model *AnnouncementModel) *announcement.Announcement {
	return &announcement.Announcement{
		ID:        model.ID,
		Title:     model.Title,
		Content:   model.Content,
		IsActive:  model.IsActive,
		StartAt:   model.StartAt,
		ExpiresAt: model.ExpiresAt,
		CreatedBy: model.CreatedBy,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toAnnouncementEntities(models []AnnouncementModel) []*announcement.Announcement {
	result := make([]*announcement.Announcement, len(models))
	for i := range models {
		result[i] = toAnnouncementEntity(&models[i])
	}
	return result
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *announcementRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
