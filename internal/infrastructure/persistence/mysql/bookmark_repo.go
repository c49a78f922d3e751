package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookbazar/internal/domain/bookmark"
	apperrors "github.com/xiebiao/bookbazar/pkg/errors"
)

// bookmarkRepository 书签仓储实现(MySQL)
type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository 创建书签仓储
func NewBookmarkRepository(db *gorm.DB) bookmark.Repository {
	return &bookmarkRepository{db: db}
}

// Create 新增书签
func (r *bookmarkRepository) Create(ctx context.Context, bm *bookmark.Bookmark) error {
	model := &BookmarkModel{
		UserID: bm.UserID,
		BookID: bm.BookID,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		// 并发重复收藏撞唯一索引时按幂等处理
		if isDuplicateError(err) {
			return nil
		}
		return apperrors.Wrap(err, "创建书签失败")
	}

	bm.ID = model.ID
	bm.CreatedAt = model.CreatedAt
	return nil
}

// FindByUserAndBook 查询某用户对某图书的书签
func (r *bookmarkRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*bookmark.Bookmark, error) {
	var model BookmarkModel
	err := r.getDB(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookmark.ErrBookmarkNotFound
		}
		return nil, apperrors.Wrap(err, "查询书签失败")
	}
	return toBookmarkEntity(&model), nil
}

// ListByUserID 查询用户全部书签,按创建时间倒序
func (r *bookmarkRepository) ListByUserID(ctx context.Context, userID uint) ([]*bookmark.Bookmark, error) {
	var models []BookmarkModel
	err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询书签列表失败")
	}

	bookmarks := make([]*bookmark.Bookmark, len(models))
	for i := range models {
		bookmarks[i] = toBookmarkEntity(&models[i])
	}
	return bookmarks, nil
}

// ListBookIDsByUserID 仅返回用户收藏的图书ID集合
func (r *bookmarkRepository) ListBookIDsByUserID(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.getDB(ctx).Model(&BookmarkModel{}).
		Where("user_id = ?", userID).
		Pluck("book_id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询收藏图书ID失败")
	}
	return ids, nil
}

// Delete 删除书签
func (r *bookmarkRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&BookmarkModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书签失败")
	}
	if result.RowsAffected == 0 {
		return bookmark.ErrBookmarkNotFound
	}
	return nil
}

func toBookmarkEntity(model *BookmarkModel) *bookmark.Bookmark {
	return &bookmark.Bookmark{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		CreatedAt: model.CreatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *bookmarkRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
