package bookmark

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/domain/bookmark"
)

// ListBookmarksUseCase 书签列表用例
// 设计说明:
// 1. 列表按收藏时间倒序,补充图书信息供收藏页直接渲染
// 2. 图书已被删除的书签跳过展示,不报错
type ListBookmarksUseCase struct {
	bookmarkRepo bookmark.Repository
	bookRepo     book.Repository
}

// NewListBookmarksUseCase 创建书签列表用例
func NewListBookmarksUseCase(bookmarkRepo bookmark.Repository, bookRepo book.Repository) *ListBookmarksUseCase {
	return &ListBookmarksUseCase{
		bookmarkRepo: bookmarkRepo,
		bookRepo:     bookRepo,
	}
}

// BookmarkItem 书签列表项DTO
type BookmarkItem struct {
	ID             uint   `json:"id"`
	BookID         uint   `json:"book_id"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Price          int64  `json:"price"`           // 标价(分)
	EffectivePrice int64  `json:"effective_price"` // 当前生效价(分)
	InStock        bool   `json:"in_stock"`
	ImageURL       string `json:"image_url"`
	CreatedAt      string `json:"created_at"`
}

// Execute 查询用户书签列表
func (uc *ListBookmarksUseCase) Execute(ctx context.Context, userID uint) ([]BookmarkItem, error) {
	bookmarks, err := uc.bookmarkRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]BookmarkItem, 0, len(bookmarks))
	for _, bm := range bookmarks {
		b, err := uc.bookRepo.FindByID(ctx, bm.BookID)
		if err != nil {
			if errors.Is(err, book.ErrBookNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, BookmarkItem{
			ID:             bm.ID,
			BookID:         b.ID,
			Title:          b.Title,
			Author:         b.Author,
			Price:          b.Price,
			EffectivePrice: b.EffectivePrice(now),
			InStock:        b.IsAvailable(),
			ImageURL:       fmt.Sprintf("/api/book/%d/image", b.ID),
			CreatedAt:      bm.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return items, nil
}

// ListIDs 仅返回收藏的图书ID集合,供目录页标记收藏态
func (uc *ListBookmarksUseCase) ListIDs(ctx context.Context, userID uint) ([]uint, error) {
	return uc.bookmarkRepo.ListBookIDsByUserID(ctx, userID)
}
