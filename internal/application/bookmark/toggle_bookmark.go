package bookmark

import (
	"context"
	"errors"

	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/domain/bookmark"
)

// ToggleBookmarkUseCase 书签切换用例
// 设计说明:
// 1. 切换语义:已收藏则取消,未收藏则添加,同一入口反复调用在两态间往返
// 2. 并发重复添加由仓储的唯一索引兜底,重复插入按幂等成功处理
type ToggleBookmarkUseCase struct {
	bookmarkRepo bookmark.Repository
	bookRepo     book.Repository
}

// NewToggleBookmarkUseCase 创建书签切换用例
func NewToggleBookmarkUseCase(bookmarkRepo bookmark.Repository, bookRepo book.Repository) *ToggleBookmarkUseCase {
	return &ToggleBookmarkUseCase{
		bookmarkRepo: bookmarkRepo,
		bookRepo:     bookRepo,
	}
}

// ToggleResponse 切换结果
type ToggleResponse struct {
	BookID     uint `json:"book_id"`
	Bookmarked bool `json:"bookmarked"` // 切换后的收藏态
}

// Execute 执行切换
func (uc *ToggleBookmarkUseCase) Execute(ctx context.Context, userID, bookID uint) (*ToggleResponse, error) {
	// 1. 校验图书存在
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	// 2. 已收藏则取消
	existing, err := uc.bookmarkRepo.FindByUserAndBook(ctx, userID, bookID)
	if err == nil {
		if err := uc.bookmarkRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &ToggleResponse{BookID: bookID, Bookmarked: false}, nil
	}
	if !errors.Is(err, bookmark.ErrBookmarkNotFound) {
		return nil, err
	}

	// 3. 未收藏则添加
	if err := uc.bookmarkRepo.Create(ctx, bookmark.New(userID, bookID)); err != nil {
		return nil, err
	}
	return &ToggleResponse{BookID: bookID, Bookmarked: true}, nil
}
