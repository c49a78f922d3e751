package book

import (
	"context"
	"fmt"
	"time"

	"github.com/xiebiao/bookbazar/internal/domain/book"
)

// GetBookUseCase 图书详情查询用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建详情查询用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
	}
}

// BookDetailResponse 详情响应DTO(含简介,不含封面字节)
type BookDetailResponse struct {
	BookListItem
	Description          string `json:"description"`
	Categories           string `json:"categories"`
	IsAvailableInLibrary bool   `json:"is_available_in_library"`
	SalesCount           int    `json:"sales_count"`
	DiscountStart        string `json:"discount_start,omitempty"`
	DiscountEnd          string `json:"discount_end,omitempty"`
	DiscountedPrice      *int64 `json:"discounted_price,omitempty"`
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetailResponse, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDetail(b), nil
}

// toDetail 领域实体 → 详情DTO
func toDetail(b *book.Book) *BookDetailResponse {
	resp := &BookDetailResponse{
		BookListItem:         toListItem(b),
		Description:          b.Description,
		Categories:           b.Categories,
		IsAvailableInLibrary: b.IsAvailableInLibrary,
		SalesCount:           b.SalesCount,
		DiscountedPrice:      b.DiscountedPrice,
	}
	if b.DiscountStart != nil {
		resp.DiscountStart = b.DiscountStart.Format(time.RFC3339)
	}
	if b.DiscountEnd != nil {
		resp.DiscountEnd = b.DiscountEnd.Format(time.RFC3339)
	}
	return resp
}

// GetBookImageUseCase 封面图读取用例(HTTP层直接回写字节流)
type GetBookImageUseCase struct {
	bookService book.Service
}

// NewGetBookImageUseCase 创建封面图读取用例
func NewGetBookImageUseCase(bookService book.Service) *GetBookImageUseCase {
	return &GetBookImageUseCase{
		bookService: bookService,
	}
}

// BookImage 封面图字节与内容类型
type BookImage struct {
	Data        []byte
	ContentType string
}

// Execute 读取封面图
func (uc *GetBookImageUseCase) Execute(ctx context.Context, id uint) (*BookImage, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(b.ImageData) == 0 {
		return nil, book.ErrBookNotFound
	}
	return &BookImage{
		Data:        b.ImageData,
		ContentType: b.ImageContentType,
	}, nil
}

// toListItem 领域实体 → 列表项DTO
func toListItem(b *book.Book) BookListItem {
	availability := "out of stock"
	if b.IsAvailable() {
		availability = "in stock"
	}
	return BookListItem{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		Publisher:       b.Publisher,
		Genre:           b.Genre,
		Format:          b.Format,
		Language:        b.Language,
		Price:           b.Price,
		EffectivePrice:  b.EffectivePrice(time.Now()),
		IsOnSale:        b.IsOnSale,
		IsBestseller:    b.IsBestseller,
		IsAwardWinner:   b.IsAwardWinner,
		Stock:           b.Stock,
		Availability:    availability,
		PublicationDate: b.PublicationDate.Format("2006-01-02"),
		Rating:          b.Rating,
		ImageURL:        fmt.Sprintf("/api/book/%d/image", b.ID),
	}
}
