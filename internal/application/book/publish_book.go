package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookbazar/internal/domain/book"
)

// PublishBookUseCase 图书上架维护用例(管理员后台)
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO(Data Transfer Object),与HTTP层解耦
// 3. 封面图以字节流入参,校验规则(大小/类型)由领域服务负责
type PublishBookUseCase struct {
	bookService book.Service
}

// NewPublishBookUseCase 创建上架维护用例
func NewPublishBookUseCase(bookService book.Service) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService: bookService,
	}
}

// PublishBookRequest 上架/更新请求DTO
type PublishBookRequest struct {
	Title           string
	ISBN            string
	Description     string
	Language        string
	Format          string
	Price           int64 // 价格(分)
	Stock           int
	PublicationDate time.Time
	Author          string
	Categories      string
	Genre           string
	Publisher       string

	IsAvailableInLibrary bool
	IsAwardWinner        bool
	IsBestseller         bool
	IsOnSale             bool
	DiscountStart        *time.Time
	DiscountEnd          *time.Time
	DiscountedPrice      *int64

	ImageData        []byte
	ImageContentType string
}

// PublishBookResponse 上架/更新响应DTO
type PublishBookResponse struct {
	ID              uint   `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	Price           int64  `json:"price"` // 价格(分)
	Stock           int    `json:"stock"`
	PublicationDate string `json:"publication_date"`
	CreatedAt       string `json:"created_at"`
}

// Create 执行图书上架
// 学习要点:
// 1. 应用层不直接操作Repository,通过领域服务间接操作
// 2. 业务规则校验由领域服务负责(价格非负、封面图必填等)
// 3. 应用层只负责流程编排与DTO转换
func (uc *PublishBookUseCase) Create(ctx context.Context, req PublishBookRequest) (*PublishBookResponse, error) {
	b, err := uc.bookService.CreateBook(ctx, toCreateInput(req))
	if err != nil {
		return nil, err
	}
	return toPublishResponse(b), nil
}

// Update 执行图书更新(封面图可选,不传保留原图)
func (uc *PublishBookUseCase) Update(ctx context.Context, id uint, req PublishBookRequest) (*PublishBookResponse, error) {
	b, err := uc.bookService.UpdateBook(ctx, id, toCreateInput(req))
	if err != nil {
		return nil, err
	}
	return toPublishResponse(b), nil
}

// Delete 下架删除图书
func (uc *PublishBookUseCase) Delete(ctx context.Context, id uint) error {
	return uc.bookService.DeleteBook(ctx, id)
}

func toCreateInput(req PublishBookRequest) book.CreateInput {
	return book.CreateInput{
		Title:           req.Title,
		ISBN:            req.ISBN,
		Description:     req.Description,
		Language:        req.Language,
		Format:          req.Format,
		Price:           req.Price,
		Stock:           req.Stock,
		PublicationDate: req.PublicationDate,
		Author:          req.Author,
		Categories:      req.Categories,
		Genre:           req.Genre,
		Publisher:       req.Publisher,

		IsAvailableInLibrary: req.IsAvailableInLibrary,
		IsAwardWinner:        req.IsAwardWinner,
		IsBestseller:         req.IsBestseller,
		IsOnSale:             req.IsOnSale,
		DiscountStart:        req.DiscountStart,
		DiscountEnd:          req.DiscountEnd,
		DiscountedPrice:      req.DiscountedPrice,

		ImageData:        req.ImageData,
		ImageContentType: req.ImageContentType,
	}
}

func toPublishResponse(b *book.Book) *PublishBookResponse {
	return &PublishBookResponse{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		Publisher:       b.Publisher,
		Price:           b.Price,
		Stock:           b.Stock,
		PublicationDate: b.PublicationDate.Format("2006-01-02"),
		CreatedAt:       b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
