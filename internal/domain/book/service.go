package book

import (
	"context"
	"strings"
	"time"
)

// 封面图上传限制
const (
	MaxImageSize = 5 * 1024 * 1024 // 5MB
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// CreateInput 图书创建/更新输入
type CreateInput struct {
	Title           string
	ISBN            string
	Description     string
	Language        string
	Format          string
	Price           int64
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

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(价格/库存/封面图/折扣窗口)
// 2. 目录查询是纯读路径,直接委托仓储
type Service interface {
	// CreateBook 新增图书(管理员)
	// 业务规则:封面图必填,≤5MB,仅JPEG/PNG/GIF
	CreateBook(ctx context.Context, input CreateInput) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书(管理员);封面图可选,不传则保留原图
	UpdateBook(ctx context.Context, id uint, input CreateInput) (*Book, error)

	// DeleteBook 删除图书(管理员)
	DeleteBook(ctx context.Context, id uint) error

	// ListAllBooks 全量图书
	ListAllBooks(ctx context.Context) ([]*Book, error)

	// ListBooks 分页+筛选+排序查询
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListFacet 筛选面取值
	ListFacet(ctx context.Context, facet Facet) ([]string, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 新增图书
func (s *service) CreateBook(ctx context.Context, input CreateInput) (*Book, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := validateImage(input.ImageData, input.ImageContentType, true); err != nil {
		return nil, err
	}

	b := NewBook(input.Title, input.ISBN, input.Description, input.Language, input.Format,
		input.Price, input.Stock, input.PublicationDate,
		input.Author, input.Categories, input.Genre, input.Publisher)
	applyFlags(b, input)
	b.AttachImage(input.ImageData, strings.ToLower(input.ImageContentType))

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, input CreateInput) (*Book, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := validateImage(input.ImageData, input.ImageContentType, false); err != nil {
		return nil, err
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Title = input.Title
	b.ISBN = input.ISBN
	b.Description = input.Description
	b.Language = input.Language
	b.Format = input.Format
	b.Price = input.Price
	b.Stock = input.Stock
	b.PublicationDate = input.PublicationDate.UTC()
	b.Author = input.Author
	b.Categories = input.Categories
	b.Genre = input.Genre
	b.Publisher = input.Publisher
	applyFlags(b, input)
	if len(input.ImageData) > 0 {
		b.AttachImage(input.ImageData, strings.ToLower(input.ImageContentType))
	}
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListAllBooks 全量图书
func (s *service) ListAllBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.ListAll(ctx)
}

// ListBooks 分页查询
// 防御规则:页码最小为1,页大小收敛到[1,100],防止恶意的超大分页
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 10
	}
	if params.PageSize > 100 {
		params.PageSize = 100
	}
	return s.repo.List(ctx, params)
}

// ListFacet 筛选面取值
func (s *service) ListFacet(ctx context.Context, facet Facet) ([]string, error) {
	return s.repo.DistinctValues(ctx, facet)
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

func validateInput(input CreateInput) error {
	if input.Price < 1 {
		return ErrInvalidPrice
	}
	if input.Stock < 0 {
		return ErrInvalidStock
	}
	// 参与促销时折扣窗口必须完整
	if input.IsOnSale {
		if input.DiscountStart == nil || input.DiscountEnd == nil || input.DiscountedPrice == nil {
			return ErrInvalidDiscount
		}
		if *input.DiscountedPrice < 1 {
			return ErrInvalidPrice
		}
	}
	return nil
}

// validateImage 封面图校验
// required为true时(新增)必须带图;更新时不带图表示保留原图
func validateImage(data []byte, contentType string, required bool) error {
	if len(data) == 0 {
		if required {
			return ErrImageRequired
		}
		return nil
	}
	if len(data) > MaxImageSize {
		return ErrImageTooLarge
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return ErrImageBadType
	}
	return nil
}

func applyFlags(b *Book, input CreateInput) {
	b.IsAvailableInLibrary = input.IsAvailableInLibrary
	b.IsAwardWinner = input.IsAwardWinner
	b.IsBestseller = input.IsBestseller
	b.IsOnSale = input.IsOnSale
	b.DiscountStart = input.DiscountStart
	b.DiscountEnd = input.DiscountEnd
	b.DiscountedPrice = input.DiscountedPrice
}
