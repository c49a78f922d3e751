package book

import (
	"context"

	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/infrastructure/config"
)

// ListBooksUseCase 目录分页查询用例
// 设计说明:
// 1. 支持页签、筛选、搜索、排序、分页的组合查询
// 2. 列表项不返回封面图字节与完整简介(减少数据传输量)
// 3. 页签滑动窗口(新书/新到货)由配置下发到仓储查询参数
type ListBooksUseCase struct {
	bookService book.Service
	catalogCfg  config.CatalogConfig
}

// NewListBooksUseCase 创建目录查询用例
func NewListBooksUseCase(bookService book.Service, catalogCfg config.CatalogConfig) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
		catalogCfg:  catalogCfg,
	}
}

// ListBooksRequest 目录查询请求DTO
type ListBooksRequest struct {
	Tab      string // all/bestsellers/award-winners/coming-soon/deals/new-releases/new-arrivals
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量

	SearchTerm   string // 搜索关键词(书名/作者/ISBN/简介)
	Genre        string
	Format       string
	Availability string // "in stock" | "out of stock"
	MinPrice     *int64 // 分
	MaxPrice     *int64 // 分
	Category     string
	Publisher    string
	Author       string
	Language     string

	SortBy string // title | title_desc | price | price_desc | date | date_desc
}

// BookListItem 列表项DTO(不含简介与封面字节)
type BookListItem struct {
	ID              uint     `json:"id"`
	ISBN            string   `json:"isbn"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Publisher       string   `json:"publisher"`
	Genre           string   `json:"genre"`
	Format          string   `json:"format"`
	Language        string   `json:"language"`
	Price           int64    `json:"price"`           // 标价(分)
	EffectivePrice  int64    `json:"effective_price"` // 当前生效价(分)
	IsOnSale        bool     `json:"is_on_sale"`
	IsBestseller    bool     `json:"is_bestseller"`
	IsAwardWinner   bool     `json:"is_award_winner"`
	Stock           int      `json:"stock"`
	Availability    string   `json:"availability"`
	PublicationDate string   `json:"publication_date"`
	Rating          *float64 `json:"rating,omitempty"`
	ImageURL        string   `json:"image_url"`
}

// ListBooksResponse 目录查询响应DTO
type ListBooksResponse struct {
	List       []BookListItem `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// Execute 执行目录查询
// 学习要点:
// 1. 参数默认值处理(page默认1, pageSize默认12)
// 2. 参数范围限制(pageSize最大100)
// 3. 总数与列表在同一过滤集上计算,分页信息保证一致
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 12
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	params := book.ListParams{
		Tab: book.ParseTab(req.Tab),

		SearchTerm:   req.SearchTerm,
		Genre:        req.Genre,
		Format:       req.Format,
		Availability: req.Availability,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Category:     req.Category,
		Publisher:    req.Publisher,
		Author:       req.Author,
		Language:     req.Language,

		SortBy:   req.SortBy,
		Page:     req.Page,
		PageSize: req.PageSize,

		NewReleaseWindow: uc.catalogCfg.NewReleaseWindow,
		NewArrivalWindow: uc.catalogCfg.NewArrivalWindow,
	}

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	list := make([]BookListItem, 0, len(books))
	for _, b := range books {
		list = append(list, toListItem(b))
	}

	totalPages := int((total + int64(req.PageSize) - 1) / int64(req.PageSize))
	return &ListBooksResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListAll 图书总表(不分页,含简介)
func (uc *ListBooksUseCase) ListAll(ctx context.Context) ([]*BookDetailResponse, error) {
	books, err := uc.bookService.ListAllBooks(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]*BookDetailResponse, 0, len(books))
	for _, b := range books {
		list = append(list, toDetail(b))
	}
	return list, nil
}

// ListFacetUseCase 筛选面取值查询用例(目录页下拉选项)
type ListFacetUseCase struct {
	bookService book.Service
}

// NewListFacetUseCase 创建筛选面查询用例
func NewListFacetUseCase(bookService book.Service) *ListFacetUseCase {
	return &ListFacetUseCase{
		bookService: bookService,
	}
}

// Execute 查询某一筛选面的去重取值列表
func (uc *ListFacetUseCase) Execute(ctx context.Context, facet book.Facet) ([]string, error) {
	return uc.bookService.ListFacet(ctx, facet)
}
