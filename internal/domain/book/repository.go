package book

import (
	"context"
	"time"
)

// Tab 目录页签(固定谓词,先于用户筛选条件生效)
type Tab string

const (
	TabAll          Tab = "all"
	TabBestsellers  Tab = "bestsellers"
	TabAwardWinners Tab = "award-winners"
	TabComingSoon   Tab = "coming-soon"
	TabDeals        Tab = "deals"
	TabNewReleases  Tab = "new-releases"
	TabNewArrivals  Tab = "new-arrivals"
)

// ParseTab 解析页签,未识别的值按all处理
func ParseTab(s string) Tab {
	switch Tab(s) {
	case TabBestsellers, TabAwardWinners, TabComingSoon, TabDeals, TabNewReleases, TabNewArrivals:
		return Tab(s)
	default:
		return TabAll
	}
}

// ListParams 目录查询参数
// 筛选条件语义:
// 1. SearchTerm在书名/作者/ISBN/简介四个字段做OR模糊匹配
// 2. 其余条件为精确或区间匹配,彼此之间AND组合
// 3. 值为空的条件整体跳过
type ListParams struct {
	Tab Tab

	SearchTerm   string
	Genre        string
	Format       string
	Availability string // "in stock" | "out of stock"
	MinPrice     *int64 // 分
	MaxPrice     *int64 // 分
	Category     string
	Publisher    string
	Author       string
	Language     string

	SortBy   string // title | title_desc | price | price_desc | date | date_desc
	Page     int
	PageSize int

	// 页签的滑动窗口(new-releases/new-arrivals),由配置下发
	NewReleaseWindow time.Duration
	NewArrivalWindow time.Duration

	Now time.Time // 查询基准时间,零值时仓储取time.Now()
}

// Facet 筛选面(目录页下拉选项)
type Facet string

const (
	FacetGenres     Facet = "genres"
	FacetFormats    Facet = "formats"
	FacetCategories Facet = "categories"
	FacetAuthors    Facet = "authors"
	FacetLanguages  Facet = "languages"
	FacetPublishers Facet = "publishers"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. List在同一过滤集上先算总数再分页,保证total与结果集一致
// 3. LockByID/UpdateStock供订单事务使用,通过context传递事务DB
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查找(订单创建前校验)
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// ListAll 全量查询(图书总表)
	ListAll(ctx context.Context) ([]*Book, error)

	// List 分页查询:页签谓词 → 用户筛选 → 总数 → 排序 → 分页
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// DistinctValues 筛选面的去重取值(跳过空值)
	DistinctValues(ctx context.Context, facet Facet) ([]string, error)

	// LockByID 悲观锁查询图书(用于订单创建时锁定库存)
	// 使用SELECT FOR UPDATE锁定行,防止并发超卖
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 更新库存(原子操作)
	// delta为正数表示增加,负数表示减少
	// 内部会检查库存是否充足,不足则返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error
}
