package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookbazar/internal/domain/book"
	apperrors "github.com/xiebiao/bookbazar/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 目录查询按"页签谓词 → 用户筛选 → 总数 → 排序 → 分页"的顺序组装,
//    总数与结果集在同一过滤集上计算,保证分页元数据一致
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		// 检查是否为ISBN重复错误
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByIDs 批量查找(订单创建前校验)
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []BookModel
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	model.ID = b.ID
	model.CreatedAt = b.CreatedAt

	// 使用Save更新所有字段
	if err := r.getDB(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.getDB(ctx).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// ListAll 全量查询(图书总表)
func (r *bookRepository) ListAll(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := r.getDB(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// List 目录分页查询
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}

	query := r.getDB(ctx).Model(&BookModel{})

	// 1. 页签谓词(先于用户筛选条件生效)
	query = applyTab(query, params, now)

	// 2. 用户筛选条件(AND组合,SearchTerm内部为OR)
	query = applyFilters(query, params, now)

	// 3. 在同一过滤集上计算总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	// 4. 排序
	query = applySort(query, params.Tab, params.SortBy)

	// 5. 分页
	offset := (params.Page - 1) * params.PageSize
	query = query.Limit(params.PageSize).Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// applyTab 应用页签谓词
// 业务规则:
// - bestsellers:   标记为畅销书
// - award-winners: 标记为获奖作品
// - coming-soon:   出版日期在未来
// - deals:         标记为促销,折扣窗口只影响生效价不影响归属
// - new-releases:  近N天内出版(N由配置下发)
// - new-arrivals:  近M天内上架(M由配置下发)
func applyTab(query *gorm.DB, params book.ListParams, now time.Time) *gorm.DB {
	switch params.Tab {
	case book.TabBestsellers:
		return query.Where("is_bestseller = ?", true)
	case book.TabAwardWinners:
		return query.Where("is_award_winner = ?", true)
	case book.TabComingSoon:
		return query.Where("publication_date > ?", now)
	case book.TabDeals:
		return query.Where("is_on_sale = ?", true)
	case book.TabNewReleases:
		return query.Where("publication_date >= ? AND publication_date <= ?",
			now.Add(-params.NewReleaseWindow), now)
	case book.TabNewArrivals:
		return query.Where("created_at >= ?", now.Add(-params.NewArrivalWindow))
	default:
		return query
	}
}

// applyFilters 应用用户筛选条件,空值条件整体跳过
func applyFilters(query *gorm.DB, params book.ListParams, now time.Time) *gorm.DB {
	// 自由文本搜索:书名/作者/ISBN/简介四字段OR模糊匹配
	if params.SearchTerm != "" {
		keyword := "%" + params.SearchTerm + "%"
		query = query.Where(
			"title LIKE ? OR author LIKE ? OR isbn LIKE ? OR description LIKE ?",
			keyword, keyword, keyword, keyword)
	}

	if params.Genre != "" {
		query = query.Where("genre = ?", params.Genre)
	}
	if params.Format != "" {
		query = query.Where("format = ?", params.Format)
	}
	if params.Category != "" {
		query = query.Where("categories = ?", params.Category)
	}
	if params.Publisher != "" {
		query = query.Where("publisher = ?", params.Publisher)
	}
	if params.Author != "" {
		query = query.Where("author = ?", params.Author)
	}
	if params.Language != "" {
		query = query.Where("language = ?", params.Language)
	}

	// 库存状态
	switch params.Availability {
	case "in stock":
		query = query.Where("stock > 0")
	case "out of stock":
		query = query.Where("stock <= 0")
	}

	// 价格区间(按标价过滤)
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	return query
}

// applySort 应用排序
// 未识别的键回落到默认排序:new-releases页签按出版时间倒序,其余按上架时间倒序
func applySort(query *gorm.DB, tab book.Tab, sortBy string) *gorm.DB {
	switch sortBy {
	case "title":
		return query.Order("title ASC")
	case "title_desc":
		return query.Order("title DESC")
	case "price":
		return query.Order("price ASC")
	case "price_desc":
		return query.Order("price DESC")
	case "date":
		return query.Order("publication_date ASC")
	case "date_desc":
		return query.Order("publication_date DESC")
	default:
		if tab == book.TabNewReleases {
			return query.Order("publication_date DESC")
		}
		return query.Order("created_at DESC")
	}
}

// DistinctValues 筛选面的去重取值(跳过空值)
func (r *bookRepository) DistinctValues(ctx context.Context, facet book.Facet) ([]string, error) {
	column, ok := facetColumns[facet]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "未知的筛选维度")
	}

	var values []string
	err := r.getDB(ctx).Model(&BookModel{}).
		Distinct(column).
		Where(column+" <> ''").
		Order(column + " ASC").
		Pluck(column, &values).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询筛选项失败")
	}
	return values, nil
}

// facetColumns 筛选面到列名的白名单映射,防止列名注入
var facetColumns = map[book.Facet]string{
	book.FacetGenres:     "genre",
	book.FacetFormats:    "format",
	book.FacetCategories: "categories",
	book.FacetAuthors:    "author",
	book.FacetLanguages:  "language",
	book.FacetPublishers: "publisher",
}

// LockByID 悲观锁查询图书(用于订单创建)
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	// SELECT FOR UPDATE锁定行
	// 教学要点:必须使用getDB(ctx)从context获取事务DB
	db := r.getDB(ctx)
	err := withRowLock(db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// UpdateStock 更新库存(原子操作)
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	// 使用UPDATE语句原子性更新库存
	// UPDATE books SET stock = stock + delta WHERE id = ? AND stock + delta >= 0
	// 教学要点:必须使用getDB(ctx)参与事务
	db := r.getDB(ctx)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock + ? >= 0", delta). // 防止库存为负
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在,或者库存不足
		// 再查一次确定原因
		var model BookModel
		if err := r.getDB(ctx).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		// 图书存在,说明是库存不足
		return book.ErrInsufficientStock
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		Publisher:       b.Publisher,
		Description:     b.Description,
		Language:        b.Language,
		Format:          b.Format,
		Categories:      b.Categories,
		Genre:           b.Genre,
		Price:           b.Price,
		Stock:           b.Stock,
		PublicationDate: b.PublicationDate,
		ImageData:       b.ImageData,
		ImageType:       b.ImageContentType,

		IsAvailableInLibrary: b.IsAvailableInLibrary,
		IsAwardWinner:        b.IsAwardWinner,
		IsBestseller:         b.IsBestseller,
		IsOnSale:             b.IsOnSale,

		DiscountStart:   b.DiscountStart,
		DiscountEnd:     b.DiscountEnd,
		DiscountedPrice: b.DiscountedPrice,

		SalesCount: b.SalesCount,
		Rating:     b.Rating,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		ISBN:            model.ISBN,
		Title:           model.Title,
		Author:          model.Author,
		Publisher:       model.Publisher,
		Description:     model.Description,
		Language:        model.Language,
		Format:          model.Format,
		Categories:      model.Categories,
		Genre:           model.Genre,
		Price:           model.Price,
		Stock:           model.Stock,
		PublicationDate: model.PublicationDate,

		ImageData:        model.ImageData,
		ImageContentType: model.ImageType,

		IsAvailableInLibrary: model.IsAvailableInLibrary,
		IsAwardWinner:        model.IsAwardWinner,
		IsBestseller:         model.IsBestseller,
		IsOnSale:             model.IsOnSale,

		DiscountStart:   model.DiscountStart,
		DiscountEnd:     model.DiscountEnd,
		DiscountedPrice: model.DiscountedPrice,

		SalesCount: model.SalesCount,
		Rating:     model.Rating,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
