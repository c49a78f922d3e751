package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. IsAvailable/即将上市均为派生值,不落库存储,统一走方法计算
// 3. 折扣窗口(DiscountStart/DiscountEnd/DiscountedPrice)与IsOnSale共同决定实收价
// 4. 封面图二进制与Content-Type一起落库,响应时按存储的类型回放
type Book struct {
	ID              uint
	Title           string
	ISBN            string
	Description     string
	Language        string
	Format          string // 精装/平装/电子书等
	Price           int64  // 标价(单位:分)
	Stock           int
	PublicationDate time.Time
	Author          string
	Categories      string
	Genre           string
	Publisher       string

	ImageData        []byte
	ImageContentType string

	IsAvailableInLibrary bool
	IsAwardWinner        bool
	IsBestseller         bool
	IsOnSale             bool

	DiscountStart   *time.Time
	DiscountEnd     *time.Time
	DiscountedPrice *int64 // 折后价(分)

	SalesCount int
	Rating     *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(title, isbn, description, language, format string, price int64, stock int, publicationDate time.Time, author, categories, genre, publisher string) *Book {
	now := time.Now()
	return &Book{
		Title:           title,
		ISBN:            isbn,
		Description:     description,
		Language:        language,
		Format:          format,
		Price:           price,
		Stock:           stock,
		PublicationDate: publicationDate.UTC(),
		Author:          author,
		Categories:      categories,
		Genre:           genre,
		Publisher:       publisher,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsAvailable 是否可购买(派生值:有库存即可购买)
func (b *Book) IsAvailable() bool {
	return b.Stock > 0
}

// IsComingSoon 是否即将上市(派生值:出版日期在未来)
func (b *Book) IsComingSoon(now time.Time) bool {
	return b.PublicationDate.After(now)
}

// EffectivePrice 实收价
// 业务规则:仅当"参与促销 + 折扣窗口完整 + 当前时间落入窗口 + 有折后价"
// 四个条件同时成立时取折后价,否则取标价
func (b *Book) EffectivePrice(now time.Time) int64 {
	if b.IsOnSale &&
		b.DiscountStart != nil &&
		b.DiscountEnd != nil &&
		b.DiscountedPrice != nil &&
		!b.DiscountStart.After(now) &&
		!b.DiscountEnd.Before(now) {
		return *b.DiscountedPrice
	}
	return b.Price
}

// AttachImage 附加封面图
func (b *Book) AttachImage(data []byte, contentType string) {
	b.ImageData = data
	b.ImageContentType = contentType
	b.UpdatedAt = time.Now()
}
