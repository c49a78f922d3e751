package dto

// SaveBookRequest HTTP图书上架/更新请求(multipart表单,封面图走文件域)
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
// - datetime: 日期格式校验
type SaveBookRequest struct {
	Title           string `form:"title" binding:"required,max=200"`
	ISBN            string `form:"isbn" binding:"required,max=20"`
	Description     string `form:"description" binding:"max=5000"`
	Language        string `form:"language" binding:"omitempty,max=50"`
	Format          string `form:"format" binding:"omitempty,max=50"`
	Price           int64  `form:"price" binding:"required,min=1,max=99999999"` // 价格(分)
	Stock           int    `form:"stock" binding:"min=0"`
	PublicationDate string `form:"publication_date" binding:"required,datetime=2006-01-02"`
	Author          string `form:"author" binding:"required,max=100"`
	Categories      string `form:"categories" binding:"omitempty,max=200"`
	Genre           string `form:"genre" binding:"omitempty,max=100"`
	Publisher       string `form:"publisher" binding:"omitempty,max=100"`

	IsAvailableInLibrary bool `form:"is_available_in_library"`
	IsAwardWinner        bool `form:"is_award_winner"`
	IsBestseller         bool `form:"is_bestseller"`
	IsOnSale             bool `form:"is_on_sale"`

	DiscountStart   string `form:"discount_start" binding:"omitempty"` // RFC3339
	DiscountEnd     string `form:"discount_end" binding:"omitempty"`   // RFC3339
	DiscountedPrice *int64 `form:"discounted_price" binding:"omitempty,min=1"`
}

// ListBooksRequest HTTP目录查询请求
// 页签由路由决定,筛选条件全部走query,空值条件跳过
type ListBooksRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`

	Search       string `form:"search" binding:"omitempty,max=100"`
	Genre        string `form:"genre" binding:"omitempty,max=100"`
	Format       string `form:"format" binding:"omitempty,max=50"`
	Availability string `form:"availability" binding:"omitempty,oneof='in stock' 'out of stock'"`
	MinPrice     *int64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice     *int64 `form:"max_price" binding:"omitempty,min=0"`
	Category     string `form:"category" binding:"omitempty,max=100"`
	Publisher    string `form:"publisher" binding:"omitempty,max=100"`
	Author       string `form:"author" binding:"omitempty,max=100"`
	Language     string `form:"language" binding:"omitempty,max=50"`

	SortBy string `form:"sort" binding:"omitempty,oneof=title title_desc price price_desc date date_desc"`
}
