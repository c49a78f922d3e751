package mysql

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookbazar/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 导出供测试用SQLite内存库复用同一套模型
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&CartItemModel{},
		&BookmarkModel{},
		&OrderModel{},
		&OrderItemModel{},
		&AnnouncementModel{},
	)
}

// UserModel GORM用户模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/user/entity.go是领域实体,不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID                 uint           `gorm:"primaryKey"`
	Name               string         `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Email              string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	PhoneNumber        string         `gorm:"uniqueIndex;size:20;not null;comment:手机号"`
	Password           string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Role               string         `gorm:"index;size:20;not null;comment:角色(Member/Staff/Admin)"`
	MembershipID       string         `gorm:"uniqueIndex;size:36;not null;comment:会员号(UUID)"`
	MembershipDate     time.Time      `gorm:"comment:入会时间"`
	SuccessfulOrders   int            `gorm:"default:0;comment:成功核销订单数"`
	HasActiveDiscount  bool           `gorm:"default:false;comment:是否享有会员折扣"`
	DiscountPercentage int            `gorm:"default:0;comment:会员折扣百分比"`
	CreatedAt          time.Time      `gorm:"comment:创建时间"`
	UpdatedAt          time.Time      `gorm:"comment:更新时间"`
	DeletedAt          gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN有唯一索引,防止重复
// 3. 封面图二进制直接落库(mediumblob),与Content-Type配对存储
// 4. 页签/筛选高频字段加索引
type BookModel struct {
	ID              uint           `gorm:"primaryKey"`
	ISBN            string         `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Title           string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author          string         `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Publisher       string         `gorm:"index;size:100;comment:出版社"`
	Description     string         `gorm:"type:text;comment:图书描述"`
	Language        string         `gorm:"size:50;comment:语言"`
	Format          string         `gorm:"index;size:50;comment:装帧形式"`
	Categories      string         `gorm:"size:200;comment:分类"`
	Genre           string         `gorm:"index;size:100;comment:题材"`
	Price           int64          `gorm:"index:idx_list;not null;comment:标价(分)"`
	Stock           int            `gorm:"default:0;comment:库存数量"`
	PublicationDate time.Time      `gorm:"index;comment:出版日期"`
	ImageData       []byte         `gorm:"type:mediumblob;comment:封面图二进制"`
	ImageType       string         `gorm:"size:50;comment:封面图Content-Type"`

	IsAvailableInLibrary bool `gorm:"default:false;comment:门店可借阅"`
	IsAwardWinner        bool `gorm:"index;default:false;comment:获奖作品"`
	IsBestseller         bool `gorm:"index;default:false;comment:畅销书"`
	IsOnSale             bool `gorm:"index;default:false;comment:参与促销"`

	DiscountStart   *time.Time `gorm:"comment:折扣开始时间"`
	DiscountEnd     *time.Time `gorm:"comment:折扣结束时间"`
	DiscountedPrice *int64     `gorm:"comment:折后价(分)"`

	SalesCount int      `gorm:"index;default:0;comment:累计销量"`
	Rating     *float64 `gorm:"comment:评分"`

	CreatedAt time.Time      `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CartItemModel GORM购物车模型
// 教学要点:
// (user_id, book_id)复合唯一索引保证每人每书一行,加购合并在领域层完成
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// BookmarkModel GORM书签模型
type BookmarkModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_bm_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_bm_user_book;not null;comment:图书ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (BookmarkModel) TableName() string {
	return "bookmarks"
}

// OrderModel GORM订单模型
// 教学要点:
// 1. 与OrderItemModel是一对多关系
// 2. ClaimCode有唯一索引(提货凭证,撞码时重新生成)
type OrderModel struct {
	ID          uint             `gorm:"primaryKey"`
	UserID      uint             `gorm:"index;not null;comment:买家用户ID"`
	Status      string           `gorm:"index;size:20;not null;comment:订单状态(Pending/Completed)"`
	TotalAmount int64            `gorm:"not null;comment:订单总金额(分)"`
	ClaimCode   string           `gorm:"uniqueIndex;size:16;not null;comment:提货码"`
	IsCompleted bool             `gorm:"index;default:false;comment:是否已核销"`
	CompletedAt *time.Time       `gorm:"comment:核销时间"`
	Items       []OrderItemModel `gorm:"foreignKey:OrderID"` // 一对多关联
	CreatedAt   time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 教学要点:
// 1. 记录下单时的价格快照(PriceAtTime字段)
// 2. OrderID外键关联orders表
type OrderItemModel struct {
	ID          uint  `gorm:"primaryKey"`
	OrderID     uint  `gorm:"index;not null;comment:订单ID"`
	BookID      uint  `gorm:"index;not null;comment:图书ID"`
	Quantity    int   `gorm:"not null;comment:购买数量"`
	PriceAtTime int64 `gorm:"not null;comment:下单时单价(分)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

// AnnouncementModel GORM公告模型
// 状态(Inactive/Upcoming/Ongoing/Ended)不落库,读取时按当前时间派生
type AnnouncementModel struct {
	ID        uint       `gorm:"primaryKey"`
	Title     string     `gorm:"size:200;not null;comment:标题"`
	Content   string     `gorm:"type:text;comment:正文"`
	IsActive  bool       `gorm:"index;default:false;comment:启用开关"`
	StartAt   *time.Time `gorm:"index;comment:生效开始时间"`
	ExpiresAt *time.Time `gorm:"index;comment:生效结束时间"`
	CreatedBy string     `gorm:"size:50;not null;comment:发布人"`
	CreatedAt time.Time  `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AnnouncementModel) TableName() string {
	return "announcements"
}

// parseMembershipID 容错解析会员号,脏数据时返回零值UUID而非失败
func parseMembershipID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}
	}
	return id
}
