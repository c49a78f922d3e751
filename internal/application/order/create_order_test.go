package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/domain/cart"
	"github.com/xiebiao/bookbazar/internal/domain/order"
	"github.com/xiebiao/bookbazar/internal/domain/user"
	"github.com/xiebiao/bookbazar/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookbazar/pkg/metrics"
)

// 下单/核销用例的事务编排测试
// 教学要点:用SQLite内存库在进程内跑完整的用例链路,
// 验证价格快照、库存扣减、购物车清空在同一事务内的原子性

type orderTestEnv struct {
	db          *gorm.DB
	userRepo    user.Repository
	bookRepo    book.Repository
	cartRepo    cart.Repository
	orderRepo   order.Repository
	userService user.Service
	createUC    *CreateOrderUseCase
	confirmUC   *ConfirmOrderUseCase
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	metrics.InitMetrics()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库随连接销毁,限制为单连接避免表结构丢失
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, mysql.AutoMigrate(db))

	env := &orderTestEnv{
		db:        db,
		userRepo:  mysql.NewUserRepository(db),
		bookRepo:  mysql.NewBookRepository(db),
		cartRepo:  mysql.NewCartRepository(db),
		orderRepo: mysql.NewOrderRepository(db),
	}
	env.userService = user.NewService(env.userRepo)
	txManager := mysql.NewTxManager(db)
	env.createUC = NewCreateOrderUseCase(
		env.orderRepo, env.cartRepo, env.bookRepo, env.userService, txManager, nil, 6)
	env.confirmUC = NewConfirmOrderUseCase(env.orderRepo, env.userRepo, txManager, nil, nil)
	return env
}

func (env *orderTestEnv) seedUser(t *testing.T, name string, role user.Role) *user.User {
	t.Helper()
	u := user.NewUser(name, name+"@example.com", "", "$2a$12$hash", role)
	require.NoError(t, env.userRepo.Create(context.Background(), u))
	return u
}

func (env *orderTestEnv) seedBook(t *testing.T, title string, price int64, stock int) *book.Book {
	t.Helper()
	b := book.NewBook(title, "978"+time.Now().Format("150405.000000")+title, "", "中文", "平装",
		price, stock, time.Now().AddDate(-1, 0, 0), "作者", "", "小说", "出版社")
	require.NoError(t, env.bookRepo.Create(context.Background(), b))
	return b
}

func (env *orderTestEnv) seedCartItem(t *testing.T, userID, bookID uint, quantity int) {
	t.Helper()
	item, err := cart.NewItem(userID, bookID, quantity)
	require.NoError(t, err)
	require.NoError(t, env.cartRepo.Save(context.Background(), item))
}

func TestCreateOrder(t *testing.T) {
	env := newOrderTestEnv(t)
	u := env.seedUser(t, "买家", user.RoleMember)

	t.Run("正常下单", func(t *testing.T) {
		b1 := env.seedBook(t, "图书一", 5900, 10)
		b2 := env.seedBook(t, "图书二", 3200, 5)
		env.seedCartItem(t, u.ID, b1.ID, 2)
		env.seedCartItem(t, u.ID, b2.ID, 1)

		resp, err := env.createUC.Execute(context.Background(), CreateOrderRequest{UserID: u.ID})
		require.NoError(t, err)

		assert.NotZero(t, resp.OrderID)
		assert.Len(t, resp.ClaimCode, 6)
		assert.Equal(t, int64(5900*2+3200), resp.Total)
		assert.Equal(t, "150.00", resp.TotalYuan)
		assert.Equal(t, order.StatusPending, resp.Status)

		// 库存已扣减
		got1, err := env.bookRepo.FindByID(context.Background(), b1.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, got1.Stock)
		got2, err := env.bookRepo.FindByID(context.Background(), b2.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got2.Stock)

		// 购物车已清空
		items, err := env.cartRepo.ListByUserID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("空购物车不能下单", func(t *testing.T) {
		_, err := env.createUC.Execute(context.Background(), CreateOrderRequest{UserID: u.ID})
		assert.ErrorIs(t, err, order.ErrEmptyOrder)
	})

	t.Run("促销期内按折后价生成快照", func(t *testing.T) {
		b := env.seedBook(t, "促销图书", 8000, 10)
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(time.Hour)
		discounted := int64(6000)
		b.IsOnSale = true
		b.DiscountStart = &start
		b.DiscountEnd = &end
		b.DiscountedPrice = &discounted
		require.NoError(t, env.bookRepo.Update(context.Background(), b))

		env.seedCartItem(t, u.ID, b.ID, 1)
		resp, err := env.createUC.Execute(context.Background(), CreateOrderRequest{UserID: u.ID})
		require.NoError(t, err)
		assert.Equal(t, discounted, resp.Total)

		// 快照落在订单行上
		o, err := env.orderRepo.FindByID(context.Background(), resp.OrderID)
		require.NoError(t, err)
		require.Len(t, o.Items, 1)
		assert.Equal(t, discounted, o.Items[0].PriceAtTime)
	})

	t.Run("库存不足时整单回滚", func(t *testing.T) {
		b1 := env.seedBook(t, "够货", 1000, 10)
		b2 := env.seedBook(t, "缺货", 1000, 1)
		env.seedCartItem(t, u.ID, b1.ID, 2)
		env.seedCartItem(t, u.ID, b2.ID, 3)

		_, err := env.createUC.Execute(context.Background(), CreateOrderRequest{UserID: u.ID})
		assert.ErrorIs(t, err, book.ErrInsufficientStock)

		// 库存与购物车均保持原样
		got, err := env.bookRepo.FindByID(context.Background(), b1.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Stock)

		items, err := env.cartRepo.ListByUserID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)

		// 清理本子测试的购物车
		require.NoError(t, env.cartRepo.DeleteByUserID(context.Background(), u.ID))
	})
}

func TestConfirmOrder(t *testing.T) {
	env := newOrderTestEnv(t)
	u := env.seedUser(t, "提货会员", user.RoleMember)
	b := env.seedBook(t, "待提货图书", 4500, 10)
	env.seedCartItem(t, u.ID, b.ID, 1)

	created, err := env.createUC.Execute(context.Background(), CreateOrderRequest{UserID: u.ID})
	require.NoError(t, err)

	t.Run("提货码为空拒绝核销", func(t *testing.T) {
		_, err := env.confirmUC.Execute(context.Background(), ConfirmOrderRequest{
			OrderID: created.OrderID, ClaimCode: "   ",
		})
		assert.ErrorIs(t, err, order.ErrClaimCodeRequired)
	})

	t.Run("提货码不匹配拒绝核销", func(t *testing.T) {
		_, err := env.confirmUC.Execute(context.Background(), ConfirmOrderRequest{
			OrderID: created.OrderID, ClaimCode: "WRONG1",
		})
		assert.ErrorIs(t, err, order.ErrClaimCodeMismatch)
	})

	t.Run("归一化后匹配即核销成功", func(t *testing.T) {
		// 小写加首尾空白也能匹配
		input := "  " + strings.ToLower(created.ClaimCode) + " "
		resp, err := env.confirmUC.Execute(context.Background(), ConfirmOrderRequest{
			OrderID: created.OrderID, ClaimCode: input,
		})
		require.NoError(t, err)
		assert.Equal(t, order.StatusCompleted, resp.Status)
		assert.NotEmpty(t, resp.CompletedAt)

		// 会员成功订单数+1
		got, err := env.userRepo.FindByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.SuccessfulOrders)
	})

	t.Run("重复核销报错", func(t *testing.T) {
		_, err := env.confirmUC.Execute(context.Background(), ConfirmOrderRequest{
			OrderID: created.OrderID, ClaimCode: created.ClaimCode,
		})
		assert.ErrorIs(t, err, order.ErrOrderCompleted)
	})

	t.Run("订单不存在报错", func(t *testing.T) {
		_, err := env.confirmUC.Execute(context.Background(), ConfirmOrderRequest{
			OrderID: 99999, ClaimCode: "ABCDEF",
		})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

// 意外错误不应被吞掉
func TestCreateOrder_BookMissing(t *testing.T) {
	env := newOrderTestEnv(t)
	u := env.seedUser(t, "幽灵购物者", user.RoleMember)
	env.seedCartItem(t, u.ID, 99999, 1)

	_, err := env.createUC.Execute(context.Background(), CreateOrderRequest{UserID: u.ID})
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
}
