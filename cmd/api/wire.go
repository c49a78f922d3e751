//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// Wire在编译期生成依赖组装代码:
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appannouncement "github.com/xiebiao/bookbazar/internal/application/announcement"
	appbook "github.com/xiebiao/bookbazar/internal/application/book"
	appbookmark "github.com/xiebiao/bookbazar/internal/application/bookmark"
	appcart "github.com/xiebiao/bookbazar/internal/application/cart"
	apporder "github.com/xiebiao/bookbazar/internal/application/order"
	appuser "github.com/xiebiao/bookbazar/internal/application/user"
	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/domain/cart"
	"github.com/xiebiao/bookbazar/internal/domain/order"
	"github.com/xiebiao/bookbazar/internal/domain/user"
	"github.com/xiebiao/bookbazar/internal/infrastructure/broadcast"
	"github.com/xiebiao/bookbazar/internal/infrastructure/config"
	"github.com/xiebiao/bookbazar/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookbazar/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookbazar/internal/interface/http/handler"
	"github.com/xiebiao/bookbazar/internal/interface/http/middleware"
	"github.com/xiebiao/bookbazar/pkg/jwt"
	"github.com/xiebiao/bookbazar/pkg/mailer"
	"github.com/xiebiao/bookbazar/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	broadcast.NewHub,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCartRepository,
	mysql.NewBookmarkRepository,
	mysql.NewOrderRepository,
	mysql.NewAnnouncementRepository,
	mysql.NewTxManager,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	cart.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewGetUserInfoUseCase,
	appuser.NewManageUsersUseCase,
	appuser.NewMemberDashboardUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewListFacetUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewGetBookImageUseCase,
	appcart.NewManageCartUseCase,
	appbookmark.NewToggleBookmarkUseCase,
	appbookmark.NewListBookmarksUseCase,
	apporder.NewConfirmOrderUseCase,
	apporder.NewListOrdersUseCase,
	appannouncement.NewManageAnnouncementsUseCase,
	provideListBooksUseCase,
	provideCreateOrderUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewBookmarkHandler,
	handler.NewOrderHandler,
	handler.NewAnnouncementHandler,
	handler.NewStreamHandler,
	handler.NewUserAdminHandler,
	handler.NewMemberHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideListBooksUseCase 目录查询用例需要Catalog子配置
func provideListBooksUseCase(bookService book.Service, cfg *config.Config) *appbook.ListBooksUseCase {
	return appbook.NewListBooksUseCase(bookService, cfg.Catalog)
}

// provideCreateOrderUseCase 下单用例需要提货码长度配置
func provideCreateOrderUseCase(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	bookRepo book.Repository,
	userService user.Service,
	txManager *mysql.TxManager,
	m *mailer.Mailer,
	cfg *config.Config,
) *apporder.CreateOrderUseCase {
	return apporder.NewCreateOrderUseCase(
		orderRepo, cartRepo, bookRepo, userService, txManager, m, cfg.Order.ClaimCodeLength)
}

// provideMailer 从配置创建邮件发送器,SMTP未配置时返回nil(邮件能力降级)
func provideMailer(cfg *config.Config) *mailer.Mailer {
	if cfg.SMTP.Host == "" {
		return nil
	}
	return mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, nil)
}

// providePublisher 从配置创建事件发布者,RabbitMQ未配置时返回nil
func providePublisher(cfg *config.Config) *mq.Publisher {
	if cfg.RabbitMQ.URL == "" {
		return nil
	}
	p, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic")
	if err != nil {
		return nil
	}
	return p
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	bookmarkHandler *handler.BookmarkHandler,
	orderHandler *handler.OrderHandler,
	announcementHandler *handler.AnnouncementHandler,
	streamHandler *handler.StreamHandler,
	userAdminHandler *handler.UserAdminHandler,
	memberHandler *handler.MemberHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.Metrics())

	registerRoutes(r, routeHandlers{
		auth:         authHandler,
		book:         bookHandler,
		cart:         cartHandler,
		bookmark:     bookmarkHandler,
		order:        orderHandler,
		announcement: announcementHandler,
		stream:       streamHandler,
		userAdmin:    userAdminHandler,
		member:       memberHandler,
	}, authMiddleware)

	return r
}

// InitializeApp Wire注入入口
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideMailer,
		providePublisher,
		provideGinEngine,
	)
	return nil, nil
}
