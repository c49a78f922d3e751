package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appannouncement "github.com/xiebiao/bookbazar/internal/application/announcement"
	appbook "github.com/xiebiao/bookbazar/internal/application/book"
	appbookmark "github.com/xiebiao/bookbazar/internal/application/bookmark"
	appcart "github.com/xiebiao/bookbazar/internal/application/cart"
	apporder "github.com/xiebiao/bookbazar/internal/application/order"
	appuser "github.com/xiebiao/bookbazar/internal/application/user"
	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/domain/cart"
	"github.com/xiebiao/bookbazar/internal/domain/user"
	"github.com/xiebiao/bookbazar/internal/infrastructure/broadcast"
	"github.com/xiebiao/bookbazar/internal/infrastructure/config"
	"github.com/xiebiao/bookbazar/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookbazar/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookbazar/internal/interface/http/handler"
	"github.com/xiebiao/bookbazar/internal/interface/http/middleware"
	"github.com/xiebiao/bookbazar/pkg/circuitbreaker"
	"github.com/xiebiao/bookbazar/pkg/jwt"
	"github.com/xiebiao/bookbazar/pkg/mailer"
	"github.com/xiebiao/bookbazar/pkg/metrics"
	"github.com/xiebiao/bookbazar/pkg/mq"
	"github.com/xiebiao/bookbazar/pkg/response"
	"github.com/xiebiao/bookbazar/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入，wire.go提供等价的Wire注入声明
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 可观测性
	metrics.InitMetrics()
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("bookbazar-api", cfg.Tracing.Endpoint)
		if err != nil {
			log.Printf("初始化Tracer失败(已降级): %v", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(shutdownCtx)
			}()
		}
	}

	// 3. 基础设施连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// RabbitMQ与SMTP是可选能力,连不上时降级为不发事件/不发邮件
	var publisher *mq.Publisher
	if cfg.RabbitMQ.URL != "" {
		publisher, err = mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic")
		if err != nil {
			log.Printf("连接RabbitMQ失败(事件发布已降级): %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	var orderMailer *mailer.Mailer
	if cfg.SMTP.Host != "" {
		// SMTP外呼挂熔断器,连续失败后快速拒绝避免拖垮下单链路
		cb := circuitbreaker.NewCircuitBreaker("smtp-mailer", circuitbreaker.Config{
			MaxRequests: 3,
			Interval:    30 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		})
		orderMailer = mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, cb)
	}

	// 4. 依赖注入（手动组装）
	// 依赖链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	bookmarkRepo := mysql.NewBookmarkRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	announcementRepo := mysql.NewAnnouncementRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire)
	hub := broadcast.NewHub()

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	cartService := cart.NewService(cartRepo, bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(jwtManager, sessionStore)
	userInfoUseCase := appuser.NewGetUserInfoUseCase(userService)
	manageUsersUseCase := appuser.NewManageUsersUseCase(userService)
	dashboardUseCase := appuser.NewMemberDashboardUseCase(userService, orderRepo, bookmarkRepo)

	publishBookUseCase := appbook.NewPublishBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService, cfg.Catalog)
	listFacetUseCase := appbook.NewListFacetUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	bookImageUseCase := appbook.NewGetBookImageUseCase(bookService)

	cartUseCase := appcart.NewManageCartUseCase(cartService, bookRepo)
	toggleBookmarkUseCase := appbookmark.NewToggleBookmarkUseCase(bookmarkRepo, bookRepo)
	listBookmarksUseCase := appbookmark.NewListBookmarksUseCase(bookmarkRepo, bookRepo)

	createOrderUseCase := apporder.NewCreateOrderUseCase(
		orderRepo, cartRepo, bookRepo, userService, txManager, orderMailer, cfg.Order.ClaimCodeLength)
	confirmOrderUseCase := apporder.NewConfirmOrderUseCase(orderRepo, userRepo, txManager, publisher, orderMailer)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo, bookRepo)

	announcementUseCase := appannouncement.NewManageAnnouncementsUseCase(announcementRepo, hub)

	// 队列与SMTP都可用时启动邮件工作者,核销确认邮件走异步链路
	// 队列缺席时confirm用例会退化为进程内直接发信,这里无需兜底
	if publisher != nil && orderMailer != nil {
		consumer, err := mq.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic",
			"bookbazar.order.mail", []string{"order.confirmed"})
		if err != nil {
			log.Printf("创建订单邮件消费者失败(确认邮件已降级): %v", err)
		} else {
			defer consumer.Close()
			mailWorker := apporder.NewMailWorker(consumer, orderMailer)
			go func() {
				if err := mailWorker.Run(ctx); err != nil {
					log.Printf("订单邮件工作者退出: %v", err)
				}
			}()
		}
	}

	// 接口层
	authHandler := handler.NewAuthHandler(registerUseCase, loginUseCase, logoutUseCase, userInfoUseCase)
	bookHandler := handler.NewBookHandler(publishBookUseCase, listBooksUseCase, listFacetUseCase, getBookUseCase, bookImageUseCase)
	cartHandler := handler.NewCartHandler(cartUseCase)
	bookmarkHandler := handler.NewBookmarkHandler(toggleBookmarkUseCase, listBookmarksUseCase)
	orderHandler := handler.NewOrderHandler(createOrderUseCase, confirmOrderUseCase, listOrdersUseCase)
	announcementHandler := handler.NewAnnouncementHandler(announcementUseCase)
	streamHandler := handler.NewStreamHandler(hub)
	userAdminHandler := handler.NewUserAdminHandler(manageUsersUseCase)
	memberHandler := handler.NewMemberHandler(dashboardUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 5. 初始化Gin引擎
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

	// 6. 启动服务并等待退出信号
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("服务启动: http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("收到退出信号,开始优雅关闭")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("关闭服务失败: %v", err)
	}
	log.Println("服务已退出")
}

// routeHandlers 路由注册所需的处理器集合
type routeHandlers struct {
	auth         *handler.AuthHandler
	book         *handler.BookHandler
	cart         *handler.CartHandler
	bookmark     *handler.BookmarkHandler
	order        *handler.OrderHandler
	announcement *handler.AnnouncementHandler
	stream       *handler.StreamHandler
	userAdmin    *handler.UserAdminHandler
	member       *handler.MemberHandler
}

// registerRoutes 注册路由
// 权限分层:
// - 公开: 目录读、公告读、注册登录
// - 登录: 订单、SSE订阅
// - Member: 购物车、书签、会员面板
// - Staff: 未核销订单列表、订单核销
// - Admin: 图书维护、公告维护、用户管理
func registerRoutes(r *gin.Engine, h routeHandlers, auth *middleware.AuthMiddleware) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档: http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 认证
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.auth.Register)
		authGroup.POST("/login", h.auth.Login)
		authGroup.POST("/logout", auth.RequireAuth(), h.auth.Logout)
		authGroup.GET("/user-info", auth.RequireAuth(), h.auth.UserInfo)
	}

	api := r.Group("/api")

	// 目录(公开读)
	bookGroup := api.Group("/book")
	{
		bookGroup.GET("", h.book.ListAllBooks)
		bookGroup.GET("/paged", h.book.ListTab(book.TabAll))
		bookGroup.GET("/bestsellers", h.book.ListTab(book.TabBestsellers))
		bookGroup.GET("/award-winners", h.book.ListTab(book.TabAwardWinners))
		bookGroup.GET("/coming-soon", h.book.ListTab(book.TabComingSoon))
		bookGroup.GET("/deals", h.book.ListTab(book.TabDeals))
		bookGroup.GET("/new-releases", h.book.ListTab(book.TabNewReleases))
		bookGroup.GET("/new-arrivals", h.book.ListTab(book.TabNewArrivals))
		bookGroup.GET("/genres", h.book.ListFacet(book.FacetGenres))
		bookGroup.GET("/formats", h.book.ListFacet(book.FacetFormats))
		bookGroup.GET("/categories", h.book.ListFacet(book.FacetCategories))
		bookGroup.GET("/authors", h.book.ListFacet(book.FacetAuthors))
		bookGroup.GET("/languages", h.book.ListFacet(book.FacetLanguages))
		bookGroup.GET("/publishers", h.book.ListFacet(book.FacetPublishers))
		bookGroup.GET("/:id", h.book.GetBook)
		bookGroup.GET("/:id/image", h.book.GetBookImage)

		// 图书维护(管理员)
		adminBooks := bookGroup.Group("", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
		{
			adminBooks.POST("", h.book.CreateBook)
			adminBooks.PUT("/:id", h.book.UpdateBook)
			adminBooks.DELETE("/:id", h.book.DeleteBook)
		}
	}

	// 购物车(会员)
	cartGroup := api.Group("/cart", auth.RequireAuth(), auth.RequireRole(user.RoleMember))
	{
		cartGroup.GET("", h.cart.List)
		cartGroup.POST("/add", h.cart.AddItem)
		cartGroup.PUT("/update", h.cart.UpdateItem)
		cartGroup.DELETE("/remove/:id", h.cart.RemoveItem)
		cartGroup.DELETE("/clear", h.cart.Clear)
	}

	// 订单
	orderGroup := api.Group("/order", auth.RequireAuth())
	{
		orderGroup.POST("", h.order.Create)
		orderGroup.GET("/my-orders", h.order.List)
		orderGroup.GET("/:id", h.order.Get)
	}

	// 店员工作台(核销仅限店员)
	staffGroup := api.Group("/staff", auth.RequireAuth(), auth.RequireRole(user.RoleStaff))
	{
		staffGroup.GET("/incomplete-orders", h.order.ListIncomplete)
		staffGroup.POST("/confirm-order", h.order.Confirm)
	}

	// 书签(会员)
	bookmarkGroup := api.Group("/bookmark", auth.RequireAuth(), auth.RequireRole(user.RoleMember))
	{
		bookmarkGroup.GET("", h.bookmark.List)
		bookmarkGroup.GET("/ids", h.bookmark.ListIDs)
		bookmarkGroup.POST("/:id", h.bookmark.Toggle)
	}

	// 公告
	announcementGroup := api.Group("/announcement")
	{
		announcementGroup.GET("/active", h.announcement.ListActive)
		announcementGroup.GET("/stream", auth.RequireAuth(), h.stream.Stream)

		adminAnnouncements := announcementGroup.Group("", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
		{
			adminAnnouncements.GET("/all", h.announcement.ListAll)
			adminAnnouncements.GET("/:id", h.announcement.Get)
			adminAnnouncements.POST("", h.announcement.Create)
			adminAnnouncements.PUT("/:id", h.announcement.Update)
			adminAnnouncements.DELETE("/:id", h.announcement.Delete)
		}
	}

	// 用户管理(管理员)
	usersGroup := api.Group("/users", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin))
	{
		usersGroup.GET("", h.userAdmin.List)
		usersGroup.POST("", h.userAdmin.Create)
		usersGroup.GET("/:id", h.userAdmin.Get)
		usersGroup.PUT("/:id", h.userAdmin.Update)
		usersGroup.DELETE("/:id", h.userAdmin.Delete)
	}
	api.GET("/admin/users", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin), h.userAdmin.ListAll)

	// 会员专区
	api.GET("/member/dashboard", auth.RequireAuth(), auth.RequireRole(user.RoleMember), h.member.Dashboard)
}
