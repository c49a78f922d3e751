package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookbazar/internal/domain/book"
)

// newTestDB 创建内存SQLite数据库供仓储测试使用
// 教学要点:仓储测试不依赖外部MySQL,用SQLite内存库跑同一套GORM模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库随连接销毁,限制为单连接避免表结构丢失
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

// seedBook 插入一本测试图书
func seedBook(t *testing.T, repo book.Repository, b *book.Book) *book.Book {
	t.Helper()
	if b.ISBN == "" {
		b.ISBN = "978" + time.Now().Format("150405.000000") + b.Title
	}
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}
