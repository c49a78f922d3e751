package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/domain/cart"
)

// TestCartService_AddMerge 重复加购同一本书时数量合并
func TestCartService_AddMerge(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	cartRepo := NewCartRepository(db)
	svc := cart.NewService(cartRepo, bookRepo)

	b := seedBook(t, bookRepo, &book.Book{Title: "书", Author: "作者", Price: 1000, Stock: 10, PublicationDate: time.Now()})

	item, err := svc.AddItem(context.Background(), 1, b.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	merged, err := svc.AddItem(context.Background(), 1, b.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, item.ID, merged.ID, "应合并到已有条目而非新增")
	assert.Equal(t, 5, merged.Quantity)

	items, err := svc.ListItems(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

// TestCartService_ZeroQuantityDeletes 数量调整为零等价于删除
func TestCartService_ZeroQuantityDeletes(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	cartRepo := NewCartRepository(db)
	svc := cart.NewService(cartRepo, bookRepo)

	b := seedBook(t, bookRepo, &book.Book{Title: "书", Author: "作者", Price: 1000, Stock: 10, PublicationDate: time.Now()})

	item, err := svc.AddItem(context.Background(), 1, b.ID, 2)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(context.Background(), 1, item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, updated)

	items, err := svc.ListItems(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

// TestCartService_Ownership 不能操作他人购物车条目
func TestCartService_Ownership(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	cartRepo := NewCartRepository(db)
	svc := cart.NewService(cartRepo, bookRepo)

	b := seedBook(t, bookRepo, &book.Book{Title: "书", Author: "作者", Price: 1000, Stock: 10, PublicationDate: time.Now()})

	item, err := svc.AddItem(context.Background(), 1, b.ID, 2)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(context.Background(), 2, item.ID, 5)
	assert.ErrorIs(t, err, cart.ErrItemNotFound, "他人条目应按不存在处理")

	err = svc.RemoveItem(context.Background(), 2, item.ID)
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

// TestCartService_AddUnknownBook 加购不存在的图书
func TestCartService_AddUnknownBook(t *testing.T) {
	db := newTestDB(t)
	svc := cart.NewService(NewCartRepository(db), NewBookRepository(db))

	_, err := svc.AddItem(context.Background(), 1, 99999, 1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestCartRepository_Clear 清空购物车
func TestCartRepository_Clear(t *testing.T) {
	db := newTestDB(t)
	bookRepo := NewBookRepository(db)
	cartRepo := NewCartRepository(db)
	svc := cart.NewService(cartRepo, bookRepo)

	b1 := seedBook(t, bookRepo, &book.Book{Title: "一", Author: "作者", Price: 1000, Stock: 10, PublicationDate: time.Now()})
	b2 := seedBook(t, bookRepo, &book.Book{Title: "二", Author: "作者", Price: 1000, Stock: 10, PublicationDate: time.Now()})

	_, err := svc.AddItem(context.Background(), 1, b1.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 1, b2.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 2, b1.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), 1))

	items, err := svc.ListItems(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, items)

	other, err := svc.ListItems(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, other, 1, "清空不应影响其他用户")
}
