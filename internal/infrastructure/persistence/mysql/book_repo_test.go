package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbazar/internal/domain/book"
)

func priceOf(v int64) *int64 { return &v }

// TestBookRepository_List_Tabs 测试目录页签谓词
func TestBookRepository_List_Tabs(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	now := time.Now()

	bestseller := seedBook(t, repo, &book.Book{Title: "畅销", Author: "A", Price: 1000, Stock: 5,
		PublicationDate: now.Add(-60 * 24 * time.Hour), IsBestseller: true})
	award := seedBook(t, repo, &book.Book{Title: "获奖", Author: "B", Price: 1000, Stock: 5,
		PublicationDate: now.Add(-60 * 24 * time.Hour), IsAwardWinner: true})
	coming := seedBook(t, repo, &book.Book{Title: "预售", Author: "C", Price: 1000, Stock: 0,
		PublicationDate: now.Add(30 * 24 * time.Hour)})
	deal := seedBook(t, repo, &book.Book{Title: "促销", Author: "D", Price: 2000, Stock: 5,
		PublicationDate: now.Add(-60 * 24 * time.Hour), IsOnSale: true,
		DiscountStart: timePtr(now.Add(-time.Hour)), DiscountEnd: timePtr(now.Add(time.Hour)),
		DiscountedPrice: priceOf(1500)})
	// 折扣窗口已过仍属促销页签,窗口只决定生效价
	dealExpired := seedBook(t, repo, &book.Book{Title: "促销过期", Author: "D2", Price: 2000, Stock: 5,
		PublicationDate: now.Add(-60 * 24 * time.Hour), IsOnSale: true,
		DiscountStart: timePtr(now.Add(-48 * time.Hour)), DiscountEnd: timePtr(now.Add(-24 * time.Hour)),
		DiscountedPrice: priceOf(1500)})
	fresh := seedBook(t, repo, &book.Book{Title: "新出版", Author: "E", Price: 1000, Stock: 5,
		PublicationDate: now.Add(-7 * 24 * time.Hour)})

	base := book.ListParams{
		Page: 1, PageSize: 10,
		NewReleaseWindow: 30 * 24 * time.Hour,
		NewArrivalWindow: 14 * 24 * time.Hour,
		Now:              now,
	}

	tests := []struct {
		tab      book.Tab
		expected []uint
	}{
		{book.TabBestsellers, []uint{bestseller.ID}},
		{book.TabAwardWinners, []uint{award.ID}},
		{book.TabComingSoon, []uint{coming.ID}},
		{book.TabDeals, []uint{deal.ID, dealExpired.ID}},
		{book.TabNewReleases, []uint{fresh.ID}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			params := base
			params.Tab = tt.tab
			books, total, err := repo.List(context.Background(), params)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.expected)), total)

			ids := make([]uint, len(books))
			for i, b := range books {
				ids[i] = b.ID
			}
			assert.ElementsMatch(t, tt.expected, ids)
		})
	}

	// new-releases未指定排序时默认按出版时间倒序
	t.Run("new-releases默认排序", func(t *testing.T) {
		params := base
		params.Tab = book.TabNewReleases
		newer := seedBook(t, repo, &book.Book{Title: "更新出版", Author: "F", Price: 1000, Stock: 5,
			PublicationDate: now.Add(-2 * 24 * time.Hour)})

		books, _, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, newer.ID, books[0].ID)
		assert.Equal(t, fresh.ID, books[1].ID)
	})

	// new-arrivals按上架时间过滤,刚插入的图书全部命中
	params := base
	params.Tab = book.TabNewArrivals
	_, total, err := repo.List(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
}

// TestBookRepository_List_Filters 测试筛选条件的AND组合与搜索词OR匹配
func TestBookRepository_List_Filters(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	now := time.Now()

	go1 := seedBook(t, repo, &book.Book{Title: "Go程序设计", Author: "张三", Genre: "技术",
		Format: "平装", Language: "中文", Publisher: "机械社", Categories: "编程",
		Price: 5000, Stock: 3, PublicationDate: now.Add(-time.Hour),
		Description: "系统讲解并发模型"})
	seedBook(t, repo, &book.Book{Title: "Go实战", Author: "李四", Genre: "技术",
		Format: "精装", Language: "中文", Publisher: "人邮社", Categories: "编程",
		Price: 9000, Stock: 0, PublicationDate: now.Add(-time.Hour)})
	seedBook(t, repo, &book.Book{Title: "宋词选", Author: "王五", Genre: "文学",
		Format: "平装", Language: "中文", Publisher: "中华局", Categories: "诗词",
		Price: 3000, Stock: 8, PublicationDate: now.Add(-time.Hour)})

	base := book.ListParams{Page: 1, PageSize: 10, Now: now}

	t.Run("多条件AND组合", func(t *testing.T) {
		params := base
		params.Genre = "技术"
		params.Format = "平装"
		params.Availability = "in stock"
		books, total, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		assert.Equal(t, go1.ID, books[0].ID)
	})

	t.Run("搜索词跨字段OR匹配", func(t *testing.T) {
		params := base
		params.SearchTerm = "并发"
		books, total, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		require.Equal(t, int64(1), total, "简介字段应参与搜索")
		assert.Equal(t, go1.ID, books[0].ID)

		params.SearchTerm = "Go"
		_, total, err = repo.List(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total, "书名字段应参与搜索")
	})

	t.Run("搜索词与筛选条件AND叠加", func(t *testing.T) {
		params := base
		params.SearchTerm = "Go"
		params.Format = "精装"
		_, total, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("价格区间", func(t *testing.T) {
		params := base
		params.MinPrice = priceOf(4000)
		params.MaxPrice = priceOf(8000)
		books, total, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		assert.Equal(t, go1.ID, books[0].ID)
	})

	t.Run("缺货筛选", func(t *testing.T) {
		params := base
		params.Availability = "out of stock"
		_, total, err := repo.List(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

// TestBookRepository_List_SortAndPage 测试排序与分页覆盖全集
func TestBookRepository_List_SortAndPage(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	now := time.Now()

	titles := []string{"丙", "甲", "乙"}
	prices := []int64{3000, 1000, 2000}
	for i := range titles {
		seedBook(t, repo, &book.Book{Title: titles[i], Author: "作者", Price: prices[i],
			Stock: 1, PublicationDate: now.Add(-time.Duration(i) * time.Hour)})
	}

	t.Run("价格升序", func(t *testing.T) {
		books, _, err := repo.List(context.Background(), book.ListParams{
			SortBy: "price", Page: 1, PageSize: 10, Now: now})
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, int64(1000), books[0].Price)
		assert.Equal(t, int64(3000), books[2].Price)
	})

	t.Run("书名降序", func(t *testing.T) {
		books, _, err := repo.List(context.Background(), book.ListParams{
			SortBy: "title_desc", Page: 1, PageSize: 10, Now: now})
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, "丙", books[0].Title)
	})

	t.Run("分页不重不漏", func(t *testing.T) {
		seen := map[uint]bool{}
		for page := 1; page <= 2; page++ {
			books, total, err := repo.List(context.Background(), book.ListParams{
				SortBy: "price", Page: page, PageSize: 2, Now: now})
			require.NoError(t, err)
			assert.Equal(t, int64(3), total, "每页的total都应是全集数量")
			for _, b := range books {
				assert.False(t, seen[b.ID], "跨页不应重复")
				seen[b.ID] = true
			}
		}
		assert.Len(t, seen, 3, "两页应覆盖全集")
	})
}

// TestBookRepository_DistinctValues 测试筛选面去重取值
func TestBookRepository_DistinctValues(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	now := time.Now()

	seedBook(t, repo, &book.Book{Title: "a", Author: "X", Genre: "技术", Price: 1, Stock: 1, PublicationDate: now})
	seedBook(t, repo, &book.Book{Title: "b", Author: "X", Genre: "技术", Price: 1, Stock: 1, PublicationDate: now})
	seedBook(t, repo, &book.Book{Title: "c", Author: "Y", Genre: "文学", Price: 1, Stock: 1, PublicationDate: now})
	seedBook(t, repo, &book.Book{Title: "d", Author: "Z", Genre: "", Price: 1, Stock: 1, PublicationDate: now})

	genres, err := repo.DistinctValues(context.Background(), book.FacetGenres)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"技术", "文学"}, genres, "空值应被跳过")

	authors, err := repo.DistinctValues(context.Background(), book.FacetAuthors)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"X", "Y", "Z"}, authors)
}

// TestBookRepository_UpdateStock 测试库存原子扣减与不足检测
func TestBookRepository_UpdateStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	now := time.Now()

	b := seedBook(t, repo, &book.Book{Title: "库存", Author: "作者", Price: 1000, Stock: 2, PublicationDate: now})

	require.NoError(t, repo.UpdateStock(context.Background(), b.ID, -2))

	got, err := repo.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	// 超扣
	err = repo.UpdateStock(context.Background(), b.ID, -1)
	assert.ErrorIs(t, err, book.ErrInsufficientStock)

	// 不存在的图书
	err = repo.UpdateStock(context.Background(), 99999, -1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestBookRepository_ISBNDuplicate 测试ISBN唯一约束
func TestBookRepository_ISBNDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	now := time.Now()

	seedBook(t, repo, &book.Book{Title: "原书", ISBN: "9787111", Author: "作者", Price: 1000, Stock: 1, PublicationDate: now})

	err := repo.Create(context.Background(), &book.Book{Title: "重复", ISBN: "9787111", Author: "作者", Price: 1000, Stock: 1, PublicationDate: now})
	assert.ErrorIs(t, err, book.ErrISBNDuplicate)
}

func timePtr(t time.Time) *time.Time { return &t }
