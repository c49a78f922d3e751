package book

import (
	"testing"
	"time"
)

func discounted(price int64) *int64 { return &price }

// TestEffectivePrice_Window 测试折扣窗口的各种组合
func TestEffectivePrice_Window(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	before := now.Add(-24 * time.Hour)
	after := now.Add(24 * time.Hour)

	tests := []struct {
		name     string
		book     Book
		expected int64
	}{
		{
			name: "窗口内取折后价",
			book: Book{Price: 2000, IsOnSale: true,
				DiscountStart: &before, DiscountEnd: &after, DiscountedPrice: discounted(1500)},
			expected: 1500,
		},
		{
			name:     "未参与促销取标价",
			book:     Book{Price: 2000, DiscountStart: &before, DiscountEnd: &after, DiscountedPrice: discounted(1500)},
			expected: 2000,
		},
		{
			name: "窗口未开始取标价",
			book: Book{Price: 2000, IsOnSale: true,
				DiscountStart: &after, DiscountEnd: &after, DiscountedPrice: discounted(1500)},
			expected: 2000,
		},
		{
			name: "窗口已结束取标价",
			book: Book{Price: 2000, IsOnSale: true,
				DiscountStart: &before, DiscountEnd: &before, DiscountedPrice: discounted(1500)},
			expected: 2000,
		},
		{
			name: "缺少折后价取标价",
			book: Book{Price: 2000, IsOnSale: true,
				DiscountStart: &before, DiscountEnd: &after},
			expected: 2000,
		},
		{
			name: "窗口边界含起点",
			book: Book{Price: 2000, IsOnSale: true,
				DiscountStart: &now, DiscountEnd: &after, DiscountedPrice: discounted(1500)},
			expected: 1500,
		},
		{
			name: "窗口边界含终点",
			book: Book{Price: 2000, IsOnSale: true,
				DiscountStart: &before, DiscountEnd: &now, DiscountedPrice: discounted(1500)},
			expected: 1500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.book.EffectivePrice(now); got != tt.expected {
				t.Errorf("EffectivePrice() = %d, want %d", got, tt.expected)
			}
		})
	}
}

// TestDerivedAvailability 测试可购买与即将上市的派生规则
func TestDerivedAvailability(t *testing.T) {
	now := time.Now()

	b := Book{Stock: 3, PublicationDate: now.Add(-time.Hour)}
	if !b.IsAvailable() {
		t.Error("有库存应可购买")
	}
	if b.IsComingSoon(now) {
		t.Error("已出版不应标记为即将上市")
	}

	b = Book{Stock: 0, PublicationDate: now.Add(time.Hour)}
	if b.IsAvailable() {
		t.Error("零库存不应可购买")
	}
	if !b.IsComingSoon(now) {
		t.Error("出版日期在未来应标记为即将上市")
	}
}
