package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbazar/internal/domain/order"
)

func newTestOrder(t *testing.T, userID uint, claimCode string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, claimCode, []*order.Item{
		{BookID: 1, Quantity: 2, PriceAtTime: 1500},
		{BookID: 2, Quantity: 1, PriceAtTime: 2000},
	})
	require.NoError(t, err)
	return o
}

// TestOrderRepository_CreateAndFind 订单头与订单行一并持久化
func TestOrderRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	o := newTestOrder(t, 7, "AB12CD")
	require.NoError(t, repo.Create(context.Background(), o))
	require.NotZero(t, o.ID)

	got, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "AB12CD", got.ClaimCode)
	assert.Equal(t, int64(5000), got.TotalAmount)
	assert.False(t, got.IsCompleted)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(1500), got.Items[0].PriceAtTime, "应保留下单时价格快照")
}

// TestOrderRepository_ClaimCodeCollision 提货码唯一索引冲突
func TestOrderRepository_ClaimCodeCollision(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	require.NoError(t, repo.Create(context.Background(), newTestOrder(t, 1, "SAME01")))

	err := repo.Create(context.Background(), newTestOrder(t, 2, "SAME01"))
	assert.ErrorIs(t, err, order.ErrClaimCodeCollision)
}

// TestOrderRepository_ConfirmFlow 核销状态持久化
func TestOrderRepository_ConfirmFlow(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	o := newTestOrder(t, 7, "AB12CD")
	require.NoError(t, repo.Create(context.Background(), o))

	require.NoError(t, o.Confirm(time.Now()))
	require.NoError(t, repo.Update(context.Background(), o))

	got, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	assert.Equal(t, order.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
}

// TestOrderRepository_Lists 用户订单列表与待核销列表
func TestOrderRepository_Lists(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	o1 := newTestOrder(t, 1, "CODE01")
	require.NoError(t, repo.Create(context.Background(), o1))
	o2 := newTestOrder(t, 1, "CODE02")
	require.NoError(t, repo.Create(context.Background(), o2))
	o3 := newTestOrder(t, 2, "CODE03")
	require.NoError(t, repo.Create(context.Background(), o3))

	// 核销其中一单
	require.NoError(t, o2.Confirm(time.Now()))
	require.NoError(t, repo.Update(context.Background(), o2))

	mine, err := repo.ListByUserID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, uint(1), o.UserID)
		assert.NotEmpty(t, o.Items, "列表应预加载订单行")
	}

	incomplete, err := repo.ListIncomplete(context.Background())
	require.NoError(t, err)
	require.Len(t, incomplete, 2)
	for _, o := range incomplete {
		assert.False(t, o.IsCompleted)
	}
}

// TestOrderRepository_LockByID 行锁查询也要带出订单行
func TestOrderRepository_LockByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	o := newTestOrder(t, 7, "AB12CD")
	require.NoError(t, repo.Create(context.Background(), o))

	got, err := repo.LockByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
	assert.Len(t, got.Items, 2)

	_, err = repo.LockByID(context.Background(), 99999)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}
