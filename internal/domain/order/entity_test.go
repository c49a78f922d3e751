package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	items := []*Item{
		{BookID: 1, Quantity: 2, PriceAtTime: 1500},
		{BookID: 2, Quantity: 1, PriceAtTime: 2300},
	}

	o, err := NewOrder(7, "AB12CD", items)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.False(t, o.IsCompleted)
	assert.Equal(t, int64(2*1500+2300), o.TotalAmount)
}

func TestNewOrder_Empty(t *testing.T) {
	_, err := NewOrder(7, "AB12CD", nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

// TestConfirm 核销是单向操作,重复核销返回错误
func TestConfirm(t *testing.T) {
	o, err := NewOrder(7, "AB12CD", []*Item{{BookID: 1, Quantity: 1, PriceAtTime: 1000}})
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, o.Confirm(now))
	assert.True(t, o.IsCompleted)
	assert.Equal(t, StatusCompleted, o.Status)
	require.NotNil(t, o.CompletedAt)
	assert.Equal(t, now, *o.CompletedAt)

	err = o.Confirm(now.Add(time.Minute))
	assert.ErrorIs(t, err, ErrOrderCompleted)
	assert.Equal(t, now, *o.CompletedAt, "重复核销不应改写完成时间")
}
