package announcement

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t time.Time) *time.Time { return &t }

// TestComputeStatus 覆盖启用开关与时间窗口的全部组合
func TestComputeStatus(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		isActive  bool
		startAt   *time.Time
		expiresAt *time.Time
		expected  Status
	}{
		{"未启用无窗口", false, nil, nil, StatusInactive},
		{"未启用即使在窗口内", false, ts(past), ts(future), StatusInactive},
		{"启用无窗口", true, nil, nil, StatusOngoing},
		{"启用未到开始时间", true, ts(future), nil, StatusUpcoming},
		{"启用已过结束时间", true, nil, ts(past), StatusEnded},
		{"启用在窗口内", true, ts(past), ts(future), StatusOngoing},
		{"启用仅有开始且已开始", true, ts(past), nil, StatusOngoing},
		{"启用仅有结束且未结束", true, nil, ts(future), StatusOngoing},
		{"开始时间即当前时刻", true, ts(now), ts(future), StatusOngoing},
		{"结束时间即当前时刻", true, ts(past), ts(now), StatusEnded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStatus(tt.isActive, tt.startAt, tt.expiresAt, now)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestComputeStatus_RandomizedBoundaries 随机窗口下的边界性质:
// 开始时刻含在窗口内,结束时刻不含
func TestComputeStatus_RandomizedBoundaries(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		start := base.Add(time.Duration(rng.Intn(7*24)) * time.Hour)
		end := start.Add(time.Duration(1+rng.Intn(7*24)) * time.Hour)

		assert.Equal(t, StatusUpcoming, ComputeStatus(true, ts(start), ts(end), start.Add(-time.Second)))
		assert.Equal(t, StatusOngoing, ComputeStatus(true, ts(start), ts(end), start))
		assert.Equal(t, StatusOngoing, ComputeStatus(true, ts(start), ts(end), end.Add(-time.Second)))
		assert.Equal(t, StatusEnded, ComputeStatus(true, ts(start), ts(end), end))
		assert.Equal(t, StatusEnded, ComputeStatus(true, ts(start), ts(end), end.Add(time.Second)))
		assert.Equal(t, StatusInactive, ComputeStatus(false, ts(start), ts(end), start.Add(time.Second)))
	}
}

func TestAnnouncement_Validate(t *testing.T) {
	now := time.Now()

	_, err := New("", "内容", "admin", nil, nil)
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = New("标题", "内容", "admin", ts(now), ts(now.Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidWindow)

	a, err := New("标题", "内容", "admin", ts(now.Add(-time.Hour)), ts(now.Add(time.Hour)))
	require.NoError(t, err)
	assert.True(t, a.IsVisible(now))
}

func TestAnnouncement_IsVisible(t *testing.T) {
	now := time.Now()

	a, err := New("标题", "内容", "admin", ts(now.Add(time.Hour)), nil)
	require.NoError(t, err)
	assert.False(t, a.IsVisible(now), "未到开始时间不应可见")

	require.NoError(t, a.Update("标题", "内容", true, ts(now.Add(-time.Hour)), nil))
	assert.True(t, a.IsVisible(now))

	require.NoError(t, a.Update("标题", "内容", false, ts(now.Add(-time.Hour)), nil))
	assert.False(t, a.IsVisible(now), "停用后不应可见")
}
