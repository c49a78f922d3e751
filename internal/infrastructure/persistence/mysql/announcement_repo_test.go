package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookbazar/internal/domain/announcement"
)

func seedAnnouncement(t *testing.T, repo announcement.Repository, title string, isActive bool, startAt, expiresAt *time.Time) *announcement.Announcement {
	t.Helper()
	a, err := announcement.New(title, "内容", "admin", startAt, expiresAt)
	require.NoError(t, err)
	a.IsActive = isActive
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

// TestAnnouncementRepository_ListVisible 可见公告窗口过滤
func TestAnnouncementRepository_ListVisible(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnnouncementRepository(db)
	now := time.Now()

	ongoing := seedAnnouncement(t, repo, "进行中", true, timePtr(now.Add(-time.Hour)), timePtr(now.Add(time.Hour)))
	noWindow := seedAnnouncement(t, repo, "无窗口", true, nil, nil)
	seedAnnouncement(t, repo, "未开始", true, timePtr(now.Add(time.Hour)), nil)
	seedAnnouncement(t, repo, "已结束", true, nil, timePtr(now.Add(-time.Hour)))
	seedAnnouncement(t, repo, "未启用", false, timePtr(now.Add(-time.Hour)), timePtr(now.Add(time.Hour)))

	visible, err := repo.ListVisible(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, visible, 2)

	ids := []uint{visible[0].ID, visible[1].ID}
	assert.ElementsMatch(t, []uint{ongoing.ID, noWindow.ID}, ids)
}

// TestAnnouncementRepository_CRUD 公告增删改查
func TestAnnouncementRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewAnnouncementRepository(db)

	a := seedAnnouncement(t, repo, "原标题", false, nil, nil)

	require.NoError(t, a.Update("新标题", "新内容", true, nil, nil))
	require.NoError(t, repo.Update(context.Background(), a))

	got, err := repo.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "新标题", got.Title)
	assert.True(t, got.IsActive)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(context.Background(), a.ID))
	_, err = repo.FindByID(context.Background(), a.ID)
	assert.ErrorIs(t, err, announcement.ErrAnnouncementNotFound)

	err = repo.Delete(context.Background(), a.ID)
	assert.ErrorIs(t, err, announcement.ErrAnnouncementNotFound)
}
