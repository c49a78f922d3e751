package announcement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookbazar/internal/domain/announcement"
	"github.com/xiebiao/bookbazar/internal/infrastructure/broadcast"
	"github.com/xiebiao/bookbazar/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookbazar/pkg/metrics"
)

// 公告管理用例测试
// 重点验证变更事件对全部订阅组的无条件下发

func newAnnouncementUseCase(t *testing.T) (*ManageAnnouncementsUseCase, *broadcast.Hub) {
	t.Helper()
	metrics.InitMetrics()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, mysql.AutoMigrate(db))

	hub := broadcast.NewHub()
	return NewManageAnnouncementsUseCase(mysql.NewAnnouncementRepository(db), hub), hub
}

// recvEvent 从订阅通道取一个事件,短暂等待避免测试悬挂
func recvEvent(t *testing.T, ch <-chan broadcast.Event) broadcast.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("等待广播事件超时")
		return broadcast.Event{}
	}
}

func TestManageAnnouncements_Broadcast(t *testing.T) {
	uc, hub := newAnnouncementUseCase(t)
	adminCh := hub.Subscribe("admin-conn", broadcast.GroupAdmin)
	memberCh := hub.Subscribe("member-conn", broadcast.GroupMember)
	defer hub.Unsubscribe("admin-conn")
	defer hub.Unsubscribe("member-conn")

	// 创建,两个组都应收到新增事件,新建公告一律启用
	view, err := uc.Create(context.Background(), "admin", SaveAnnouncementRequest{
		Title:   "周年庆",
		Content: "全场图书限时优惠",
	})
	require.NoError(t, err)
	assert.True(t, view.IsActive)
	assert.Equal(t, "admin", view.CreatedBy)
	assert.Equal(t, broadcast.EventReceiveAnnouncement, recvEvent(t, adminCh).Type)
	assert.Equal(t, broadcast.EventReceiveAnnouncement, recvEvent(t, memberCh).Type)

	// 停用后更新:两个组都收到更新事件,状态字段随事件下发
	_, err = uc.Update(context.Background(), view.ID, SaveAnnouncementRequest{
		Title:    "周年庆",
		Content:  "活动已结束",
		IsActive: false,
	})
	require.NoError(t, err)
	assert.Equal(t, broadcast.EventUpdateAnnouncement, recvEvent(t, adminCh).Type)
	memberUpdate := recvEvent(t, memberCh)
	assert.Equal(t, broadcast.EventUpdateAnnouncement, memberUpdate.Type)
	updated, ok := memberUpdate.Payload.(*AnnouncementView)
	require.True(t, ok)
	assert.Equal(t, string(announcement.StatusInactive), updated.Status)

	// 删除:两个组都收到移除事件,负载为公告ID
	require.NoError(t, uc.Delete(context.Background(), view.ID))
	assert.Equal(t, broadcast.EventRemoveAnnouncement, recvEvent(t, adminCh).Type)
	e := recvEvent(t, memberCh)
	assert.Equal(t, broadcast.EventRemoveAnnouncement, e.Type)
	assert.Equal(t, view.ID, e.Payload)
}

func TestManageAnnouncements_UpcomingCreate(t *testing.T) {
	uc, hub := newAnnouncementUseCase(t)
	memberCh := hub.Subscribe("member-conn", broadcast.GroupMember)
	defer hub.Unsubscribe("member-conn")

	// 未到开始时间的公告同样推送给会员组,事件携带Upcoming状态
	start := time.Now().Add(24 * time.Hour)
	_, err := uc.Create(context.Background(), "admin", SaveAnnouncementRequest{
		Title:   "预告",
		Content: "下周上新",
		StartAt: &start,
	})
	require.NoError(t, err)

	e := recvEvent(t, memberCh)
	assert.Equal(t, broadcast.EventReceiveAnnouncement, e.Type)
	view, ok := e.Payload.(*AnnouncementView)
	require.True(t, ok)
	assert.Equal(t, string(announcement.StatusUpcoming), view.Status)
}

func TestManageAnnouncements_ListActive(t *testing.T) {
	uc, _ := newAnnouncementUseCase(t)

	_, err := uc.Create(context.Background(), "admin", SaveAnnouncementRequest{
		Title: "进行中", Content: "内容",
	})
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	_, err = uc.Create(context.Background(), "admin", SaveAnnouncementRequest{
		Title: "已结束", Content: "内容", ExpiresAt: &past,
	})
	require.NoError(t, err)

	stopped, err := uc.Create(context.Background(), "admin", SaveAnnouncementRequest{
		Title: "已停用", Content: "内容",
	})
	require.NoError(t, err)
	_, err = uc.Update(context.Background(), stopped.ID, SaveAnnouncementRequest{
		Title: "已停用", Content: "内容", IsActive: false,
	})
	require.NoError(t, err)

	active, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "进行中", active[0].Title)

	all, err := uc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
