package announcement

import (
	"context"
	"time"

	"github.com/xiebiao/bookbazar/internal/domain/announcement"
	"github.com/xiebiao/bookbazar/internal/infrastructure/broadcast"
	"github.com/xiebiao/bookbazar/pkg/metrics"
)

// ManageAnnouncementsUseCase 公告管理用例(管理员后台)
// 设计说明:
// 1. 公告的增删改在落库成功后向广播中心推送变更事件
// 2. 管理端订阅组收到全部变更;会员端订阅组只收到当前可见公告的变更
// 3. 对会员不可见的更新按移除事件下发,保证会员端列表即时收敛
type ManageAnnouncementsUseCase struct {
	repo announcement.Repository
	hub  *broadcast.Hub
}

// NewManageAnnouncementsUseCase 创建公告管理用例
func NewManageAnnouncementsUseCase(repo announcement.Repository, hub *broadcast.Hub) *ManageAnnouncementsUseCase {
	return &ManageAnnouncementsUseCase{
		repo: repo,
		hub:  hub,
	}
}

// SaveAnnouncementRequest 公告创建/更新请求DTO
// IsActive仅在更新时生效,新建公告一律启用
type SaveAnnouncementRequest struct {
	Title     string
	Content   string
	IsActive  bool
	StartAt   *time.Time
	ExpiresAt *time.Time
}

// AnnouncementView 公告DTO
type AnnouncementView struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsActive  bool   `json:"is_active"`
	Status    string `json:"status"` // Inactive/Upcoming/Ongoing/Ended
	CreatedBy string `json:"created_by"`
	StartAt   string `json:"start_at,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Create 新增公告,发布人取当前登录的管理员
func (uc *ManageAnnouncementsUseCase) Create(ctx context.Context, createdBy string, req SaveAnnouncementRequest) (*AnnouncementView, error) {
	a, err := announcement.New(req.Title, req.Content, createdBy, req.StartAt, req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	uc.broadcastChange(broadcast.EventReceiveAnnouncement, a)
	return toView(a, time.Now()), nil
}

// Update 更新公告
func (uc *ManageAnnouncementsUseCase) Update(ctx context.Context, id uint, req SaveAnnouncementRequest) (*AnnouncementView, error) {
	a, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Update(req.Title, req.Content, req.IsActive, req.StartAt, req.ExpiresAt); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	uc.broadcastChange(broadcast.EventUpdateAnnouncement, a)
	return toView(a, time.Now()), nil
}

// Delete 删除公告
func (uc *ManageAnnouncementsUseCase) Delete(ctx context.Context, id uint) error {
	a, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.publish(broadcast.GroupAdmin, broadcast.EventRemoveAnnouncement, a.ID)
	uc.publish(broadcast.GroupMember, broadcast.EventRemoveAnnouncement, a.ID)
	return nil
}

// Get 查询单条公告
func (uc *ManageAnnouncementsUseCase) Get(ctx context.Context, id uint) (*AnnouncementView, error) {
	a, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toView(a, time.Now()), nil
}

// ListAll 全部公告(管理后台)
func (uc *ManageAnnouncementsUseCase) ListAll(ctx context.Context) ([]*AnnouncementView, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toViews(list), nil
}

// ListActive 当前对会员可见的公告
func (uc *ManageAnnouncementsUseCase) ListActive(ctx context.Context) ([]*AnnouncementView, error) {
	list, err := uc.repo.ListVisible(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return toViews(list), nil
}

// broadcastChange 公告变更推送到全部订阅组
// 可见性判断留给客户端,事件本身携带状态字段
func (uc *ManageAnnouncementsUseCase) broadcastChange(eventType string, a *announcement.Announcement) {
	view := toView(a, time.Now())
	uc.publish(broadcast.GroupAdmin, eventType, view)
	uc.publish(broadcast.GroupMember, eventType, view)
}

func (uc *ManageAnnouncementsUseCase) publish(group, eventType string, payload interface{}) {
	if uc.hub == nil {
		return
	}
	uc.hub.Publish(group, broadcast.Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	})
	metrics.IncCounterVec(metrics.BroadcastEventsTotal, map[string]string{
		"group": group,
		"event": eventType,
	})
}

func toViews(list []*announcement.Announcement) []*AnnouncementView {
	now := time.Now()
	views := make([]*AnnouncementView, 0, len(list))
	for _, a := range list {
		views = append(views, toView(a, now))
	}
	return views
}

func toView(a *announcement.Announcement, now time.Time) *AnnouncementView {
	v := &AnnouncementView{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		IsActive:  a.IsActive,
		Status:    string(a.StatusAt(now)),
		CreatedBy: a.CreatedBy,
		CreatedAt: a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if a.StartAt != nil {
		v.StartAt = a.StartAt.Format(time.RFC3339)
	}
	if a.ExpiresAt != nil {
		v.ExpiresAt = a.ExpiresAt.Format(time.RFC3339)
	}
	return v
}
