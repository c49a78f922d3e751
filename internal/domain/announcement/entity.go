// Package announcement 公告领域模型。
//
// 设计说明:
// 公告有启用开关与可选的生效时间窗口,展示状态由两者共同派生:
//   - 未启用            -> Inactive
//   - 启用且未到开始时间 -> Upcoming
//   - 启用且在窗口内     -> Ongoing
//   - 启用且已过结束时间 -> Ended
// 状态不落库,每次读取时按当前时间计算,避免定时任务刷状态。
package announcement

import "time"

// Status 公告展示状态
type Status string

const (
	StatusInactive Status = "Inactive"
	StatusUpcoming Status = "Upcoming"
	StatusOngoing  Status = "Ongoing"
	StatusEnded    Status = "Ended"
)

// Announcement 公告实体
type Announcement struct {
	ID        uint
	Title     string
	Content   string
	IsActive  bool
	StartAt   *time.Time
	ExpiresAt *time.Time
	CreatedBy string // 发布人(管理员用户名)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New 创建公告,新公告一律启用
func New(title, content, createdBy string, startAt, expiresAt *time.Time) (*Announcement, error) {
	a := &Announcement{
		Title:     title,
		Content:   content,
		IsActive:  true,
		StartAt:   startAt,
		ExpiresAt: expiresAt,
		CreatedBy: createdBy,
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Update 更新公告内容与窗口
func (a *Announcement) Update(title, content string, isActive bool, startAt, expiresAt *time.Time) error {
	a.Title = title
	a.Content = content
	a.IsActive = isActive
	a.StartAt = startAt
	a.ExpiresAt = expiresAt
	return a.validate()
}

func (a *Announcement) validate() error {
	if a.Title == "" {
		return ErrTitleRequired
	}
	if a.StartAt != nil && a.ExpiresAt != nil && a.ExpiresAt.Before(*a.StartAt) {
		return ErrInvalidWindow
	}
	return nil
}

// StatusAt 计算公告在指定时刻的展示状态
func (a *Announcement) StatusAt(now time.Time) Status {
	return ComputeStatus(a.IsActive, a.StartAt, a.ExpiresAt, now)
}

// IsVisible 公告是否应对会员展示,仅 Ongoing 状态可见
func (a *Announcement) IsVisible(now time.Time) bool {
	return a.StatusAt(now) == StatusOngoing
}

// ComputeStatus 纯函数形式的状态派生
// 开始时刻含在窗口内,结束时刻不含:expiresAt == now 即视为结束
func ComputeStatus(isActive bool, startAt, expiresAt *time.Time, now time.Time) Status {
	if !isActive {
		return StatusInactive
	}
	if startAt != nil && now.Before(*startAt) {
		return StatusUpcoming
	}
	if expiresAt != nil && !now.Before(*expiresAt) {
		return StatusEnded
	}
	return StatusOngoing
}
