package dto

// SaveAnnouncementRequest HTTP公告创建/更新请求
// 展示窗口两端均可省略,省略的一端不限制
type SaveAnnouncementRequest struct {
	Title     string `json:"title" binding:"required,max=200"`
	Content   string `json:"content" binding:"max=5000"`
	IsActive  bool   `json:"is_active"`
	StartAt   string `json:"start_at" binding:"omitempty"`   // RFC3339
	ExpiresAt string `json:"expires_at" binding:"omitempty"` // RFC3339
}
