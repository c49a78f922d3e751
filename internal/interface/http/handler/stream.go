package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/bookbazar/internal/domain/user"
	"github.com/xiebiao/bookbazar/internal/infrastructure/broadcast"
	"github.com/xiebiao/bookbazar/internal/interface/http/middleware"
	"github.com/xiebiao/bookbazar/pkg/metrics"
)

// StreamHandler 公告实时推送(SSE)处理器
// 设计说明:
// 1. 每个连接分配UUID订阅ID,断开时退订
// 2. 订阅组按角色划分:管理员进admin组收到全部变更,
//    其余角色进member组只收到可见公告的变更
// 3. SSE无法设置请求头,Token允许走query参数(认证中间件已支持)
type StreamHandler struct {
	hub *broadcast.Hub
}

// NewStreamHandler 创建推送处理器
func NewStreamHandler(hub *broadcast.Hub) *StreamHandler {
	return &StreamHandler{hub: hub}
}

// Stream 建立SSE订阅
// @Summary      公告实时推送
// @Description  Server-Sent Events流,事件类型为ReceiveAnnouncement/UpdateAnnouncement/RemoveAnnouncement
// @Tags         公告
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200 {string} string "事件流"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/announcement/stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	group := broadcast.GroupMember
	if middleware.UserRole(c) == user.RoleAdmin {
		group = broadcast.GroupAdmin
	}

	connID := uuid.NewString()
	events := h.hub.Subscribe(connID, group)
	defer h.hub.Unsubscribe(connID)

	metrics.BroadcastSubscribers.WithLabelValues(group).Inc()
	defer metrics.BroadcastSubscribers.WithLabelValues(group).Dec()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event, ok := <-events:
			if !ok {
				// 同一订阅ID重复订阅时旧通道被关闭
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		}
	})
}
