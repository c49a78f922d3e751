// Package broadcast 进程内实时广播中心。
//
// 设计说明:
// 公告的增删改需要实时推送到在线客户端(会员端与管理端分组),
// 采用"中心Hub + 每连接带缓冲channel"的模型:
// 1. HTTP层以SSE长连接订阅,每个连接持有一个只读事件channel
// 2. 应用层在公告变更后向指定分组发布事件
// 3. 慢消费者的channel写满时丢弃事件,不阻塞发布方
package broadcast

import (
	"sync"
	"time"
)

// 订阅分组
const (
	GroupMember = "member" // 会员端:仅收到可见公告的变更
	GroupAdmin  = "admin"  // 管理端:收到全部公告变更
)

// 事件类型,对应客户端的处理动作
const (
	EventReceiveAnnouncement = "ReceiveAnnouncement"
	EventUpdateAnnouncement  = "UpdateAnnouncement"
	EventRemoveAnnouncement  = "RemoveAnnouncement"
)

// Event 广播事件信封
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// 每连接事件缓冲大小,写满即丢弃(慢消费者不拖垮发布方)
const subscriberBuffer = 16

type subscriber struct {
	group string
	ch    chan Event
}

// Hub 广播中心,并发安全
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*subscriber // key为连接ID
}

// NewHub 创建广播中心
func NewHub() *Hub {
	return &Hub{subs: make(map[string]*subscriber)}
}

// Subscribe 注册订阅,返回只读事件channel
// 连接断开时必须调用Unsubscribe释放资源
func (h *Hub) Subscribe(connID, group string) <-chan Event {
	sub := &subscriber{
		group: group,
		ch:    make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	// 同一连接ID重复订阅时关闭旧channel
	if old, ok := h.subs[connID]; ok {
		close(old.ch)
	}
	h.subs[connID] = sub
	h.mu.Unlock()

	return sub.ch
}

// Unsubscribe 注销订阅并关闭事件channel
func (h *Hub) Unsubscribe(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subs[connID]; ok {
		close(sub.ch)
		delete(h.subs, connID)
	}
}

// Publish 向指定分组发布事件
// 教学要点:非阻塞发送,channel已满的订阅者直接跳过
func (h *Hub) Publish(group string, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		if sub.group != group {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// 慢消费者,丢弃事件
		}
	}
}

// SubscriberCount 当前订阅数,供监控指标上报
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
