package broadcast

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHub_GroupIsolation 事件只送达同分组订阅者
func TestHub_GroupIsolation(t *testing.T) {
	hub := NewHub()

	memberCh := hub.Subscribe("conn-member", GroupMember)
	adminCh := hub.Subscribe("conn-admin", GroupAdmin)

	hub.Publish(GroupMember, Event{Type: EventReceiveAnnouncement, Payload: "hello"})

	select {
	case ev := <-memberCh:
		assert.Equal(t, EventReceiveAnnouncement, ev.Type)
		assert.False(t, ev.Timestamp.IsZero(), "发布时应补齐时间戳")
	default:
		t.Fatal("会员分组应收到事件")
	}

	select {
	case <-adminCh:
		t.Fatal("管理分组不应收到会员分组事件")
	default:
	}
}

// TestHub_Unsubscribe 注销后channel关闭且不再计数
func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe("conn-1", GroupMember)
	assert.Equal(t, 1, hub.SubscriberCount())

	hub.Unsubscribe("conn-1")
	assert.Equal(t, 0, hub.SubscriberCount())

	_, ok := <-ch
	assert.False(t, ok, "注销后channel应已关闭")

	// 重复注销不应panic
	hub.Unsubscribe("conn-1")
}

// TestHub_SlowSubscriberDropped 慢消费者不阻塞发布方
func TestHub_SlowSubscriberDropped(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe("conn-slow", GroupMember)

	// 超出缓冲的事件应被丢弃而非阻塞
	for i := 0; i < subscriberBuffer*2; i++ {
		hub.Publish(GroupMember, Event{Type: EventUpdateAnnouncement, Payload: i})
	}

	assert.Len(t, ch, subscriberBuffer)
}

// TestHub_ResubscribeSameConn 同连接重复订阅关闭旧channel
func TestHub_ResubscribeSameConn(t *testing.T) {
	hub := NewHub()

	old := hub.Subscribe("conn-1", GroupMember)
	fresh := hub.Subscribe("conn-1", GroupAdmin)

	_, ok := <-old
	assert.False(t, ok, "旧channel应被关闭")

	hub.Publish(GroupAdmin, Event{Type: EventRemoveAnnouncement, Payload: uint(3)})
	require.Len(t, fresh, 1)
	assert.Equal(t, 1, hub.SubscriberCount())
}

// TestHub_ConcurrentPublish 并发发布与订阅不发生竞争
func TestHub_ConcurrentPublish(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			connID := fmt.Sprintf("conn-%d", n)
			hub.Subscribe(connID, GroupMember)
			for j := 0; j < 100; j++ {
				hub.Publish(GroupMember, Event{Type: EventReceiveAnnouncement, Payload: j})
			}
			hub.Unsubscribe(connID)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.SubscriberCount())
}
