package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailSender struct {
	to          string
	memberName  string
	orderID     uint
	totalAmount int64
	calls       int
	err         error
}

func (s *recordingMailSender) SendOrderConfirmed(to, memberName string, orderID uint, totalAmount int64) error {
	s.calls++
	s.to = to
	s.memberName = memberName
	s.orderID = orderID
	s.totalAmount = totalAmount
	return s.err
}

func TestMailWorker_Handle(t *testing.T) {
	t.Run("正常事件触发确认邮件", func(t *testing.T) {
		sender := &recordingMailSender{}
		w := NewMailWorker(nil, sender)

		body, err := json.Marshal(OrderConfirmedEvent{
			OrderID:     7,
			UserID:      3,
			Username:    "张三",
			Email:       "zhangsan@example.com",
			TotalAmount: 15000,
		})
		require.NoError(t, err)

		require.NoError(t, w.handle(body))
		assert.Equal(t, 1, sender.calls)
		assert.Equal(t, "zhangsan@example.com", sender.to)
		assert.Equal(t, "张三", sender.memberName)
		assert.Equal(t, uint(7), sender.orderID)
		assert.Equal(t, int64(15000), sender.totalAmount)
	})

	t.Run("畸形消息丢弃不重试", func(t *testing.T) {
		sender := &recordingMailSender{}
		w := NewMailWorker(nil, sender)

		// 返回nil让消费者Ack,畸形消息重新入队只会反复失败
		assert.NoError(t, w.handle([]byte("not json")))
		assert.Equal(t, 0, sender.calls)
	})

	t.Run("无邮箱的事件跳过发送", func(t *testing.T) {
		sender := &recordingMailSender{}
		w := NewMailWorker(nil, sender)

		body, err := json.Marshal(OrderConfirmedEvent{OrderID: 8, UserID: 4, TotalAmount: 9900})
		require.NoError(t, err)

		assert.NoError(t, w.handle(body))
		assert.Equal(t, 0, sender.calls)
	})

	t.Run("发送失败时错误上抛交给队列重试", func(t *testing.T) {
		sender := &recordingMailSender{err: assert.AnError}
		w := NewMailWorker(nil, sender)

		body, err := json.Marshal(OrderConfirmedEvent{
			OrderID: 9, UserID: 5, Username: "李四", Email: "lisi@example.com", TotalAmount: 4200,
		})
		require.NoError(t, err)

		assert.ErrorIs(t, w.handle(body), assert.AnError)
		assert.Equal(t, 1, sender.calls)
	})
}
