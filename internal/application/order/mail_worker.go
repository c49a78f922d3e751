package order

import (
	"context"
	"encoding/json"
	"log"

	"github.com/xiebiao/bookbazar/pkg/mq"
)

// ConfirmedMailSender 提货确认邮件发送能力,由pkg/mailer实现
type ConfirmedMailSender interface {
	SendOrderConfirmed(to, memberName string, orderID uint, totalAmount int64) error
}

// MailWorker 订单邮件工作者
// 设计说明:
// 1. 消费order.confirmed事件,向顾客发送核销确认邮件
// 2. 邮件外呼与核销事务解耦:SMTP慢或抖动不拖慢店员操作
// 3. 发送失败时消息Nack重新入队,由队列承担重试
type MailWorker struct {
	consumer *mq.Consumer
	mailer   ConfirmedMailSender
}

// NewMailWorker 创建订单邮件工作者
func NewMailWorker(consumer *mq.Consumer, m ConfirmedMailSender) *MailWorker {
	return &MailWorker{
		consumer: consumer,
		mailer:   m,
	}
}

// Run 阻塞消费直到ctx取消
func (w *MailWorker) Run(ctx context.Context) error {
	return w.consumer.Consume(ctx, w.handle)
}

func (w *MailWorker) handle(body []byte) error {
	var event OrderConfirmedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		// 畸形消息重新入队只会死循环,记日志后丢弃
		log.Printf("订单核销事件解析失败,消息丢弃: %v", err)
		return nil
	}
	if event.Email == "" {
		return nil
	}
	return w.mailer.SendOrderConfirmed(event.Email, event.Username, event.OrderID, event.TotalAmount)
}
