// Package mailer 提供SMTP邮件发送,用于订单核销后的提货确认通知。
//
// 设计说明:
// 1. 基于gomail封装,调用方只关心业务语义(发什么通知给谁)
// 2. 外层用熔断器包裹,SMTP故障时快速失败,消息由MQ重新入队
package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/xiebiao/bookbazar/pkg/circuitbreaker"
	"github.com/xiebiao/bookbazar/pkg/metrics"
)

// Mailer 邮件发送器
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	cb     *circuitbreaker.CircuitBreaker
}

// New 创建邮件发送器
func New(host string, port int, username, password, from string, cb *circuitbreaker.CircuitBreaker) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		cb:     cb,
	}
}

// SendOrderConfirmed 发送提货确认邮件
func (m *Mailer) SendOrderConfirmed(to, memberName string, orderID uint, totalAmount int64) error {
	subject := fmt.Sprintf("BookBazar 订单 #%d 已完成提货", orderID)
	body := fmt.Sprintf(
		"%s,您好:<br><br>您的订单 #%d 已完成提货,实付金额 %.2f 元。<br>感谢您在 BookBazar 购书,期待再次光临。",
		memberName, orderID, float64(totalAmount)/100)

	return m.send(to, subject, body)
}

// SendOrderCreated 发送下单成功邮件,附提货码
func (m *Mailer) SendOrderCreated(to, memberName string, orderID uint, claimCode string, totalAmount int64) error {
	subject := fmt.Sprintf("BookBazar 订单 #%d 创建成功", orderID)
	body := fmt.Sprintf(
		"%s,您好:<br><br>您的订单 #%d 已创建,总金额 %.2f 元。<br>到店提货时请出示提货码:<b>%s</b>",
		memberName, orderID, float64(totalAmount)/100, claimCode)

	return m.send(to, subject, body)
}

// send 通过熔断器执行实际发送,并上报发送结果指标
func (m *Mailer) send(to, subject, body string) error {
	doSend := func() error {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.from)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", subject)
		msg.SetBody("text/html", body)
		return m.dialer.DialAndSend(msg)
	}

	var err error
	if m.cb != nil {
		err = m.cb.Execute(doSend)
	} else {
		err = doSend()
	}

	if metrics.EmailsSentTotal != nil {
		result := "success"
		switch {
		case err == circuitbreaker.ErrOpenState:
			result = "rejected"
		case err != nil:
			result = "failure"
		}
		metrics.IncCounterVec(metrics.EmailsSentTotal, map[string]string{"result": result})
	}

	return err
}
