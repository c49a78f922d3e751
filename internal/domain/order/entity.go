// Package order 订单领域模型。
//
// 设计说明:
// 订单采用到店自提模式:会员下单后获得提货码,
// 到店出示提货码,由店员核销完成订单。
// 订单行记录下单时刻的成交单价快照,图书后续改价不影响历史订单。
package order

import "time"

// 订单状态,核销是单向操作
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// Order 订单聚合根
type Order struct {
	ID          uint
	UserID      uint
	Status      string
	TotalAmount int64 // 单位:分
	ClaimCode   string
	IsCompleted bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []*Item
}

// Item 订单行,PriceAtTime 为下单时刻的有效单价快照
type Item struct {
	ID          uint
	OrderID     uint
	BookID      uint
	Quantity    int
	PriceAtTime int64 // 单位:分
}

// NewOrder 创建待提货订单,自动汇总金额
func NewOrder(userID uint, claimCode string, items []*Item) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	o := &Order{
		UserID:    userID,
		Status:    StatusPending,
		ClaimCode: claimCode,
		Items:     items,
	}
	o.TotalAmount = o.CalculateTotal()
	return o, nil
}

// CalculateTotal 按行快照价汇总订单金额
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.PriceAtTime * int64(item.Quantity)
	}
	return total
}

// Confirm 核销订单。核销是单向的,已完成订单再次核销返回错误
func (o *Order) Confirm(now time.Time) error {
	if o.IsCompleted {
		return ErrOrderCompleted
	}
	o.IsCompleted = true
	o.Status = StatusCompleted
	o.CompletedAt = &now
	return nil
}
