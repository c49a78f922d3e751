// Package cart 购物车领域模型。
//
// 设计说明:
// 购物车按用户维度存储,每个用户对同一本书只有一行记录。
// 加购时数量合并,数量调整为零时删除记录。
package cart

import "time"

// Item 购物车条目,用户与图书的组合唯一
type Item struct {
	ID        uint
	UserID    uint
	BookID    uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem 创建购物车条目
func NewItem(userID, bookID uint, quantity int) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Item{
		UserID:   userID,
		BookID:   bookID,
		Quantity: quantity,
	}, nil
}

// Merge 合并数量,已在购物车中的图书再次加购时调用
func (i *Item) Merge(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	i.Quantity += quantity
	return nil
}

// SetQuantity 直接设置数量,返回 true 表示应删除该条目
func (i *Item) SetQuantity(quantity int) (remove bool, err error) {
	if quantity < 0 {
		return false, ErrInvalidQuantity
	}
	if quantity == 0 {
		return true, nil
	}
	i.Quantity = quantity
	return false, nil
}
