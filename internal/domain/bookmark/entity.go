// Package bookmark 书签(收藏)领域模型。
//
// 书签是用户与图书的二元关系,没有数量概念,
// 切换语义(已收藏则取消,未收藏则添加)在应用层实现。
package bookmark

import "time"

// Bookmark 用户对图书的收藏记录
type Bookmark struct {
	ID        uint
	UserID    uint
	BookID    uint
	CreatedAt time.Time
}

// New 创建书签
func New(userID, bookID uint) *Bookmark {
	return &Bookmark{UserID: userID, BookID: bookID}
}
