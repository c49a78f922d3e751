package dto

// AddCartItemRequest HTTP加购请求
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999"`
}

// UpdateCartItemRequest HTTP购物车数量调整请求
// 数量为0等价删除条目
type UpdateCartItemRequest struct {
	CartItemID uint `json:"cart_item_id" binding:"required"`
	Quantity   *int `json:"quantity" binding:"required,min=0,max=999"`
}
