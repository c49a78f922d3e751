package dto

// ConfirmOrderRequest HTTP订单核销请求
// 提货码由顾客当面出示,店员录入
type ConfirmOrderRequest struct {
	OrderID   uint   `json:"order_id" binding:"required"`
	ClaimCode string `json:"claim_code" binding:"required"`
}
