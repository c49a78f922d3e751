package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookbazar/internal/application/cart"
	"github.com/xiebiao/bookbazar/internal/interface/http/dto"
	"github.com/xiebiao/bookbazar/internal/interface/http/middleware"
	"github.com/xiebiao/bookbazar/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 所有接口都要求登录,用户ID一律取自认证中间件注入的Context
type CartHandler struct {
	cartUseCase *appcart.ManageCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.ManageCartUseCase) *CartHandler {
	return &CartHandler{cartUseCase: cartUseCase}
}

// List 购物车列表
// @Summary      购物车列表
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appcart.CartResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/cart [get]
func (h *CartHandler) List(c *gin.Context) {
	result, err := h.cartUseCase.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AddItem 加购
// @Summary      加购
// @Description  同一本书重复加购时数量合并
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddCartItemRequest true "加购信息"
// @Success      200 {object} response.Response{data=appcart.CartItemResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/cart/add [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.cartUseCase.AddItem(c.Request.Context(), middleware.UserID(c), appcart.AddItemRequest{
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateItem 调整数量
// @Summary      调整数量
// @Description  数量为0等价删除条目,条目归属他人时按不存在处理
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateCartItemRequest true "条目ID与数量"
// @Success      200 {object} response.Response{data=appcart.CartItemResponse}
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/cart/update [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.cartUseCase.UpdateQuantity(c.Request.Context(), middleware.UserID(c), req.CartItemID, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	// 数量为0时条目已删除,data为null
	response.Success(c, result)
}

// RemoveItem 删除条目
// @Summary      删除条目
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "条目ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /api/cart/remove/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.cartUseCase.RemoveItem(c.Request.Context(), middleware.UserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/cart/clear [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartUseCase.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
