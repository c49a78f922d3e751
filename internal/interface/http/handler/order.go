package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookbazar/internal/application/order"
	"github.com/xiebiao/bookbazar/internal/interface/http/dto"
	"github.com/xiebiao/bookbazar/internal/interface/http/middleware"
	"github.com/xiebiao/bookbazar/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createUseCase  *apporder.CreateOrderUseCase
	confirmUseCase *apporder.ConfirmOrderUseCase
	listUseCase    *apporder.ListOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createUseCase *apporder.CreateOrderUseCase,
	confirmUseCase *apporder.ConfirmOrderUseCase,
	listUseCase *apporder.ListOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUseCase:  createUseCase,
		confirmUseCase: confirmUseCase,
		listUseCase:    listUseCase,
	}
}

// Create 下单
// @Summary      下单
// @Description  以当前购物车内容生成待提货订单,返回提货码
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} response.Response{data=apporder.CreateOrderResponse}
// @Failure      400 {object} response.Response "购物车为空"
// @Failure      409 {object} response.Response "库存不足"
// @Router       /api/order [post]
func (h *OrderHandler) Create(c *gin.Context) {
	result, err := h.createUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID: middleware.UserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List 我的订单列表
// @Summary      我的订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apporder.OrderView}
// @Router       /api/order/my-orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	result, err := h.listUseCase.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 订单详情
// @Summary      订单详情
// @Description  只能查看自己的订单,归属不符按不存在处理
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderView}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/order/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	result, err := h.listUseCase.GetByUser(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Confirm 核销订单(店员工作台)
// @Summary      核销订单
// @Description  持提货码当面核销,核销是单向操作
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ConfirmOrderRequest true "订单ID与提货码"
// @Success      200 {object} response.Response{data=apporder.ConfirmOrderResponse}
// @Failure      400 {object} response.Response "提货码不匹配"
// @Failure      404 {object} response.Response "订单不存在"
// @Failure      409 {object} response.Response "订单已核销"
// @Router       /api/staff/confirm-order [post]
func (h *OrderHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.confirmUseCase.Execute(c.Request.Context(), apporder.ConfirmOrderRequest{
		OrderID:   req.OrderID,
		ClaimCode: req.ClaimCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListIncomplete 未核销订单列表(店员工作台)
// @Summary      未核销订单列表
// @Description  全部待提货订单,携带提货码供当面比对
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apporder.OrderView}
// @Failure      403 {object} response.Response "没有权限"
// @Router       /api/staff/incomplete-orders [get]
func (h *OrderHandler) ListIncomplete(c *gin.Context) {
	result, err := h.listUseCase.ListIncomplete(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
