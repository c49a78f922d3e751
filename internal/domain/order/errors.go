package order

import apperrors "github.com/xiebiao/bookbazar/pkg/errors"

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrEmptyOrder 购物车为空时不允许下单
	ErrEmptyOrder = apperrors.New(apperrors.ErrCodeInvalidParams, "购物车为空,无法创建订单")

	// ErrOrderCompleted 订单已完成,不允许重复核销
	ErrOrderCompleted = apperrors.New(apperrors.ErrCodeOrderCompleted, "订单已完成,请勿重复核销")

	// ErrClaimCodeRequired 核销时必须提供提货码
	ErrClaimCodeRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "请输入提货码")

	// ErrClaimCodeMismatch 提货码与订单不匹配
	ErrClaimCodeMismatch = apperrors.New(apperrors.ErrCodeClaimCodeMismatch, "提货码不正确")

	// ErrClaimCodeCollision 提货码生成多次冲突,极小概率事件
	ErrClaimCodeCollision = apperrors.New(apperrors.ErrCodeInternal, "提货码生成失败,请重试")
)
