package book

import (
	apperrors "github.com/xiebiao/bookbazar/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "ISBN号已存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrImageRequired 必须上传封面图
	ErrImageRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "请上传封面图")

	// ErrImageTooLarge 封面图超过大小限制
	ErrImageTooLarge = apperrors.New(apperrors.ErrCodeInvalidParams, "封面图不能超过5MB")

	// ErrImageBadType 封面图类型不支持
	ErrImageBadType = apperrors.New(apperrors.ErrCodeInvalidParams, "封面图仅支持JPEG/PNG/GIF")

	// ErrInvalidDiscount 折扣窗口不完整
	ErrInvalidDiscount = apperrors.New(apperrors.ErrCodeInvalidParams, "促销需要同时设置起止时间与折后价")
)
