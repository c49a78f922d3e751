package cart

import apperrors "github.com/xiebiao/bookbazar/pkg/errors"

var (
	// ErrItemNotFound 购物车条目不存在或不属于当前用户
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车条目不存在")

	// ErrInvalidQuantity 数量非法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "商品数量必须为正整数")
)
