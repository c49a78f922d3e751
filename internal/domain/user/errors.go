package user

import (
	apperrors "github.com/xiebiao/bookbazar/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	// ErrNameDuplicate 用户名已被占用
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "用户名已被占用")

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "邮箱已被注册")

	// ErrPhoneDuplicate 手机号已被注册
	ErrPhoneDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "手机号已被注册")

	// ErrInvalidRole 非法的角色
	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的角色")

	// ErrAdminImmutable 管理员账号不可修改或删除
	ErrAdminImmutable = apperrors.New(apperrors.ErrCodeAdminImmutable, "管理员账号不可修改或删除")

	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = apperrors.New(apperrors.ErrCodeInvalidPassword, "用户名或密码错误")
)
