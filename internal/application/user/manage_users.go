package user

import (
	"context"

	"github.com/xiebiao/bookbazar/internal/domain/user"
)

// ManageUsersUseCase 用户管理用例(管理员后台)
// 设计说明：
// 1. 管理列表不含管理员账号，管理员账号不可改不可删(规则在领域服务内)
// 2. 创建入口只能产生Member角色，提升为Staff走更新入口
type ManageUsersUseCase struct {
	userService user.Service
}

// NewManageUsersUseCase 创建用户管理用例
func NewManageUsersUseCase(userService user.Service) *ManageUsersUseCase {
	return &ManageUsersUseCase{
		userService: userService,
	}
}

// CreateMember 创建会员账号
func (uc *ManageUsersUseCase) CreateMember(ctx context.Context, req CreateMemberRequest) (*UserInfoResponse, error) {
	u, err := uc.userService.CreateMember(ctx, user.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return nil, err
	}
	return toUserInfoResponse(u), nil
}

// Update 更新用户资料与角色
func (uc *ManageUsersUseCase) Update(ctx context.Context, id uint, req UpdateUserRequest) (*UserInfoResponse, error) {
	u, err := uc.userService.UpdateUser(ctx, id, user.UpdateInput{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		return nil, err
	}
	return toUserInfoResponse(u), nil
}

// Delete 删除用户
func (uc *ManageUsersUseCase) Delete(ctx context.Context, id uint) error {
	return uc.userService.DeleteUser(ctx, id)
}

// Get 查询单个用户
func (uc *ManageUsersUseCase) Get(ctx context.Context, id uint) (*UserInfoResponse, error) {
	u, err := uc.userService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserInfoResponse(u), nil
}

// ListManaged 用户管理列表(不含管理员)
func (uc *ManageUsersUseCase) ListManaged(ctx context.Context) ([]*UserInfoResponse, error) {
	users, err := uc.userService.ListManagedUsers(ctx)
	if err != nil {
		return nil, err
	}
	return toUserInfoList(users), nil
}

// ListAll 全量用户列表(管理员总览)
func (uc *ManageUsersUseCase) ListAll(ctx context.Context) ([]*UserInfoResponse, error) {
	users, err := uc.userService.ListAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return toUserInfoList(users), nil
}

func toUserInfoList(users []*user.User) []*UserInfoResponse {
	list := make([]*UserInfoResponse, 0, len(users))
	for _, u := range users {
		list = append(list, toUserInfoResponse(u))
	}
	return list
}

// =========================================
// 应用层DTO
// =========================================

// CreateMemberRequest 创建会员请求
type CreateMemberRequest struct {
	Username        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// UpdateUserRequest 用户更新请求
type UpdateUserRequest struct {
	Username    string
	Email       string
	PhoneNumber string
	Role        string
}
