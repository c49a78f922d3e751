package user

import (
	"context"

	"github.com/xiebiao/bookbazar/internal/domain/user"
)

// GetUserInfoUseCase 查询当前用户信息用例
type GetUserInfoUseCase struct {
	userService user.Service
}

// NewGetUserInfoUseCase 创建用户信息查询用例
func NewGetUserInfoUseCase(userService user.Service) *GetUserInfoUseCase {
	return &GetUserInfoUseCase{
		userService: userService,
	}
}

// Execute 执行查询
func (uc *GetUserInfoUseCase) Execute(ctx context.Context, userID uint) (*UserInfoResponse, error) {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserInfoResponse(u), nil
}

// UserInfoResponse 用户信息响应
type UserInfoResponse struct {
	ID                 uint   `json:"id"`
	Username           string `json:"username"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phone_number"`
	Role               string `json:"role"`
	MembershipID       string `json:"membership_id"`
	MembershipDate     string `json:"membership_date"`
	SuccessfulOrders   int    `json:"successful_orders"`
	HasActiveDiscount  bool   `json:"has_active_discount"`
	DiscountPercentage int    `json:"discount_percentage"`
}

func toUserInfoResponse(u *user.User) *UserInfoResponse {
	return &UserInfoResponse{
		ID:                 u.ID,
		Username:           u.Name,
		Email:              u.Email,
		PhoneNumber:        u.PhoneNumber,
		Role:               u.Role.String(),
		MembershipID:       u.MembershipID.String(),
		MembershipDate:     u.MembershipDate.Format("2006-01-02"),
		SuccessfulOrders:   u.SuccessfulOrders,
		HasActiveDiscount:  u.HasActiveDiscount,
		DiscountPercentage: u.DiscountPercentage,
	}
}
