package user

import (
	"context"

	"github.com/xiebiao/bookbazar/internal/domain/bookmark"
	"github.com/xiebiao/bookbazar/internal/domain/order"
	"github.com/xiebiao/bookbazar/internal/domain/user"
)

// MemberDashboardUseCase 会员仪表盘用例
// 聚合会员资料、订单统计与收藏数量,供会员首页一次拉取
type MemberDashboardUseCase struct {
	userService  user.Service
	orderRepo    order.Repository
	bookmarkRepo bookmark.Repository
}

// NewMemberDashboardUseCase 创建会员仪表盘用例
func NewMemberDashboardUseCase(
	userService user.Service,
	orderRepo order.Repository,
	bookmarkRepo bookmark.Repository,
) *MemberDashboardUseCase {
	return &MemberDashboardUseCase{
		userService:  userService,
		orderRepo:    orderRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

// DashboardResponse 仪表盘响应DTO
type DashboardResponse struct {
	Profile        *UserInfoResponse `json:"profile"`
	TotalOrders    int               `json:"total_orders"`
	PendingOrders  int               `json:"pending_orders"`
	TotalBookmarks int               `json:"total_bookmarks"`
}

// Execute 执行仪表盘聚合查询
func (uc *MemberDashboardUseCase) Execute(ctx context.Context, userID uint) (*DashboardResponse, error) {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders, err := uc.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending := 0
	for _, o := range orders {
		if !o.IsCompleted {
			pending++
		}
	}

	bookIDs, err := uc.bookmarkRepo.ListBookIDsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Profile:        toUserInfoResponse(u),
		TotalOrders:    len(orders),
		PendingOrders:  pending,
		TotalBookmarks: len(bookIDs),
	}, nil
}
