package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookbazar/internal/application/user"
	"github.com/xiebiao/bookbazar/internal/interface/http/middleware"
	"github.com/xiebiao/bookbazar/pkg/response"
)

// MemberHandler 会员专区HTTP处理器
type MemberHandler struct {
	dashboardUseCase *appuser.MemberDashboardUseCase
}

// NewMemberHandler 创建会员处理器
func NewMemberHandler(dashboardUseCase *appuser.MemberDashboardUseCase) *MemberHandler {
	return &MemberHandler{dashboardUseCase: dashboardUseCase}
}

// Dashboard 会员仪表盘
// @Summary      会员仪表盘
// @Description  会员资料、订单统计与收藏数量的聚合视图
// @Tags         会员
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appuser.DashboardResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/member/dashboard [get]
func (h *MemberHandler) Dashboard(c *gin.Context) {
	result, err := h.dashboardUseCase.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
