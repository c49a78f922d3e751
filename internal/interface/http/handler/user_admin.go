package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookbazar/internal/application/user"
	"github.com/xiebiao/bookbazar/internal/interface/http/dto"
	"github.com/xiebiao/bookbazar/pkg/response"
)

// UserAdminHandler 用户管理HTTP处理器(管理员后台)
type UserAdminHandler struct {
	manageUseCase *appuser.ManageUsersUseCase
}

// NewUserAdminHandler 创建用户管理处理器
func NewUserAdminHandler(manageUseCase *appuser.ManageUsersUseCase) *UserAdminHandler {
	return &UserAdminHandler{manageUseCase: manageUseCase}
}

// List 用户管理列表(不含管理员)
// @Summary      用户管理列表
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appuser.UserInfoResponse}
// @Failure      403 {object} response.Response "没有权限"
// @Router       /api/users [get]
func (h *UserAdminHandler) List(c *gin.Context) {
	result, err := h.manageUseCase.ListManaged(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListAll 全量用户列表(管理员总览)
// @Summary      全量用户列表
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appuser.UserInfoResponse}
// @Failure      403 {object} response.Response "没有权限"
// @Router       /api/admin/users [get]
func (h *UserAdminHandler) ListAll(c *gin.Context) {
	result, err := h.manageUseCase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 用户详情
// @Summary      用户详情
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response{data=appuser.UserInfoResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/users/{id} [get]
func (h *UserAdminHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	result, err := h.manageUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create 创建会员账号
// @Summary      创建会员账号
// @Description  后台创建的账号固定Member角色
// @Tags         用户管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateMemberRequest true "会员信息"
// @Success      201 {object} response.Response{data=appuser.UserInfoResponse}
// @Failure      409 {object} response.Response "用户名/邮箱已存在"
// @Router       /api/users [post]
func (h *UserAdminHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.CreateMember(c.Request.Context(), appuser.CreateMemberRequest{
		Username:        req.Username,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 更新用户
// @Summary      更新用户
// @Description  管理员账号不可修改,角色只能是Member/Staff
// @Tags         用户管理
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Param        request body dto.UpdateUserRequest true "用户信息"
// @Success      200 {object} response.Response{data=appuser.UserInfoResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Failure      409 {object} response.Response "管理员账号不可修改"
// @Router       /api/users/{id} [put]
func (h *UserAdminHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), id, appuser.UpdateUserRequest{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除用户
// @Summary      删除用户
// @Description  管理员账号不可删除
// @Tags         用户管理
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "用户不存在"
// @Failure      409 {object} response.Response "管理员账号不可删除"
// @Router       /api/users/{id} [delete]
func (h *UserAdminHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.manageUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
