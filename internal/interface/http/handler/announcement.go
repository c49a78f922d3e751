package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appannouncement "github.com/xiebiao/bookbazar/internal/application/announcement"
	"github.com/xiebiao/bookbazar/internal/interface/http/dto"
	"github.com/xiebiao/bookbazar/internal/interface/http/middleware"
	"github.com/xiebiao/bookbazar/pkg/response"
)

// AnnouncementHandler 公告HTTP处理器
type AnnouncementHandler struct {
	manageUseCase *appannouncement.ManageAnnouncementsUseCase
}

// NewAnnouncementHandler 创建公告处理器
func NewAnnouncementHandler(manageUseCase *appannouncement.ManageAnnouncementsUseCase) *AnnouncementHandler {
	return &AnnouncementHandler{manageUseCase: manageUseCase}
}

// ListActive 当前可见公告(会员端)
// @Summary      当前可见公告
// @Description  激活且处于展示窗口内的公告,按创建时间倒序
// @Tags         公告
// @Produce      json
// @Success      200 {object} response.Response{data=[]appannouncement.AnnouncementView}
// @Router       /api/announcement/active [get]
func (h *AnnouncementHandler) ListActive(c *gin.Context) {
	result, err := h.manageUseCase.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListAll 全部公告(管理后台)
// @Summary      全部公告
// @Tags         公告
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appannouncement.AnnouncementView}
// @Failure      403 {object} response.Response "没有权限"
// @Router       /api/announcement/all [get]
func (h *AnnouncementHandler) ListAll(c *gin.Context) {
	result, err := h.manageUseCase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get 公告详情(管理后台)
// @Summary      公告详情
// @Tags         公告
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公告ID"
// @Success      200 {object} response.Response{data=appannouncement.AnnouncementView}
// @Failure      404 {object} response.Response "公告不存在"
// @Router       /api/announcement/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
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

// Create 新增公告(管理员)
// @Summary      新增公告
// @Description  新建公告一律启用,创建后向订阅端实时推送
// @Tags         公告
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SaveAnnouncementRequest true "公告内容"
// @Success      201 {object} response.Response{data=appannouncement.AnnouncementView}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/announcement [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	req, ok := bindAnnouncementRequest(c)
	if !ok {
		return
	}

	result, err := h.manageUseCase.Create(c.Request.Context(), middleware.Username(c), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 更新公告(管理员)
// @Summary      更新公告
// @Tags         公告
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公告ID"
// @Param        request body dto.SaveAnnouncementRequest true "公告内容"
// @Success      200 {object} response.Response{data=appannouncement.AnnouncementView}
// @Failure      404 {object} response.Response "公告不存在"
// @Router       /api/announcement/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	req, ok := bindAnnouncementRequest(c)
	if !ok {
		return
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), id, *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除公告(管理员)
// @Summary      删除公告
// @Tags         公告
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "公告ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "公告不存在"
// @Router       /api/announcement/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
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

// bindAnnouncementRequest 绑定公告请求并解析时间窗口
func bindAnnouncementRequest(c *gin.Context) (*appannouncement.SaveAnnouncementRequest, bool) {
	var form dto.SaveAnnouncementRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return nil, false
	}

	req := appannouncement.SaveAnnouncementRequest{
		Title:    form.Title,
		Content:  form.Content,
		IsActive: form.IsActive,
	}
	if form.StartAt != "" {
		t, err := time.Parse(time.RFC3339, form.StartAt)
		if err != nil {
			response.ErrorWithCode(c, 40000, "开始时间格式错误,应为RFC3339")
			return nil, false
		}
		req.StartAt = &t
	}
	if form.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, form.ExpiresAt)
		if err != nil {
			response.ErrorWithCode(c, 40000, "结束时间格式错误,应为RFC3339")
			return nil, false
		}
		req.ExpiresAt = &t
	}
	return &req, true
}
