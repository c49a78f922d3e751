package handler

import (
	"github.com/gin-gonic/gin"

	appbookmark "github.com/xiebiao/bookbazar/internal/application/bookmark"
	"github.com/xiebiao/bookbazar/internal/interface/http/middleware"
	"github.com/xiebiao/bookbazar/pkg/response"
)

// BookmarkHandler 书签HTTP处理器
type BookmarkHandler struct {
	toggleUseCase *appbookmark.ToggleBookmarkUseCase
	listUseCase   *appbookmark.ListBookmarksUseCase
}

// NewBookmarkHandler 创建书签处理器
func NewBookmarkHandler(
	toggleUseCase *appbookmark.ToggleBookmarkUseCase,
	listUseCase *appbookmark.ListBookmarksUseCase,
) *BookmarkHandler {
	return &BookmarkHandler{
		toggleUseCase: toggleUseCase,
		listUseCase:   listUseCase,
	}
}

// Toggle 书签切换
// @Summary      书签切换
// @Description  已收藏则取消,未收藏则添加
// @Tags         书签
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbookmark.ToggleResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/bookmark/{id} [post]
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	bookID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.toggleUseCase.Execute(c.Request.Context(), middleware.UserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// List 书签列表
// @Summary      书签列表
// @Description  按收藏时间倒序,携带图书信息
// @Tags         书签
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]appbookmark.BookmarkItem}
// @Router       /api/bookmark [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListIDs 收藏的图书ID集合
// @Summary      收藏的图书ID集合
// @Description  目录页用于标记每本书的收藏态
// @Tags         书签
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]uint}
// @Router       /api/bookmark/ids [get]
func (h *BookmarkHandler) ListIDs(c *gin.Context) {
	result, err := h.listUseCase.ListIDs(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
