package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookbazar/internal/application/book"
	"github.com/xiebiao/bookbazar/internal/domain/book"
	"github.com/xiebiao/bookbazar/internal/interface/http/dto"
	"github.com/xiebiao/bookbazar/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishUseCase *appbook.PublishBookUseCase
	listUseCase    *appbook.ListBooksUseCase
	facetUseCase   *appbook.ListFacetUseCase
	getUseCase     *appbook.GetBookUseCase
	imageUseCase   *appbook.GetBookImageUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishUseCase *appbook.PublishBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	facetUseCase *appbook.ListFacetUseCase,
	getUseCase *appbook.GetBookUseCase,
	imageUseCase *appbook.GetBookImageUseCase,
) *BookHandler {
	return &BookHandler{
		publishUseCase: publishUseCase,
		listUseCase:    listUseCase,
		facetUseCase:   facetUseCase,
		getUseCase:     getUseCase,
		imageUseCase:   imageUseCase,
	}
}

// ListAllBooks 图书总表
// @Summary      图书总表
// @Description  不分页返回全部图书(含简介)
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]appbook.BookDetailResponse}
// @Router       /api/book [get]
func (h *BookHandler) ListAllBooks(c *gin.Context) {
	result, err := h.listUseCase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListTab 目录分页查询(按路由固定页签)
// @Summary      目录分页查询
// @Description  支持筛选、搜索、排序、分页的组合查询,页签由路由决定
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码(从1开始)"
// @Param        page_size query int false "每页数量(默认12,最大100)"
// @Param        search query string false "关键词(书名/作者/ISBN/简介)"
// @Param        sort query string false "排序" Enums(title,title_desc,price,price_desc,date,date_desc)
// @Success      200 {object} response.Response{data=appbook.ListBooksResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/book/paged [get]
func (h *BookHandler) ListTab(tab book.Tab) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.listBooks(c, tab)
	}
}

func (h *BookHandler) listBooks(c *gin.Context, tab book.Tab) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Tab:      string(tab),
		Page:     req.Page,
		PageSize: req.PageSize,

		SearchTerm:   req.Search,
		Genre:        req.Genre,
		Format:       req.Format,
		Availability: req.Availability,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Category:     req.Category,
		Publisher:    req.Publisher,
		Author:       req.Author,
		Language:     req.Language,

		SortBy: req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDetailResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/book/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBookImage 封面图
// @Summary      封面图
// @Description  按存储的内容类型回写封面图字节流
// @Tags         图书
// @Produce      image/jpeg
// @Param        id path int true "图书ID"
// @Success      200 {file} binary
// @Failure      404 {object} response.Response "图书或封面不存在"
// @Router       /api/book/{id}/image [get]
func (h *BookHandler) GetBookImage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	img, err := h.imageUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// ListFacet 筛选面取值
// 同一处理器服务六个筛选面路由,面名由路由注册时固定
func (h *BookHandler) ListFacet(facet book.Facet) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := h.facetUseCase.Execute(c.Request.Context(), facet)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, values)
	}
}

// CreateBook 图书上架(管理员)
// @Summary      图书上架
// @Description  multipart表单,封面图走image文件域,必填
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} response.Response{data=appbook.PublishBookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "没有权限"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/book [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	req, ok := h.bindSaveRequest(c)
	if !ok {
		return
	}

	result, err := h.publishUseCase.Create(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateBook 图书更新(管理员)
// @Summary      图书更新
// @Description  multipart表单,封面图可选,不传保留原图
// @Tags         图书
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.PublishBookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/book/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	req, ok := h.bindSaveRequest(c)
	if !ok {
		return
	}

	result, err := h.publishUseCase.Update(c.Request.Context(), id, *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBook 图书删除(管理员)
// @Summary      图书删除
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/book/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.publishUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// bindSaveRequest 绑定multipart表单并读取封面图文件域
func (h *BookHandler) bindSaveRequest(c *gin.Context) (*appbook.PublishBookRequest, bool) {
	var form dto.SaveBookRequest
	if err := c.ShouldBind(&form); err != nil {
		response.ErrorWithCode(c, 40000, "参数错误: "+err.Error())
		return nil, false
	}

	pubDate, err := time.Parse("2006-01-02", form.PublicationDate)
	if err != nil {
		response.ErrorWithCode(c, 40000, "出版日期格式错误,应为YYYY-MM-DD")
		return nil, false
	}

	req := appbook.PublishBookRequest{
		Title:           form.Title,
		ISBN:            form.ISBN,
		Description:     form.Description,
		Language:        form.Language,
		Format:          form.Format,
		Price:           form.Price,
		Stock:           form.Stock,
		PublicationDate: pubDate,
		Author:          form.Author,
		Categories:      form.Categories,
		Genre:           form.Genre,
		Publisher:       form.Publisher,

		IsAvailableInLibrary: form.IsAvailableInLibrary,
		IsAwardWinner:        form.IsAwardWinner,
		IsBestseller:         form.IsBestseller,
		IsOnSale:             form.IsOnSale,
		DiscountedPrice:      form.DiscountedPrice,
	}

	if form.DiscountStart != "" {
		t, err := time.Parse(time.RFC3339, form.DiscountStart)
		if err != nil {
			response.ErrorWithCode(c, 40000, "促销开始时间格式错误,应为RFC3339")
			return nil, false
		}
		req.DiscountStart = &t
	}
	if form.DiscountEnd != "" {
		t, err := time.Parse(time.RFC3339, form.DiscountEnd)
		if err != nil {
			response.ErrorWithCode(c, 40000, "促销结束时间格式错误,应为RFC3339")
			return nil, false
		}
		req.DiscountEnd = &t
	}

	// 封面图文件域(创建时必填由领域服务校验)
	file, err := c.FormFile("image")
	if err == nil {
		f, err := file.Open()
		if err != nil {
			response.ErrorWithCode(c, 40000, "读取封面图失败")
			return nil, false
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, book.MaxImageSize+1))
		if err != nil {
			response.ErrorWithCode(c, 40000, "读取封面图失败")
			return nil, false
		}
		req.ImageData = data
		req.ImageContentType = file.Header.Get("Content-Type")
	}

	return &req, true
}

// parseIDParam 解析路径中的数值ID
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40000, "ID格式错误")
		return 0, false
	}
	return uint(id), true
}
