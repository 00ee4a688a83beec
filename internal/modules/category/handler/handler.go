package handler

import (
	"net/http"
	"strconv"

	"interior-request-server/internal/common/httpx"
	"interior-request-server/internal/modules/category/dto"
	categoryservice "interior-request-server/internal/modules/category/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	categoryService *categoryservice.Service
}

func New(categoryService *categoryservice.Service) *Handler {
	return &Handler{categoryService: categoryService}
}

// List 公开的分类列表
func (h *Handler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		httpx.WriteServiceError(c, err, "获取分类失败")
		return
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *Handler) AdminList(c *gin.Context) {
	rows, err := h.categoryService.ListWithCounts(c.Query("q"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取分类失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": rows})
}

func (h *Handler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		httpx.WriteBadRequest(c, "参数格式错误")
		return
	}

	category, err := h.categoryService.Create(req.Name)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建分类失败")
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryResponse{ID: category.ID, Name: category.Name})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httpx.WriteBadRequest(c, "无效的分类ID")
		return
	}

	resp, err := h.categoryService.Delete(c.Request.Context(), uint(id))
	if err != nil {
		httpx.WriteServiceError(c, err, "删除分类失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}
