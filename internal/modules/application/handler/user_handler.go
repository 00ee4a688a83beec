package handler

import (
	"net/http"

	"interior-request-server/internal/common/httpx"
	"interior-request-server/internal/middleware"
	appservice "interior-request-server/internal/modules/application/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) NewForm(c *gin.Context) {
	options, err := h.appService.FormOptions()
	if err != nil {
		httpx.WriteServiceError(c, err, "获取表单选项失败")
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *Handler) Create(c *gin.Context) {
	uid, _ := middleware.GetCurrentUserID(c)

	image, ok := optionalFile(c, "image")
	if !ok {
		return
	}

	resp, err := h.appService.Submit(c.Request.Context(), uid, appservice.SubmitInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		CategoryID:  c.PostForm("category"),
		Image:       image,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "提交失败，请稍后重试")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) ListMine(c *gin.Context) {
	uid, _ := middleware.GetCurrentUserID(c)

	list, err := h.appService.ListMine(uid, c.Query("status"))
	if err != nil {
		httpx.WriteServiceError(c, err, "获取申请列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *Handler) GetMine(c *gin.Context) {
	uid, _ := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.appService.GetMine(uid, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取申请失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteMine(c *gin.Context) {
	uid, _ := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.appService.DeleteMine(c.Request.Context(), uid, id); err != nil {
		httpx.WriteServiceError(c, err, "删除失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "申请已删除"})
}
