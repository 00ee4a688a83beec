package handler

import (
	"net/http"

	"interior-request-server/internal/common/httpx"
	"interior-request-server/internal/middleware"
	"interior-request-server/internal/modules/application/dto"
	appservice "interior-request-server/internal/modules/application/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AdminList(c *gin.Context) {
	var q dto.AdminListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpx.WriteBadRequest(c, "查询参数错误")
		return
	}

	resp, err := h.appService.AdminList(q)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取申请列表失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AdminGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.appService.AdminGet(id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取申请失败")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	staffID, _ := middleware.GetCurrentUserID(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	design, ok := optionalFile(c, "design_image")
	if !ok {
		return
	}

	resp, err := h.appService.ChangeStatus(c.Request.Context(), staffID, id, appservice.StatusChangeInput{
		Status:      c.PostForm("status"),
		Comment:     c.PostForm("admin_comment"),
		DesignImage: design,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "状态变更失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, resp)
}
