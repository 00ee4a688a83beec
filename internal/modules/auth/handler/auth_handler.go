package handler

import (
	"net/http"

	"interior-request-server/internal/common/httpx"
	"interior-request-server/internal/middleware"
	moduledto "interior-request-server/internal/modules/auth/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.authService.RegistrationRules())
}

func (h *Handler) Register(c *gin.Context) {
	var req moduledto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		httpx.WriteBadRequest(c, "参数格式错误")
		return
	}

	user, err := h.authService.RegisterUser(req)
	if err != nil {
		httpx.WriteServiceError(c, err, "注册失败，请稍后重试")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"user":    moduledto.NewUserProfile(user),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req moduledto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httpx.WriteBadRequest(c, "参数错误")
		return
	}

	token, user, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, moduledto.LoginResponse{
		Token:   token,
		Message: "登录成功",
		User:    moduledto.NewUserProfile(user),
	})
}

func (h *Handler) Profile(c *gin.Context) {
	uid, ok := middleware.GetCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息", "code": "unauthorized"})
		return
	}

	user, err := h.authService.GetProfile(uid)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户信息失败")
		return
	}
	c.JSON(http.StatusOK, moduledto.NewUserProfile(user))
}
