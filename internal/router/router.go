package router

import (
	"time"

	"interior-request-server/internal/config"
	"interior-request-server/internal/logger"
	"interior-request-server/internal/metrics"
	"interior-request-server/internal/middleware"
	"interior-request-server/internal/modules"
	"interior-request-server/internal/storage"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules *modules.AppModules
	blobs   storage.BlobStore
}

func NewRouter(appModules *modules.AppModules, blobs storage.BlobStore) *Router {
	return &Router{
		modules: appModules,
		blobs:   blobs,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	cfg := config.Get()

	r.Use(logger.RequestLogger())
	r.Use(metrics.Middleware())
	// 注册全局安全标头中间件
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	registerMediaRoutes(r, rt.blobs, cfg.Upload)

	api := r.Group("/api")

	// 认证限流：登录与注册共用同一个实例
	authLimiter := middleware.RateLimitMiddleware("auth")
	jsonBodyLimit := middleware.BodyLimitMiddleware(0)
	uploadBodyLimit := middleware.UploadBodyLimitMiddleware(cfg.Upload.MaxRequestMB)
	// 提交申请间隔：读取配置（秒）
	submitLimiter := middleware.IntervalRateMiddleware(time.Duration(cfg.RateLimit.SubmitIntervalSeconds) * time.Second)

	registerPublicRoutes(api, rt.modules.Category.Handler)
	registerAuthRoutes(api, authLimiter, jsonBodyLimit, rt.modules.Auth.Handler)
	registerUserRoutes(api, uploadBodyLimit, submitLimiter, rt.modules.Auth.Handler, rt.modules.Application.Handler)
	registerAdminRoutes(api, uploadBodyLimit, jsonBodyLimit, rt.modules.Application.Handler, rt.modules.Category.Handler)
}
