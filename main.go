package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"interior-request-server/internal/config"
	"interior-request-server/internal/consts"
	"interior-request-server/internal/db"
	"interior-request-server/internal/di"
	"interior-request-server/internal/logger"
	"interior-request-server/internal/platform/cache"
	"interior-request-server/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	configDir := flag.String("config", "config", "配置文件目录")
	exportRoutes := flag.Bool("export", false, "导出路由到 routes.json 并退出")
	flag.Parse()

	config.InitConfig(*configDir)
	cfg := config.Get()
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	db.InitDB()

	if cfg.Upload.Backend == "" || cfg.Upload.Backend == "local" {
		if err := checkSecurePath(cfg.Upload.Path); err != nil {
			logrus.Fatalf("❌ %v", err)
		}
	}

	blobs, err := storage.NewFromConfig(context.Background(), cfg.Upload)
	if err != nil {
		logrus.Fatalf("❌ 初始化文件存储失败: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)
	r, err := buildEngine(db.DB, blobs)
	if err != nil {
		logrus.Fatalf("❌ 初始化应用失败: %v", err)
	}

	// 导出模式
	if *exportRoutes {
		if err := exportAPI(r, "routes.json"); err != nil {
			logrus.Fatalf("❌ 导出路由失败: %v", err)
		}
		return // 导出后直接退出程序，不启动 Web 服务
	}

	printWelcomeMessage()

	// 停机配置
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("🚀 服务启动成功，运行在 :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("❌ 服务启动失败: %s", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatal("❌ 服务强制关闭:", err)
	}
	if closer, ok := blobs.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	_ = cache.CloseRedisClient()
	logrus.Info("✅ 服务已退出")
}

// buildEngine 组装 gin 引擎：全局中间件、业务路由与 404 处理。
func buildEngine(gdb *gorm.DB, blobs storage.BlobStore) (*gin.Engine, error) {
	app, err := di.InitializeApplication(gdb, blobs)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	applyTrustedProxies(r, config.Get().Server.TrustedProxies)
	app.Router.Init(r)
	r.NoRoute(noRouteHandler(config.Get().Upload.URLPrefix))
	return r, nil
}

func applyTrustedProxies(r *gin.Engine, proxies []string) {
	if len(proxies) == 0 {
		_ = r.SetTrustedProxies(nil)
		return
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		logrus.Warnf("⚠️ 无效的可信代理配置 %v，已禁用代理信任: %v", proxies, err)
		_ = r.SetTrustedProxies(nil)
	}
}

func noRouteHandler(mediaPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mediaPrefix != "" && strings.HasPrefix(c.Request.URL.Path, mediaPrefix) {
			c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在", "code": "not_found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "API not found", "code": "not_found"})
	}
}

func printWelcomeMessage() {
	cfg := config.Get()
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  版本     : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️  数据库   : %s\n", cfg.Database.Type)
	fmt.Printf(" │   🖼️  文件存储 : %s\n", cfg.Upload.Backend)
	fmt.Printf(" │   🔥  服务端口 : %s\n", cfg.Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func exportAPI(r *gin.Engine, filename string) error {
	routes := r.Routes()

	// 简单的结构体，只留关键信息
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	exportList := make([]RouteInfo, 0, len(routes))
	for _, route := range routes {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, err := json.MarshalIndent(exportList, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, file, 0644); err != nil {
		return err
	}

	logrus.Infof("✅ 路由已成功导出到 %s", filename)
	return nil
}

// checkSecurePath 拒绝把本地上传目录设置为项目根目录或源码目录。
func checkSecurePath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("无法获取当前工作目录: %w", err)
	}

	if absPath == cwd {
		return fmt.Errorf("安全配置错误: 上传目录 '%s' 不能设置为项目根目录", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		// 项目目录之外的路径由部署方自行负责
		return nil
	}

	// 只有位于这些目录下的路径才被允许作为静态资源目录
	allowedDirs := []string{"uploads", "public", "static", "media", "tmp"}
	firstComponent := strings.Split(filepath.ToSlash(rel), "/")[0]
	for _, allowed := range allowedDirs {
		if strings.EqualFold(firstComponent, allowed) {
			return nil
		}
	}
	return fmt.Errorf("安全配置错误: 上传目录 '%s' 必须位于项目根目录下的安全子目录中 (如 %v)", path, allowedDirs)
}
