package middleware

import (
	"os"
	"testing"

	"interior-request-server/internal/config"
	"interior-request-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	testutils.InitTestConfig()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	ResetAccountCache()
	return testutils.SetupDB(t)
}

func withRateLimit(t *testing.T, mutate func(*config.RateLimitConfig)) {
	t.Helper()
	prev := config.Get()
	cfg := prev
	mutate(&cfg.RateLimit)
	config.Set(cfg)
	t.Cleanup(func() { config.Set(prev) })
}
