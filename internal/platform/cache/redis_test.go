package cache

import (
	"testing"

	"interior-request-server/internal/config"

	"github.com/redis/go-redis/v9"
)

// 测试内容：验证 Redis key 使用配置前缀拼接，未配置时使用默认前缀。
func TestRedisKey(t *testing.T) {
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })

	cfg := prev
	cfg.Redis.Prefix = ""
	config.Set(cfg)
	if got := RedisKey("rl", "auth", "1.2.3.4"); got != "interior:rl:auth:1.2.3.4" {
		t.Fatalf("非预期 key: %q", got)
	}
	if got := RedisKey(); got != "interior" {
		t.Fatalf("非预期 key: %q", got)
	}

	cfg.Redis.Prefix = "staging"
	config.Set(cfg)
	if got := RedisKey("a"); got != "staging:a" {
		t.Fatalf("非预期 key: %q", got)
	}
}

// 测试内容：验证禁用 Redis 时不建立连接。
func TestConnect_DisabledReturnsNil(t *testing.T) {
	if c := connect(config.RedisConfig{Enabled: false, Addr: "127.0.0.1:1"}); c != nil {
		t.Fatalf("期望禁用时返回 nil")
	}
}

// 测试内容：验证连接不可用的地址时降级为 nil。
func TestConnect_UnreachableReturnsNil(t *testing.T) {
	if c := connect(config.RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}); c != nil {
		t.Fatalf("期望无法连接时返回 nil")
	}
}

// 测试内容：验证关闭 Redis 客户端在 nil 与非 nil 场景均可执行。
func TestCloseRedisClient(t *testing.T) {
	redisClient = nil
	if err := CloseRedisClient(); err != nil {
		t.Fatalf("期望为 nil，实际为 %v", err)
	}

	redisClient = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	if err := CloseRedisClient(); err != nil {
		t.Fatalf("CloseRedisClient: %v", err)
	}
	redisClient = nil
}
