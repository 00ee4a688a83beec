// Package cache 管理可选的 Redis 连接，用于限流计数与账号缓存。
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"interior-request-server/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const defaultPrefix = "interior"

var (
	redisOnce   sync.Once
	redisClient *redis.Client
)

// GetRedisClient 获取 Redis 客户端；未启用或连接失败时返回 nil，调用方应降级为内存实现。
func GetRedisClient() *redis.Client {
	redisOnce.Do(func() {
		redisClient = connect(config.Get().Redis)
	})
	return redisClient
}

// RedisKey 基于配置前缀拼接 Redis 键名。
func RedisKey(parts ...string) string {
	prefix := config.Get().Redis.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return strings.Join(append([]string{prefix}, parts...), ":")
}

func connect(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logrus.Warnf("⚠️ Redis 不可用，降级为内存模式: %v", err)
		return nil
	}

	logrus.Infof("✅ Redis 已连接: %s (db=%d)", cfg.Addr, cfg.DB)
	return client
}

// CloseRedisClient 关闭 Redis 客户端连接。
func CloseRedisClient() error {
	if redisClient == nil {
		return nil
	}
	if err := redisClient.Close(); err != nil {
		return fmt.Errorf("close redis failed: %w", err)
	}
	return nil
}
