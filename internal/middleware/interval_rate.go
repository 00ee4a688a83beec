package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"interior-request-server/internal/config"
	"interior-request-server/internal/platform/cache"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type intervalLimiter struct {
	mu   sync.Mutex
	last map[string]time.Time
}

func (l *intervalLimiter) allow(key string, interval time.Duration, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.last[key]; ok && now.Sub(prev) < interval {
		return false
	}
	l.last[key] = now

	// 顺带清理过期记录
	if len(l.last) > 1024 {
		for k, t := range l.last {
			if now.Sub(t) >= interval {
				delete(l.last, k)
			}
		}
	}
	return true
}

// release 撤销 allow 在 at 时刻占用的名额；期间已被其他请求重新占用时不做处理。
func (l *intervalLimiter) release(key string, at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.last[key]; ok && prev.Equal(at) {
		delete(l.last, key)
	}
}

// IntervalRateMiddleware 限制同一用户（未登录时按 IP）两次成功请求的最小间隔，用于提交申请等写操作。
// 名额在进入处理函数前占用；处理结果为 4xx/5xx 时归还名额。
func IntervalRateMiddleware(interval time.Duration) gin.HandlerFunc {
	local := &intervalLimiter{last: make(map[string]time.Time)}

	return func(c *gin.Context) {
		if interval <= 0 || !config.Get().RateLimit.Enabled {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if uid, ok := GetCurrentUserID(c); ok {
			key = "user:" + strconv.FormatUint(uint64(uid), 10)
		}

		if redisClient := cache.GetRedisClient(); redisClient != nil {
			redisKey := cache.RedisKey("interval", c.FullPath(), key)
			allowed, err := allowByRedisInterval(redisClient, redisKey, interval)
			if err == nil {
				if !allowed {
					rejectTooManyRequests(c)
					return
				}
				c.Next()
				if failedRequest(c) {
					releaseRedisInterval(redisClient, redisKey)
				}
				return
			}
			logrus.Warnf("⚠️ Redis 间隔限流失败，回退内存限流: %v", err)
		}

		localKey := c.FullPath() + "|" + key
		now := time.Now()
		if !local.allow(localKey, interval, now) {
			rejectTooManyRequests(c)
			return
		}
		c.Next()
		if failedRequest(c) {
			local.release(localKey, now)
		}
	}
}

func failedRequest(c *gin.Context) bool {
	return c.Writer.Status() >= http.StatusBadRequest
}

func allowByRedisInterval(client *redis.Client, redisKey string, interval time.Duration) (bool, error) {
	if client == nil || interval <= 0 {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	return client.SetNX(ctx, redisKey, 1, interval).Result()
}

func releaseRedisInterval(client *redis.Client, redisKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := client.Del(ctx, redisKey).Err(); err != nil {
		logrus.Warnf("⚠️ 归还 Redis 间隔名额失败: %v", err)
	}
}
