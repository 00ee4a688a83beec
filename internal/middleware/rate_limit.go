package middleware

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"interior-request-server/internal/config"
	"interior-request-server/internal/platform/cache"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.ips.Store(ip, &client{limiter: limiter, lastSeen: time.Now()})

	return limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.ips.Range(func(key, value interface{}) bool {
			if time.Since(value.(*client).lastSeen) > 3*time.Minute {
				i.ips.Delete(key)
			}
			return true
		})
	}
}

// RateLimitMiddleware 按 IP 限流。启用 Redis 时使用固定窗口计数，多实例共享；否则使用进程内令牌桶。
func RateLimitMiddleware(scope string) gin.HandlerFunc {
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		cfg := config.Get().RateLimit
		if !cfg.Enabled || cfg.AuthRPS <= 0 || cfg.AuthBurst <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if redisClient := cache.GetRedisClient(); redisClient != nil {
			allowed, err := allowByRedisRateLimit(redisClient, scope, ip, cfg.AuthRPS, cfg.AuthBurst)
			if err == nil {
				if !allowed {
					rejectTooManyRequests(c)
					return
				}
				c.Next()
				return
			}
			logrus.Warnf("⚠️ Redis 限流失败，回退内存限流: %v", err)
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(cfg.AuthRPS), cfg.AuthBurst)
		})

		l := limiter.getLimiter(ip)
		if l.Limit() != rate.Limit(cfg.AuthRPS) {
			l.SetLimit(rate.Limit(cfg.AuthRPS))
		}
		if l.Burst() != cfg.AuthBurst {
			l.SetBurst(cfg.AuthBurst)
		}

		if !l.Allow() {
			rejectTooManyRequests(c)
			return
		}
		c.Next()
	}
}

// allowByRedisRateLimit 固定窗口：窗口长度为 burst/rps 秒，窗口内最多 burst 次。
func allowByRedisRateLimit(client *redis.Client, scope, ip string, rps float64, burst int) (bool, error) {
	if client == nil || rps <= 0 || burst <= 0 {
		return true, nil
	}

	window := time.Duration(math.Ceil(float64(burst)/rps)) * time.Second
	if window < time.Second {
		window = time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key := cache.RedisKey("rl", scope, ip)
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(burst), nil
}

func rejectTooManyRequests(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试", "code": "rate_limited"})
	c.Abort()
}
