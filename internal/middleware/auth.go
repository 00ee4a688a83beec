package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"interior-request-server/internal/common/httpx"
	"interior-request-server/internal/db"
	"interior-request-server/internal/model"
	"interior-request-server/internal/platform/cache"
	platformservice "interior-request-server/internal/platform/service"
	"interior-request-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// staffCache 缓存用户的员工标记，减少数据库查询
	// Key: userID (uint), Value: cachedAccount
	staffCache sync.Map
)

const staffCacheTTL = 1 * time.Minute

type cachedAccount struct {
	Staff     bool
	ExpiresAt time.Time
}

func staffCacheKey(userID uint) string {
	return cache.RedisKey("auth", "staff", strconv.FormatUint(uint64(userID), 10))
}

// ClearAccountCache 清除指定用户的账号缓存，在权限变更后调用。
func ClearAccountCache(userID uint) {
	staffCache.Delete(userID)

	if redisClient := cache.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = redisClient.Del(ctx, staffCacheKey(userID)).Err()
	}
}

// ResetAccountCache 清空本进程内的账号缓存。
func ResetAccountCache() {
	staffCache.Range(func(key, _ any) bool {
		staffCache.Delete(key)
		return true
	})
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要认证才能访问", "code": "unauthorized"})
			c.Abort()
			return
		}

		// 检查格式是否为 "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 格式错误", "code": "unauthorized"})
			c.Abort()
			return
		}

		claims, err := utils.ParseLoginToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 无效或已过期", "code": "unauthorized"})
			c.Abort()
			return
		}

		c.Set("id", claims.ID)
		c.Set("username", claims.Username)
		c.Set("staff", claims.Staff)
		c.Next()
	}
}

// AccountCheck 确认令牌对应的账号仍然存在，并用数据库中的员工标记覆盖令牌中的值。
func AccountCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := GetCurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息", "code": "unauthorized"})
			c.Abort()
			return
		}

		staff, found := lookupCachedStaff(uid)
		if !found {
			var user model.User
			if err := db.DB.Select("id", "staff").First(&user, uid).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusUnauthorized, gin.H{"error": "用户不存在", "code": "unauthorized"})
				} else {
					logrus.Errorf("❌ 查询账号失败 uid=%d: %v", uid, err)
					httpx.WriteServiceError(c, platformservice.NewInternalError("服务器内部错误"), "服务器内部错误")
				}
				c.Abort()
				return
			}
			staff = user.Staff
			storeCachedStaff(uid, staff)
		}

		c.Set("staff", staff)
		c.Next()
	}
}

func lookupCachedStaff(uid uint) (bool, bool) {
	// 优先从 Redis 读取
	if redisClient := cache.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if raw, err := redisClient.Get(ctx, staffCacheKey(uid)).Result(); err == nil {
			if staff, parseErr := strconv.ParseBool(raw); parseErr == nil {
				staffCache.Store(uid, cachedAccount{Staff: staff, ExpiresAt: time.Now().Add(staffCacheTTL)})
				return staff, true
			}
		}
	}

	// Redis 未命中或不可用时，回退本地内存缓存
	if val, ok := staffCache.Load(uid); ok {
		if cached, typeOk := val.(cachedAccount); typeOk {
			if time.Now().Before(cached.ExpiresAt) {
				return cached.Staff, true
			}
			staffCache.Delete(uid)
		}
	}
	return false, false
}

func storeCachedStaff(uid uint, staff bool) {
	staffCache.Store(uid, cachedAccount{Staff: staff, ExpiresAt: time.Now().Add(staffCacheTTL)})

	if redisClient := cache.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = redisClient.Set(ctx, staffCacheKey(uid), strconv.FormatBool(staff), staffCacheTTL).Err()
	}
}

func StaffCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exist := c.Get("staff")
		isStaff, ok := value.(bool)
		if !exist || !ok || !isStaff {
			httpx.WriteServiceError(c, platformservice.NewForbiddenError("需要员工权限才能访问"), "需要员工权限才能访问")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetCurrentUserID 读取 JWTAuth 写入上下文的用户 ID。
func GetCurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("id")
	if !exists {
		return 0, false
	}
	uid, ok := value.(uint)
	return uid, ok
}
