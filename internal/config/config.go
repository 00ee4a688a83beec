package config

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// 用于管理应用配置

const defaultJWTSecret = "interior_request_secret"

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = "config"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	TrustedProxies []string `mapstructure:"trusted_proxies"` // 为空时不信任任何代理头
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"` // database name
	SSL      bool   `mapstructure:"ssl"`  // enable TLS/SSL
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

type UploadConfig struct {
	Backend            string `mapstructure:"backend"` // local, gcs
	Path               string `mapstructure:"path"`
	URLPrefix          string `mapstructure:"url_prefix"`
	CacheControl       string `mapstructure:"cache_control"`
	MaxRequestMB       int    `mapstructure:"max_request_mb"`
	GCSBucket          string `mapstructure:"gcs_bucket"`
	GCSPrefix          string `mapstructure:"gcs_prefix"`
	GCSCredentialsFile string `mapstructure:"gcs_credentials_file"`
	GCSPublicURL       string `mapstructure:"gcs_public_url"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type RateLimitConfig struct {
	Enabled               bool    `mapstructure:"enabled"`
	AuthRPS               float64 `mapstructure:"auth_rps"`
	AuthBurst             int     `mapstructure:"auth_burst"`
	SubmitIntervalSeconds int     `mapstructure:"submit_interval_seconds"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text, json
}

type CatalogConfig struct {
	DefaultCategories []string `mapstructure:"default_categories"`
}

// Get 获取当前配置的快照（无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

// Set 直接替换当前配置，主要用于测试与命令行工具。
func Set(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig.Store(&cfg)
}

func InitConfig(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	enforceJWTSecretSafety()
	logrus.Info("✅ 配置加载成功")
}

func initViper(customConfigDir string) *viper.Viper {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = "config"
	}
	configDir = customConfigDir

	// .env 只作为环境变量的补充来源，不存在时忽略
	_ = godotenv.Load(filepath.Join(configDir, ".env"), ".env")

	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.trusted_proxies", []string{})
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/interior.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "root")
	v.SetDefault("database.name", "interior")
	v.SetDefault("database.ssl", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("upload.backend", "local")
	v.SetDefault("upload.path", "uploads/media")
	v.SetDefault("upload.url_prefix", "/media/")
	v.SetDefault("upload.cache_control", "public, max-age=86400")
	v.SetDefault("upload.max_request_mb", 10)
	v.SetDefault("upload.gcs_bucket", "")
	v.SetDefault("upload.gcs_prefix", "applications")
	v.SetDefault("upload.gcs_credentials_file", "")
	v.SetDefault("upload.gcs_public_url", "https://storage.googleapis.com")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "interior")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.auth_rps", 0.5)
	v.SetDefault("rate_limit.auth_burst", 5)
	v.SetDefault("rate_limit.submit_interval_seconds", 5)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("catalog.default_categories", []string{})

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			logrus.Warn("⚠️  未找到配置文件，将仅使用环境变量或默认值")
		} else {
			logrus.Fatalf("❌ 读取配置文件失败: %v", err)
		}
	}

	// 规则：所有环境变量必须以 INTERIOR_ 开头
	// 例如：yaml 中的 server.port 对应环境变量 INTERIOR_SERVER_PORT
	v.SetEnvPrefix("INTERIOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// loadAndStore 解析并原子更新配置
func loadAndStore(v *viper.Viper) {
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		logrus.Errorf("❌ 配置解析失败: %v", err)
		return
	}

	// 逗号分隔的环境变量也能覆盖列表项
	tempConfig.Server.TrustedProxies = splitList(v.GetStringSlice("server.trusted_proxies"))
	tempConfig.CORS.AllowedOrigins = splitList(v.GetStringSlice("cors.allowed_origins"))
	tempConfig.Catalog.DefaultCategories = splitList(v.GetStringSlice("catalog.default_categories"))

	if tempConfig.Server.Mode != "release" && tempConfig.JWT.Secret == "" {
		logrus.Warn("⚠️ [开发模式警告] 未设置 JWT Secret，将使用默认不安全密钥进行开发")
		tempConfig.JWT.Secret = defaultJWTSecret
	}

	appConfig.Store(&tempConfig)
}

func splitList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func enforceJWTSecretSafety() {
	curr := Get()
	if curr.Server.Mode == "release" {
		if curr.JWT.Secret == "" || curr.JWT.Secret == defaultJWTSecret {
			logrus.Fatal("❌ [安全严重错误] 生产模式(release)下必须设置安全的 JWT Secret！\n请设置环境变量 INTERIOR_JWT_SECRET 或在配置文件中指定 jwt.secret")
		}
	}
}
