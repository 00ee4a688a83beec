package testutils

import (
	"os"

	"interior-request-server/internal/config"
)

// SavedEnv captures the previous state of an environment variable.
type SavedEnv struct {
	Key   string
	Had   bool
	Value string
}

// SetEnv sets an environment variable and returns its previous state.
func SetEnv(key, value string) SavedEnv {
	prev, had := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	return SavedEnv{Key: key, Had: had, Value: prev}
}

// RestoreEnv restores environment variables to a previously saved state.
func RestoreEnv(envs []SavedEnv) {
	for _, env := range envs {
		if env.Had {
			_ = os.Setenv(env.Key, env.Value)
		} else {
			_ = os.Unsetenv(env.Key)
		}
	}
}

// InitTestConfig 用于各包的 TestMain：关闭 Redis 与限流，固定 JWT 密钥。
func InitTestConfig() {
	saved := []SavedEnv{
		SetEnv("INTERIOR_SERVER_MODE", "debug"),
		SetEnv("INTERIOR_JWT_SECRET", "interior-test-secret"),
		SetEnv("INTERIOR_REDIS_ENABLED", "false"),
		SetEnv("INTERIOR_RATE_LIMIT_ENABLED", "false"),
		SetEnv("INTERIOR_RATE_LIMIT_SUBMIT_INTERVAL_SECONDS", "0"),
	}
	defer RestoreEnv(saved)

	dir, err := os.MkdirTemp("", "interior-config-")
	if err != nil {
		panic(err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	config.InitConfig(dir)
}
