package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Variable names
// follow the deployment contract of the service this one replaces
// (APP_PORT, APP_AUTH_SECRET_KEY, ...), so existing environments keep
// working. Malformed values panic: a broken deployment should fail loudly
// at startup, not limp along on defaults.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("APP_PORT"); ok {
		config.ListenAddr = ":" + v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("APP_AUTH_SECRET_KEY"); ok {
		config.AuthSecretKey = v
	}
	if v, ok := os.LookupEnv("APP_REFRESH_SECRET_KEY"); ok {
		config.RefreshSecretKey = v
	}
	if v, ok := os.LookupEnv("USER_SERVICE_URI"); ok {
		config.UserServiceURI = v
	}
	if v, ok := os.LookupEnv("CACHE_REDIS_ADDR"); ok {
		config.CacheRedisAddr = v
	}

	envDuration("AUTH_TOKEN_TTL", &config.AuthTokenTTL)
	envDuration("REFRESH_TOKEN_TTL", &config.RefreshTokenTTL)
	envDuration("CACHE_TTL", &config.CacheTTL)
	envDuration("USER_SERVICE_TIMEOUT", &config.UserServiceTimeout)

	envInt("CACHE_MAX_KEYS", &config.CacheMaxKeys)
	envInt("USER_NAME_MINIMAL_LENGTH", &config.UserNameMinLength)
	envInt("PASSWORD_LENGTH", &config.PasswordLength)
}

func envDuration(name string, target *time.Duration) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*target = d
}

func envInt(name string, target *int) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	*target = n
}
