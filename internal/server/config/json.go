package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkovalev2/authgate/internal/flagx"
)

// JsonConfig is the DTO for reading a JSON configuration file. Durations are
// strings in time.ParseDuration format (e.g. "10m", "168h"). After
// unmarshalling, present fields are copied into the runtime Config.
type JsonConfig struct {
	ListenAddr         string `json:"listen_addr"`
	DatabaseDSN        string `json:"database_dsn"`
	AuthSecretKey      string `json:"auth_secret_key"`
	RefreshSecretKey   string `json:"refresh_secret_key"`
	AuthTokenTTL       string `json:"auth_token_ttl"`
	RefreshTokenTTL    string `json:"refresh_token_ttl"`
	CacheTTL           string `json:"cache_ttl"`
	CacheMaxKeys       *int   `json:"cache_max_keys"`
	CacheRedisAddr     string `json:"cache_redis_addr"`
	UserNameMinLength  *int   `json:"user_name_minimal_length"`
	PasswordLength     *int   `json:"password_length"`
	UserServiceURI     string `json:"user_service_uri"`
	UserServiceTimeout string `json:"user_service_timeout"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flags. When neither flag is set, nothing is loaded. An unreadable
// or invalid file panics, matching the env overlay's fail-loud behavior.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.AuthSecretKey != "" {
		config.AuthSecretKey = c.AuthSecretKey
	}
	if c.RefreshSecretKey != "" {
		config.RefreshSecretKey = c.RefreshSecretKey
	}
	if c.CacheRedisAddr != "" {
		config.CacheRedisAddr = c.CacheRedisAddr
	}
	if c.UserServiceURI != "" {
		config.UserServiceURI = c.UserServiceURI
	}
	if c.CacheMaxKeys != nil {
		config.CacheMaxKeys = *c.CacheMaxKeys
	}
	if c.UserNameMinLength != nil {
		config.UserNameMinLength = *c.UserNameMinLength
	}
	if c.PasswordLength != nil {
		config.PasswordLength = *c.PasswordLength
	}

	jsonDuration(c.AuthTokenTTL, &config.AuthTokenTTL)
	jsonDuration(c.RefreshTokenTTL, &config.RefreshTokenTTL)
	jsonDuration(c.CacheTTL, &config.CacheTTL)
	jsonDuration(c.UserServiceTimeout, &config.UserServiceTimeout)
}

func jsonDuration(value string, target *time.Duration) {
	if value == "" {
		return
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	*target = d
}
