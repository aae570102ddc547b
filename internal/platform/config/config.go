package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Events    EventsConfig    `mapstructure:"events"`
	Uploads   UploadsConfig   `mapstructure:"uploads"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	PublicURL       string        `mapstructure:"public_url"`
}

type DatabaseConfig struct {
	URL            string `mapstructure:"url"`
	AuthToken      string `mapstructure:"auth_token"`
	MaxConnections int    `mapstructure:"max_connections"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
}

type JWTConfig struct {
	Secret       string        `mapstructure:"secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

type CacheConfig struct {
	Driver     string        `mapstructure:"driver"` // memory, redis
	ProfileTTL time.Duration `mapstructure:"profile_ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	Driver         string `mapstructure:"driver"` // memory, redis
	TrackPerMinute int    `mapstructure:"track_per_minute"`
	AuthPerMinute  int    `mapstructure:"auth_per_minute"`
	// TrustProxy keys limits on X-Forwarded-For; only enable behind a proxy
	// that overwrites the header.
	TrustProxy bool `mapstructure:"trust_proxy"`
}

type EventsConfig struct {
	Driver        string `mapstructure:"driver"` // none, nats
	NATSURL       string `mapstructure:"nats_url"`
	Stream        string `mapstructure:"stream"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
	Consumer      string `mapstructure:"consumer"`
}

type UploadsConfig struct {
	Dir            string `mapstructure:"dir"`
	MaxAvatarBytes int64  `mapstructure:"max_avatar_bytes"`
	AvatarSize     int    `mapstructure:"avatar_size"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type WorkerConfig struct {
	ColorCleanupInterval time.Duration `mapstructure:"color_cleanup_interval"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

var defaults = map[string]interface{}{
	"server.host":             "0.0.0.0",
	"server.port":             8080,
	"server.read_timeout":     15 * time.Second,
	"server.write_timeout":    15 * time.Second,
	"server.idle_timeout":     60 * time.Second,
	"server.shutdown_timeout": 10 * time.Second,
	"server.public_url":       "http://localhost:8080",

	"database.url":             "file:linkhub.db",
	"database.auth_token":      "",
	"database.max_connections": 10,
	"database.auto_migrate":    true,

	"jwt.secret":        "",
	"jwt.token_ttl":     7 * 24 * time.Hour,
	"jwt.cookie_name":   "auth-token",
	"jwt.cookie_secure": false,

	"cache.driver":      "memory",
	"cache.profile_ttl": time.Minute,

	"redis.addr":     "localhost:6379",
	"redis.password": "",
	"redis.db":       0,

	"rate_limit.driver":           "memory",
	"rate_limit.track_per_minute": 120,
	"rate_limit.auth_per_minute":  20,
	"rate_limit.trust_proxy":      false,

	"events.driver":         "none",
	"events.nats_url":       "nats://localhost:4222",
	"events.stream":         "LINKHUB_EVENTS",
	"events.subject_prefix": "linkhub.events",
	"events.consumer":       "linkhub-worker",

	"uploads.dir":              "uploads",
	"uploads.max_avatar_bytes": 5 << 20,
	"uploads.avatar_size":      400,

	"metrics.enabled": true,

	"logging.level":     "info",
	"logging.format":    "json",
	"logging.output":    "stdout",
	"logging.file_path": "logs/linkhub.log",

	"worker.color_cleanup_interval": 24 * time.Hour,
}

// Load reads the optional YAML file at path, then .env, then the process
// environment. DATABASE_URL overrides database.url and so on.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required (set JWT_SECRET)")
	}
	if c.Database.MaxConnections < 1 {
		c.Database.MaxConnections = 10
	}
	if c.Worker.ColorCleanupInterval <= 0 {
		c.Worker.ColorCleanupInterval = 24 * time.Hour
	}
	return nil
}
