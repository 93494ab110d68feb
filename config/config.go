package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Engagement EngagementConfig `mapstructure:"engagement"`
	Log        LogConfig        `mapstructure:"log"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // sqlite, postgres
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TelegramConfig 频道与机器人相关配置
type TelegramConfig struct {
	Token           string        `mapstructure:"token"`
	ChannelID       int64         `mapstructure:"channel_id"`
	ChannelUsername string        `mapstructure:"channel_username"`
	BotUsername     string        `mapstructure:"bot_username"`
	Workers         int           `mapstructure:"workers"`
	QueueSize       int           `mapstructure:"queue_size"`
	PollTimeout     int           `mapstructure:"poll_timeout"`
	CommentTimeout  time.Duration `mapstructure:"comment_timeout"`
	Debug           bool          `mapstructure:"debug"`
}

// EngagementConfig 互动引擎参数
type EngagementConfig struct {
	PromoteThreshold int64         `mapstructure:"promote_threshold"`
	CommentWindow    int           `mapstructure:"comment_window"`
	PreviewLength    int           `mapstructure:"preview_length"`
	TrendingMarker   string        `mapstructure:"trending_marker"`
	LockTTL          time.Duration `mapstructure:"lock_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json, console
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "submissions.db")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.channel_id", 0)
	v.SetDefault("telegram.channel_username", "")
	v.SetDefault("telegram.bot_username", "")
	v.SetDefault("telegram.workers", 8)
	v.SetDefault("telegram.queue_size", 1024)
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("telegram.comment_timeout", 5*time.Minute)
	v.SetDefault("telegram.debug", false)

	v.SetDefault("engagement.promote_threshold", 100)
	v.SetDefault("engagement.comment_window", 5)
	v.SetDefault("engagement.preview_length", 30)
	v.SetDefault("engagement.trending_marker", "🔥 热门推荐")
	v.SetDefault("engagement.lock_ttl", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("jwt.secret", "")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.service_name", "channel-engage")
}

// Load 加载配置：默认值 -> config.yaml -> 环境变量（ENGAGE_ 前缀）
func Load() (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("ENGAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate 检查 serve 运行所需的配置项
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("telegram.token is required")
	}
	if c.Telegram.ChannelID == 0 {
		return errors.New("telegram.channel_id is required")
	}
	if c.Telegram.BotUsername == "" {
		return errors.New("telegram.bot_username is required")
	}
	if c.Engagement.PromoteThreshold <= 0 {
		return fmt.Errorf("engagement.promote_threshold must be positive, got %d", c.Engagement.PromoteThreshold)
	}
	if c.Engagement.CommentWindow <= 0 {
		return fmt.Errorf("engagement.comment_window must be positive, got %d", c.Engagement.CommentWindow)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}
