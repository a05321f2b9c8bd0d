package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env            string `mapstructure:"env"`
	Port           int    `mapstructure:"port"`
	ShutdownSecond int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI            string `mapstructure:"uri"`
	Database       string `mapstructure:"database"`
	Collection     string `mapstructure:"collection"`
	Driver         string `mapstructure:"driver"`
	ConnectSeconds int    `mapstructure:"connect_timeout_seconds"`
	OpSeconds      int    `mapstructure:"op_timeout_seconds"`
}

type RedisConf struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConf struct {
	DownloadsPerMinute int `mapstructure:"downloads_per_minute"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type TopConf struct {
	MaxLimit int `mapstructure:"max_limit"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Mongo     MongoConf     `mapstructure:"mongodb"`
	Redis     RedisConf     `mapstructure:"redis"`
	RateLimit RateLimitConf `mapstructure:"rate_limit"`
	Kafka     KafkaConf     `mapstructure:"kafka"`
	Top       TopConf       `mapstructure:"top"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ShutdownTimeout time.Duration
	ConnectTimeout  time.Duration
	OpTimeout       time.Duration
}

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

var envBindings = map[string]string{
	"app.env":                         "APP_ENV",
	"app.port":                        "PORT",
	"app.shutdown_seconds":            "APP_SHUTDOWN_SECONDS",
	"mongodb.uri":                     "DATABASE_URL",
	"mongodb.database":                "DATABASE_NAME",
	"mongodb.collection":              "MONGODB_COLLECTION",
	"mongodb.driver":                  "STORE_DRIVER",
	"redis.addr":                      "REDIS_ADDR",
	"redis.password":                  "REDIS_PASSWORD",
	"redis.db":                        "REDIS_DB",
	"rate_limit.downloads_per_minute": "RATE_LIMIT_DOWNLOADS_PER_MINUTE",
	"kafka.brokers":                   "KAFKA_BROKERS",
	"kafka.topic":                     "KAFKA_TOPIC",
	"top.max_limit":                   "TOP_MAX_LIMIT",
	"log.level":                       "LOG_LEVEL",
}

// Load reads path when it exists, then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("app.env", "production")
	v.SetDefault("app.port", 8000)
	v.SetDefault("app.shutdown_seconds", 15)
	v.SetDefault("mongodb.uri", "")
	v.SetDefault("mongodb.database", "")
	v.SetDefault("mongodb.collection", "media")
	v.SetDefault("mongodb.driver", DriverMongo)
	v.SetDefault("mongodb.connect_timeout_seconds", 10)
	v.SetDefault("mongodb.op_timeout_seconds", 5)
	v.SetDefault("redis.addr", "")
	v.SetDefault("rate_limit.downloads_per_minute", 60)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "media.downloaded")
	v.SetDefault("top.max_limit", 100)
	v.SetDefault("log.level", "info")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 8000
	}
	if cfg.App.ShutdownSecond == 0 {
		cfg.App.ShutdownSecond = 15
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSecond) * time.Second
	cfg.ConnectTimeout = time.Duration(cfg.Mongo.ConnectSeconds) * time.Second
	cfg.OpTimeout = time.Duration(cfg.Mongo.OpSeconds) * time.Second
	return &cfg, nil
}

func (c *Config) Development() bool { return c.App.Env == "development" }
