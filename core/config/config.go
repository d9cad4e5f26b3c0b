package config

import (
	"fmt"
	"strings"
	"time"

	"team-schedule-api/core/constants"
	"team-schedule-api/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host        string
	Port        int
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LockConfig struct {
	TTL         time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

type WorkerConfig struct {
	Concurrency int
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Lock     LockConfig
	Worker   WorkerConfig
}

var instance *Config

// Load reads .env (if present), overlays environment variables and fills
// defaults. Must be called once at startup before Get.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("config: no .env file found, relying on environment")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.environment", "development")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "team_schedule")
	v.SetDefault("database.sslmode", constants.DatabaseSSLMode)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("lock.ttl", constants.DefaultLockTTL)
	v.SetDefault("lock.maxattempts", constants.DefaultLockMaxAttempts)
	v.SetDefault("lock.backoffbase", constants.DefaultLockBackoffBase)

	v.SetDefault("worker.concurrency", 10)

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("server.host"),
			Port:        v.GetInt("server.port"),
			Environment: v.GetString("server.environment"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.dbname"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Lock: LockConfig{
			TTL:         v.GetDuration("lock.ttl"),
			MaxAttempts: v.GetInt("lock.maxattempts"),
			BackoffBase: v.GetDuration("lock.backoffbase"),
		},
		Worker: WorkerConfig{
			Concurrency: v.GetInt("worker.concurrency"),
		},
	}

	if cfg.Lock.MaxAttempts < 1 {
		return nil, fmt.Errorf("lock.maxattempts must be at least 1, got %d", cfg.Lock.MaxAttempts)
	}

	instance = cfg
	return cfg, nil
}

// Get panics when Load has not run; use GetSafe in paths that can race startup.
func Get() *Config {
	if instance == nil {
		panic("config: Get called before Load")
	}
	return instance
}

func GetSafe() (*Config, bool) {
	if instance == nil {
		return nil, false
	}
	return instance, true
}
