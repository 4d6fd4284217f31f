package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Catalog  CatalogConfig
	Chat     ChatConfig
	Upload   UploadConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// AppConfig 应用配置
type AppConfig struct {
	Name        string
	Environment string
	Version     string
	Debug       bool
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host            string
	Port            int
	Mode            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string
}

// CatalogConfig 目录配置
type CatalogConfig struct {
	Path string // 为空时使用内置种子数据
}

// ChatConfig 聊天配置
type ChatConfig struct {
	ResponseDelayMs int
	MaxHistory      int
	Greeting        string
}

// UploadConfig logo 上传配置
type UploadConfig struct {
	Driver    string // local 或 minio
	BasePath  string
	URLPrefix string
	MaxSizeKB int
	MinIO     MinIOConfig
}

// MinIOConfig MinIO 配置
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLPrefix string
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Enabled      bool
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled    bool
	Host       string
	Port       int
	Password   string
	DB         int
	SessionTTL int // 小时
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string
	Development bool
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// Load 加载配置
// 文件不存在时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	// 环境变量
	v.SetEnvPrefix("STRATO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetDSN 获取数据库连接字符串
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetAddr 获取服务器地址
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetAddr 获取 Redis 地址
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TTL 会话过期时间
func (c *RedisConfig) TTL() time.Duration {
	return time.Duration(c.SessionTTL) * time.Hour
}

// ResponseDelay 聊天回复延迟
func (c *ChatConfig) ResponseDelay() time.Duration {
	return time.Duration(c.ResponseDelayMs) * time.Millisecond
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "strato-tools")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", false)

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.shutdownTimeout", 10)
	v.SetDefault("server.allowedOrigins", []string{"*"})

	// Catalog
	v.SetDefault("catalog.path", "")

	// Chat
	v.SetDefault("chat.responseDelayMs", 1500)
	v.SetDefault("chat.maxHistory", 100)
	v.SetDefault("chat.greeting", "")

	// Upload
	v.SetDefault("upload.driver", "local")
	v.SetDefault("upload.basePath", "./data/uploads")
	v.SetDefault("upload.urlPrefix", "/uploads")
	v.SetDefault("upload.maxSizeKB", 2048)
	v.SetDefault("upload.minio.bucket", "strato-logos")

	// Database
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "strato_tools")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.maxLifetime", 300)

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.sessionTTL", 24)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	// Metrics
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
