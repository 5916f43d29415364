// 包 config：进程级配置，启动时从环境变量一次性读取，之后以值的形式注入各模块
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultCivicBaseURL = "https://www.googleapis.com/civicinfo/v2/representatives"

type Civic struct {
	APIKey  string
	BaseURL string
	// 0 表示不设置超时，由调用方通过 ctx 控制
	Timeout time.Duration
}

type Log struct {
	Level    string
	Format   string
	File     string
	Timezone string
}

type Redis struct {
	Enabled bool
	Host    string
	Port    string
	Pass    string
	DB      int
}

func (r Redis) Addr() string { return r.Host + ":" + r.Port }

type Postgres struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
	MaxOpen  int
	MaxIdle  int
}

type RateLimit struct {
	Enabled bool
	QPS     int
}

type TLS struct {
	Enabled  bool
	CertPath string
	KeyPath  string
}

type Config struct {
	Addr      string
	APIBase   string
	UIDir     string
	GeoIPPath string

	Civic     Civic
	Log       Log
	Redis     Redis
	Postgres  Postgres
	RateLimit RateLimit
	TLS       TLS
}

// Load：加载 .env 后读取环境变量
// 约束：数值/时长解析失败时静默回退默认值；不在此处校验 API_KEY，缺失时由查询方报告
func Load() *Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	return FromEnv()
}

// FromEnv：仅读取当前进程环境，不加载 .env 文件
func FromEnv() *Config {
	return &Config{
		Addr:      getEnv("ADDR", ":8080"),
		APIBase:   strings.TrimSuffix(os.Getenv("API_BASE"), "/"),
		UIDir:     getEnv("UI_DIST", filepath.Join("ui", "dist")),
		GeoIPPath: os.Getenv("GEOIP_DB_PATH"),
		Civic: Civic{
			APIKey:  os.Getenv("API_KEY"),
			BaseURL: getEnv("CIVIC_BASE_URL", DefaultCivicBaseURL),
			Timeout: getDuration("CIVIC_TIMEOUT", 0),
		},
		Log: Log{
			Level:    strings.ToLower(os.Getenv("LOG_LEVEL")),
			Format:   strings.ToLower(os.Getenv("LOG_FORMAT")),
			File:     os.Getenv("LOGFILE"),
			Timezone: strings.TrimSpace(os.Getenv("TIMEZONE")),
		},
		Redis: Redis{
			Enabled: getBool("REDIS_ENABLED", false),
			Host:    getEnv("REDIS_HOST", "127.0.0.1"),
			Port:    getEnv("REDIS_PORT", "6379"),
			Pass:    os.Getenv("REDIS_PASS"),
			DB:      getInt("REDIS_DB", 0),
		},
		Postgres: Postgres{
			Enabled:  getBool("REQUEST_LOG_DB", false),
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			User:     getEnv("PG_USER", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			DB:       getEnv("PG_DB", "civicapi"),
			SSLMode:  getEnv("PG_SSLMODE", "disable"),
			MaxOpen:  getInt("PG_MAX_OPEN_CONNS", 10),
			MaxIdle:  getInt("PG_MAX_IDLE_CONNS", 5),
		},
		RateLimit: RateLimit{
			Enabled: getBool("RATE_LIMIT_ENABLED", false),
			QPS:     getInt("RATE_LIMIT_QPS", 200),
		},
		TLS: TLS{
			Enabled:  getBool("TLS_ENABLE", false),
			CertPath: getEnv("TLS_CERT_PATH", filepath.Join("data", "certs", "server.crt")),
			KeyPath:  getEnv("TLS_KEY_PATH", filepath.Join("data", "certs", "server.key")),
		},
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return def
}
