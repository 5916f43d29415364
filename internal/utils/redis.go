// 包 utils：Redis 连接工具
package utils

import (
	"civic-api/internal/config"
	"civic-api/internal/logger"

	"github.com/redis/go-redis/v9"
)

// OpenRedis：按配置打开 Redis 客户端；未启用时返回 nil
func OpenRedis(cfg config.Redis) *redis.Client {
	if !cfg.Enabled {
		return nil
	}
	logger.L().Debug("redis_config", "addr", cfg.Addr(), "db", cfg.DB)
	return redis.NewClient(&redis.Options{Addr: cfg.Addr(), Password: cfg.Pass, DB: cfg.DB})
}
