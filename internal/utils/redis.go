// 包 utils：Redis 连接工具，统一环境变量读取与可选 DB 选择
package utils

import (
	"province-api/internal/logger"

	"github.com/redis/go-redis/v9"
)

// OpenRedisFromEnv：从环境变量打开 Redis 客户端，支持 REDIS_DB 选择
// 约束：未设置 REDIS_HOST 时返回 nil，调用方按无缓存处理；REDIS_DB 解析失败回退到 0
func OpenRedisFromEnv() *redis.Client {
	host := GetEnv("REDIS_HOST", "")
	if host == "" {
		return nil
	}
	addr := host + ":" + GetEnv("REDIS_PORT", "6379")
	db := GetEnvAsInt("REDIS_DB", 0)
	if db < 0 {
		db = 0
	}
	logger.L().Debug("redis_env", "addr", addr, "db", db)
	return redis.NewClient(&redis.Options{Addr: addr, Password: GetEnv("REDIS_PASS", ""), DB: db})
}
