package middleware

import (
	"net/http"
	"sync"
	"time"

	"province-api/internal/logger"
	"province-api/internal/utils"
)

// 文档注释：令牌桶限流（每秒）
// 背景：移动端启动时集中上报定位，入口限速避免 Redis 与数据库被打满。
// 约束：不排队，超出直接返回 429。
type TokenBucket struct {
	capacity int
	tokens   int
	lastSec  int64
	mu       sync.Mutex
	now      func() time.Time
}

func NewTokenBucket(qps int) *TokenBucket {
	return &TokenBucket{capacity: qps, tokens: qps, lastSec: time.Now().Unix(), now: time.Now}
}

func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	nowSec := tb.now().Unix()
	if tb.lastSec != nowSec {
		tb.lastSec = nowSec
		tb.tokens = tb.capacity
	}
	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Limit：用给定令牌桶包装处理器
func Limit(tb *TokenBucket, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !tb.Allow() {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Wrap：RATE_LIMIT_ENABLED=true 时启用限流，速率取 RATE_LIMIT_QPS（默认 200）
func Wrap(next http.Handler) http.Handler {
	if !utils.GetEnvAsBool("RATE_LIMIT_ENABLED", false) {
		return next
	}
	qps := utils.GetEnvAsInt("RATE_LIMIT_QPS", 200)
	if qps <= 0 {
		qps = 200
	}
	logger.L().Info("rate_limit_enabled", "qps", qps)
	return Limit(NewTokenBucket(qps), next)
}
