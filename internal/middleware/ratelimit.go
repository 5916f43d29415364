package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"civic-api/internal/config"
	"civic-api/internal/logger"
	"civic-api/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// 文档注释：每秒限流中间件
// 约束：不排队，超限直接返回 429；有 Redis 时多实例共享计数窗口，否则使用进程内令牌桶
type limiter interface {
	allow(ctx context.Context) bool
}

type TokenBucket struct {
	capacity int
	tokens   int
	lastSec  int64
	now      func() time.Time
	mu       sync.Mutex
}

func NewTokenBucket(qps int) *TokenBucket {
	return &TokenBucket{capacity: qps, tokens: qps, lastSec: time.Now().Unix(), now: time.Now}
}

func (tb *TokenBucket) allow(context.Context) bool {
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

// RedisWindow：固定一秒窗口计数，键 civic:rl:<unix秒>
// 约束：Redis 不可用时放行并记录告警
type RedisWindow struct {
	rc    *redis.Client
	limit int64
	now   func() time.Time
}

func NewRedisWindow(rc *redis.Client, qps int) *RedisWindow {
	return &RedisWindow{rc: rc, limit: int64(qps), now: time.Now}
}

func (w *RedisWindow) allow(ctx context.Context) bool {
	key := "civic:rl:" + strconv.FormatInt(w.now().Unix(), 10)
	pipe := w.rc.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.L().Warn("ratelimit_redis_error", "err", err)
		return true
	}
	return incr.Val() <= w.limit
}

// RateLimit：未启用时原样返回 next
func RateLimit(cfg config.RateLimit, rc *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled {
			return next
		}
		qps := cfg.QPS
		if qps <= 0 {
			qps = 200
		}
		var lim limiter = NewTokenBucket(qps)
		if rc != nil {
			lim = NewRedisWindow(rc, qps)
		}
		return wrap(lim, next)
	}
}

func wrap(lim limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !lim.allow(r.Context()) {
			metrics.RateLimitRejectedTotal.Inc()
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
