package api

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"province-api/internal/logger"
	"province-api/internal/metrics"
	"province-api/internal/province"

	"github.com/redis/go-redis/v9"
)

// 文档注释：带 Redis 热点缓存的省份解析（供路由与内部调用）
// 背景：多实例部署时进程内 LRU 命中率有限，Redis 作为共享缓存；rc 为空时直接走解析器。
// 约束：键为 province:<来源>:<lat>:<lng>（6 位小数）；ttl<=0 时使用 3600 秒；Redis 异常不影响返回。
func ResolveQuery(ctx context.Context, rc *redis.Client, res *province.Resolver, pt province.GeoPoint, ttl time.Duration) province.Resolution {
	key := "province:" + res.Provider().Name() + ":" + formatCoord(pt.Latitude) + ":" + formatCoord(pt.Longitude)
	if rc != nil {
		if s, _ := rc.Get(ctx, key).Result(); s != "" {
			if out, ok := decodeCached(s); ok {
				metrics.RedisHitsTotal.Inc()
				metrics.ResolveRequestsTotal.Inc()
				metrics.ResolveSourceTotal.WithLabelValues(province.SourceCache).Inc()
				return out
			}
		}
		metrics.RedisMissesTotal.Inc()
	}
	out := res.Resolve(ctx, pt)
	if rc != nil {
		if ttl <= 0 {
			ttl = time.Hour
		}
		b, _ := json.Marshal(out)
		if err := rc.Set(ctx, key, string(b), ttl).Err(); err != nil {
			logger.L().Debug("redis_set_error", "key", key, "err", err)
		}
	}
	return out
}

// decodeCached：解析 Redis 中的结果，命中时来源标记为 cache
func decodeCached(s string) (province.Resolution, bool) {
	var out province.Resolution
	if err := json.Unmarshal([]byte(s), &out); err != nil || out.Province == "" {
		return province.Resolution{}, false
	}
	out.Source = province.SourceCache
	return out, true
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
