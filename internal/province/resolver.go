package province

import (
	"context"
	"strconv"
	"time"

	"province-api/internal/logger"
	"province-api/internal/metrics"
	"province-api/internal/utils"
)

// Config：解析器参数
type Config struct {
	FastPath  bool
	CacheSize int
	CacheTTL  time.Duration
}

// 文档注释：从环境变量读取解析器参数
// 约束：PROVINCE_FAST_PATH 默认开启；PROVINCE_CACHE_SIZE=0 关闭进程内缓存；TTL 默认 3600 秒。
func ConfigFromEnv() Config {
	return Config{
		FastPath:  utils.GetEnvAsBool("PROVINCE_FAST_PATH", true),
		CacheSize: utils.GetEnvAsInt("PROVINCE_CACHE_SIZE", 4096),
		CacheTTL:  time.Duration(utils.GetEnvAsInt("PROVINCE_CACHE_TTL_S", 3600)) * time.Second,
	}
}

// 文档注释：省份解析器（包围盒快速判定 → 全表最近邻 → 默认省份）
// 背景：静态表与远端派生表共用同一套解析逻辑，来源由注入的 TableProvider 决定；记忆化由提供者自行持有，不使用进程级全局状态。
// 约束：Resolve 永不失败；非有限坐标与空表均返回默认省份。
type Resolver struct {
	provider TableProvider
	fastPath bool
	cache    *LRU
}

func NewResolver(provider TableProvider, cfg Config) *Resolver {
	if provider == nil {
		provider = NewStaticProvider()
	}
	return &Resolver{provider: provider, fastPath: cfg.FastPath, cache: NewLRU(cfg.CacheSize, cfg.CacheTTL)}
}

func NewResolverFromEnv(provider TableProvider) *Resolver {
	return NewResolver(provider, ConfigFromEnv())
}

// Provider：当前使用的坐标表来源
func (r *Resolver) Provider() TableProvider { return r.provider }

// Table：当前生效的坐标表
func (r *Resolver) Table(ctx context.Context) []Coordinate {
	t, err := r.provider.Table(ctx)
	if err != nil {
		logger.L().Debug("province_table_degraded", "provider", r.provider.Name(), "err", err)
	}
	return t
}

// ResolveProvince：仅返回省名
func (r *Resolver) ResolveProvince(ctx context.Context, pt GeoPoint) string {
	return r.Resolve(ctx, pt).Province
}

// 文档注释：坐标解析为最近的省份
// 返回：省名、slug、到代表点的距离（千米）与命中路径。
func (r *Resolver) Resolve(ctx context.Context, pt GeoPoint) Resolution {
	t0 := time.Now()
	metrics.ResolveRequestsTotal.Inc()
	defer func() { metrics.ResolveDurationMs.Observe(float64(time.Since(t0).Microseconds()) / 1000) }()

	if !finite(pt.Latitude) || !finite(pt.Longitude) {
		metrics.ResolveSourceTotal.WithLabelValues(SourceDefault).Inc()
		logger.L().Debug("province_resolve_non_finite", "lat", pt.Latitude, "lng", pt.Longitude)
		return defaultResolution()
	}
	key := r.provider.Name() + ":" + formatCoord(pt.Latitude) + ":" + formatCoord(pt.Longitude)
	if v, ok := r.cache.Get(key); ok {
		metrics.ResolveSourceTotal.WithLabelValues(SourceCache).Inc()
		return v
	}
	res := r.resolve(r.Table(ctx), pt)
	r.cache.Set(key, res)
	metrics.ResolveSourceTotal.WithLabelValues(res.Source).Inc()
	logger.L().Debug("province_resolve", "lat", pt.Latitude, "lng", pt.Longitude, "province", res.Province, "source", res.Source, "distance_km", res.DistanceKm)
	return res
}

func (r *Resolver) resolve(table []Coordinate, pt GeoPoint) Resolution {
	if len(table) == 0 {
		return defaultResolution()
	}
	if r.fastPath {
		if c, ok := fastPath(table, pt); ok {
			return Resolution{
				Province:   c.Name,
				Slug:       Slug(c.Name),
				DistanceKm: Haversine(pt.Latitude, pt.Longitude, c.Latitude, c.Longitude),
				Source:     SourceFastPath,
			}
		}
	}
	c, d, ok := Nearest(table, pt)
	if !ok {
		return defaultResolution()
	}
	return Resolution{Province: c.Name, Slug: Slug(c.Name), DistanceKm: d, Source: SourceNearest}
}

// Purge：坐标表刷新后清空缓存
func (r *Resolver) Purge() { r.cache.Purge() }

func defaultResolution() Resolution {
	return Resolution{Province: DefaultProvince, Slug: Slug(DefaultProvince), Source: SourceDefault}
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
