// 包 api：集中注册 HTTP API 路由以解耦主入口
package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"province-api/internal/locate"
	"province-api/internal/logger"
	"province-api/internal/province"
	"province-api/internal/store"

	"github.com/redis/go-redis/v9"
)

// StatsStore：解析统计的读写契约，未启用数据库时为空
type StatsStore interface {
	IncrStats(ctx context.Context, provinceName string) error
	GetTotals(ctx context.Context) (*store.Totals, error)
}

// Deps：路由依赖
type Deps struct {
	Resolver *province.Resolver
	Redis    *redis.Client
	Stats    StatsStore
	GeoIP    locate.IPLocator
	CacheTTL time.Duration
}

// 文档注释：构建 API 路由
// 背景：独立 ServeMux，在主入口挂载到 API_BASE 前缀下。
func BuildRoutes(d Deps) *http.ServeMux {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/province", d.handleProvince)
	apiMux.HandleFunc("/province/slug", d.handleSlug)
	apiMux.HandleFunc("/province/name", d.handleName)
	apiMux.HandleFunc("/provinces", d.handleProvinces)
	apiMux.HandleFunc("/stats", d.handleStats)
	return apiMux
}

// 文档注释：坐标解析省份
// 背景：显式携带 lat/lng 时严格解析，非法返回 400；未携带时按高精度→最低精度获取位置，均失败返回 503 location unavailable。
func (d Deps) handleProvince(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	var pt province.GeoPoint
	if q.Has("lat") || q.Has("lng") {
		lat, err1 := strconv.ParseFloat(q.Get("lat"), 64)
		lng, err2 := strconv.ParseFloat(q.Get("lng"), 64)
		if err1 != nil || err2 != nil || !finite(lat) || !finite(lng) {
			writeJSON(w, http.StatusBadRequest, errorResult{Error: "invalid coordinates"})
			return
		}
		pt = province.GeoPoint{Latitude: lat, Longitude: lng}
	} else {
		p, err := locate.Acquire(ctx, locate.FromRequest(r, d.GeoIP))
		if err != nil {
			logger.L().Debug("province_locate_unavailable", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, errorResult{Error: locate.ErrLocationUnavailable.Error()})
			return
		}
		pt = p
	}
	res := ResolveQuery(ctx, d.Redis, d.Resolver, pt, d.CacheTTL)
	if d.Stats != nil {
		_ = d.Stats.IncrStats(ctx, res.Province)
	}
	writeJSON(w, http.StatusOK, provinceResult{
		Province:   res.Province,
		Slug:       res.Slug,
		DistanceKm: res.DistanceKm,
		Source:     res.Source,
		Latitude:   pt.Latitude,
		Longitude:  pt.Longitude,
	})
}

func (d Deps) handleSlug(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorResult{Error: "missing name"})
		return
	}
	writeJSON(w, http.StatusOK, slugResult{Name: name, Slug: province.Slug(name)})
}

func (d Deps) handleName(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorResult{Error: "missing slug"})
		return
	}
	name := province.NameFromSlug(slug, d.Resolver.Table(r.Context()))
	writeJSON(w, http.StatusOK, slugResult{Name: name, Slug: slug})
}

func (d Deps) handleProvinces(w http.ResponseWriter, r *http.Request) {
	table := d.Resolver.Table(r.Context())
	out := make([]tableEntry, 0, len(table))
	for _, c := range table {
		out = append(out, tableEntry{Name: c.Name, Slug: province.Slug(c.Name), Latitude: c.Latitude, Longitude: c.Longitude})
	}
	writeJSON(w, http.StatusOK, out)
}

func (d Deps) handleStats(w http.ResponseWriter, r *http.Request) {
	if d.Stats == nil {
		writeJSON(w, http.StatusOK, store.Totals{ByProvince: map[string]int64{}})
		return
	}
	t, err := d.Stats.GetTotals(r.Context())
	if err != nil {
		logger.L().Error("stats_totals_error", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResult{Error: "stats unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Debug("http_encode_error", "err", err)
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
