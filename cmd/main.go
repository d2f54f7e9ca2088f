// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"province-api/internal/api"
	"province-api/internal/ingest"
	"province-api/internal/listing"
	"province-api/internal/locate"
	"province-api/internal/logger"
	"province-api/internal/metrics"
	"province-api/internal/middleware"
	"province-api/internal/migrate"
	"province-api/internal/province"
	"province-api/internal/store"
	"province-api/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	// 日志初始化
	l := logger.Setup()
	l.Debug("log_init_ok")
	apiBase := utils.GetEnv("API_BASE", "/api")
	l.Debug("config_api_base", "base", apiBase)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 数据库可选：未配置 PG_HOST 时统计与 db 来源均不可用
	var st *store.Store
	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		l.Error("db_open_error", "err", err)
		os.Exit(1)
	}
	if db == nil {
		l.Info("db_disabled")
	} else {
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			l.Error("db_ping_error", "err", err)
		} else {
			l.Info("db_ping_ok")
		}
		if err := migrate.EnsureSchema(ctx, db); err != nil {
			l.Error("schema_error", "err", err)
			os.Exit(1)
		}
		st = store.AttachDB(db)
	}

	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	}

	// 文档注释：坐标表来源装配
	// 背景：static/file/db/remote 四选一；remote 依赖房源端点，db 依赖数据库。
	var loader province.CoordinateLoader
	if st != nil {
		loader = st
	}
	var names province.NameSource
	if ep := os.Getenv("LISTING_ENDPOINT"); ep != "" {
		names = listing.NewClient(ep, time.Duration(utils.GetEnvAsInt("LISTING_TIMEOUT_S", 10))*time.Second)
	}
	source := utils.GetEnv("PROVINCE_TABLE_SOURCE", "static")
	provider := province.SelectProvider(source, os.Getenv("PROVINCE_TABLE_PATH"), loader, names)
	l.Info("province_source", "source", source, "provider", provider.Name())
	res := province.NewResolverFromEnv(provider)

	// 背景：最低精度定位依赖 GeoLite2 City 库；文件缺失时仅禁用 IP 兜底
	var geo locate.IPLocator
	if p := os.Getenv("GEOIP_DB_PATH"); p != "" {
		g, err := locate.OpenGeoIP(p)
		if err != nil {
			l.Error("geoip_open_error", "path", p, "err", err)
		} else {
			defer g.Close()
			geo = g
			l.Info("geoip_ready", "path", p)
		}
	}

	if rp, ok := provider.(*province.RemoteProvider); ok && utils.GetEnvAsBool("REFRESH_ENABLED", false) {
		ingest.StartWeeklyJakarta(ctx, rp, utils.GetEnvAsInt("REFRESH_HOUR", 3), res.Purge)
	}

	deps := api.Deps{
		Resolver: res,
		Redis:    rc,
		GeoIP:    geo,
		CacheTTL: time.Duration(utils.GetEnvAsInt("PROVINCE_CACHE_TTL_S", 3600)) * time.Second,
	}
	if st != nil {
		deps.Stats = st
	}
	mux := http.NewServeMux()
	apiMux := api.BuildRoutes(deps)
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, apiMux))
	mux.Handle(apiBase+"/metrics", metrics.Handler())

	addr := utils.GetEnv("ADDR", ":8080")
	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(handler)
	handler = middleware.WrapTrustedEdge(handler)
	s := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	l.Info("listening", "addr", addr)
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		l.Error("listen_error", "err", err)
		os.Exit(1)
	}
}
