package migrate

import (
	"context"
	"database/sql"

	"province-api/internal/logger"
)

// 背景：首次运行自动创建坐标表与统计表
// 约束：使用 IF NOT EXISTS 避免与既有结构冲突；仅创建最小必需结构
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _province_coordinates (
            name TEXT PRIMARY KEY,
            latitude DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
            longitude DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
            position INT NOT NULL DEFAULT 0,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
		`CREATE TABLE IF NOT EXISTS _resolve_stats_total (
            id INT PRIMARY KEY,
            total_resolves BIGINT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS _resolve_stats_daily (
            day DATE NOT NULL,
            province TEXT NOT NULL,
            resolves BIGINT NOT NULL DEFAULT 0,
            PRIMARY KEY (day, province)
        )`,
		`INSERT INTO _resolve_stats_total(id, total_resolves)
         VALUES(1, 0)
         ON CONFLICT (id) DO NOTHING`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
