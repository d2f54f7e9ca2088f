// 包 store: 提供与 PostgreSQL 的数据访问层，包含省份坐标表与解析统计读写
package store

import (
	"context"
	"database/sql"
	"fmt"

	"province-api/internal/logger"
	"province-api/internal/province"

	_ "github.com/lib/pq"
)

// Store: 数据库访问入口，持有连接池
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// LoadCoordinates：按 position 顺序读取坐标表，实现 province.CoordinateLoader
func (s *Store) LoadCoordinates(ctx context.Context) ([]province.Coordinate, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, latitude, longitude FROM _province_coordinates ORDER BY position, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []province.Coordinate
	for rows.Next() {
		var c province.Coordinate
		if err := rows.Scan(&c.Name, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.L().Debug("db_coordinates_loaded", "entries", len(out))
	return out, nil
}

// 文档注释：批量写入坐标表
// 背景：种子数据与运营修正共用；按名称覆盖，position 保存表顺序以维持并列时的优先级。
// 约束：单事务提交，任一失败整体回滚。
func (s *Store) UpsertCoordinates(ctx context.Context, table []province.Coordinate) error {
	if err := province.ValidateTable(table); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO _province_coordinates(name, latitude, longitude, position, updated_at)
        VALUES($1,$2,$3,$4,now())
        ON CONFLICT (name) DO UPDATE SET latitude=EXCLUDED.latitude, longitude=EXCLUDED.longitude, position=EXCLUDED.position, updated_at=now()`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, c := range table {
		if _, err := stmt.ExecContext(ctx, c.Name, c.Latitude, c.Longitude, i); err != nil {
			return fmt.Errorf("upsert %q: %w", c.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.L().Info("db_coordinates_upserted", "entries", len(table))
	return nil
}

// IncrStats：成功解析后递增总计与当日分省计数；失败只记录日志
func (s *Store) IncrStats(ctx context.Context, provinceName string) error {
	if _, err := s.db.ExecContext(ctx, "UPDATE _resolve_stats_total SET total_resolves=total_resolves+1 WHERE id=1"); err != nil {
		logger.L().Debug("stats_total_error", "err", err)
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO _resolve_stats_daily(day, province, resolves) VALUES(current_date, $1, 1)
        ON CONFLICT (day, province) DO UPDATE SET resolves=_resolve_stats_daily.resolves+1`, provinceName)
	if err != nil {
		logger.L().Debug("stats_daily_error", "err", err)
	}
	return err
}

// Totals: 累计与当日解析次数，以及当日分省计数
type Totals struct {
	Total      int64            `json:"total"`
	Today      int64            `json:"today"`
	ByProvince map[string]int64 `json:"by_province"`
}

// GetTotals: 读取统计，用于接口返回
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	t := Totals{ByProvince: map[string]int64{}}
	if err := s.db.QueryRowContext(ctx, "SELECT total_resolves FROM _resolve_stats_total WHERE id=1").Scan(&t.Total); err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, "SELECT province, resolves FROM _resolve_stats_daily WHERE day=current_date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		var n int64
		if err := rows.Scan(&p, &n); err != nil {
			return nil, err
		}
		t.ByProvince[p] = n
		t.Today += n
	}
	logger.L().Debug("stats_totals", "total", t.Total, "today", t.Today)
	return &t, rows.Err()
}
