package utils

import (
	"database/sql"

	_ "github.com/lib/pq"
)

// BuildPostgresDSNFromEnv：由 PG_* 环境变量拼接连接串
func BuildPostgresDSNFromEnv() string {
	user := GetEnv("PG_USER", "postgres")
	dsn := "postgres://" + user
	if pass := GetEnv("PG_PASSWORD", ""); pass != "" {
		dsn += ":" + pass
	}
	dsn += "@" + GetEnv("PG_HOST", "localhost") + ":" + GetEnv("PG_PORT", "5432") + "/" + GetEnv("PG_DB", "province") + "?sslmode=" + GetEnv("PG_SSLMODE", "disable")
	return dsn
}

// OpenPostgresFromEnv：打开连接池，PG_MAX_OPEN_CONNS/PG_MAX_IDLE_CONNS 可调
// 约束：未设置 PG_HOST 时返回 nil,nil，视为未启用数据库
func OpenPostgresFromEnv() (*sql.DB, error) {
	if GetEnv("PG_HOST", "") == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", BuildPostgresDSNFromEnv())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(GetEnvAsInt("PG_MAX_OPEN_CONNS", 20))
	db.SetMaxIdleConns(GetEnvAsInt("PG_MAX_IDLE_CONNS", 10))
	return db, nil
}
