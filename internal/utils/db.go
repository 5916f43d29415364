package utils

import (
	"database/sql"

	"civic-api/internal/config"

	_ "github.com/lib/pq"
)

func BuildPostgresDSN(cfg config.Postgres) string {
	dsn := "postgres://" + cfg.User
	if cfg.Password != "" {
		dsn += ":" + cfg.Password
	}
	dsn += "@" + cfg.Host + ":" + cfg.Port + "/" + cfg.DB + "?sslmode=" + cfg.SSLMode
	return dsn
}

// OpenPostgres：按配置打开连接池；未启用时返回 nil, nil
func OpenPostgres(cfg config.Postgres) (*sql.DB, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	db, err := sql.Open("postgres", BuildPostgresDSN(cfg))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}
