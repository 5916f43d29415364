package migrate

import (
	"database/sql"

	"civic-api/internal/logger"
)

// EnsureSchema：首次运行创建请求日志表
// 约束：使用 IF NOT EXISTS；表只追加，不做更新与删除
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS _request_log (
            id BIGSERIAL PRIMARY KEY,
            logged_at TIMESTAMPTZ NOT NULL,
            ip TEXT NOT NULL,
            method TEXT NOT NULL,
            path TEXT NOT NULL,
            error TEXT,
            line TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_request_log_logged_at ON _request_log(logged_at)`,
	}
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
