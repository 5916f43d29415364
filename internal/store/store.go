// 包 store: PostgreSQL 访问层，仅提供请求日志的追加写入
package store

import (
	"context"
	"database/sql"

	"civic-api/internal/logger"

	_ "github.com/lib/pq"
)

// RequestLog：追加式请求日志表 _request_log
type RequestLog struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *RequestLog { return &RequestLog{db: db} }

// Open: 使用 DSN 打开数据库连接
func Open(dsn string) (*RequestLog, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &RequestLog{db: db}, nil
}

func (s *RequestLog) Close() error { return s.db.Close() }

func (s *RequestLog) DB() *sql.DB { return s.db }

// Append：写入一行请求日志；错误为空时 error 列为 NULL
func (s *RequestLog) Append(ctx context.Context, e logger.Entry) error {
	var errText sql.NullString
	if e.Err != "" {
		errText = sql.NullString{String: e.Err, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO _request_log(logged_at, ip, method, path, error, line) VALUES($1,$2,$3,$4,$5,$6)`,
		e.Time, e.Request.IP, e.Request.Method, e.Request.Path, errText, e.Line,
	)
	return err
}
