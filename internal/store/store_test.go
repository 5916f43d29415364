package store

import (
	"context"
	"os"
	"testing"
	"time"

	"civic-api/internal/logger"
	"civic-api/internal/migrate"
)

// 需要可用的 PostgreSQL：PG_TEST_DSN=postgres://user@localhost/civicapi_test?sslmode=disable
func TestRequestLogAppend(t *testing.T) {
	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN not set")
	}
	s, err := Open(dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := migrate.EnsureSchema(s.DB()); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	path := "/representatives-" + time.Now().Format("150405.000000")
	e := logger.Entry{
		Time:    time.Now(),
		Request: logger.RequestInfo{IP: "203.0.113.7", Method: "GET", Path: path},
		Err:     "boom",
		Line:    "ERROR: line",
	}
	if err := s.Append(ctx, e); err != nil {
		t.Fatal(err)
	}
	var n int
	var errText string
	if err := s.DB().QueryRowContext(ctx, `SELECT COUNT(1), MAX(error) FROM _request_log WHERE path=$1`, path).Scan(&n, &errText); err != nil {
		t.Fatal(err)
	}
	if n != 1 || errText != "boom" {
		t.Fatalf("expected 1 row with error boom, got %d %q", n, errText)
	}
}
