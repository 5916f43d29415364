// 包 logger：http访问日志中间件，记录方法、路径、状态、耗时、字节数、远端地址
package logger

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/oschwald/geoip2-golang"
)

// statusWriter：包装 ResponseWriter 以捕获状态码与写出字节数
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// OpenGeoIP：打开 GeoLite2/GeoIP2 Country 或 City 库；path 为空时返回 nil
func OpenGeoIP(path string) (*geoip2.Reader, error) {
	if path == "" {
		return nil, nil
	}
	return geoip2.Open(path)
}

// AccessMiddleware：生成访问日志中间件
// 约束：geo 可为 nil；国家代码仅用于日志维度，查询失败时留空
func AccessMiddleware(l *slog.Logger, geo *geoip2.Reader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{ResponseWriter: w, status: 200}
			start := time.Now()
			next.ServeHTTP(sw, r)
			dur := time.Since(start)
			ip := ClientIP(r)
			l.Debug("http_access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration_ms", dur.Milliseconds(),
				"ip", ip,
				"country", countryOf(geo, ip),
			)
		})
	}
}

func countryOf(geo *geoip2.Reader, ip string) string {
	if geo == nil {
		return ""
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	rec, err := geo.Country(parsed)
	if err != nil {
		return ""
	}
	return rec.Country.IsoCode
}
