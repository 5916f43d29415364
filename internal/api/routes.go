// 包 api：集中注册 HTTP API 路由，主入口只负责挂载
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"civic-api/internal/civic"
	"civic-api/internal/logger"
	"civic-api/internal/metrics"
	"civic-api/internal/reps"
)

// Fetcher：原始数据查询方，civic.Client 的抽象，便于测试替换
type Fetcher interface {
	GetRepsData(ctx context.Context, address, city, state, zip string) (*civic.Payload, error)
}

var errMethod = errors.New("method not allowed")

type errorBody struct {
	Error string `json:"error"`
}

// BuildRoutes：/representatives 查询与 /health
// 约束：每个 /representatives 请求都会写一行请求日志，失败时附带错误
func BuildRoutes(f Fetcher, rl *logger.RequestLogger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/representatives", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		t0 := time.Now()
		metrics.RequestsTotal.Inc()
		defer func() { metrics.RequestDurationMs.Observe(float64(time.Since(t0).Milliseconds())) }()
		info := logger.RequestInfoFromHTTP(r)

		if r.Method != http.MethodGet {
			rl.LogFile(ctx, info, errMethod)
			w.Header().Set("allow", http.MethodGet)
			writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: errMethod.Error()})
			return
		}
		q := r.URL.Query()
		p, err := f.GetRepsData(ctx, q.Get("address"), q.Get("city"), q.Get("state"), q.Get("zip"))
		if err != nil {
			rl.LogFile(ctx, info, err)
			writeJSON(w, http.StatusBadGateway, errorBody{Error: "representatives lookup failed"})
			return
		}
		res, err := reps.Filter(p)
		if err != nil {
			metrics.InvalidPayloadTotal.Inc()
			logger.L().Error("reps_filter_error", "err", err)
			rl.LogFile(ctx, info, err)
			writeJSON(w, http.StatusBadGateway, errorBody{Error: reps.ErrInvalidPayload.Error()})
			return
		}
		for bucket, n := range res.Reps.Count() {
			metrics.RepsClassifiedTotal.WithLabelValues(bucket).Add(float64(n))
		}
		rl.LogFile(ctx, info, nil)
		writeJSON(w, http.StatusOK, res)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
