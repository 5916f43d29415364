// 程序入口：读取配置、初始化依赖并启动服务；API 注册在 internal/api
package main

import (
	"context"
	"net/http"
	"os"
	_ "time/tzdata"

	"civic-api/internal/api"
	"civic-api/internal/civic"
	"civic-api/internal/config"
	"civic-api/internal/logger"
	"civic-api/internal/metrics"
	"civic-api/internal/middleware"
	"civic-api/internal/migrate"
	"civic-api/internal/store"
	"civic-api/internal/utils"
)

func main() {
	cfg := config.Load()
	l := logger.Setup(cfg.Log.Level, cfg.Log.Format)
	l.Debug("log_init_ok")
	l.Debug("config_api_base", "base", cfg.APIBase)
	if cfg.Civic.APIKey == "" {
		l.Warn("config_api_key_missing")
	}

	var opts []logger.Option
	db, err := utils.OpenPostgres(cfg.Postgres)
	if err != nil {
		l.Error("db_open_error", "err", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		if err := db.Ping(); err != nil {
			l.Error("db_ping_error", "err", err)
		} else {
			l.Info("db_ping_ok")
		}
		if err := migrate.EnsureSchema(db); err != nil {
			l.Error("schema_error", "err", err)
			os.Exit(1)
		}
		opts = append(opts, logger.WithSink(store.AttachDB(db)))
	} else {
		l.Info("request_log_db_disabled")
	}

	rc := utils.OpenRedis(cfg.Redis)
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		defer rc.Close()
		if err := rc.Ping(context.Background()).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	}

	geo, err := logger.OpenGeoIP(cfg.GeoIPPath)
	if err != nil {
		l.Error("geoip_open_error", "path", cfg.GeoIPPath, "err", err)
	}
	if geo != nil {
		defer geo.Close()
		l.Info("geoip_ready", "path", cfg.GeoIPPath)
	}

	rl := logger.NewRequestLogger(cfg.Log, opts...)
	fetcher := civic.NewClient(cfg.Civic, nil)
	apiMux := api.BuildRoutes(fetcher, rl)

	mux := http.NewServeMux()
	if cfg.APIBase != "" {
		mux.Handle(cfg.APIBase+"/", http.StripPrefix(cfg.APIBase, apiMux))
	} else {
		mux.Handle("/representatives", apiMux)
		mux.Handle("/health", apiMux)
	}
	mux.Handle(cfg.APIBase+"/metrics", metrics.Handler())
	mux.Handle("/", http.FileServer(http.Dir(cfg.UIDir)))
	l.Debug("config_ui_dir", "dir", cfg.UIDir)

	handler := middleware.RateLimit(cfg.RateLimit, rc)(mux)
	handler = logger.AccessMiddleware(l, geo)(handler)
	s := &http.Server{Addr: cfg.Addr, Handler: handler}

	if cfg.TLS.Enabled {
		if err := utils.EnsureSelfSignedCert(cfg.TLS.CertPath, cfg.TLS.KeyPath, "civic-api.local"); err != nil {
			l.Error("tls_cert_error", "err", err)
			os.Exit(1)
		}
		l.Info("listening_tls", "addr", cfg.Addr, "cert", cfg.TLS.CertPath)
		if err := s.ListenAndServeTLS(cfg.TLS.CertPath, cfg.TLS.KeyPath); err != nil {
			l.Error("server_error", "err", err)
			os.Exit(1)
		}
		return
	}
	l.Info("listening", "addr", cfg.Addr)
	if err := s.ListenAndServe(); err != nil {
		l.Error("server_error", "err", err)
		os.Exit(1)
	}
}
