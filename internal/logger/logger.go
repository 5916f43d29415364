// 包 logger：统一初始化与获取日志器；级别与格式来自配置
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// 默认日志器：在进程级复用
var defaultLogger *slog.Logger

// Setup：初始化默认日志器
// 约束：输出目标固定为标准错误；请求日志行的文件输出由 RequestLogger 单独管理
func Setup(level, format string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	}
	defaultLogger = slog.New(h)
	return defaultLogger
}

// L：获取默认日志器；未初始化时按 info/text 回退
func L() *slog.Logger {
	if defaultLogger == nil {
		return Setup("", "")
	}
	return defaultLogger
}
