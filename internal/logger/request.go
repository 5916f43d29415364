package logger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"civic-api/internal/config"
	"civic-api/internal/metrics"
)

// RequestInfo：单次请求的日志维度
type RequestInfo struct {
	IP     string
	Method string
	Path   string
}

func RequestInfoFromHTTP(r *http.Request) RequestInfo {
	return RequestInfo{IP: ClientIP(r), Method: r.Method, Path: r.URL.Path}
}

// Entry：写入追加式 Sink 的一条请求日志
type Entry struct {
	Time    time.Time
	Request RequestInfo
	Err     string
	Line    string
}

// Sink：请求日志的额外追加目标（如数据库表）
type Sink interface {
	Append(ctx context.Context, e Entry) error
}

// RequestLogger：按固定格式输出每个入站请求的时间戳日志行
// 约束：只持有不可变配置；文件追加每次独立打开，依赖 O_APPEND 对单次小写入的原子性
type RequestLogger struct {
	path    string
	loc     *time.Location
	console io.Writer
	now     func() time.Time
	sinks   []Sink
}

type Option func(*RequestLogger)

func WithConsole(w io.Writer) Option { return func(l *RequestLogger) { l.console = w } }

func WithClock(now func() time.Time) Option { return func(l *RequestLogger) { l.now = now } }

func WithSink(s Sink) Option {
	return func(l *RequestLogger) {
		if s != nil {
			l.sinks = append(l.sinks, s)
		}
	}
}

func NewRequestLogger(cfg config.Log, opts ...Option) *RequestLogger {
	loc, err := ResolveTimezone(cfg.Timezone)
	if err != nil {
		L().Warn("request_log_timezone_error", "tz", cfg.Timezone, "err", err)
		loc = time.Local
	}
	l := &RequestLogger{path: cfg.File, loc: loc, console: os.Stdout, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// ResolveTimezone：gmt-5 形式转换为 IANA 的 Etc/GMT-5；其余值按 IANA 名称加载；空值为本地时区
func ResolveTimezone(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.Local, nil
	}
	if strings.HasPrefix(strings.ToLower(tz), "gmt") {
		tz = "Etc/GMT" + tz[3:]
	}
	return time.LoadLocation(tz)
}

// zoneAbbr：时区简称；数字型简称（如 Etc/GMT-5 的 "+05"）改写为 GMT+5，零偏移为 UTC
func zoneAbbr(t time.Time) string {
	name, off := t.Zone()
	if name != "" && name[0] != '+' && name[0] != '-' {
		if name == "GMT" && off == 0 {
			return "UTC"
		}
		return name
	}
	if off == 0 {
		return "UTC"
	}
	sign := "+"
	if off < 0 {
		sign = "-"
		off = -off
	}
	h, m := off/3600, (off%3600)/60
	if m == 0 {
		return fmt.Sprintf("GMT%s%d", sign, h)
	}
	return fmt.Sprintf("GMT%s%d:%02d", sign, h, m)
}

// Format：生成日志行，不做任何输出
func (l *RequestLogger) Format(t time.Time, req RequestInfo, err error) string {
	t = t.In(l.loc)
	var b strings.Builder
	if err != nil {
		b.WriteString("ERROR: ")
	}
	b.WriteString(t.Format("2006-01-02 - 03:04:05 pm"))
	b.WriteString(" (" + zoneAbbr(t) + ") -- ")
	b.WriteString(req.IP + " -- " + req.Method + " " + req.Path + " ")
	if err != nil {
		b.WriteString("\n>>>>>> " + err.Error())
	}
	return b.String()
}

// Log：输出到控制台并返回日志行
func (l *RequestLogger) Log(req RequestInfo, err error) string {
	line := l.Format(l.now(), req, err)
	fmt.Fprintln(l.console, line)
	return line
}

// LogFile：输出到控制台，并追加到日志文件与各 Sink
// 约束：写入失败只在控制台报告，不返回给调用方
func (l *RequestLogger) LogFile(ctx context.Context, req RequestInfo, err error) string {
	t := l.now()
	line := l.Format(t, req, err)
	fmt.Fprintln(l.console, line)
	if l.path != "" {
		if werr := appendLine(l.path, line); werr != nil {
			fmt.Fprintf(l.console, "Unable to log to %s\n", l.path)
			L().Error("request_log_file_error", "path", l.path, "err", werr)
			metrics.LogWriteFailTotal.WithLabelValues("file").Inc()
		}
	}
	if len(l.sinks) > 0 {
		e := Entry{Time: t, Request: req, Line: line}
		if err != nil {
			e.Err = err.Error()
		}
		for _, s := range l.sinks {
			if serr := s.Append(ctx, e); serr != nil {
				L().Error("request_log_sink_error", "err", serr)
				metrics.LogWriteFailTotal.WithLabelValues("sink").Inc()
			}
		}
	}
	return line
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	_, err = f.WriteString(line + "\n")
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
