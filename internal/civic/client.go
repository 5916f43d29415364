// 包 civic：调用 Google Civic Information API 获取某地址的民选官员原始数据
package civic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"civic-api/internal/config"
	"civic-api/internal/logger"
	"civic-api/internal/metrics"
)

var ErrMissingKey = errors.New("missing civic api key")

type Client struct {
	key     string
	baseURL string
	client  *http.Client
}

// NewClient：httpClient 为空时按配置的超时构建默认客户端（0 为不超时）
func NewClient(cfg config.Civic, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	base := cfg.BaseURL
	if base == "" {
		base = config.DefaultCivicBaseURL
	}
	return &Client{key: cfg.APIKey, baseURL: base, client: httpClient}
}

// QueryAddress：拼接地址查询串，各部分以空格分隔
func QueryAddress(address, city, state, zip string) string {
	return strings.Join([]string{address, city, state, zip}, " ")
}

// GetRepsData：单次查询，原样返回解码后的响应
// 约束：不重试；失败时记录日志并返回 nil 结果，调用方需容忍结果缺失
func (c *Client) GetRepsData(ctx context.Context, address, city, state, zip string) (*Payload, error) {
	if c.key == "" {
		logger.L().Error("civic_config_error", "err", ErrMissingKey)
		metrics.UpstreamFailTotal.Inc()
		return nil, ErrMissingKey
	}
	q := url.Values{}
	q.Set("key", c.key)
	q.Set("address", QueryAddress(address, city, state, zip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	t0 := time.Now()
	metrics.UpstreamRequestsTotal.Inc()
	logger.L().Debug("civic_req", "city", city, "state", state, "zip", zip)
	resp, err := c.client.Do(req)
	if err != nil {
		err = stripURL(err)
		logger.L().Error("civic_http_error", "err", err)
		metrics.UpstreamFailTotal.Inc()
		return nil, err
	}
	defer resp.Body.Close()
	var p Payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		logger.L().Error("civic_decode_error", "status", resp.StatusCode, "err", err)
		metrics.UpstreamFailTotal.Inc()
		return nil, err
	}
	dur := time.Since(t0).Milliseconds()
	metrics.UpstreamDurationMs.Observe(float64(dur))
	if resp.StatusCode < 200 || resp.StatusCode > 299 || p.Error != nil {
		err := statusError(resp.StatusCode, p.Error)
		logger.L().Error("civic_status_error", "status", resp.StatusCode, "err", err)
		metrics.UpstreamFailTotal.Inc()
		return nil, err
	}
	logger.L().Debug("civic_resp", "status", resp.StatusCode, "divisions", len(p.Divisions), "offices", len(p.Offices), "duration_ms", dur)
	return &p, nil
}

// stripURL：*url.Error 会携带含 key 的完整查询串，不能原样进入日志
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("civic request %s: %w", ue.Op, ue.Err)
	}
	return err
}

func statusError(status int, apiErr *APIError) error {
	if apiErr != nil {
		return apiErr
	}
	return fmt.Errorf("civic api status %d", status)
}
