// 包 client：调用本服务 /representatives 接口的客户端助手
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"civic-api/internal/logger"
	"civic-api/internal/reps"
)

type Client struct {
	baseURL string
	client  *http.Client
}

// New：baseURL 为服务根地址（含 API_BASE 前缀），如 https://example.com/api
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), client: httpClient}
}

// GetRepData：失败时记录日志并返回 nil 结果
func (c *Client) GetRepData(ctx context.Context, address, city, state, zip string) (*reps.Result, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("city", city)
	q.Set("state", state)
	q.Set("zip", zip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/representatives?"+q.Encode(), nil)
	if err != nil {
		logger.L().Error("client_request_error", "err", err)
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		logger.L().Error("client_http_error", "err", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		err := fmt.Errorf("representatives: status %d: %s", resp.StatusCode, body.Error)
		logger.L().Error("client_status_error", "status", resp.StatusCode, "err", err)
		return nil, err
	}
	var res reps.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		logger.L().Error("client_decode_error", "err", err)
		return nil, err
	}
	return &res, nil
}
