// 包 listing：房源数据接口客户端，仅用于发现接口中出现过的省名
package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"province-api/internal/logger"
	"province-api/internal/metrics"
)

// Property：房源记录中本服务关心的字段
// 约束：只解码 province；id、title 等字段在不同接口版本中类型不一（数字或字符串），不解码。
type Property struct {
	Province string `json:"province"`
}

var ErrBadStatus = errors.New("listing endpoint: unexpected status")

// 文档注释：拉取房源列表
// 背景：接口可能直接返回数组，也可能包一层 {"data": [...]}，两种都接受。
// 参数：client 为空时使用 10s 超时的默认客户端。
// 异常：网络、非 2xx 状态、解码失败直接返回，由调用方降级。
func FetchProperties(ctx context.Context, client *http.Client, endpoint string) ([]Property, error) {
	if endpoint == "" {
		return nil, errors.New("missing listing endpoint")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	t0 := time.Now()
	metrics.ListingRequestsTotal.Inc()
	defer func() { metrics.ListingDurationMs.Observe(float64(time.Since(t0).Milliseconds())) }()
	resp, err := client.Do(req)
	if err != nil {
		metrics.ListingFailTotal.Inc()
		logger.L().Error("listing_http_error", "err", err)
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ListingFailTotal.Inc()
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ListingFailTotal.Inc()
		return nil, err
	}
	out, err := decodeProperties(body)
	if err != nil {
		metrics.ListingFailTotal.Inc()
		logger.L().Error("listing_decode_error", "err", err)
		return nil, err
	}
	logger.L().Debug("listing_resp", "records", len(out), "duration_ms", time.Since(t0).Milliseconds())
	return out, nil
}

func decodeProperties(body []byte) ([]Property, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var out []Property
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("decode listing array: %w", err)
		}
		return out, nil
	}
	var wrapped struct {
		Data []Property `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode listing envelope: %w", err)
	}
	return wrapped.Data, nil
}

// DistinctProvinces：按首次出现顺序去重省名，去除首尾空白与空值
func DistinctProvinces(records []Property) []string {
	seen := make(map[string]struct{}, len(records))
	var out []string
	for _, r := range records {
		p := strings.TrimSpace(r.Province)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// Client：绑定端点的房源客户端，实现 province.NameSource
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{Endpoint: endpoint, HTTP: &http.Client{Timeout: timeout}}
}

// Provinces：拉取房源并返回去重后的省名
func (c *Client) Provinces(ctx context.Context) ([]string, error) {
	records, err := FetchProperties(ctx, c.HTTP, c.Endpoint)
	if err != nil {
		return nil, err
	}
	return DistinctProvinces(records), nil
}
