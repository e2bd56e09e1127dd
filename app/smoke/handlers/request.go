package handlers

import (
	serverhandlers "book-library/app/server/handlers"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
)

// response 保存状态码和原始响应体，由具体步骤决定如何解析
type response struct {
	status int
	body   []byte
}

func (r *response) decode(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("failed to decode response %q: %w", r.body, err)
	}
	return nil
}

func (r *response) message() string {
	var msg serverhandlers.MessageResponse
	if err := json.Unmarshal(r.body, &msg); err != nil {
		return ""
	}
	return msg.Message
}

// expect 检查状态码，不符合时把服务端返回的信息带上
func (r *response) expect(status int) error {
	if r.status != status {
		return fmt.Errorf("expected status %d, got %d (%s)", status, r.status, bytes.TrimSpace(r.body))
	}
	return nil
}

func (a *App) do(ctx context.Context, method string, path string, withToken bool, body any) (*response, error) {
	// 准备请求的基础信息
	reqUrl, err := url.JoinPath(a.cfg.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("failed to join request url: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqUrl, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	// 发送请求
	res, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s %s: %w", method, path, err)
	}

	defer res.Body.Close()

	// 读取响应体
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	a.l.Debug("request done",
		zap.String("method", method),
		zap.String("url", reqUrl),
		zap.Int("status", res.StatusCode),
	)

	return &response{
		status: res.StatusCode,
		body:   resBody,
	}, nil
}
