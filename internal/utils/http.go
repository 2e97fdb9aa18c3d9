package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// HttpPostJsonWithContext 发送 POST JSON 请求（超时由 ctx 控制）
func HttpPostJsonWithContext(ctx context.Context, url string, data interface{}) (string, error) {
	return HttpPostJsonWithHeaders(ctx, url, data, nil)
}

// HttpPostJsonWithHeaders 发送 POST JSON 请求并附加自定义 Header
func HttpPostJsonWithHeaders(ctx context.Context, url string, data interface{}, headers map[string]string) (string, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal json error: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("new request error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response error: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status code: %d, body: %s", resp.StatusCode, string(body))
	}

	return string(body), nil
}

// CheckUpstreamHealth 探测外部服务是否可达
func CheckUpstreamHealth(ctx context.Context, url string) error {
	log.Printf("请求检测地址: %v", url)
	ctxTimeout, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxTimeout, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("状态码异常: %d", resp.StatusCode)
	}
	return nil
}
