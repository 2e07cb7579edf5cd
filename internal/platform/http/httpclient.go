package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は市場データAPI呼び出し用の HTTP クライアントを作成します。
//
// 設定:
//   - Proxy: HTTP_PROXY などの環境変数に従う
//   - Dialer.Timeout: TCP接続の確立は5秒まで
//   - MaxIdleConnsPerHost: 同一ホストへの連続取得で接続を再利用する
//   - TLSHandshakeTimeout: HTTPSハンドシェイクは5秒まで
//   - Client.Timeout: リクエスト全体の上限（0以下なら30秒）
//
// 注意:
//   - リトライは行わない。1回の取得は1回のGETで完結する
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// DefaultTimeout is used when no positive timeout is configured.
const DefaultTimeout = 30 * time.Second
