package http

import (
	"net/http"
	"testing"
	"time"
)

func TestNewHTTPClient_Timeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{"explicit", 5 * time.Second, 5 * time.Second},
		{"zero uses default", 0, DefaultTimeout},
		{"negative uses default", -time.Second, DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewHTTPClient(tt.in)
			if c.Timeout != tt.want {
				t.Errorf("expected timeout %v, got %v", tt.want, c.Timeout)
			}
			tr, ok := c.Transport.(*http.Transport)
			if !ok {
				t.Fatalf("expected *http.Transport, got %T", c.Transport)
			}
			if tr.Proxy == nil {
				t.Error("expected proxy from environment to be configured")
			}
		})
	}
}
