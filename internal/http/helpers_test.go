package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr only", nil, "192.0.2.1:1234", "192.0.2.1:1234"},
		{"x-real-ip", map[string]string{"X-Real-IP": "203.0.113.5"}, "10.0.0.1:80", "203.0.113.5"},
		{"forwarded single", map[string]string{"X-Forwarded-For": "198.51.100.7"}, "10.0.0.1:80", "198.51.100.7"},
		{"forwarded chain takes first hop", map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.2"}, "10.0.0.1:80", "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := extractClientIP(req); got != tt.want {
				t.Errorf("extractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in     string
		wantID int64
		wantOK bool
	}{
		{"1", 1, true},
		{" 42 ", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		id, ok := parseID(tt.in)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("parseID(%q) = (%d, %v), want (%d, %v)", tt.in, id, ok, tt.wantID, tt.wantOK)
		}
	}
}
