package redirectserver

import (
	"errors"
	"testing"
)

func TestRewriteTarget(t *testing.T) {
	tests := []struct {
		name       string
		host       string
		requestURI string
		ports      Ports
		want       string
	}{
		{"path and query", "example.com:80", "/foo?x=1", NewPorts(80, 443), "https://example.com:443/foo?x=1"},
		{"empty target defaults to root", "example.com:80", "", NewPorts(80, 443), "https://example.com:443/"},
		{"root", "example.com:80", "/", NewPorts(80, 443), "https://example.com:443/"},
		{"non-default ports", "localhost:3000", "/api/v1?a=b&c=d", NewPorts(3000, 3443), "https://localhost:3443/api/v1?a=b&c=d"},
		{"ip host", "127.0.0.1:8080", "/", NewPorts(8080, 8443), "https://127.0.0.1:8443/"},
		{"port digits inside hostname untouched", "80.example.com:80", "/", NewPorts(80, 443), "https://80.example.com:443/"},
		{"port digits as hostname suffix untouched", "host8080:8080", "/x", NewPorts(8080, 8443), "https://host8080:8443/x"},
		{"shared digits", "example.com:44", "/", NewPorts(44, 443), "https://example.com:443/"},
		{"other explicit port kept", "example.com:9000", "/x", NewPorts(80, 443), "https://example.com:9000/x"},
		{"leading zero port", "example.com:080", "/", NewPorts(80, 443), "https://example.com:443/"},
		{"no port, default https", "example.com", "/a", NewPorts(80, 443), "https://example.com/a"},
		{"no port, custom https", "example.com", "/a", NewPorts(80, 8443), "https://example.com:8443/a"},
		{"ipv6 with port", "[::1]:80", "/", NewPorts(80, 443), "https://[::1]:443/"},
		{"ipv6 without port", "[::1]", "/", NewPorts(80, 443), "https://[::1]/"},
		{"ipv6 without port, custom https", "[2001:db8::1]", "/", NewPorts(80, 8443), "https://[2001:db8::1]:8443/"},
		{"ipv6 zone with port", "[fe80::1%25eth0]:80", "/", NewPorts(80, 443), "https://[fe80::1%25eth0]:443/"},
		{"ipv6 zone without port", "[fe80::1%25eth0]", "/x", NewPorts(80, 8443), "https://[fe80::1%25eth0]:8443/x"},
		{"escaped path preserved", "example.com:80", "/a%20b/c%2Fd?q=%2F", NewPorts(80, 443), "https://example.com:443/a%20b/c%2Fd?q=%2F"},
		{"empty query kept", "example.com:80", "/search?", NewPorts(80, 443), "https://example.com:443/search?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RewriteTarget(tt.host, tt.requestURI, tt.ports)
			if err != nil {
				t.Fatalf("RewriteTarget() error = %v", err)
			}
			if got.Scheme != "https" {
				t.Errorf("Scheme = %q, want https", got.Scheme)
			}
			if got.String() != tt.want {
				t.Errorf("RewriteTarget() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestRewriteTarget_Errors(t *testing.T) {
	tests := []struct {
		name       string
		host       string
		requestURI string
		want       error
	}{
		{"empty host", "", "/", ErrInvalidHost},
		{"empty port", "example.com:", "/", ErrInvalidHost},
		{"non-numeric port", "example.com:http", "/", ErrInvalidHost},
		{"port out of range", "example.com:99999", "/", ErrInvalidHost},
		{"zero port", "example.com:0", "/", ErrInvalidHost},
		{"missing hostname", ":80", "/", ErrInvalidHost},
		{"unterminated ipv6", "[::1:80", "/", ErrInvalidHost},
		{"unbracketed ipv6", "::1", "/", ErrInvalidHost},
		{"garbage after ipv6", "[::1]x80", "/", ErrInvalidHost},
		{"userinfo", "user@example.com:80", "/", ErrInvalidHost},
		{"path in host", "example.com/evil:80", "/", ErrInvalidHost},
		{"query in host", "example.com?x:80", "/", ErrInvalidHost},
		{"space in host", "example .com:80", "/", ErrInvalidHost},
		{"asterisk target", "example.com:80", "*", ErrInvalidTarget},
		{"absolute target", "example.com:80", "http://other/", ErrInvalidTarget},
	}

	ports := NewPorts(80, 443)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RewriteTarget(tt.host, tt.requestURI, ports)
			if err == nil {
				t.Fatalf("RewriteTarget() = %v, want error", got)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("RewriteTarget() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRewriteTarget_Deterministic(t *testing.T) {
	ports := NewPorts(80, 443)

	first, err := RewriteTarget("example.com:80", "/a?b=c", ports)
	if err != nil {
		t.Fatalf("RewriteTarget() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := RewriteTarget("example.com:80", "/a?b=c", ports)
		if err != nil {
			t.Fatalf("RewriteTarget() error = %v", err)
		}
		if again.String() != first.String() {
			t.Fatalf("RewriteTarget() = %q, want %q", again, first)
		}
	}
}

func TestPorts(t *testing.T) {
	p := NewPorts(8080, 8443)
	if p.HTTP != 8080 || p.HTTPS != 8443 {
		t.Errorf("NewPorts() = %+v", p)
	}

	// Value semantics: a copy does not alias the original.
	q := p
	q.HTTPS = 9443
	if p.HTTPS != 8443 {
		t.Error("copy of Ports modified the original")
	}
}
