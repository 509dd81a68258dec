package ipresolver

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── HTTPResolver ──────────────────────────────────────────────────────────────

// TestHTTPResolver_Success verifies that the first line of the body is
// returned trimmed.
func TestHTTPResolver_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(" 203.0.113.7 \nignored\n"))
	}))
	defer srv.Close()

	ip, err := NewHTTPResolver(srv.URL).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", ip)
}

// TestHTTPResolver_InvalidBody verifies that a body that is not an IP is
// rejected.
func TestHTTPResolver_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "html", body: "<html>blocked</html>"},
		{name: "hostname", body: "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPResolver(srv.URL).Resolve(context.Background())
			assert.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

// TestHTTPResolver_ErrorStatus verifies that an error status fails the lookup.
func TestHTTPResolver_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("1.2.3.4"))
	}))
	defer srv.Close()

	_, err := NewHTTPResolver(srv.URL).Resolve(context.Background())
	assert.ErrorIs(t, err, ErrLookupFailed)
}

// TestHTTPResolver_Unreachable verifies that a transport failure is returned.
func TestHTTPResolver_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPResolver(url).Resolve(context.Background())
	assert.Error(t, err)
}

// TestNewHTTPResolver_DefaultURL verifies the default endpoint.
func TestNewHTTPResolver_DefaultURL(t *testing.T) {
	assert.Equal(t, DefaultCheckIPURL, NewHTTPResolver("").url)
}

// TestHTTPResolver_ContextLogger verifies that the lookup logs through the
// logger attached to ctx.
func TestHTTPResolver_ContextLogger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("203.0.113.7"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	_, err := NewHTTPResolver(srv.URL).Resolve(ctx)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), srv.URL)
}

// ── DialResolver ──────────────────────────────────────────────────────────────

// TestDialResolver_LocalAddress verifies that the local end of the
// connection is reported.
func TestDialResolver_LocalAddress(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err == nil {
			_ = conn.Close()
		}
	}()

	ip, err := NewDialResolver(ln.Addr().String()).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", ip)
}

// TestDialResolver_Cancelled verifies that a cancelled context aborts the
// dial.
func TestDialResolver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDialResolver("127.0.0.1:1").Resolve(ctx)
	assert.Error(t, err)
}

// ── Static ────────────────────────────────────────────────────────────────────

// TestStatic verifies fixed answers and their validation.
func TestStatic(t *testing.T) {
	ip, err := Static("::1").Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "::1", ip)

	_, err = Static("nope").Resolve(context.Background())
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
