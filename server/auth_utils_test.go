package server

import (
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/oauth-callback/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestEncodeQueryComponent(t *testing.T) {
	require.Equal(t, "Code%20expired", encodeQueryComponent("Code expired"))
	require.Equal(t, "a%2Bb%26c%3Dd", encodeQueryComponent("a+b&c=d"))
	require.Equal(t, "", encodeQueryComponent(""))
	require.Equal(t, "it's%20(bad)!*~", encodeQueryComponent("it's (bad)!*~"))
	require.Equal(t, "%2F%3F%23", encodeQueryComponent("/?#"))
}

func TestRedirectLocation(t *testing.T) {
	require.Equal(t,
		"https://app.example.com/?error=missing_code&error_description=Authorization%20code%20not%20provided",
		redirectLocation("https://app.example.com", "error", "missing_code", "error_description", "Authorization code not provided"),
	)
	require.Equal(t, "http://localhost:3000/?token_data=e30%3D", redirectLocation("http://localhost:3000", "token_data", "e30="))
}

func TestRequestOrigin(t *testing.T) {
	t.Run("plain http", func(t *testing.T) {
		r := httptest.NewRequest("GET", "http://localhost:3000/oauth/callback", nil)
		require.Equal(t, "http://localhost:3000", requestOrigin(r))
	})

	t.Run("tls", func(t *testing.T) {
		r := httptest.NewRequest("GET", "http://app.example.com/oauth/callback", nil)
		r.TLS = &tls.ConnectionState{}
		require.Equal(t, "https://app.example.com", requestOrigin(r))
	})

	t.Run("first forwarded proto wins", func(t *testing.T) {
		r := httptest.NewRequest("GET", "http://app.example.com/oauth/callback", nil)
		r.Header.Set("X-Forwarded-Proto", "HTTPS, http")
		require.Equal(t, "https://app.example.com", requestOrigin(r))
	})

	t.Run("unknown forwarded proto is ignored", func(t *testing.T) {
		r := httptest.NewRequest("GET", "http://app.example.com/oauth/callback", nil)
		r.Header.Set("X-Forwarded-Proto", "javascript")
		require.Equal(t, "http://app.example.com", requestOrigin(r))
	})

	t.Run("default ports are dropped", func(t *testing.T) {
		r := httptest.NewRequest("GET", "https://App.Example.com:443/oauth/callback", nil)
		require.Equal(t, "https://app.example.com", requestOrigin(r))

		r = httptest.NewRequest("GET", "http://app.example.com:80/oauth/callback", nil)
		require.Equal(t, "http://app.example.com", requestOrigin(r))
	})

	t.Run("other ports are kept", func(t *testing.T) {
		r := httptest.NewRequest("GET", "https://app.example.com:8443/oauth/callback", nil)
		require.Equal(t, "https://app.example.com:8443", requestOrigin(r))

		r = httptest.NewRequest("GET", "http://app.example.com:443/oauth/callback", nil)
		require.Equal(t, "http://app.example.com:443", requestOrigin(r))
	})
}

func TestCallbackParamsFromRequest(t *testing.T) {
	t.Run("well-formed query", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/oauth/callback?code=abc123&state=xyz", nil)
		params := callbackParamsFromRequest(r)
		require.Equal(t, "abc123", params.Code)
		require.Equal(t, "xyz", params.State)
	})

	t.Run("semicolon is part of the value", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/oauth/callback?code=abc;def&state=s+1", nil)
		params := callbackParamsFromRequest(r)
		require.Equal(t, "abc;def", params.Code)
		require.Equal(t, "s 1", params.State)
	})

	t.Run("bad escape is kept raw", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/oauth/callback?code=%zz&error_description=a%20b", nil)
		params := callbackParamsFromRequest(r)
		require.Equal(t, "%zz", params.Code)
		require.Equal(t, "a b", params.ErrorDescription)
	})

	t.Run("first value wins", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/oauth/callback?error=access_denied;x&error=other", nil)
		require.Equal(t, "access_denied;x", callbackParamsFromRequest(r).Error)
	})
}

func TestLenientQuery(t *testing.T) {
	values := lenientQuery("a=1&&b&c=x=y&d=%zz")
	require.Equal(t, "1", values.Get("a"))
	require.True(t, values.Has("b"))
	require.Equal(t, "x=y", values.Get("c"))
	require.Equal(t, "%zz", values.Get("d"))
}

func TestCallbackError(t *testing.T) {
	t.Run("categorised errors pass through", func(t *testing.T) {
		err := tokenExchangeError(400, "Code expired")
		require.Equal(t, "token_error: Code expired", err.Error())
		require.Equal(t, "token_error", err.Outcome())
		require.Same(t, err, asCallbackError(fmt.Errorf("exchange: %w", err)))
		require.True(t, errors.Is(err, errors.ErrTokenExchange))
	})

	t.Run("everything else is a server error", func(t *testing.T) {
		cause := stderrors.New("network down")
		err := asCallbackError(cause)
		require.Equal(t, "server_error", err.Code)
		require.Equal(t, "network down", err.Description)
		require.True(t, errors.Is(err, errors.ErrServer))
		require.True(t, errors.Is(err, cause))
	})

	t.Run("missing code", func(t *testing.T) {
		err := missingCodeError()
		require.Equal(t, "Authorization code not provided", err.Description)
		require.True(t, errors.Is(err, errors.ErrMissingCode))
	})

	t.Run("upstream", func(t *testing.T) {
		err := upstreamError("access_denied", "")
		require.Equal(t, "upstream_error", err.Outcome())
		require.True(t, errors.Is(err, errors.ErrUpstreamAuthorization))
	})
}
