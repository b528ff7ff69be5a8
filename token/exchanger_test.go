package token_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coreos/go-oidc/v3/oidc"
	cberrors "github.com/jrsteele09/oauth-callback/internal/errors"
	"github.com/jrsteele09/oauth-callback/oauth2"
	"github.com/jrsteele09/oauth-callback/token"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func testRequest() oauth2.TokenRequest {
	return oauth2.NewAuthorizationCodeRequest("abc123", "https://app.example.com/oauth/callback", "web-app", "s3cret")
}

func TestExchanger_Exchange(t *testing.T) {
	t.Run("posts JSON and parses success", func(t *testing.T) {
		var captured *http.Request
		var body []byte
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = r
			body, _ = io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"xyz","token_type":"bearer"}`))
		}))
		defer srv.Close()

		result, err := token.NewExchanger(srv.Client()).Exchange(context.Background(), srv.URL+"/api/oauth/token", testRequest())
		require.NoError(t, err)
		require.True(t, result.OK())
		require.Equal(t, `{"access_token":"xyz","token_type":"bearer"}`, string(result.Response.Bytes()))

		require.Equal(t, http.MethodPost, captured.Method)
		require.Equal(t, "/api/oauth/token", captured.URL.Path)
		require.Equal(t, "application/json", captured.Header.Get("Content-Type"))
		require.Equal(t, "application/json", captured.Header.Get("Accept"))
		var received map[string]string
		require.NoError(t, json.Unmarshal(body, &received))
		require.Equal(t, map[string]string{
			"grant_type":    "authorization_code",
			"code":          "abc123",
			"redirect_uri":  "https://app.example.com/oauth/callback",
			"client_id":     "web-app",
			"client_secret": "s3cret",
		}, received)
	})

	t.Run("error status is a result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Code expired"}`))
		}))
		defer srv.Close()

		result, err := token.NewExchanger(srv.Client()).Exchange(context.Background(), srv.URL, testRequest())
		require.NoError(t, err)
		require.False(t, result.OK())
		require.Equal(t, http.StatusBadRequest, result.StatusCode)
		require.Equal(t, "Code expired", result.Response.ErrorMessage())
	})

	t.Run("unparseable body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer srv.Close()

		_, err := token.NewExchanger(srv.Client()).Exchange(context.Background(), srv.URL, testRequest())
		require.Error(t, err)
		require.True(t, errors.Is(err, cberrors.ErrInvalidTokenResponse))
	})

	t.Run("transport failure reports the cause", func(t *testing.T) {
		client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("network down")
		})}

		_, err := token.NewExchanger(client).Exchange(context.Background(), "http://token.test/api/oauth/token", testRequest())
		require.Error(t, err)
		require.Equal(t, "network down", err.Error())
	})

	t.Run("malformed endpoint", func(t *testing.T) {
		_, err := token.NewExchanger(nil).Exchange(context.Background(), "http://[::1", testRequest())
		require.Error(t, err)
		require.True(t, errors.Is(err, cberrors.ErrInvalidEndpoint))
	})

	t.Run("client from context wins", func(t *testing.T) {
		var used bool
		ctxClient := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			used = true
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{},
				Body:       io.NopCloser(strings.NewReader(`{"access_token":"from-context"}`)),
				Request:    r,
			}, nil
		})}
		ctx := oidc.ClientContext(context.Background(), ctxClient)

		result, err := token.NewExchanger(nil).Exchange(ctx, "http://token.test/api/oauth/token", testRequest())
		require.NoError(t, err)
		require.True(t, used)
		require.Equal(t, `{"access_token":"from-context"}`, string(result.Response.Bytes()))
	})
}
