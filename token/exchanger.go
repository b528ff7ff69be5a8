package token

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/jrsteele09/oauth-callback/internal/errors"
	"github.com/jrsteele09/oauth-callback/oauth2"
	xoauth2 "golang.org/x/oauth2"
)

// maxResponseBytes bounds how much of a token endpoint response is read.
const maxResponseBytes = 1 << 20

// Result is the outcome of a completed round trip to the token endpoint.
// A non-2xx status is a Result, not an error.
type Result struct {
	StatusCode int
	Response   *oauth2.TokenResponse
}

// OK reports whether the token endpoint answered with a 2xx status.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Exchanger redeems authorization codes at a token endpoint using a JSON body.
type Exchanger struct {
	client *http.Client
}

// NewExchanger returns an Exchanger using client, or a pooled cleanhttp client when client is nil.
func NewExchanger(client *http.Client) *Exchanger {
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return &Exchanger{client: client}
}

// Exchange POSTs req to endpoint and parses the reply as JSON whatever its
// status. No timeout is applied beyond ctx. An *http.Client stored in ctx
// under golang.org/x/oauth2.HTTPClient (see oidc.ClientContext) takes
// precedence over the Exchanger's own client.
func (e *Exchanger) Exchange(ctx context.Context, endpoint string, req oauth2.TokenRequest) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal token request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidEndpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := e.httpClient(ctx).Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "read token response")
	}

	tokenResp, err := oauth2.ParseTokenResponse(data)
	if err != nil {
		return nil, err
	}
	return &Result{StatusCode: resp.StatusCode, Response: tokenResp}, nil
}

func (e *Exchanger) httpClient(ctx context.Context) *http.Client {
	if c, ok := ctx.Value(xoauth2.HTTPClient).(*http.Client); ok && c != nil {
		return c
	}
	return e.client
}

// transportError strips the "Post <url>:" decoration net/http adds so the
// underlying cause is what gets reported back to the browser.
func transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
