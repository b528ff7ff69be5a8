package oauth2

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/oauth-callback/internal/errors"
)

// DefaultTokenErrorMessage is reported when a failed token response says nothing useful.
const DefaultTokenErrorMessage = "Token exchange failed"

// TokenResponse is the JSON document returned by the token endpoint.
// The document is opaque: it is kept verbatim (whitespace removed) so that it
// can be handed to the application exactly as the token endpoint produced it.
// Only the RFC 6749 error members are interpreted.
type TokenResponse struct {
	raw    []byte
	fields map[string]json.RawMessage
}

// ParseTokenResponse validates body as JSON and wraps it. Any JSON value is
// accepted; members can only be read when the value is an object.
func ParseTokenResponse(body []byte) (*TokenResponse, error) {
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, bytes.TrimSpace(body)); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidTokenResponse, err)
	}

	t := &TokenResponse{raw: compacted.Bytes()}
	if len(t.raw) > 0 && t.raw[0] == '{' {
		if err := json.Unmarshal(t.raw, &t.fields); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrInvalidTokenResponse, err)
		}
	}
	return t, nil
}

// DecodeTokenData reverses Encode.
func DecodeTokenData(tokenData string) (*TokenResponse, error) {
	body, err := base64.StdEncoding.DecodeString(tokenData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidTokenResponse, err)
	}
	return ParseTokenResponse(body)
}

// Bytes returns the compacted JSON document.
func (t *TokenResponse) Bytes() []byte {
	return t.raw
}

// Encode returns the document as standard, padded base64.
func (t *TokenResponse) Encode() string {
	return base64.StdEncoding.EncodeToString(t.raw)
}

func (t *TokenResponse) ErrorCode() string {
	return t.messageField("error")
}

func (t *TokenResponse) ErrorDescription() string {
	return t.messageField("error_description")
}

// IsNull reports whether the whole document is the JSON literal null.
func (t *TokenResponse) IsNull() bool {
	return string(t.raw) == "null"
}

// ErrorMessage picks the most descriptive message available for a failed
// exchange: error_description, then error, then DefaultTokenErrorMessage.
func (t *TokenResponse) ErrorMessage() string {
	candidates := []func() string{
		t.ErrorDescription,
		t.ErrorCode,
	}
	for _, candidate := range candidates {
		if msg := candidate(); msg != "" {
			return msg
		}
	}
	return DefaultTokenErrorMessage
}

// Subject returns the "sub" claim of the id_token, or of the access_token when
// that is a JWT. The signature is NOT verified; use the value for log
// correlation only.
func (t *TokenResponse) Subject() string {
	parser := jwt.NewParser()
	for _, name := range []string{"id_token", "access_token"} {
		raw := t.stringField(name)
		if raw == "" {
			continue
		}
		claims := jwt.MapClaims{}
		if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
			continue
		}
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			return sub
		}
	}
	return ""
}

// messageField renders a top-level member as message text. Strings are used
// as-is, non-zero numbers keep their JSON spelling and true becomes "true".
// Missing, null, false, zero and structured members yield "".
func (t *TokenResponse) messageField(name string) string {
	raw, ok := t.fields[name]
	if !ok {
		return ""
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v != 0 {
			return string(raw)
		}
	case bool:
		if v {
			return "true"
		}
	}
	return ""
}

// stringField returns a top-level string member, or "" when it is missing or
// not a string.
func (t *TokenResponse) stringField(name string) string {
	raw, ok := t.fields[name]
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}
