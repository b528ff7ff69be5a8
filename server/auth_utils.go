package server

import (
	"net/http"
	"net/url"
	"strings"
)

const tokenDataParam = "token_data"

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		// Proxy chains append: "https, http"
		scheme, _, _ := strings.Cut(forwarded, ",")
		switch scheme = strings.ToLower(strings.TrimSpace(scheme)); scheme {
		case "http", "https":
			return scheme
		}
	}
	return "http"
}

var defaultPorts = map[string]string{
	"http":  ":80",
	"https": ":443",
}

// requestOrigin is the scheme and host the browser used to reach us, in the
// serialized form browsers use: lower-case host, default port omitted.
func requestOrigin(r *http.Request) string {
	scheme := getScheme(r)
	host := strings.ToLower(r.Host)
	host = strings.TrimSuffix(host, defaultPorts[scheme])
	return scheme + "://" + host
}

// url.QueryEscape escapes these; encodeURIComponent leaves them alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeQueryComponent escapes s the way encodeURIComponent does: spaces as
// %20 rather than '+', and !'()* left as they are.
func encodeQueryComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// redirectLocation builds "{origin}/?k1=v1&k2=v2" from alternating keys and
// values, preserving their order.
func redirectLocation(origin string, keyValues ...string) string {
	var b strings.Builder
	b.WriteString(origin)
	b.WriteString("/?")
	for i := 0; i+1 < len(keyValues); i += 2 {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(encodeQueryComponent(keyValues[i]))
		b.WriteByte('=')
		b.WriteString(encodeQueryComponent(keyValues[i+1]))
	}
	return b.String()
}
