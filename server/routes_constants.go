package server

// Route path constants
const (
	// RouteCallback is where the authorization server sends the browser back.
	// It is also the path of the redirect_uri sent to the token endpoint, so it
	// must match what is registered with the authorization server.
	RouteCallback = "/oauth/callback"

	RouteMetrics = "/metrics"
)
