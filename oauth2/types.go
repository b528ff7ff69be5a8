package oauth2

// GrantType represents the OAuth 2.0 grant type used at the token endpoint.
type GrantType string

const (
	// AuthorizationCodeGrant exchanges an authorization code for tokens.
	// Token request includes: code, client_id, client_secret, redirect_uri
	AuthorizationCodeGrant GrantType = "authorization_code"
)

// Parameters carried on the redirect back from the authorization server.
const (
	ParamCode             = "code"
	ParamState            = "state"
	ParamError            = "error"
	ParamErrorDescription = "error_description"
)

// Error codes this service adds on top of whatever the authorization server reports.
const (
	ErrorCodeMissingCode = "missing_code"
	ErrorCodeTokenError  = "token_error"
	ErrorCodeServerError = "server_error"
)
