package oauth2

// TokenRequest is the JSON body POSTed to the token endpoint.
type TokenRequest struct {
	// GrantType is always "authorization_code" for a callback exchange.
	GrantType GrantType `json:"grant_type"`

	// Code is the authorization code received on the callback.
	// Usage: Exchanged once for tokens, then becomes invalid
	Code string `json:"code"`

	// RedirectURI must match, byte for byte, the URI used in the authorization request.
	// Example: "https://app.example.com/oauth/callback"
	RedirectURI string `json:"redirect_uri"`

	ClientID string `json:"client_id"`

	// ClientSecret is the secret credential for confidential clients.
	// Security: Never log or expose this value
	ClientSecret string `json:"client_secret"`
}

// NewAuthorizationCodeRequest builds the token request for an authorization code.
func NewAuthorizationCodeRequest(code, redirectURI, clientID, clientSecret string) TokenRequest {
	return TokenRequest{
		GrantType:    AuthorizationCodeGrant,
		Code:         code,
		RedirectURI:  redirectURI,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
}
