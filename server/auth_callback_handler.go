package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/oauth-callback/internal/errors"
	"github.com/jrsteele09/oauth-callback/oauth2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// OAuthCallbackHandler completes the authorization code flow and always
// answers with a 302 back to the application origin, carrying either
// token_data or error/error_description.
//
// The state parameter is logged but not verified.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Works for both query params and POST form data (form_post response mode)
		params := callbackParamsFromRequest(r)
		origin := requestOrigin(r)

		logger := log.With().
			Str("request_id", uuid.NewString()).
			Str("origin", origin).
			Bool("has_state", params.State != "").
			Logger()
		ctx := logger.WithContext(r.Context())

		result := s.completeAuthorization(ctx, origin, params)
		s.metrics.observeRedirect(result.outcome())

		if result.err != nil {
			logger.Warn().
				Err(result.err).
				Str("outcome", result.outcome()).
				Int("token_status", result.err.StatusCode).
				Msg("OAuth callback failed")
		} else {
			logger.Info().Msg("OAuth callback completed")
		}

		result.redirect(w, r, origin)
	}
}

// completeAuthorization runs the callback steps in order; the first one to
// produce an outcome wins. Panics become server_error.
func (s *Server) completeAuthorization(ctx context.Context, origin string, params callbackParams) (result callbackResult) {
	defer func() {
		if rec := recover(); rec != nil {
			zerolog.Ctx(ctx).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic during OAuth callback")
			result = failed(serverError(fmt.Errorf("%v", rec)))
		}
	}()

	// Check for authorization errors
	if params.Error != "" {
		return failed(upstreamError(params.Error, params.ErrorDescription))
	}

	if params.Code == "" {
		return failed(missingCodeError())
	}

	tokenData, err := s.exchangeCode(ctx, origin, params.Code)
	if err != nil {
		return failed(asCallbackError(err))
	}
	return succeeded(tokenData)
}

// exchangeCode redeems code and returns the token response as base64 JSON.
// The redirect_uri is derived from the inbound request's origin, never from
// the API base URL.
func (s *Server) exchangeCode(ctx context.Context, origin, code string) (string, error) {
	settings, err := s.config.GetTokenExchangeSettings()
	if err != nil {
		return "", err
	}

	req := oauth2.NewAuthorizationCodeRequest(code, origin+RouteCallback, settings.ClientID, settings.ClientSecret)

	start := time.Now()
	result, err := s.exchanger.Exchange(ctx, settings.TokenEndpoint(), req)
	s.metrics.observeExchange(start, result, err)
	if err != nil {
		return "", err
	}

	if !result.OK() {
		if result.Response.IsNull() {
			return "", fmt.Errorf("%w: token endpoint returned %d with a null body", errors.ErrInvalidTokenResponse, result.StatusCode)
		}
		return "", tokenExchangeError(result.StatusCode, result.Response.ErrorMessage())
	}

	zerolog.Ctx(ctx).Debug().
		Str("subject", result.Response.Subject()).
		Msg("Authorization code exchanged")
	return result.Response.Encode(), nil
}
