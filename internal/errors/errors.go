package errors

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced by the OAuth callback
var (
	// The authorization server redirected back with an error parameter
	ErrUpstreamAuthorization = errors.New("authorization server returned an error")
	// The redirect carried neither an error nor a code
	ErrMissingCode = errors.New("authorization code not provided")
	// The token endpoint answered with a non-2xx status
	ErrTokenExchange = errors.New("token exchange failed")
	// Anything else: transport failures, unreadable responses, bad configuration
	ErrServer = errors.New("server error")
)

// Token endpoint errors
var (
	ErrInvalidTokenResponse = errors.New("invalid token response")
	ErrInvalidEndpoint      = errors.New("invalid token endpoint")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
