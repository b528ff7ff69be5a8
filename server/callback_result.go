package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/oauth-callback/internal/errors"
	"github.com/jrsteele09/oauth-callback/oauth2"
)

const missingCodeDescription = "Authorization code not provided"

// CallbackError is a failure reported to the application through the error
// and error_description query parameters of the final redirect.
type CallbackError struct {
	// Code is the value of the error parameter.
	Code string
	// Description is the value of the error_description parameter.
	Description string
	// StatusCode is the token endpoint's HTTP status, for token_error only.
	StatusCode int

	outcome string
	kind    error
	cause   error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *CallbackError) Unwrap() []error {
	errs := []error{e.kind}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// Outcome is a bounded label for the failure kind, safe to use in metrics.
func (e *CallbackError) Outcome() string {
	return e.outcome
}

func upstreamError(code, description string) *CallbackError {
	return &CallbackError{
		Code:        code,
		Description: description,
		outcome:     "upstream_error",
		kind:        errors.ErrUpstreamAuthorization,
	}
}

func missingCodeError() *CallbackError {
	return &CallbackError{
		Code:        oauth2.ErrorCodeMissingCode,
		Description: missingCodeDescription,
		outcome:     oauth2.ErrorCodeMissingCode,
		kind:        errors.ErrMissingCode,
	}
}

func tokenExchangeError(statusCode int, message string) *CallbackError {
	return &CallbackError{
		Code:        oauth2.ErrorCodeTokenError,
		Description: message,
		StatusCode:  statusCode,
		outcome:     oauth2.ErrorCodeTokenError,
		kind:        errors.ErrTokenExchange,
	}
}

func serverError(err error) *CallbackError {
	return &CallbackError{
		Code:        oauth2.ErrorCodeServerError,
		Description: err.Error(),
		outcome:     oauth2.ErrorCodeServerError,
		kind:        errors.ErrServer,
		cause:       err,
	}
}

// asCallbackError passes categorised failures through and files everything
// else under server_error.
func asCallbackError(err error) *CallbackError {
	var cbErr *CallbackError
	if errors.As(err, &cbErr) {
		return cbErr
	}
	return serverError(err)
}

// callbackResult is exactly one of: encoded token data, or a failure.
type callbackResult struct {
	tokenData string
	err       *CallbackError
}

func succeeded(tokenData string) callbackResult {
	return callbackResult{tokenData: tokenData}
}

func failed(err *CallbackError) callbackResult {
	return callbackResult{err: err}
}

func (r callbackResult) outcome() string {
	if r.err != nil {
		return r.err.Outcome()
	}
	return outcomeSuccess
}

func (r callbackResult) location(origin string) string {
	if r.err != nil {
		return redirectLocation(origin,
			oauth2.ParamError, r.err.Code,
			oauth2.ParamErrorDescription, r.err.Description,
		)
	}
	return redirectLocation(origin, tokenDataParam, r.tokenData)
}

func (r callbackResult) redirect(w http.ResponseWriter, req *http.Request, origin string) {
	http.Redirect(w, req, r.location(origin), http.StatusFound)
}
