package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/oauth-callback/oauth2"
)

// callbackParams are the parameters the authorization server sends back.
type callbackParams struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// callbackParamsFromRequest reads the callback parameters from the query and,
// for form_post, the body. net/url drops any pair containing ';' or a bad
// percent escape; when that happens the query is re-read leniently so a code
// or error that is present is never reported as missing.
func callbackParamsFromRequest(r *http.Request) callbackParams {
	var values url.Values
	if err := r.ParseForm(); err == nil {
		values = r.Form
	} else {
		values = url.Values{}
		for key, vs := range r.PostForm {
			values[key] = append(values[key], vs...)
		}
		for key, vs := range lenientQuery(r.URL.RawQuery) {
			values[key] = append(values[key], vs...)
		}
	}

	return callbackParams{
		Code:             values.Get(oauth2.ParamCode),
		State:            values.Get(oauth2.ParamState),
		Error:            values.Get(oauth2.ParamError),
		ErrorDescription: values.Get(oauth2.ParamErrorDescription),
	}
}

// lenientQuery splits on '&' and the first '=' only, keeping values whose
// escapes do not decode as they were sent.
func lenientQuery(rawQuery string) url.Values {
	values := url.Values{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		values.Add(lenientUnescape(key), lenientUnescape(value))
	}
	return values
}

func lenientUnescape(s string) string {
	if unescaped, err := url.QueryUnescape(s); err == nil {
		return unescaped
	}
	return s
}
