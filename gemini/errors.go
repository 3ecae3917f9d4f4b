package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/fwojciec/stratchat"
	"google.golang.org/genai"
)

// ClassifyError converts a Gemini client error into an application error
// whose code selects the user-facing failure message. Application errors
// pass through unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *stratchat.Error
	if errors.As(err, &appErr) {
		return err
	}

	code := errorCode(err)
	return stratchat.WrapError(code, err, "gemini: %s", code)
}

func errorCode(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return stratchat.ETIMEOUT
	}

	if apiErr, ok := asAPIError(err); ok {
		if code := apiErrorCode(apiErr); code != "" {
			return code
		}
	}

	if code := messageCode(err.Error()); code != "" {
		return code
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return stratchat.ETIMEOUT
		}
		return stratchat.EUNAVAILABLE
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return stratchat.EUNAVAILABLE
	}
	return stratchat.EINTERNAL
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return genai.APIError{}, false
}

func apiErrorCode(e genai.APIError) string {
	if code := messageCode(e.Status + " " + e.Message); code != "" {
		return code
	}
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return stratchat.EUNAUTHORIZED
	case http.StatusTooManyRequests:
		return stratchat.EQUOTA
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return stratchat.ETIMEOUT
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return stratchat.EUNAVAILABLE
	}
	return ""
}

// messageCode applies the message heuristics used for errors without a
// structured status.
func messageCode(msg string) string {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "DEADLINE_EXCEEDED"):
		return stratchat.ETIMEOUT
	case strings.Contains(msg, "API_KEY_INVALID"),
		strings.Contains(msg, "API key not valid"),
		strings.Contains(msg, "UNAUTHENTICATED"),
		strings.Contains(msg, "PERMISSION_DENIED"):
		return stratchat.EUNAUTHORIZED
	case strings.Contains(lower, "quota"), strings.Contains(msg, "RESOURCE_EXHAUSTED"):
		return stratchat.EQUOTA
	case strings.Contains(msg, "SAFETY"):
		return stratchat.ESAFETY
	case strings.Contains(lower, "fetch") && strings.Contains(lower, "failed"),
		strings.Contains(msg, "UNAVAILABLE"):
		return stratchat.EUNAVAILABLE
	}
	return ""
}
