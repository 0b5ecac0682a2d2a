package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/weathermate/weather-mate/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// statusForCode maps domain error codes onto HTTP statuses. Upstream faults
// surface as gateway errors so clients can tell them from bad requests.
func statusForCode(code string) int {
	switch code {
	case "invalid_input":
		return http.StatusBadRequest
	case "city_not_found":
		return http.StatusNotFound
	case "rate_limited":
		return http.StatusTooManyRequests
	case "upstream_timeout":
		return http.StatusGatewayTimeout
	case "invalid_api_key", "no_connection", "network_error", "upstream_error", "invalid_response":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func domainHTTPError(err error, fallbackCode string) *HTTPError {
	code := apperrors.CodeOf(err)
	if code == "" {
		code = fallbackCode
	}
	return NewHTTPError(statusForCode(code), code, errMessage(err), err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
