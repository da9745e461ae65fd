package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/bkyoung/prpdf/internal/adapter/httpapi"
)

const apiName = "github"

// MapHTTPError maps GitHub API HTTP status codes to typed httpapi.Error.
func MapHTTPError(statusCode int, body []byte) *httpapi.Error {
	message := parseErrorMessage(statusCode, body)

	switch statusCode {
	case http.StatusUnauthorized:
		return &httpapi.Error{
			Type:       httpapi.ErrTypeAuthentication,
			Message:    message + " (check GITHUB_TOKEN)",
			StatusCode: statusCode,
			API:        apiName,
		}

	case http.StatusForbidden:
		// GitHub reports rate limiting as 403 with a rate-limit message.
		if strings.Contains(strings.ToLower(message), "rate limit") {
			return &httpapi.Error{
				Type:       httpapi.ErrTypeRateLimit,
				Message:    message,
				StatusCode: statusCode,
				API:        apiName,
			}
		}
		return &httpapi.Error{
			Type:       httpapi.ErrTypeAuthentication,
			Message:    message,
			StatusCode: statusCode,
			API:        apiName,
		}

	case http.StatusNotFound:
		return &httpapi.Error{
			Type:       httpapi.ErrTypeNotFound,
			Message:    message + " (check the PR URL; private repos need GITHUB_TOKEN)",
			StatusCode: statusCode,
			API:        apiName,
		}

	case http.StatusTooManyRequests:
		return &httpapi.Error{
			Type:       httpapi.ErrTypeRateLimit,
			Message:    message,
			StatusCode: statusCode,
			API:        apiName,
		}

	case http.StatusUnprocessableEntity:
		return &httpapi.Error{
			Type:       httpapi.ErrTypeInvalidRequest,
			Message:    message,
			StatusCode: statusCode,
			API:        apiName,
		}

	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return &httpapi.Error{
			Type:       httpapi.ErrTypeServiceUnavailable,
			Message:    message,
			StatusCode: statusCode,
			API:        apiName,
		}

	default:
		return &httpapi.Error{
			Type:       httpapi.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			API:        apiName,
		}
	}
}

// parseErrorMessage extracts a user-friendly error message from GitHub's response.
func parseErrorMessage(statusCode int, body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
