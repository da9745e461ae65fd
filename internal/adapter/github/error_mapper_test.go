package github

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkyoung/prpdf/internal/adapter/httpapi"
)

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantType   httpapi.ErrorType
		contains   string
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"message": "Bad credentials"}`,
			wantType:   httpapi.ErrTypeAuthentication,
			contains:   "GITHUB_TOKEN",
		},
		{
			name:       "forbidden rate limit",
			statusCode: http.StatusForbidden,
			body:       `{"message": "API rate limit exceeded for 1.2.3.4"}`,
			wantType:   httpapi.ErrTypeRateLimit,
			contains:   "rate limit",
		},
		{
			name:       "forbidden without rate limit",
			statusCode: http.StatusForbidden,
			body:       `{"message": "Resource not accessible by integration"}`,
			wantType:   httpapi.ErrTypeAuthentication,
		},
		{
			name:       "not found",
			statusCode: http.StatusNotFound,
			body:       `{"message": "Not Found"}`,
			wantType:   httpapi.ErrTypeNotFound,
			contains:   "private repos",
		},
		{
			name:       "too many requests",
			statusCode: http.StatusTooManyRequests,
			body:       `{"message": "slow down"}`,
			wantType:   httpapi.ErrTypeRateLimit,
		},
		{
			name:       "unprocessable",
			statusCode: http.StatusUnprocessableEntity,
			body:       `{"message": "Validation Failed"}`,
			wantType:   httpapi.ErrTypeInvalidRequest,
		},
		{
			name:       "bad gateway",
			statusCode: http.StatusBadGateway,
			body:       "",
			wantType:   httpapi.ErrTypeServiceUnavailable,
		},
		{
			name:       "teapot is unknown",
			statusCode: http.StatusTeapot,
			body:       "",
			wantType:   httpapi.ErrTypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(tt.statusCode, []byte(tt.body))
			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, tt.statusCode, err.StatusCode)
			assert.Equal(t, apiName, err.API)
			if tt.contains != "" {
				assert.Contains(t, err.Message, tt.contains)
			}
		})
	}
}

func TestParseErrorMessageFallsBackToStatus(t *testing.T) {
	assert.Equal(t, "HTTP 500", parseErrorMessage(500, []byte("not json")))
	assert.Equal(t, "HTTP 404", parseErrorMessage(404, nil))
	assert.Equal(t, "Custom", parseErrorMessage(400, []byte(`{"message": "Custom"}`)))
}
