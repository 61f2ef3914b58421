package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cns-tools/store-creator/internal/utils"
	"go.uber.org/zap"
	"resty.dev/v3"
)

const maxLoggedBodyLength = 1000

// HTTPClient is a base HTTP client using resty for API requests.
type HTTPClient struct {
	client *resty.Client
}

// HTTPError represents an HTTP error response from the remote API.
// It exposes the status code so callers can detect specific cases (e.g., 404)
// without parsing text messages.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Options configures an HTTPClient.
type Options struct {
	// Timeout bounds each request; zero leaves resty's default (none)
	Timeout time.Duration
	// TLSConfig carries client certificates for mutual TLS; nil uses the system defaults
	TLSConfig *tls.Config
}

// NewHTTPClient creates a new HTTPClient with JSON headers. Requests use absolute
// URLs because the target host depends on the group's country.
func NewHTTPClient(opts Options) *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.TLSConfig != nil {
		client.SetTLSClientConfig(opts.TLSConfig)
	}
	return &HTTPClient{client: client}
}

// DoReq performs an HTTP request with the given method, URL and body.
// Responses with status >= 400 are returned as *HTTPError; long bodies are truncated.
func (c *HTTPClient) DoReq(ctx context.Context, method, url string, body any) (*resty.Response, error) {
	request := c.client.R().SetContext(ctx)
	if body != nil {
		request.SetBody(body)
	}

	utils.Logger.Debug("HTTP request start",
		zap.String("method", method),
		zap.String(utils.FieldURL, url))

	start := time.Now()
	response, err := request.Execute(method, url)
	duration := time.Since(start)
	if err != nil {
		utils.Logger.Error("HTTP request failed",
			zap.String("method", method),
			zap.String(utils.FieldURL, url),
			zap.Duration("duration", duration),
			zap.Error(err))
		return nil, err
	}

	if response.StatusCode() >= http.StatusBadRequest {
		responseBody := strings.TrimSpace(response.String())
		if len(responseBody) > maxLoggedBodyLength {
			responseBody = responseBody[:maxLoggedBodyLength] + "…"
		}
		fields := []zap.Field{
			zap.String("method", method),
			zap.String(utils.FieldURL, url),
			zap.Int("status_code", response.StatusCode()),
			zap.String("body", responseBody),
			zap.Duration("duration", duration),
		}
		if response.StatusCode() >= http.StatusInternalServerError {
			utils.Logger.Error("API error response (server)", fields...)
		} else {
			utils.Logger.Warn("API error response (client)", fields...)
		}
		return nil, &HTTPError{StatusCode: response.StatusCode(), Body: responseBody}
	}

	utils.Logger.Debug("HTTP request completed",
		zap.String("method", method),
		zap.String(utils.FieldURL, url),
		zap.Int("status_code", response.StatusCode()),
		zap.Duration("duration", duration))

	return response, nil
}
