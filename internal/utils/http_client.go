package utils

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/logger"
	"go.uber.org/zap"
)

const maxLoggedBody = 2000

// redactedParams are query parameters whose values never reach the log.
var redactedParams = []string{"key", "api_key"}

// LoggingTransport implements http.RoundTripper and logs requests and responses
type LoggingTransport struct {
	Transport http.RoundTripper
}

// RoundTrip executes a single HTTP transaction and logs the request and response
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	log := logger.Named("http")
	target := redactURL(req.URL)

	reqBodyLog := "empty"
	if req.Body != nil && req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			bodyBytes, _ := io.ReadAll(body)
			body.Close()
			if len(bodyBytes) > 0 {
				reqBodyLog = truncate(bodyBytes)
			}
		}
	}
	log.Debug("outbound request",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.String("body", reqBodyLog),
	)

	start := time.Now()

	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	resp, err := transport.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		log.Warn("outbound request failed",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	respBodyLog := "empty"
	if resp.Body != nil {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewBuffer(bodyBytes)) // Restore body
		if len(bodyBytes) > 0 {
			respBodyLog = truncate(bodyBytes)
		}
	}

	log.Debug("outbound response",
		zap.String("method", req.Method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
		zap.String("body", respBodyLog),
	)

	return resp, nil
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}

func redactURL(u *url.URL) string {
	clone := *u
	q := clone.Query()
	for _, p := range redactedParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
		}
	}
	clone.RawQuery = q.Encode()
	return clone.String()
}

// NewHTTPClient returns a new http.Client with logging enabled
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &LoggingTransport{
			Transport: http.DefaultTransport,
		},
	}
}
