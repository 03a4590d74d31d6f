package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vectorgov/vectorgov-go/internal/alert"
	"github.com/vectorgov/vectorgov-go/internal/metrics"
	"github.com/vectorgov/vectorgov-go/pkg/utils"
)

const defaultRequestTimeout = 30 * time.Second

// Config holds API client configuration
type Config struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
	MaxIdleConns   int
}

// Client is a typed wrapper over the VectorGov semantic-search HTTP
// API. The wire format is snake_case JSON; response types expose
// camelCase fields. Upstream server failures are reported to the alert
// dispatcher when one is attached.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
	metrics    *metrics.Metrics
	alerts     *alert.Dispatcher
}

// apiErrorEnvelope is the wire shape of an API error response
type apiErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Detail string `json:"detail"`
}

// NewClient creates a VectorGov API client. dispatcher may be nil;
// upstream failures are then only logged.
func NewClient(cfg Config, dispatcher *alert.Dispatcher) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, utils.NewAppError(utils.ErrCodeConfiguration, "API base URL is required")
	}
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        maxIdle,
				MaxIdleConnsPerHost: maxIdle,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:  utils.GetLogger(),
		metrics: metrics.Get(),
		alerts:  dispatcher,
	}, nil
}

// do executes one API request. body is marshaled as JSON when non-nil;
// a 2xx response is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return utils.NewAppError(utils.ErrCodeInternal, "failed to marshal request body", err.Error())
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return utils.NewAppError(utils.ErrCodeInternal, "failed to create request", err.Error())
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "vectorgov-go/1.0")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordAPIRequest(path, "transport_error", time.Since(start))
		c.logger.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		}).Error("API request failed")
		c.reportFailure(ctx, path, 0, err.Error())
		return utils.NewAppError(utils.ErrCodeConnection, "failed to reach VectorGov API", err.Error())
	}
	defer resp.Body.Close()

	c.metrics.RecordAPIRequest(path, fmt.Sprintf("%d", resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.classifyError(ctx, path, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return utils.NewAppError(utils.ErrCodeAPI, "failed to decode API response", err.Error())
		}
	}

	c.logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("API request completed")

	return nil
}

// classifyError converts a non-2xx response into a typed error. Server
// failures additionally raise an API error alert; 4xx responses are
// caller errors and stay quiet.
func (c *Client) classifyError(ctx context.Context, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := http.StatusText(resp.StatusCode)
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error.Message != "" {
			message = envelope.Error.Message
		} else if envelope.Detail != "" {
			message = envelope.Detail
		}
	}

	if resp.StatusCode >= 500 {
		c.reportFailure(ctx, path, resp.StatusCode, message)
	}

	code := utils.ErrCodeAPI
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		code = utils.ErrCodeAuth
	case resp.StatusCode == http.StatusNotFound:
		code = utils.ErrCodeNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		code = utils.ErrCodeValidation
	case resp.StatusCode == http.StatusTooManyRequests:
		code = utils.ErrCodeRateLimit
	case resp.StatusCode >= 500:
		code = utils.ErrCodeServer
	}

	return utils.NewAppError(code, message,
		fmt.Sprintf("%s returned status %d", path, resp.StatusCode)).WithStatusCode(resp.StatusCode)
}

// reportFailure forwards an upstream failure to the alert dispatcher.
func (c *Client) reportFailure(ctx context.Context, path string, statusCode int, message string) {
	if c.alerts == nil {
		return
	}
	c.alerts.AlertAPIError(ctx, path, statusCode, message)
}
