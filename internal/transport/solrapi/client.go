// Package solrapi is the HTTP client of the remote index API
// (/search, /solr/collections, /translations).
package solrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrdesk/internal/domain"
	"github.com/kailas-cloud/solrdesk/internal/metrics"
)

const (
	opSearch            = "search"
	opCollections       = "collections"
	opListTranslations  = "translations_list"
	opCreateTranslation = "translation_create"
	opUpdateTranslation = "translation_update"
	opDeleteTranslation = "translation_delete"

	maxErrorBody = 4 << 10
)

// Config holds the index API client settings.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
	// RetryWait is the minimum backoff between GET retries (default 500ms).
	RetryWait time.Duration
	Logger    *zap.Logger
}

// Client talks to the index API. Reads are retried on transport errors and 5xx;
// writes and searches are sent exactly once.
type Client struct {
	baseURL    string
	once       *retryablehttp.Client
	idempotent *retryablehttp.Client
	logger     *zap.Logger
}

// NewClient creates an index API client.
func NewClient(cfg *Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("solrapi: base url is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	return &Client{
		baseURL:    base,
		once:       newRetryClient(httpClient, logger, 0, cfg.RetryWait),
		idempotent: newRetryClient(httpClient, logger, cfg.RetryMax, cfg.RetryWait),
		logger:     logger,
	}, nil
}

func newRetryClient(hc *http.Client, logger *zap.Logger, retryMax int, wait time.Duration) *retryablehttp.Client {
	if wait <= 0 {
		wait = 500 * time.Millisecond
	}
	rc := retryablehttp.NewClient()
	rc.HTTPClient = hc
	rc.RetryMax = retryMax
	rc.RetryWaitMin = wait
	rc.RetryWaitMax = 8 * wait
	rc.Logger = leveledLogger{logger: logger.Sugar()}
	// the last response is returned as-is so non-2xx map onto StatusError
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			metrics.UpstreamRetriesTotal.WithLabelValues(req.Method).Inc()
		}
	}
	return rc
}

// do sends one request and decodes the JSON response into out (when non-nil).
// accept decides which status codes count as success.
func (c *Client) do(
	ctx context.Context, op, method, path string, in, out any, accept func(int) bool,
) error {
	var body any
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = data
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.once
	if method == http.MethodGet {
		hc = c.idempotent
	}

	start := time.Now()
	resp, err := hc.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(op, "transport_error").Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		c.logger.Warn("index api request failed",
			zap.String("operation", op),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.UpstreamRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	if !accept(resp.StatusCode) {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("index api rejected request",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
		return domain.NewStatusError(op, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	c.logger.Debug("index api request",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w: %w", op, domain.ErrTransport, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode response: %w: %w", op, domain.ErrUpstream, err)
	}
	return nil
}

func statusOK(code int) bool { return code == http.StatusOK }

func status2xx(code int) bool { return code >= 200 && code < 300 }

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...any) { l.logger.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...any)  { l.logger.Infow(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...any) { l.logger.Debugw(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.logger.Warnw(msg, kv...) }
