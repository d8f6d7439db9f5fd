package xmlrpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	kolo "github.com/kolo/xmlrpc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/patrickwarner/oxclient/internal/oxapi"
)

var _ oxapi.Transport = (*Client)(nil)

// maxErrorBody caps how much of a non-200 body is quoted in errors.
const maxErrorBody = 512

// Client posts XML-RPC calls to a single endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a transport for endpoint. The timeout bounds each call,
// including reading the response.
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// Endpoint returns the URL calls are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

// Call implements oxapi.Transport. A <fault> response is returned as an
// *oxapi.RemoteFault; everything else that goes wrong is a plain error.
func (c *Client) Call(ctx context.Context, method string, args []any) (any, error) {
	for i, arg := range args {
		if err := checkValue(arg); err != nil {
			return nil, fmt.Errorf("encode %s: param %d: %w", method, i, err)
		}
	}
	body, err := kolo.EncodeMethodCall(method, args...)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", method, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("User-Agent", "oxclient")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(snippet))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	response := kolo.Response(data)
	if err := response.Err(); err != nil {
		var fault kolo.FaultError
		if errors.As(err, &fault) {
			return nil, &oxapi.RemoteFault{Method: method, Code: fault.Code, Message: fault.String}
		}
		return nil, fmt.Errorf("decode %s: %w: %v", method, ErrMalformedResponse, err)
	}

	var result any
	if err := response.Unmarshal(&result); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", method, ErrMalformedResponse, err)
	}
	return normalize(result), nil
}
