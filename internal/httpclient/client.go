package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ClientWrapper wraps http.Client with the REST verbs the object model needs.
// Paths are relative resource identifiers; the wrapper resolves them against
// the site base URL before issuing the request.
type ClientWrapper interface {
	DoGET(path string) (json.RawMessage, error)
	DoPOST(path string, body []byte, headers map[string]string) (json.RawMessage, error)
	DoDELETE(path string) error
	DoDownload(path string) (io.ReadCloser, error)
}

type clientWrapper struct {
	client  *http.Client
	baseURL url.URL
	logger  *slog.Logger
}

// NewClientWrapper creates a new client wrapper resolving requests against baseURL
func NewClientWrapper(client *http.Client, baseURL url.URL, logger *slog.Logger) (ClientWrapper, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &clientWrapper{client: client, baseURL: baseURL, logger: logger}, nil
}

// NewDefaultHTTPClient returns an http.Client that transparently retries
// connection-level failures on idempotent requests. Fragment upload calls
// carry their own ordering contract and are never retried above this layer.
func NewDefaultHTTPClient() *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil
	return rc.StandardClient()
}

// resolveURL resolves a resource path against the base URL
func (c *clientWrapper) resolveURL(pathStr string) (*url.URL, error) {
	ref, err := url.Parse(pathStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resource path %q: %w", pathStr, err)
	}
	return c.baseURL.ResolveReference(ref), nil
}
