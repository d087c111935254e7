package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/docker/go-units"
)

// DoPOST sends a POST request and returns the raw JSON response body.
// Extra headers override the defaults; a Content-Type of application/json
// is assumed unless the caller sets one.
func (c *clientWrapper) DoPOST(pathStr string, body []byte, headers map[string]string) (json.RawMessage, error) {
	c.logger.Debug("starting POST request",
		"path", pathStr,
		"body_size", units.HumanSize(float64(len(body))))

	resolvedURL, err := c.resolveURL(pathStr)
	if err != nil {
		c.logger.Debug("failed to resolve resource path", "path", pathStr, "error", err)
		return nil, fmt.Errorf("failed to resolve resource path %q: %w", pathStr, err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(http.MethodPost, resolvedURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create POST request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "error", err)
		return nil, fmt.Errorf("failed to send POST request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("received response", "status", resp.Status)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readRemoteError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read POST response body: %w", err)
	}
	return respBody, nil
}
