package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DoGET sends a GET request and returns the raw JSON response body
func (c *clientWrapper) DoGET(pathStr string) (json.RawMessage, error) {
	c.logger.Debug("starting GET request", "path", pathStr)

	resolvedURL, err := c.resolveURL(pathStr)
	if err != nil {
		c.logger.Debug("failed to resolve resource path", "path", pathStr, "error", err)
		return nil, fmt.Errorf("failed to resolve resource path %q: %w", pathStr, err)
	}

	req, err := http.NewRequest(http.MethodGet, resolvedURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "error", err)
		return nil, fmt.Errorf("failed to send GET request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("received response", "status", resp.Status)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, readRemoteError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GET response body: %w", err)
	}
	return body, nil
}

// DoDownload sends a GET request and returns the raw response stream.
// The caller owns the returned ReadCloser.
func (c *clientWrapper) DoDownload(pathStr string) (io.ReadCloser, error) {
	c.logger.Debug("starting download", "path", pathStr)

	resolvedURL, err := c.resolveURL(pathStr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve resource path %q: %w", pathStr, err)
	}

	resp, err := c.client.Get(resolvedURL.String())
	if err != nil {
		c.logger.Debug("request failed", "error", err)
		return nil, fmt.Errorf("failed to send download request: %w", err)
	}

	c.logger.Debug("received response", "status", resp.Status)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, readRemoteError(resp)
	}
	return resp.Body, nil
}
