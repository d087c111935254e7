package httpclient

import (
	"fmt"
	"net/http"
)

// DoDELETE sends a DELETE request against the resolved resource path
func (c *clientWrapper) DoDELETE(pathStr string) error {
	c.logger.Debug("starting DELETE request", "path", pathStr)

	resolvedURL, err := c.resolveURL(pathStr)
	if err != nil {
		c.logger.Debug("failed to resolve resource path", "path", pathStr, "error", err)
		return fmt.Errorf("failed to resolve resource path %q: %w", pathStr, err)
	}

	req, err := http.NewRequest(http.MethodDelete, resolvedURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create DELETE request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// Unconditional delete; versioned resources are matched by the caller
	req.Header.Set("If-Match", "*")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "error", err)
		return fmt.Errorf("failed to send DELETE request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("received response", "status", resp.Status)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return readRemoteError(resp)
	}
	return nil
}
