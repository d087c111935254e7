package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
)

// RemoteError is a non-success response from the remote service. Code and
// Message are extracted from the OData error envelope when present.
type RemoteError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("remote error: HTTP %d: %s", e.StatusCode, e.Message)
}

// readRemoteError turns a non-2xx response into a RemoteError, unwrapping
// the OData error envelope from either a JSON or an XML body.
func readRemoteError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{StatusCode: resp.StatusCode}
	}

	remoteErr := &RemoteError{StatusCode: resp.StatusCode}
	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.Contains(contentType, "xml"):
		remoteErr.Code, remoteErr.Message = parseXMLError(body)
	default:
		remoteErr.Code, remoteErr.Message = parseJSONError(body)
	}
	if remoteErr.Message == "" {
		remoteErr.Message = strings.TrimSpace(string(body))
	}
	return remoteErr
}

// odataError matches both the legacy "odata.error" and the plain "error"
// envelope; the message is either a bare string or {lang, value}.
type odataError struct {
	Code    string          `json:"code"`
	Message json.RawMessage `json:"message"`
}

func parseJSONError(body []byte) (code, message string) {
	var envelope struct {
		Legacy *odataError `json:"odata.error"`
		Plain  *odataError `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", ""
	}

	inner := envelope.Plain
	if envelope.Legacy != nil {
		inner = envelope.Legacy
	}
	if inner == nil {
		return "", ""
	}

	code = inner.Code
	if len(inner.Message) == 0 {
		return code, ""
	}
	var plain string
	if err := json.Unmarshal(inner.Message, &plain); err == nil {
		return code, plain
	}
	var wrapped struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(inner.Message, &wrapped); err == nil {
		return code, wrapped.Value
	}
	return code, ""
}

func parseXMLError(body []byte) (code, message string) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return "", ""
	}
	root := doc.Root()
	if root == nil || root.Tag != "error" {
		return "", ""
	}
	if el := root.FindElement("./code"); el != nil {
		code = strings.TrimSpace(el.Text())
	}
	if el := root.FindElement("./message"); el != nil {
		message = strings.TrimSpace(el.Text())
	}
	return code, message
}
