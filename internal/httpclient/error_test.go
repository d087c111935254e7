package httpclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJSONError(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "legacy envelope with wrapped message",
			body:        `{"odata.error":{"code":"-1, Microsoft.SharePoint.Client.InvalidClientQueryException","message":{"lang":"en-US","value":"The expression is not valid."}}}`,
			wantCode:    "-1, Microsoft.SharePoint.Client.InvalidClientQueryException",
			wantMessage: "The expression is not valid.",
		},
		{
			name:        "plain envelope with bare message",
			body:        `{"error":{"code":"itemNotFound","message":"The resource could not be found."}}`,
			wantCode:    "itemNotFound",
			wantMessage: "The resource could not be found.",
		},
		{
			name: "not an error envelope",
			body: `{"ok":true}`,
		},
		{
			name: "not JSON",
			body: `<html>gateway timeout</html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := parseJSONError([]byte(tt.body))
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestParseXMLError(t *testing.T) {
	body := `<?xml version="1.0" encoding="utf-8"?>
<m:error xmlns:m="http://schemas.microsoft.com/ado/2007/08/dataservices/metadata">
  <m:code>-2147024891, System.UnauthorizedAccessException</m:code>
  <m:message xml:lang="en-US">Access denied.</m:message>
</m:error>`

	code, message := parseXMLError([]byte(body))
	assert.Equal(t, "-2147024891, System.UnauthorizedAccessException", code)
	assert.Equal(t, "Access denied.", message)
}

func TestParseXMLErrorMalformed(t *testing.T) {
	code, message := parseXMLError([]byte(`not xml at all`))
	assert.Empty(t, code)
	assert.Empty(t, message)
}

func TestRemoteErrorString(t *testing.T) {
	err := &RemoteError{StatusCode: 409, Message: "The file is checked out."}
	assert.Equal(t, "remote error: HTTP 409: The file is checked out.", err.Error())

	err = &RemoteError{StatusCode: 503}
	assert.Equal(t, "remote error: HTTP 503", err.Error())
}
