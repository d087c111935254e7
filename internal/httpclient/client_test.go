package httpclient

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWrapper(t *testing.T, handler http.HandlerFunc) ClientWrapper {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base, err := url.Parse(server.URL + "/sites/test/")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wrapper, err := NewClientWrapper(server.Client(), *base, logger)
	require.NoError(t, err)
	return wrapper
}

func TestNewClientWrapperRequiresLogger(t *testing.T) {
	_, err := NewClientWrapper(http.DefaultClient, url.URL{}, nil)
	assert.Error(t, err)
}

func TestDoGETResolvesRelativePath(t *testing.T) {
	var gotPath, gotAccept string
	wrapper := newTestWrapper(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"Name":"x"}`))
	})

	body, err := wrapper.DoGET("_api/web/GetFileByServerRelativePath(decodedUrl='/a.bin')")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Name":"x"}`, string(body))
	assert.Equal(t, "/sites/test/_api/web/GetFileByServerRelativePath(decodedUrl='/a.bin')", gotPath)
	assert.Equal(t, "application/json", gotAccept)
}

func TestDoPOSTSendsBodyAndHeaders(t *testing.T) {
	var gotBody []byte
	var gotContentType, gotMethodOverride string
	wrapper := newTestWrapper(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		gotMethodOverride = r.Header.Get("X-HTTP-Method")
		w.Write([]byte(`"10"`))
	})

	body, err := wrapper.DoPOST("_api/x", []byte{1, 2, 3}, map[string]string{
		"Content-Type":  "application/octet-stream",
		"X-HTTP-Method": "MERGE",
	})
	require.NoError(t, err)
	assert.Equal(t, `"10"`, string(body))
	assert.Equal(t, []byte{1, 2, 3}, gotBody)
	assert.Equal(t, "application/octet-stream", gotContentType)
	assert.Equal(t, "MERGE", gotMethodOverride)
}

func TestDoPOSTDefaultsToJSONContentType(t *testing.T) {
	var gotContentType string
	wrapper := newTestWrapper(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	})

	_, err := wrapper.DoPOST("_api/x", []byte(`{"a":1}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDoDELETE(t *testing.T) {
	var gotMethod, gotIfMatch string
	wrapper := newTestWrapper(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotIfMatch = r.Header.Get("If-Match")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, wrapper.DoDELETE("_api/x"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "*", gotIfMatch)
}

func TestDoDownloadStreamsBody(t *testing.T) {
	wrapper := newTestWrapper(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("file content"))
	})

	body, err := wrapper.DoDownload("_api/x/$value")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "file content", string(data))
}

func TestNonSuccessStatusBecomesRemoteError(t *testing.T) {
	wrapper := newTestWrapper(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"odata.error":{"code":"-2130246326","message":{"lang":"en-US","value":"The file is checked out."}}}`))
	})

	_, err := wrapper.DoGET("_api/x")
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusConflict, remoteErr.StatusCode)
	assert.Equal(t, "-2130246326", remoteErr.Code)
	assert.Equal(t, "The file is checked out.", remoteErr.Message)
}
