package spclient

import (
	"encoding/json"
	"io"
)

// recordedRequest captures one call made through the mock transport
type recordedRequest struct {
	method  string
	path    string
	body    []byte
	headers map[string]string
}

// PostFunc is a function type for mocking POST
type PostFunc func(path string, body []byte, headers map[string]string) (json.RawMessage, error)

// Mock types for testing
type mockHTTPClient struct {
	requests []recordedRequest

	getResponse  json.RawMessage
	getErr       error
	postResponse json.RawMessage
	postErr      error
	deleteErr    error
	downloadBody io.ReadCloser
	downloadErr  error
	doPost       PostFunc
}

func (m *mockHTTPClient) DoGET(path string) (json.RawMessage, error) {
	m.requests = append(m.requests, recordedRequest{method: "GET", path: path})
	return m.getResponse, m.getErr
}

func (m *mockHTTPClient) DoPOST(path string, body []byte, headers map[string]string) (json.RawMessage, error) {
	m.requests = append(m.requests, recordedRequest{method: "POST", path: path, body: body, headers: headers})
	if m.doPost != nil {
		return m.doPost(path, body, headers)
	}
	return m.postResponse, m.postErr
}

func (m *mockHTTPClient) DoDELETE(path string) error {
	m.requests = append(m.requests, recordedRequest{method: "DELETE", path: path})
	return m.deleteErr
}

func (m *mockHTTPClient) DoDownload(path string) (io.ReadCloser, error) {
	m.requests = append(m.requests, recordedRequest{method: "DOWNLOAD", path: path})
	return m.downloadBody, m.downloadErr
}
