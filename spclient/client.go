package spclient

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/libspoint/libspoint/internal/httpclient"
)

// Client is the entry point to a site's object model. Every proxy it hands
// out is a thin wrapper translating method calls into REST calls against
// the site's _api surface.
type Client interface {
	GetFileByServerRelativePath(serverRelativePath string) *File
	GetFolderByServerRelativePath(serverRelativePath string) *Folder
	GetCalendarByID(calendarID string) *Calendar
}

type spClient struct {
	httpClient httpclient.ClientWrapper
}

// NewClient creates a client over an already-configured transport wrapper
func NewClient(httpClient httpclient.ClientWrapper) Client {
	return &spClient{httpClient: httpClient}
}

// NewClientForSite creates a client for the given site URL. A nil httpClient
// falls back to a transport that retries connection-level failures.
func NewClientForSite(client *http.Client, siteURL string, logger *slog.Logger) (Client, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site URL %q: %w", siteURL, err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	if client == nil {
		client = httpclient.NewDefaultHTTPClient()
	}
	wrapper, err := httpclient.NewClientWrapper(client, *base, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create client wrapper: %w", err)
	}
	return NewClient(wrapper), nil
}

// GetFileByServerRelativePath returns a proxy for the file at the given
// server-relative path
func (c *spClient) GetFileByServerRelativePath(serverRelativePath string) *File {
	return &File{
		httpClient:        c.httpClient,
		path:              NewResourcePath("_api", "web").Op("GetFileByServerRelativePath", StringArg("decodedUrl", serverRelativePath)),
		serverRelativeURL: serverRelativePath,
	}
}

// GetFolderByServerRelativePath returns a proxy for the folder at the given
// server-relative path
func (c *spClient) GetFolderByServerRelativePath(serverRelativePath string) *Folder {
	return &Folder{
		httpClient:        c.httpClient,
		path:              NewResourcePath("_api", "web").Op("GetFolderByServerRelativePath", StringArg("decodedUrl", serverRelativePath)),
		serverRelativeURL: serverRelativePath,
	}
}

// GetCalendarByID returns a proxy for the enterprise calendar with the
// given GUID
func (c *spClient) GetCalendarByID(calendarID string) *Calendar {
	return &Calendar{
		httpClient: c.httpClient,
		path:       NewResourcePath("_api", "ProjectServer").Op("Calendars", fmt.Sprintf("'%s'", EscapeLiteral(calendarID))),
	}
}
