package spclient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/libspoint/libspoint/internal/httpclient"
	"github.com/libspoint/libspoint/internal/odata"
)

// VersionInfo holds the metadata of a single file version
type VersionInfo struct {
	ID               int         `json:"ID"`
	VersionLabel     string      `json:"VersionLabel"`
	IsCurrentVersion bool        `json:"IsCurrentVersion"`
	Created          time.Time   `json:"Created"`
	Size             odata.Int64 `json:"Size"`
	URL              string      `json:"Url"`
	CheckInComment   string      `json:"CheckInComment"`
}

// Versions is a proxy for a file's version history collection
type Versions struct {
	httpClient httpclient.ClientWrapper
	path       ResourcePath
}

// Versions returns a proxy for the file's version history
func (f *File) Versions() *Versions {
	return &Versions{
		httpClient: f.httpClient,
		path:       f.path.Append("versions"),
	}
}

// List retrieves all past versions of the file
func (v *Versions) List() ([]VersionInfo, error) {
	raw, err := v.httpClient.DoGET(v.path.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	items, err := odata.UnwrapCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse versions response: %w", err)
	}
	var versions []VersionInfo
	if err := json.Unmarshal(items, &versions); err != nil {
		return nil, fmt.Errorf("failed to parse versions response: %w", err)
	}
	return versions, nil
}

// GetByID retrieves a single version by its numeric ID
func (v *Versions) GetByID(id int) (*VersionInfo, error) {
	raw, err := v.httpClient.DoGET(v.path.Op("getbyid", IntArg("versionid", int64(id))).String())
	if err != nil {
		return nil, fmt.Errorf("failed to get version %d: %w", id, err)
	}
	var version VersionInfo
	if err := json.Unmarshal(odata.UnwrapEnvelope(raw), &version); err != nil {
		return nil, fmt.Errorf("failed to parse version response: %w", err)
	}
	return &version, nil
}

// DeleteAll removes the file's entire version history
func (v *Versions) DeleteAll() error {
	if _, err := v.httpClient.DoPOST(v.path.Op("deleteall").String(), nil, nil); err != nil {
		return fmt.Errorf("failed to delete all versions: %w", err)
	}
	return nil
}

// DeleteByID removes the version with the given numeric ID
func (v *Versions) DeleteByID(id int) error {
	path := v.path.Op("deletebyid", IntArg("vid", int64(id)))
	if _, err := v.httpClient.DoPOST(path.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to delete version %d: %w", id, err)
	}
	return nil
}

// DeleteByLabel removes the version carrying the given label, e.g. "2.0"
func (v *Versions) DeleteByLabel(label string) error {
	path := v.path.Op("deletebylabel", StringArg("versionlabel", label))
	if _, err := v.httpClient.DoPOST(path.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to delete version %q: %w", label, err)
	}
	return nil
}

// RestoreByLabel makes the version carrying the given label the current one
func (v *Versions) RestoreByLabel(label string) error {
	path := v.path.Op("restorebylabel", StringArg("versionlabel", label))
	if _, err := v.httpClient.DoPOST(path.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to restore version %q: %w", label, err)
	}
	return nil
}
