package spclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/libspoint/libspoint/internal/httpclient"
	"github.com/libspoint/libspoint/internal/odata"
)

// maxCommentLength is the server-side limit on lifecycle comments; exceeding
// it is rejected locally before any network call.
const maxCommentLength = 1023

// ErrCommentTooLong is returned when a lifecycle comment exceeds 1023 characters
var ErrCommentTooLong = errors.New("comment may not exceed 1023 characters")

// CheckinType selects how a checked-out file is checked in
type CheckinType int

const (
	CheckinMinor CheckinType = iota
	CheckinMajor
	CheckinOverwrite
)

// FileInfo holds the metadata properties of a file resource
type FileInfo struct {
	Name              string       `json:"Name"`
	ServerRelativeURL string       `json:"ServerRelativeUrl"`
	Length            odata.Int64  `json:"Length"`
	Exists            bool         `json:"Exists"`
	TimeCreated       time.Time    `json:"TimeCreated"`
	TimeLastModified  time.Time    `json:"TimeLastModified"`
	UIVersionLabel    string       `json:"UIVersionLabel"`
	CheckOutType      int          `json:"CheckOutType"`
	ETag              string       `json:"ETag"`
}

// File is a proxy for a single file resource
type File struct {
	httpClient        httpclient.ClientWrapper
	path              ResourcePath
	serverRelativeURL string
}

// Folder is a proxy for a single folder resource
type Folder struct {
	httpClient        httpclient.ClientWrapper
	path              ResourcePath
	serverRelativeURL string
}

func parseFileInfo(raw json.RawMessage) (*FileInfo, error) {
	var info FileInfo
	if err := json.Unmarshal(odata.UnwrapEnvelope(raw), &info); err != nil {
		return nil, fmt.Errorf("failed to parse file metadata: %w", err)
	}
	return &info, nil
}

// Get retrieves the file's metadata
func (f *File) Get() (*FileInfo, error) {
	raw, err := f.httpClient.DoGET(f.path.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return parseFileInfo(raw)
}

// Download streams the file's content. The caller owns the returned reader.
func (f *File) Download() (io.ReadCloser, error) {
	body, err := f.httpClient.DoDownload(f.path.Append("$value").String())
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return body, nil
}

// Delete permanently deletes the file
func (f *File) Delete() error {
	if err := f.httpClient.DoDELETE(f.path.String()); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Recycle moves the file to the recycle bin and returns the recycle item's ID
func (f *File) Recycle() (string, error) {
	raw, err := f.httpClient.DoPOST(f.path.Op("recycle").String(), nil, nil)
	if err != nil {
		return "", fmt.Errorf("failed to recycle file: %w", err)
	}
	payload := odata.UnwrapEnvelope(raw)
	var bare string
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare, nil
	}
	var result struct {
		Recycle string `json:"Recycle"`
		Value   string `json:"value"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return "", fmt.Errorf("failed to parse recycle response: %w", err)
	}
	if result.Recycle != "" {
		return result.Recycle, nil
	}
	return result.Value, nil
}

func validateComment(comment string) error {
	if len(comment) > maxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

// CheckIn checks in the file with the given comment. Comments longer than
// 1023 characters are rejected before any request is sent.
func (f *File) CheckIn(comment string, checkinType CheckinType) error {
	if err := validateComment(comment); err != nil {
		return err
	}
	path := f.path.Op("checkin", StringArg("comment", comment), IntArg("checkintype", int64(checkinType)))
	if _, err := f.httpClient.DoPOST(path.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to check in file: %w", err)
	}
	return nil
}

// CheckOut checks out the file to the current user
func (f *File) CheckOut() error {
	if _, err := f.httpClient.DoPOST(f.path.Op("checkout").String(), nil, nil); err != nil {
		return fmt.Errorf("failed to check out file: %w", err)
	}
	return nil
}

// UndoCheckOut reverts an outstanding checkout
func (f *File) UndoCheckOut() error {
	if _, err := f.httpClient.DoPOST(f.path.Op("undocheckout").String(), nil, nil); err != nil {
		return fmt.Errorf("failed to undo checkout: %w", err)
	}
	return nil
}

// Approve approves the file submitted for content approval
func (f *File) Approve(comment string) error {
	path := f.path.Op("approve", StringArg("comment", comment))
	if _, err := f.httpClient.DoPOST(path.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to approve file: %w", err)
	}
	return nil
}

// Deny denies approval for the file
func (f *File) Deny(comment string) error {
	if err := validateComment(comment); err != nil {
		return err
	}
	path := f.path.Op("deny", StringArg("comment", comment))
	if _, err := f.httpClient.DoPOST(path.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to deny file: %w", err)
	}
	return nil
}

// Publish publishes a major version of the file
func (f *File) Publish(comment string) error {
	if err := validateComment(comment); err != nil {
		return err
	}
	path := f.path.Op("publish", StringArg("comment", comment))
	if _, err := f.httpClient.DoPOST(path.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to publish file: %w", err)
	}
	return nil
}

// UnPublish removes the file's current major version
func (f *File) UnPublish(comment string) error {
	if err := validateComment(comment); err != nil {
		return err
	}
	path := f.path.Op("unpublish", StringArg("comment", comment))
	if _, err := f.httpClient.DoPOST(path.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to unpublish file: %w", err)
	}
	return nil
}

type moveCopyPath struct {
	DecodedURL string `json:"DecodedUrl"`
}

type moveCopyRequest struct {
	SrcPath   moveCopyPath `json:"srcPath"`
	DestPath  moveCopyPath `json:"destPath"`
	Overwrite bool         `json:"overwrite"`
}

func (f *File) moveCopyByPath(op, verb, destPath string, overwrite bool) error {
	body, err := json.Marshal(moveCopyRequest{
		SrcPath:   moveCopyPath{DecodedURL: f.serverRelativeURL},
		DestPath:  moveCopyPath{DecodedURL: destPath},
		Overwrite: overwrite,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", verb, err)
	}
	path := NewResourcePath("_api").Op("SP.MoveCopyUtil." + op)
	if _, err := f.httpClient.DoPOST(path.String(), body, nil); err != nil {
		return fmt.Errorf("failed to %s file: %w", verb, err)
	}
	return nil
}

// MoveByPath moves the file to the destination server-relative path
func (f *File) MoveByPath(destPath string, overwrite bool) error {
	return f.moveCopyByPath("MoveFileByPath", "move", destPath, overwrite)
}

// CopyByPath copies the file to the destination server-relative path
func (f *File) CopyByPath(destPath string, overwrite bool) error {
	return f.moveCopyByPath("CopyFileByPath", "copy", destPath, overwrite)
}

// AddFile uploads content as a new file in the folder in a single request
func (fo *Folder) AddFile(name string, content []byte, overwrite bool) (*FileInfo, error) {
	path := fo.path.Append("Files").Op("add", BoolArg("overwrite", overwrite), StringArg("url", name))
	raw, err := fo.httpClient.DoPOST(path.String(), content, map[string]string{
		"Content-Type": "application/octet-stream",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add file: %w", err)
	}
	return parseFileInfo(raw)
}

// Get retrieves the folder's metadata
func (fo *Folder) Get() (json.RawMessage, error) {
	raw, err := fo.httpClient.DoGET(fo.path.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return odata.UnwrapEnvelope(raw), nil
}
