package spclient

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/libspoint/libspoint/internal/odata"
)

// DefaultChunkSize is the fragment size used when the caller does not pick one
const DefaultChunkSize = 10 * 1024 * 1024

// UploadStage tags which kind of fragment call a progress event precedes
type UploadStage string

const (
	UploadStarting  UploadStage = "starting"
	UploadContinue  UploadStage = "continue"
	UploadFinishing UploadStage = "finishing"
)

// UploadProgress is an immutable snapshot reported before each fragment call
type UploadProgress struct {
	UploadID    string
	Stage       UploadStage
	BlockNumber int // 1-based
	TotalBlocks int
	ChunkSize   int64
	Offset      int64 // cursor acknowledged so far
	TotalSize   int64
}

// ChunkedOptions configures a chunked upload. The zero value uses
// DefaultChunkSize and reports no progress.
type ChunkedOptions struct {
	Progress  func(UploadProgress)
	ChunkSize int64
}

var binaryHeaders = map[string]string{"Content-Type": "application/octet-stream"}

// totalFragments is the number of fragment calls needed to cover size bytes.
// An empty payload still takes one (empty) commit call.
func totalFragments(size, chunkSize int64) int {
	if size <= 0 {
		return 1
	}
	n := size / chunkSize
	if size%chunkSize != 0 {
		n++
	}
	return int(n)
}

// readFragment copies the half-open range [start, end) of the payload into
// memory. Only one fragment is buffered at a time.
func readFragment(payload io.ReaderAt, start, end int64) ([]byte, error) {
	if end <= start {
		return []byte{}, nil
	}
	data, err := io.ReadAll(io.NewSectionReader(payload, start, end-start))
	if err != nil {
		return nil, fmt.Errorf("failed to read payload range [%d,%d): %w", start, end, err)
	}
	return data, nil
}

// SetContentChunked replaces the file's content with the payload, splitting
// it into chunkSize fragments sent as one start call, zero or more continue
// calls, and a committing finish call. Each call's offset is the cursor the
// server acknowledged for the previous one, so fragment calls are strictly
// sequential. The first failing call aborts the chain; the session stays
// open server-side until CancelUpload releases it.
func (f *File) SetContentChunked(payload io.ReaderAt, size int64, opts ChunkedOptions) (*FileInfo, json.RawMessage, error) {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(UploadProgress) {}
	}

	uploadID := uuid.New().String()
	total := totalFragments(size, chunkSize)
	cursor := int64(0)

	if total > 1 {
		progress(UploadProgress{
			UploadID:    uploadID,
			Stage:       UploadStarting,
			BlockNumber: 1,
			TotalBlocks: total,
			ChunkSize:   chunkSize,
			Offset:      cursor,
			TotalSize:   size,
		})
		data, err := readFragment(payload, 0, chunkSize)
		if err != nil {
			return nil, nil, err
		}
		cursor, err = f.StartUpload(uploadID, data)
		if err != nil {
			return nil, nil, fmt.Errorf("fragment 1/%d: %w", total, err)
		}

		// Middle fragments; the first and last blocks use start/finish
		for block := 2; block < total; block++ {
			progress(UploadProgress{
				UploadID:    uploadID,
				Stage:       UploadContinue,
				BlockNumber: block,
				TotalBlocks: total,
				ChunkSize:   chunkSize,
				Offset:      cursor,
				TotalSize:   size,
			})
			end := cursor + chunkSize
			if end > size {
				end = size
			}
			data, err := readFragment(payload, cursor, end)
			if err != nil {
				return nil, nil, err
			}
			cursor, err = f.ContinueUpload(uploadID, cursor, data)
			if err != nil {
				return nil, nil, fmt.Errorf("fragment %d/%d: %w", block, total, err)
			}
		}
	}

	progress(UploadProgress{
		UploadID:    uploadID,
		Stage:       UploadFinishing,
		BlockNumber: total,
		TotalBlocks: total,
		ChunkSize:   chunkSize,
		Offset:      cursor,
		TotalSize:   size,
	})
	data, err := readFragment(payload, cursor, size)
	if err != nil {
		return nil, nil, err
	}
	info, raw, err := f.FinishUpload(uploadID, cursor, data)
	if err != nil {
		return nil, nil, fmt.Errorf("fragment %d/%d: %w", total, total, err)
	}
	return info, raw, nil
}

// StartUpload opens an upload session identified by uploadID and sends the
// first fragment. Retrying with the same uploadID and bytes is safe.
func (f *File) StartUpload(uploadID string, fragment []byte) (int64, error) {
	path := f.path.Op("StartUpload", GUIDArg("uploadId", uploadID))
	raw, err := f.httpClient.DoPOST(path.String(), fragment, binaryHeaders)
	if err != nil {
		return 0, fmt.Errorf("failed to start upload: %w", err)
	}
	cursor, err := odata.ParseCursor(raw, "StartUpload")
	if err != nil {
		return 0, fmt.Errorf("failed to parse start upload response: %w", err)
	}
	return cursor, nil
}

// ContinueUpload sends the next fragment of the session. fileOffset must be
// the cursor returned by the previous call.
func (f *File) ContinueUpload(uploadID string, fileOffset int64, fragment []byte) (int64, error) {
	path := f.path.Op("ContinueUpload", GUIDArg("uploadId", uploadID), IntArg("fileOffset", fileOffset))
	raw, err := f.httpClient.DoPOST(path.String(), fragment, binaryHeaders)
	if err != nil {
		return 0, fmt.Errorf("failed to continue upload: %w", err)
	}
	cursor, err := odata.ParseCursor(raw, "ContinueUpload")
	if err != nil {
		return 0, fmt.Errorf("failed to parse continue upload response: %w", err)
	}
	return cursor, nil
}

// FinishUpload sends the trailing fragment and commits the session as the
// file's new content, returning the committed file's metadata and the raw
// commit response.
func (f *File) FinishUpload(uploadID string, fileOffset int64, fragment []byte) (*FileInfo, json.RawMessage, error) {
	path := f.path.Op("FinishUpload", GUIDArg("uploadId", uploadID), IntArg("fileOffset", fileOffset))
	raw, err := f.httpClient.DoPOST(path.String(), fragment, binaryHeaders)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to finish upload: %w", err)
	}
	info, err := parseFileInfo(raw)
	if err != nil {
		return nil, raw, err
	}
	return info, raw, nil
}

// CancelUpload releases an upload session, discarding any bytes it
// accumulated. It is independent of an in-flight chain; a chain whose
// session was cancelled fails on its next fragment call.
func (f *File) CancelUpload(uploadID string) error {
	path := f.path.Op("CancelUpload", GUIDArg("uploadId", uploadID))
	if _, err := f.httpClient.DoPOST(path.String(), nil, nil); err != nil {
		return fmt.Errorf("failed to cancel upload: %w", err)
	}
	return nil
}

// AddChunked creates name in the folder and streams the payload into it in
// chunkSize fragments. The stub file is created first so a failed chunked
// session can be cancelled or resumed against a stable target.
func (fo *Folder) AddChunked(name string, payload io.ReaderAt, size int64, overwrite bool, opts ChunkedOptions) (*FileInfo, json.RawMessage, error) {
	stub, err := fo.AddFile(name, nil, overwrite)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stub file: %w", err)
	}
	file := &File{
		httpClient:        fo.httpClient,
		path:              NewResourcePath("_api", "web").Op("GetFileByServerRelativePath", StringArg("decodedUrl", stub.ServerRelativeURL)),
		serverRelativeURL: stub.ServerRelativeURL,
	}
	return file.SetContentChunked(payload, size, opts)
}
