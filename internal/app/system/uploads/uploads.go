// Package uploads moves multipart image fields into blob storage.
//
// The API takes a single "thumbnail" file and up to a configured number of
// "gallery" files per request. Both must be images; a file over the size
// limit is rejected with ErrTooLarge before any handler logic runs, a
// non-image with ErrNotImage, and a gallery beyond the configured count
// with ErrTooMany. A stored file is not transactional with the document
// write that follows it; a failed document write can leave an orphaned
// object behind.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// Rejection causes, mapped to HTTP 413 and 400 by the handlers.
var (
	ErrTooLarge = errors.New("file exceeds the allowed size limit")
	ErrNotImage = errors.New("only image files are accepted")
	ErrTooMany  = errors.New("too many gallery files")
)

// multipartMemory is the in-memory buffer threshold for parsing; larger
// parts spill to temp files.
const multipartMemory = 32 << 20

// Saver stores uploaded request files through the configured storage
// backend.
type Saver struct {
	Store      storage.Store
	MaxBytes   int64
	GalleryMax int
}

// ParseForm parses the request body (multipart or urlencoded) and returns
// the value fields. Call before reading files or form values.
func ParseForm(r *http.Request) (map[string][]string, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, err
		}
		return r.MultipartForm.Value, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// Thumbnail stores the request's "thumbnail" file, if present, and returns
// its reference. Absent file returns ("", nil).
func (s *Saver) Thumbnail(ctx context.Context, r *http.Request) (string, error) {
	fh := fileHeader(r, "thumbnail")
	if fh == nil {
		return "", nil
	}
	return s.save(ctx, fh)
}

// Gallery stores every "gallery" file on the request, in order. No files
// returns (nil, nil); more files than the configured maximum returns
// ErrTooMany before anything is stored.
func (s *Saver) Gallery(ctx context.Context, r *http.Request) ([]string, error) {
	headers := fileHeaders(r, "gallery")
	if len(headers) == 0 {
		return nil, nil
	}
	if s.GalleryMax > 0 && len(headers) > s.GalleryMax {
		return nil, ErrTooMany
	}
	refs := make([]string, 0, len(headers))
	for _, fh := range headers {
		ref, err := s.save(ctx, fh)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// save uploads the file and returns the reference to persist on the
// owning document: the backend's public URL for the stored object, which
// is server-relative for local storage.
func (s *Saver) save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return "", ErrTooLarge
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := ObjectKey(fh.Filename)
	opts := &storage.PutOptions{ContentType: contentType}
	if err := s.Store.Put(ctx, key, f, opts); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s.Store.URL(key), nil
}

func fileHeader(r *http.Request, field string) *multipart.FileHeader {
	headers := fileHeaders(r, field)
	if len(headers) == 0 {
		return nil
	}
	return headers[0]
}

func fileHeaders(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil || r.MultipartForm.File == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

// ObjectKey generates a unique storage key for an uploaded file:
// YYYY/MM/<uuid8>-<sanitized filename>.
func ObjectKey(filename string) string {
	now := time.Now().UTC()
	return fmt.Sprintf("%04d/%02d/%s-%s",
		now.Year(), now.Month(), uuid.New().String()[:8], sanitizeFilename(filename))
}

// sanitizeFilename strips path components and replaces characters that
// could be problematic in filenames or URLs.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) {
		return "file"
	}

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
