package formdata

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

const applicationOctetStream = "application/octet-stream"

// File is a binary attachment. It is always encoded as a single field and is
// never traversed as an object.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// NewFile reads r to the end and returns a [File] named filename.
func NewFile(filename string, r io.Reader) (*File, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("form: failed to read file %q: %w", filename, err)
	}
	return &File{Filename: filename, Content: content}, nil
}

// MediaType returns the content type of f. An explicit ContentType wins,
// then the type registered for the filename extension, then the type sniffed
// from the content.
func (f *File) MediaType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	ext := strings.ToLower(filepath.Ext(f.Filename))
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	if len(f.Content) == 0 {
		return applicationOctetStream
	}
	return http.DetectContentType(f.Content)
}
