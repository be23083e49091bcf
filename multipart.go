package formdata

import (
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

const (
	contentDispositionHeader = "Content-Disposition"
	contentTypeHeader        = "Content-Type"

	// Readers treat a part without a filename as text, so unnamed files are
	// sent under the name browsers use for blobs.
	defaultFilename = "blob"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// WriteMultipart writes one part per field to w, in form order. Files without
// a filename are sent as "blob". It does not close w.
func (f Form) WriteMultipart(w *multipart.Writer) error {
	for _, field := range f {
		if err := writeField(w, field); err != nil {
			return fmt.Errorf("form: failed to write field %q: %w", field.Name, err)
		}
	}
	return nil
}

func writeField(w *multipart.Writer, field Field) error {
	if !field.IsFile() {
		return w.WriteField(field.Name, field.Value)
	}

	filename := field.File.Filename
	if filename == "" {
		filename = defaultFilename
	}

	h := make(textproto.MIMEHeader)
	h.Set(contentDispositionHeader, fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field.Name), quoteEscaper.Replace(filename)))
	h.Set(contentTypeHeader, field.File.MediaType())

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(field.File.Content)
	return err
}
