package formdata

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// NewRequest marshals v as with [Marshal] and returns a request carrying it as
// a multipart/form-data body, with the Content-Type header set.
func NewRequest(ctx context.Context, method, url string, v interface{}, opts ...Option) (*http.Request, error) {
	var body bytes.Buffer
	enc := NewEncoder(&body, opts...)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, &body)
	if err != nil {
		return nil, fmt.Errorf("form: failed to create request: %w", err)
	}
	req.Header.Set(contentTypeHeader, enc.FormDataContentType())
	return req, nil
}
