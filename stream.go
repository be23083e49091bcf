package formdata

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

// Encoder writes multipart/form-data bodies to an [io.Writer].
type Encoder struct {
	w    *multipart.Writer
	opts *options
	err  error
}

// NewEncoder creates a new [Encoder] that writes to w. An invalid
// [WithBoundary] option is reported by the first call to [Encoder.Encode].
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	o := newOptions(opts)
	mw := multipart.NewWriter(w)

	var err error
	if o.boundary != "" {
		if err = mw.SetBoundary(o.boundary); err != nil {
			err = fmt.Errorf("form: invalid boundary: %w", err)
		}
	}

	return &Encoder{w: mw, opts: o, err: err}
}

// Boundary returns the multipart boundary used by the encoder.
func (e *Encoder) Boundary() string {
	return e.w.Boundary()
}

// FormDataContentType returns the Content-Type header value for the bodies
// written by the encoder.
func (e *Encoder) FormDataContentType() string {
	return e.w.FormDataContentType()
}

// Encode marshals v as with [Marshal] and writes it as a complete multipart
// body, closing boundary included. A body can only be written once.
func (e *Encoder) Encode(v interface{}) error {
	if e.err != nil {
		return e.err
	}

	form, err := Marshal(v, WithExclusions(e.opts.exclude...))
	if err != nil {
		return err
	}

	return e.EncodeForm(form)
}

// EncodeForm writes an already encoded form as a complete multipart body.
func (e *Encoder) EncodeForm(form Form) error {
	if e.err != nil {
		return e.err
	}

	// The multipart writer cannot be reused once closed.
	e.err = errors.New("form: encoder already used")

	if err := form.WriteMultipart(e.w); err != nil {
		return err
	}
	if err := e.w.Close(); err != nil {
		return fmt.Errorf("form: failed to close body: %w", err)
	}
	return nil
}

// Decoder reads multipart/form-data bodies from an [io.Reader].
type Decoder struct {
	r *multipart.Reader
}

// NewDecoder creates a new [Decoder] that reads a body delimited by boundary
// from r.
func NewDecoder(r io.Reader, boundary string) *Decoder {
	return &Decoder{r: multipart.NewReader(r, boundary)}
}

// Decode reads every part of the body into a [Form], preserving their order.
// Parts with a filename become attachments.
func (d *Decoder) Decode() (Form, error) {
	form := Form{}
	for {
		part, err := d.r.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return nil, fmt.Errorf("form: failed to read part: %w", err)
		}

		field, err := readField(part)
		part.Close()
		if err != nil {
			return nil, err
		}
		form = append(form, field)
	}
}

func readField(part *multipart.Part) (Field, error) {
	name := part.FormName()
	content, err := io.ReadAll(part)
	if err != nil {
		return Field{}, fmt.Errorf("form: failed to read field %q: %w", name, err)
	}

	filename := part.FileName()
	if filename == "" {
		return Field{Name: name, Value: string(content)}, nil
	}

	return Field{
		Name: name,
		File: &File{
			Filename:    filename,
			ContentType: part.Header.Get(contentTypeHeader),
			Content:     content,
		},
	}, nil
}
