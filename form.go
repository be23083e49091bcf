package formdata

import "net/url"

// Field is a single flattened form field. Exactly one of Value and File is
// meaningful: File is set for attachments, Value otherwise.
type Field struct {
	Name  string
	Value string
	File  *File
}

// IsFile reports whether the field carries an attachment.
func (f Field) IsFile() bool {
	return f.File != nil
}

// Form is an ordered sequence of fields, in the order they should appear in
// the request body.
type Form []Field

// Len returns the number of fields in the form.
func (f Form) Len() int {
	return len(f)
}

// Values returns the text fields of the form. Attachments are skipped, and
// fields sharing a name keep their relative order.
func (f Form) Values() url.Values {
	values := url.Values{}
	for _, field := range f {
		if field.IsFile() {
			continue
		}
		values.Add(field.Name, field.Value)
	}
	return values
}

// Files returns the attachment fields of the form in order.
func (f Form) Files() Form {
	files := Form{}
	for _, field := range f {
		if field.IsFile() {
			files = append(files, field)
		}
	}
	return files
}
