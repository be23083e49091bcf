package formdata

// Option configures [Marshal], [NewEncoder] and [NewRequest].
type Option func(*options)

type options struct {
	exclude  []string
	boundary string
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// exclusions returns a fresh set so callers may add to it.
func (o *options) exclusions() ExclusionSet {
	return NewExclusionSet(o.exclude...)
}

// WithExclusions adds names to the set of paths whose sequences are not
// indexed. See [Encode].
func WithExclusions(names ...string) Option {
	return func(o *options) {
		o.exclude = append(o.exclude, names...)
	}
}

// WithBoundary sets the multipart boundary instead of a random one. The
// boundary must satisfy RFC 2046, see [mime/multipart.Writer.SetBoundary].
func WithBoundary(boundary string) Option {
	return func(o *options) {
		o.boundary = boundary
	}
}
