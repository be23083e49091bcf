package formdata

import (
	"strconv"
	"strings"
)

// childKey returns the path of the mapping key k below parent.
func childKey(parent, k string) string {
	if parent == "" {
		return k
	}
	var b strings.Builder
	b.Grow(len(parent) + len(k) + 2)
	b.WriteString(parent)
	b.WriteByte('[')
	b.WriteString(k)
	b.WriteByte(']')
	return b.String()
}

// childIndex returns the path of the sequence element i below parent.
func childIndex(parent string, i int) string {
	return childKey(parent, strconv.Itoa(i))
}
