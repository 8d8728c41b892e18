package data

import "strconv"

// Row represents a single CSV record
// Fields are kept exactly as read, no trimming or type conversion
type Row []string

// Field returns the field at position i and whether it exists
func (r Row) Field(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Fingerprint returns a string that is equal for two rows only when
// they have the same number of fields and every field matches byte for byte.
// Each field is length-prefixed so embedded separators cannot collide.
func (r Row) Fingerprint() string {
	n := 0
	for _, f := range r {
		n += len(f) + 4
	}
	buf := make([]byte, 0, n)
	for _, f := range r {
		buf = strconv.AppendInt(buf, int64(len(f)), 10)
		buf = append(buf, ':')
		buf = append(buf, f...)
	}
	return string(buf)
}

// Tuple is the ordered set of values one row contributed to an index key
type Tuple []string
