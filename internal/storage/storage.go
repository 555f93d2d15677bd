package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrObjectNotFound is returned by Open when nothing is stored under the reference.
	ErrObjectNotFound = errors.New("stored file not found")
	// ErrInvalidName is returned by Save when the name sanitizes to nothing.
	ErrInvalidName = errors.New("invalid file name")
)

// Object is an open handle to a stored upload. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// FileStore keeps uploaded article files. Save returns the reference to persist
// on the article; Open resolves that reference again. Deleting a missing
// reference is not an error.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (*Object, error)
	Delete(ctx context.Context, ref string) error
}

// SanitizeFilename reduces a client supplied name to a flat ASCII file name.
// Unicode is decomposed and folded, path separators and whitespace become
// underscores, anything outside [A-Za-z0-9_.-] is dropped, and leading or
// trailing dots and underscores are trimmed.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_' || r == '.' || r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}
