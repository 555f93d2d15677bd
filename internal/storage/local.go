package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
)

// LocalStore writes uploads into a directory on the serving host.
// Saving a name that already exists replaces the previous file.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: filepath.Clean(root)}, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	ref := SanitizeFilename(name)
	if ref == "" {
		return "", ErrInvalidName
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.root, ref)
	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", ref, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", ref, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("store %s: %w", ref, err)
	}
	return ref, nil
}

func (s *LocalStore) Open(_ context.Context, ref string) (*Object, error) {
	if !validRef(ref) {
		return nil, fmt.Errorf("%q: %w", ref, ErrObjectNotFound)
	}

	f, err := os.Open(filepath.Join(s.root, ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%q: %w", ref, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", ref, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", ref, err)
	}
	return &Object{
		Body:        f,
		Size:        info.Size(),
		ContentType: contentTypeFor(ref),
	}, nil
}

func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if !validRef(ref) {
		return fmt.Errorf("%q: %w", ref, ErrInvalidName)
	}
	if err := os.Remove(filepath.Join(s.root, ref)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", ref, err)
	}
	return nil
}

func validRef(ref string) bool {
	return ref != "" && filepath.Base(ref) == ref && SanitizeFilename(ref) == ref
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var _ FileStore = (*LocalStore)(nil)
