package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vendorgate/pkg/platform/sentinel"
)

// FSStore keeps blobs on the local filesystem under a base directory. Blob
// paths use forward slashes and map directly onto directories.
type FSStore struct {
	baseDir string
}

// NewFS constructs a filesystem-backed blob store rooted at baseDir.
func NewFS(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &FSStore{baseDir: baseDir}, nil
}

func (s *FSStore) Write(_ context.Context, path string, data []byte) (string, error) {
	full := s.full(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create blob parent dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", path, err)
	}
	return path, nil
}

func (s *FSStore) Read(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(s.full(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("read blob %s: %w", path, err)
	}
	return data, nil
}

func (s *FSStore) Move(_ context.Context, fromPath, toPath string) (string, error) {
	from := s.full(fromPath)
	to := s.full(toPath)
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return "", fmt.Errorf("create blob parent dir: %w", err)
	}
	if err := os.Rename(from, to); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("move blob %s: %w", fromPath, err)
	}
	return toPath, nil
}

func (s *FSStore) RemoveAll(_ context.Context, prefix string) error {
	if err := os.RemoveAll(s.full(prefix)); err != nil {
		return fmt.Errorf("remove blobs under %s: %w", prefix, err)
	}
	return nil
}

func (s *FSStore) StalePrefixes(_ context.Context, root string, cutoff time.Time) ([]string, error) {
	rootDir := s.full(root)
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list blob prefixes under %s: %w", root, err)
	}

	var stale []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		newest, err := newestModTime(filepath.Join(rootDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if newest.Before(cutoff) {
			stale = append(stale, root+"/"+entry.Name())
		}
	}
	return stale, nil
}

func (s *FSStore) full(path string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(strings.TrimPrefix(path, "/")))
}

func newestModTime(dir string) (time.Time, error) {
	var newest time.Time
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("walk %s: %w", dir, err)
	}
	return newest, nil
}
