package draft

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileExt = ".json"

// FileBackend persists each draft as a JSON file under a base directory.
// Writes go to a temporary file that is renamed over the slot, so a failed
// write never leaves a truncated draft behind.
type FileBackend struct {
	basePath string
}

// NewFileBackend initializes a FileBackend rooted at basePath.
func NewFileBackend(basePath string) (*FileBackend, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("draft: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("draft: ensure base path: %w", err)
	}
	return &FileBackend{basePath: basePath}, nil
}

// BasePath returns the configured root directory.
func (b *FileBackend) BasePath() string {
	if b == nil {
		return ""
	}
	return b.basePath
}

func (b *FileBackend) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := b.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("draft: read file: %w", err)
	}
	return data, nil
}

func (b *FileBackend) Put(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(b.basePath, ".draft-*")
	if err != nil {
		return fmt.Errorf("draft: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("draft: write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("draft: close file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("draft: replace file: %w", err)
	}
	return nil
}

func (b *FileBackend) Delete(ctx context.Context, key string) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("draft: remove file: %w", err)
	}
	return nil
}

func (b *FileBackend) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(b.basePath)
	if err != nil {
		return nil, fmt.Errorf("draft: list directory: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *FileBackend) path(key string) (string, error) {
	clean, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(b.basePath, clean+fileExt), nil
}

// sanitizeKey keeps keys to a single path element so a slot cannot escape the
// storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("draft: key is required")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("draft: invalid key %q", key)
	}
	return key, nil
}
