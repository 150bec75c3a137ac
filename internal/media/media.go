package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// postsPrefix is the directory (and path prefix stored on posts) for
// uploaded images.
const postsPrefix = "posts"

// Storage writes uploaded post images under a root media directory.
type Storage struct {
	root string
}

func NewStorage(root string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Join(root, postsPrefix), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &Storage{root: root}, nil
}

func (s *Storage) Root() string { return s.root }

// SavePostImage stores an uploaded image and returns the relative path
// recorded on the post, e.g. "posts/3f2a….gif". The original filename
// only contributes its extension.
func (s *Storage) SavePostImage(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext
	rel := filepath.ToSlash(filepath.Join(postsPrefix, name))

	f, err := os.Create(filepath.Join(s.root, postsPrefix, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return rel, nil
}

// Remove deletes a stored image; a missing file is not an error.
func (s *Storage) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
