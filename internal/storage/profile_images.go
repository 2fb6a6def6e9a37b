package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// ProfileImageStore writes profile images to a local directory. Filenames
// are derived from the username, so a user replacing their image
// overwrites the previous file when the extension matches.
type ProfileImageStore struct {
	dir string
}

// NewProfileImageStore builds a store rooted at dir.
func NewProfileImageStore(dir string) *ProfileImageStore {
	return &ProfileImageStore{dir: dir}
}

// AllowedFile reports whether the upload's extension is accepted.
func AllowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedExtensions[ext]
	return ok
}

// Filename derives the stored name for a user's image from the original
// upload name.
func Filename(username, original string) string {
	return fmt.Sprintf("%s_image%s", username, strings.ToLower(filepath.Ext(original)))
}

// Save stores the uploaded content and returns the stored filename.
func (s *ProfileImageStore) Save(username, original string, r io.Reader) (string, error) {
	if !AllowedFile(original) {
		return "", fmt.Errorf("file extension not allowed: %s", filepath.Ext(original))
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	filename := Filename(username, original)
	f, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return filename, nil
}

// Delete removes a stored image. A missing file is a no-op.
func (s *ProfileImageStore) Delete(filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Exists reports whether the stored image is present on disk.
func (s *ProfileImageStore) Exists(filename string) bool {
	if filename == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, filename))
	return err == nil
}
