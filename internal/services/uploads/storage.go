package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// PublicPrefix is the URL path the upload directory is served under.
const PublicPrefix = "/uploads"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9.-]`)

type Storage struct {
	dir string
	now func() time.Time
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Storage{dir: dir, now: time.Now}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

// FileName prefixes the sanitized original name with the upload time in unix milliseconds.
func (s *Storage) FileName(original string) string {
	base := filepath.Base(original)
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "_" + unsafeChars.ReplaceAllString(base, "_")
}

// Save writes r to the upload directory and returns the public path of the file.
func (s *Storage) Save(original string, r io.Reader) (string, error) {
	name := s.FileName(original)

	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return PublicPrefix + "/" + name, nil
}

// Remove deletes a file previously returned by Save. Unknown paths are ignored.
func (s *Storage) Remove(publicPath string) error {
	name := filepath.Base(publicPath)
	if publicPath == "" || PublicPrefix+"/"+name != publicPath {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
