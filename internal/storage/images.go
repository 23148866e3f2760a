// Package storage keeps uploaded product images on the local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

var ErrInvalidImage = errors.New("invalid image")

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

const (
	// URLPrefix is where the image directory is served.
	URLPrefix = "/images"

	// maxNameAttempts bounds how far Save bumps the timestamp looking for a free name.
	maxNameAttempts = 1000
	// maxCleanLen keeps <millis>_<name> under the 255 byte file name limit.
	maxCleanLen = 200
)

// ImageStore writes and removes images under a single directory.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// Path returns the on-disk location of a stored image.
func (s *ImageStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// URL is the public path of a stored image.
func URL(name string) string {
	return URLPrefix + "/" + url.PathEscape(name)
}

// StorageName is the file name an upload made at t is stored under.
func StorageName(originalName string, t time.Time) string {
	return fmt.Sprintf("%d_%s", t.UnixMilli(), cleanName(originalName))
}

// CheckImage rejects uploads that are not one of the accepted image formats,
// judging by both the extension and the leading bytes.
func CheckImage(originalName string, head []byte) error {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExt[ext] {
		return fmt.Errorf("%w: unsupported extension %q", ErrInvalidImage, ext)
	}
	mt := mimetype.Detect(head)
	if !strings.HasPrefix(mt.String(), "image/") {
		return fmt.Errorf("%w: content is %s", ErrInvalidImage, mt.String())
	}
	return nil
}

// Save copies src into the directory, creating it when absent, and returns
// the stored file name. The name is <unix millis of at>_<original name>; when
// that file already exists the timestamp is bumped until a free name is found.
func (s *ImageStore) Save(originalName string, src io.Reader, at time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	var (
		name string
		f    *os.File
		err  error
	)
	for i := 0; i < maxNameAttempts; i++ {
		name = StorageName(originalName, at.Add(time.Duration(i)*time.Millisecond))
		f, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, fs.ErrExist) {
			break
		}
	}
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close image %s: %w", name, err)
	}
	return name, nil
}

// Delete removes a stored image.
func (s *ImageStore) Delete(name string) error {
	if name == "" {
		return fmt.Errorf("delete image: empty name")
	}
	if err := os.Remove(s.Path(name)); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

func cleanName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r == '#', r == '?', r == '%':
			// reserved in the /images/ URL path
			return '_'
		case r < 0x20, r == 0x7f, r == '/', r == ':':
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "image"
	}
	return truncateName(name, maxCleanLen)
}

// truncateName shortens name to at most limit bytes, keeping the extension and
// cutting the stem on a rune boundary.
func truncateName(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	ext := filepath.Ext(name)
	if len(ext) >= limit {
		ext = ""
	}
	stem := strings.TrimSuffix(name, ext)
	cut := limit - len(ext)
	for cut > 0 && !utf8.RuneStart(stem[cut]) {
		cut--
	}
	return stem[:cut] + ext
}
