package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var unsafeNameRe = regexp.MustCompile(`[^\w.\-]`)

// SanitizeName replaces every character outside [A-Za-z0-9_.-] with '_'.
func SanitizeName(name string) string {
	return unsafeNameRe.ReplaceAllString(filepath.Base(name), "_")
}

// Uploader writes multipart files into Dir and returns the public path under
// MountPath that the store records.
type Uploader struct {
	Dir       string
	MountPath string
	Now       func() time.Time
}

// NewUploader creates dir if needed and returns an Uploader serving it at mount.
func NewUploader(dir, mount string) (*Uploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if mount == "" {
		mount = "/uploads"
	}
	return &Uploader{Dir: dir, MountPath: "/" + strings.Trim(mount, "/"), Now: time.Now}, nil
}

// Save stores fh as "<unix millis>-<sanitized name>" and returns its public path.
func (u *Uploader) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	name := strconv.FormatInt(now().UnixMilli(), 10) + "-" + SanitizeName(fh.Filename)

	dst, err := os.Create(filepath.Join(u.Dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return u.MountPath + "/" + name, nil
}

// Handler serves the upload directory; mount it at MountPath.
func (u *Uploader) Handler() http.Handler {
	return http.StripPrefix(u.MountPath, http.FileServer(http.Dir(u.Dir)))
}
