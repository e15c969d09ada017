package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"quiz-solver/internal/application/port/output"
)

const (
	// MaxFileSize caps any single attachment. Oversized files are dropped
	// with a warning, not fatal.
	MaxFileSize = 5 << 20

	fetchTimeout = 15 * time.Second
	maxRedirects = 10
)

var ErrTooLarge = errors.New("file exceeds size limit")

var _ output.DownloaderPort = (*Downloader)(nil)

type Downloader struct {
	client *http.Client
	logger output.LoggerPort
}

func NewDownloader(logger output.LoggerPort) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: fetchTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		logger: logger,
	}
}

// Fetch downloads fileURL into destDir, enforcing the size ceiling both on
// the declared length and on the actual byte stream.
func (d *Downloader) Fetch(ctx context.Context, fileURL, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", fileURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: status %d", fileURL, resp.StatusCode)
	}
	if resp.ContentLength > MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes declared", ErrTooLarge, resp.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", fileURL, err)
	}
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("%w: body exceeded %d bytes", ErrTooLarge, MaxFileSize)
	}

	dest := filepath.Join(destDir, safeFileName(fileURL))
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	return dest, nil
}

// safeFileName keeps only the base name of the URL path so a crafted href
// cannot escape the session directory.
func safeFileName(fileURL string) string {
	name := fileURL
	if u, err := url.Parse(fileURL); err == nil {
		name = u.Path
	}
	name = path.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	if name == "" || name == "." || name == "/" {
		name = "download"
	}
	return name
}
