package extractor

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxFileLinks = 10

var dataExtensions = []string{".pdf", ".csv", ".json", ".txt", ".xlsx", ".png", ".jpg"}

// downloadFiles enumerates anchor links to known data extensions and
// materializes each into destDir. Every per-file failure is logged and
// skipped; the hop proceeds with whatever downloaded.
func (e *Engine) downloadFiles(ctx context.Context, d *pageDoc, destDir string) map[string]string {
	files := make(map[string]string)

	seen := 0
	d.doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if seen >= maxFileLinks || ctx.Err() != nil {
			return false
		}

		href, _ := s.Attr("href")
		fileURL := d.resolve(href)
		if fileURL == "" || !hasDataExtension(fileURL) {
			return true
		}
		seen++

		dest, err := e.downloader.Fetch(ctx, fileURL, destDir)
		if err != nil {
			e.logger.Debug("Attachment download failed", "url", fileURL, "error", err)
			return true
		}

		name := fileName(fileURL)
		files[name] = dest
		e.logger.Info("Downloaded attachment", "file", name)
		return true
	})

	return files
}

func hasDataExtension(fileURL string) bool {
	lower := strings.ToLower(fileURL)
	for _, ext := range dataExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func fileName(fileURL string) string {
	if u, err := url.Parse(fileURL); err == nil {
		return path.Base(u.Path)
	}
	return path.Base(fileURL)
}
