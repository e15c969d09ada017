// Package decode turns downloaded attachments into bounded text: tabular
// formats become aligned tables, PDFs and images become extracted text. A
// decoder failure never aborts anything upstream; the file is simply treated
// as content-free.
package decode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"quiz-solver/internal/application/port/output"
)

const (
	textLimit      = 8000
	rawPrefixBytes = 2000
)

var _ output.FileDecoder = (*Registry)(nil)

type Registry struct {
	logger output.LoggerPort
	ocr    bool
}

// NewRegistry builds the decoder set. enableOCR gates the tesseract-backed
// image decoder, which needs the native library installed.
func NewRegistry(logger output.LoggerPort, enableOCR bool) *Registry {
	return &Registry{logger: logger, ocr: enableOCR}
}

func (r *Registry) Decode(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return decodeCSV(path)
	case ".json":
		return decodeJSON(path)
	case ".xlsx":
		return decodeXLSX(path)
	case ".pdf":
		return decodePDF(path)
	case ".png", ".jpg", ".jpeg":
		if !r.ocr {
			return "", fmt.Errorf("ocr disabled, skipping %s", filepath.Base(path))
		}
		return decodeImage(path)
	default:
		return readRawPrefix(path)
	}
}

func readRawPrefix(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, rawPrefixBytes)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}

func bounded(text string) string {
	if len(text) > textLimit {
		return text[:textLimit]
	}
	return text
}
