package decode

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

func decodePDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	limited := io.LimitReader(textReader, textLimit)
	data, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(data), nil
}
