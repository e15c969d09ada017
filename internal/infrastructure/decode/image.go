package decode

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// OCR works a lot better on large grayscale input, so small screenshots get
// upscaled before recognition.
const minOCRWidth = 900

func decodeImage(path string) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}

	img = imaging.Grayscale(img)
	if img.Bounds().Dx() < minOCRWidth {
		img = imaging.Resize(img, minOCRWidth*2, 0, imaging.Lanczos)
	}

	prepared := filepath.Join(os.TempDir(), "ocr_"+filepath.Base(path)+".png")
	if err := imaging.Save(img, prepared); err != nil {
		return "", fmt.Errorf("save preprocessed image: %w", err)
	}
	defer os.Remove(prepared)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(prepared); err != nil {
		return "", fmt.Errorf("ocr set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return bounded(text), nil
}
