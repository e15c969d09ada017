package output

import "context"

// DownloaderPort fetches one attachment into destDir, enforcing its own size
// ceiling and timeout, and returns the path of the written file.
type DownloaderPort interface {
	Fetch(ctx context.Context, fileURL, destDir string) (string, error)
}
