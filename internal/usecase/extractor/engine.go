// Package extractor turns a rendered quiz page into a structured PageTask:
// instruction text, submission endpoint, expected payload schema, and any
// downloadable attachments. Extraction fails only when the page cannot be
// rendered at all; everything else degrades to partial data.
package extractor

import (
	"context"
	"fmt"
	"strings"

	"quiz-solver/internal/application/port/output"
	"quiz-solver/internal/domain/entity"
)

const instructionLimit = 3000

var terminalKeywords = []string{"congratulations", "completed", "success"}

type Engine struct {
	renderer   output.RendererPort
	downloader output.DownloaderPort
	logger     output.LoggerPort
}

func New(renderer output.RendererPort, downloader output.DownloaderPort, logger output.LoggerPort) *Engine {
	return &Engine{
		renderer:   renderer,
		downloader: downloader,
		logger:     logger,
	}
}

// Extract renders url and assembles the page task. destDir receives any
// downloaded attachments and must be session-scoped.
func (e *Engine) Extract(ctx context.Context, url, destDir string) (*entity.PageTask, error) {
	page, err := e.renderer.Render(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", url, err)
	}

	doc, err := newPageDoc(page)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	task := &entity.PageTask{
		SourceURL:    url,
		HTML:         page.HTML,
		Instructions: doc.instructions(),
	}

	submitURL, strategyName, found := discoverSubmitURL(doc)
	switch {
	case found:
		task.SubmitURL = submitURL
		e.logger.Info("Found submit URL", "url", submitURL, "strategy", strategyName)
	case looksTerminal(task.Instructions):
		// A results page legitimately has no endpoint. Do not guess one.
		task.Terminal = true
		e.logger.Info("No submit URL and page reads as a results page, treating as terminal")
	default:
		if assumed, ok := assumeSubmitURL(doc); ok {
			// A guess, not a discovery. Flagged so diagnostics downstream can
			// tell the difference.
			task.SubmitURL = assumed
			task.SubmitAssumed = true
			e.logger.Warn("No explicit submit URL found, assuming", "url", assumed)
		} else {
			e.logger.Warn("No submit URL found in page", "url", url)
		}
	}

	task.Schema = doc.schema()
	task.Files = e.downloadFiles(ctx, doc, destDir)

	return task, nil
}

func looksTerminal(instructions string) bool {
	lower := strings.ToLower(instructions)
	for _, kw := range terminalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
