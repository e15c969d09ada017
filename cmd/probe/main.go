// probe renders a single quiz page and prints what the extraction engine
// sees: instructions, submit endpoint, schema, and attachments. Useful when a
// page refuses to solve and the logs aren't enough.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"quiz-solver/internal/infrastructure/browser/rod"
	"quiz-solver/internal/infrastructure/fetch"
	"quiz-solver/internal/infrastructure/logger"
	"quiz-solver/internal/usecase/extractor"
)

func main() {
	headless := flag.Bool("headless", true, "run the browser headless")
	flag.Parse()

	url := flag.Arg(0)
	if url == "" {
		fmt.Fprintln(os.Stderr, "usage: probe [-headless=false] <url>")
		os.Exit(2)
	}

	zl, err := logger.New("debug")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Close()

	cfg := rod.DefaultConfig()
	cfg.Headless = *headless
	renderer, err := rod.NewRenderer(cfg)
	if err != nil {
		log.Fatalf("browser: %v", err)
	}
	defer renderer.Close()

	tempDir, err := os.MkdirTemp("", "probe_")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	engine := extractor.New(renderer, fetch.NewDownloader(zl), zl)
	task, err := engine.Extract(ctx, url, tempDir)
	if err != nil {
		log.Fatalf("extract: %v", err)
	}

	out := map[string]any{
		"source_url":     task.SourceURL,
		"instructions":   task.Instructions,
		"submit_url":     task.SubmitURL,
		"submit_assumed": task.SubmitAssumed,
		"terminal":       task.Terminal,
		"schema":         task.Schema,
		"files":          task.Files,
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(data))
}
