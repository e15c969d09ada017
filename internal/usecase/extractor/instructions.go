package extractor

import "regexp"

var (
	// Script-embedded instruction arrays, e.g. `const lines = ["...", ...];`
	// on canvas-only pages that render their text via JS.
	scriptArrayRe = regexp.MustCompile(`(?is)(?:const|let|var)\s+(?:lines|instructions|task|puzzle)?\s*=\s*\[(.*?)\];`)

	// Diagnostic object literals logged to the console.
	consoleLogRe = regexp.MustCompile(`(?s)console\.log\s*\(\s*\{([^}]+)\}\s*\)`)
)

// instructions recovers the human-readable task description. Visible body
// text wins; near-empty bodies (canvas pages) fall back to script literals,
// then console.log payloads, then the raw HTML, all bounded.
func (d *pageDoc) instructions() string {
	if text := d.bodyText(); len(text) > 10 {
		return truncate(text, instructionLimit)
	}

	if m := scriptArrayRe.FindStringSubmatch(d.page.HTML); m != nil {
		return truncate(m[1], instructionLimit)
	}

	if m := consoleLogRe.FindStringSubmatch(d.page.HTML); m != nil {
		return truncate(m[1], instructionLimit)
	}

	return truncate(d.page.HTML, instructionLimit)
}
