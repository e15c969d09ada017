package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Submit-URL discovery is an ordered cascade of named strategies, evaluated
// in descending confidence with short-circuit on the first hit. The order is
// part of the contract; tests pin it per strategy.

const maxSubmitURLLen = 300

var submitKeywords = []string{"/submit", "/api", "/answer", "/check", "/solve", "/process"}

var (
	urlRe = regexp.MustCompile(`https?://[^\s\n"'<>]+`)

	scriptURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:fetch|post)\s*\(\s*["']?(https?://[^\s"')]+)`),
		regexp.MustCompile(`(?i)url\s*:\s*["']?(https?://[^\s"'}]+)`),
		regexp.MustCompile(`(?i)endpoint\s*:\s*["']?(https?://[^\s"'}]+)`),
		regexp.MustCompile(`(?i)action\s*:\s*["']?(https?://[^\s"'}]+)`),
		regexp.MustCompile(`(?i)submit.*?url\s*:\s*["']?(https?://[^\s"'}]+)`),
	}

	attrURLRe = regexp.MustCompile(`(?i)(?:data-submit|data-action|action)=["']?(https?://[^\s"']+)`)
)

type strategy struct {
	name string
	find func(d *pageDoc) (string, bool)
}

var submitStrategies = []strategy{
	{"form-action", findFormAction},
	{"script-endpoint", findScriptEndpoint},
	{"attr-url", findAttributeURL},
	{"body-keyword-url", findBodyKeywordURL},
	{"hidden-element-url", findHiddenElementURL},
	{"pre-code-url", findPreCodeURL},
	{"any-url", findAnyURL},
}

// discoverSubmitURL runs the cascade and returns the first safe hit together
// with the strategy that produced it.
func discoverSubmitURL(d *pageDoc) (string, string, bool) {
	for _, s := range submitStrategies {
		candidate, ok := s.find(d)
		if !ok {
			continue
		}
		if !safeSubmitURL(candidate) {
			continue
		}
		return candidate, s.name, true
	}
	return "", "", false
}

// assumeSubmitURL synthesizes {origin}/submit. It is a guess: callers must
// flag it as assumed rather than discovered.
func assumeSubmitURL(d *pageDoc) (string, bool) {
	origin := d.origin()
	if origin == "" {
		return "", false
	}
	return origin + "/submit", true
}

// safeSubmitURL is the SSRF guard at the extraction boundary: absolute,
// http(s)-only, and short enough to not be regex garbage.
func safeSubmitURL(raw string) bool {
	if raw == "" || len(raw) >= maxSubmitURLLen {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func findFormAction(d *pageDoc) (string, bool) {
	action, exists := d.doc.Find("form").First().Attr("action")
	if !exists || strings.TrimSpace(action) == "" {
		return "", false
	}
	return d.resolve(action), true
}

func findScriptEndpoint(d *pageDoc) (string, bool) {
	var found string
	d.doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content := s.Text()
		for _, pattern := range scriptURLPatterns {
			for _, m := range pattern.FindAllStringSubmatch(content, -1) {
				if candidate := m[1]; candidate != "" && len(candidate) < maxSubmitURLLen {
					found = candidate
					return false
				}
			}
		}
		return true
	})
	return found, found != ""
}

func findAttributeURL(d *pageDoc) (string, bool) {
	if m := attrURLRe.FindStringSubmatch(d.page.HTML); m != nil {
		return m[1], true
	}
	return "", false
}

func findBodyKeywordURL(d *pageDoc) (string, bool) {
	for _, candidate := range urlRe.FindAllString(d.bodyText(), -1) {
		if hasSubmitKeyword(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func findHiddenElementURL(d *pageDoc) (string, bool) {
	var found string
	sel := `[style*="display:none"], [hidden], .hidden, [data-submit]`
	d.doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		urls := urlRe.FindAllString(s.Text(), -1)
		if len(urls) > 0 && hasSubmitKeyword(urls[0]) {
			found = urls[0]
			return false
		}
		return true
	})
	return found, found != ""
}

func findPreCodeURL(d *pageDoc) (string, bool) {
	var found string
	d.doc.Find("pre, code").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, candidate := range urlRe.FindAllString(s.Text(), -1) {
			if hasSubmitKeyword(candidate) {
				found = candidate
				return false
			}
		}
		return true
	})
	return found, found != ""
}

// findAnyURL is the weakest discovery tier: prefer any URL on the page's own
// host, else the first HTTPS URL anywhere in the visible text.
func findAnyURL(d *pageDoc) (string, bool) {
	all := urlRe.FindAllString(d.bodyText(), -1)
	if len(all) == 0 {
		return "", false
	}

	if d.base != nil && d.base.Host != "" {
		for _, candidate := range all {
			if strings.Contains(candidate, d.base.Host) {
				return candidate, true
			}
		}
	}

	for _, candidate := range all {
		if strings.HasPrefix(candidate, "https") {
			return candidate, true
		}
	}
	return "", false
}

func hasSubmitKeyword(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, kw := range submitKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
