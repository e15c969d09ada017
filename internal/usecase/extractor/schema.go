package extractor

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kaptinlin/jsonrepair"
)

var inlineSchemaRe = regexp.MustCompile(`\{[^{}]*"email"[^{}]*\}`)

// schema looks for a JSON object literal advertising the submission payload
// shape: a script or raw-HTML object containing both "email" and "answer"
// keys. Pages embed these with trailing garbage, so parsing is lenient. An
// empty map means the canonical {email, secret, answer} set applies.
func (d *pageDoc) schema() map[string]any {
	var found map[string]any

	d.doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content := s.Text()
		if !strings.Contains(content, `"email"`) || !strings.Contains(content, `"answer"`) {
			return true
		}
		if obj := parseLenientObject(content); obj != nil {
			found = obj
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	if strings.Contains(d.page.HTML, `"email"`) {
		if m := inlineSchemaRe.FindString(d.page.HTML); m != "" {
			if obj := parseLenientObject(m); obj != nil {
				return obj
			}
		}
	}

	return map[string]any{}
}

// parseLenientObject cuts the first balanced {...} out of s and parses it,
// repairing malformed JSON before giving up.
func parseLenientObject(s string) map[string]any {
	start := strings.Index(s, "{")
	if start < 0 {
		return nil
	}
	candidate := balancedObject(s[start:])

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
		return obj
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil
	}
	return obj
}

// balancedObject returns the prefix of s up to and including the brace that
// closes the opening one, or all of s when unbalanced.
func balancedObject(s string) string {
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return s
}
