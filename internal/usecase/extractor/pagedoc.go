package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"quiz-solver/internal/domain/entity"
)

// pageDoc wraps the rendered snapshot with a parsed goquery document so the
// extraction strategies can run selector queries without a live browser.
type pageDoc struct {
	page *entity.RenderedPage
	doc  *goquery.Document
	base *url.URL
}

func newPageDoc(page *entity.RenderedPage) (*pageDoc, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(page.URL)
	if err != nil {
		base = nil
	}

	return &pageDoc{page: page, doc: doc, base: base}, nil
}

// bodyText prefers the browser's rendering of visible text and falls back to
// walking the raw HTML when the snapshot carries none (plain-HTTP renderers).
func (d *pageDoc) bodyText() string {
	if text := strings.TrimSpace(d.page.BodyText); text != "" {
		return text
	}
	return visibleText(d.page.HTML)
}

// resolve turns a possibly relative href into an absolute URL against the
// page location.
func (d *pageDoc) resolve(href string) string {
	if d.base == nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return d.base.ResolveReference(ref).String()
}

// origin returns scheme://host of the current page, or "" when unknown.
func (d *pageDoc) origin() string {
	if d.base == nil || d.base.Scheme == "" || d.base.Host == "" {
		return ""
	}
	return d.base.Scheme + "://" + d.base.Host
}
