package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quiz-solver/internal/domain/entity"
)

func docFor(t *testing.T, pageURL, html, bodyText string) *pageDoc {
	t.Helper()
	d, err := newPageDoc(&entity.RenderedPage{URL: pageURL, HTML: html, BodyText: bodyText})
	require.NoError(t, err)
	return d
}

func TestDiscoverSubmitURL_FormAction(t *testing.T) {
	d := docFor(t, "https://quiz.example.com/q/1",
		`<html><body><form action="/grade"><input name="answer"></form></body></html>`, "")

	url, strategy, ok := discoverSubmitURL(d)
	require.True(t, ok)
	assert.Equal(t, "https://quiz.example.com/grade", url)
	assert.Equal(t, "form-action", strategy)
}

func TestDiscoverSubmitURL_FormBeatsScript(t *testing.T) {
	d := docFor(t, "https://quiz.example.com/q/1", `<html><body>
		<form action="https://quiz.example.com/form-endpoint"></form>
		<script>fetch("https://quiz.example.com/script-endpoint")</script>
	</body></html>`, "")

	url, strategy, ok := discoverSubmitURL(d)
	require.True(t, ok)
	assert.Equal(t, "https://quiz.example.com/form-endpoint", url)
	assert.Equal(t, "form-action", strategy)
}

func TestDiscoverSubmitURL_ScriptPatterns(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"fetch call", `fetch("https://api.example.com/submit", {method: "POST"})`, "https://api.example.com/submit"},
		{"axios post", `axios.post("https://api.example.com/check")`, "https://api.example.com/check"},
		{"url property", `const cfg = { url: "https://api.example.com/answer" }`, "https://api.example.com/answer"},
		{"endpoint property", `let endpoint: "https://api.example.com/v1/grade"`, "https://api.example.com/v1/grade"},
		{"submit url property", `submitUrl: "https://api.example.com/go"`, "https://api.example.com/go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := docFor(t, "https://quiz.example.com/q/1",
				`<html><body><script>`+tt.script+`</script></body></html>`, "")

			url, strategy, ok := discoverSubmitURL(d)
			require.True(t, ok)
			assert.Equal(t, tt.want, url)
			assert.Equal(t, "script-endpoint", strategy)
		})
	}
}

func TestDiscoverSubmitURL_DataAttribute(t *testing.T) {
	d := docFor(t, "https://quiz.example.com/q/1",
		`<html><body><div data-submit="https://quiz.example.com/turn-in">Submit here</div></body></html>`, "")

	url, strategy, ok := discoverSubmitURL(d)
	require.True(t, ok)
	assert.Equal(t, "https://quiz.example.com/turn-in", url)
	assert.Equal(t, "attr-url", strategy)
}

func TestDiscoverSubmitURL_BodyKeyword(t *testing.T) {
	d := docFor(t, "https://quiz.example.com/q/1",
		`<html><body><p>POST your answer to https://quiz.example.com/api/grade</p></body></html>`,
		"POST your answer to https://quiz.example.com/api/grade")

	url, strategy, ok := discoverSubmitURL(d)
	require.True(t, ok)
	assert.Equal(t, "https://quiz.example.com/api/grade", url)
	assert.Equal(t, "body-keyword-url", strategy)
}

func TestDiscoverSubmitURL_HiddenElement(t *testing.T) {
	d := docFor(t, "https://quiz.example.com/q/1",
		`<html><body><p>Find the endpoint</p><div class="hidden">https://quiz.example.com/api/check</div></body></html>`,
		"Find the endpoint")

	url, strategy, ok := discoverSubmitURL(d)
	require.True(t, ok)
	assert.Equal(t, "https://quiz.example.com/api/check", url)
	assert.Equal(t, "hidden-element-url", strategy)
}

func TestDiscoverSubmitURL_PreCode(t *testing.T) {
	d := docFor(t, "https://quiz.example.com/q/1",
		`<html><body><p>Use the command below</p><pre>curl -X POST https://quiz.example.com/solve/1</pre></body></html>`,
		"Use the command below")

	url, strategy, ok := discoverSubmitURL(d)
	require.True(t, ok)
	assert.Equal(t, "https://quiz.example.com/solve/1", url)
	assert.Equal(t, "pre-code-url", strategy)
}

func TestDiscoverSubmitURL_AnyURLPrefersSameHost(t *testing.T) {
	body := "See https://other.example.org/docs and https://quiz.example.com/somewhere"
	d := docFor(t, "https://quiz.example.com/q/1",
		`<html><body><p>`+body+`</p></body></html>`, body)

	url, strategy, ok := discoverSubmitURL(d)
	require.True(t, ok)
	assert.Equal(t, "https://quiz.example.com/somewhere", url)
	assert.Equal(t, "any-url", strategy)
}

func TestDiscoverSubmitURL_NothingFound(t *testing.T) {
	d := docFor(t, "https://quiz.example.com/q/1",
		`<html><body><p>just words</p></body></html>`, "just words")

	_, _, ok := discoverSubmitURL(d)
	assert.False(t, ok)
}

func TestDiscoverSubmitURL_RejectsOverlongMatch(t *testing.T) {
	long := "https://quiz.example.com/api/"
	for len(long) < maxSubmitURLLen+50 {
		long += "x"
	}
	d := docFor(t, "https://quiz.example.com/q/1",
		`<html><body><p>`+long+`</p></body></html>`, long)

	_, _, ok := discoverSubmitURL(d)
	assert.False(t, ok)
}

func TestAssumeSubmitURL(t *testing.T) {
	d := docFor(t, "https://quiz.example.com/q/1", `<html><body></body></html>`, "")

	url, ok := assumeSubmitURL(d)
	require.True(t, ok)
	assert.Equal(t, "https://quiz.example.com/submit", url)
}

func TestSafeSubmitURL(t *testing.T) {
	assert.True(t, safeSubmitURL("https://quiz.example.com/submit"))
	assert.True(t, safeSubmitURL("http://quiz.example.com/submit"))
	assert.False(t, safeSubmitURL("ftp://quiz.example.com/submit"))
	assert.False(t, safeSubmitURL("javascript:alert(1)"))
	assert.False(t, safeSubmitURL("file:///etc/passwd"))
	assert.False(t, safeSubmitURL(""))
	assert.False(t, safeSubmitURL("/relative/submit"))
}
