// Package render turns a canonical exercise into the HTML page learners
// download: it pulls HTML out of the model's render response, adds the
// learner-optimization markup, and renders a local page when the model
// returns none.
package render

import "strings"

const (
	htmlFence = "```html"
	fence     = "```"
)

// ExtractHTML returns the HTML document embedded in a model response. It
// prefers a fenced html block and falls back to the <html>...</html> span.
func ExtractHTML(text string) (string, bool) {
	if i := strings.Index(text, htmlFence); i >= 0 {
		body := text[i+len(htmlFence):]
		if j := strings.Index(body, fence); j >= 0 {
			body = body[:j]
		}
		if body = strings.TrimSpace(body); body != "" {
			return body, true
		}
	}

	lower := strings.ToLower(text)
	start := strings.Index(lower, "<html")
	end := strings.LastIndex(lower, "</html>")
	if start < 0 || end < start {
		return "", false
	}
	if d := strings.Index(lower, "<!doctype html"); d >= 0 && d < start {
		start = d
	}
	return text[start : end+len("</html>")], true
}
