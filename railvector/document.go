package railvector

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mazznoer/csscolorparser"
	"github.com/yuin/goldmark"
)

// buildDocument wraps a canvas's accumulated elements in an <svg> root with
// the advisory size, optional title/description, and optional stylesheet.
func buildDocument(body string, width, height float64, title, description, cssClass, cssStyle string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" class="%s">`+"\n",
		f(width), f(height), docClass(cssClass))

	if title != "" {
		fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	}
	if description != "" {
		plain, err := markdownToPlainText(description)
		if err != nil {
			return "", fmt.Errorf("failed to render description markdown: %w", err)
		}
		fmt.Fprintf(&b, "<desc>%s</desc>\n", html.EscapeString(plain))
	}
	if cssStyle != "" {
		if err := validateCSSColors(cssStyle); err != nil {
			return "", fmt.Errorf("invalid css_style: %w", err)
		}
		fmt.Fprintf(&b, "<style>%s</style>\n", cssStyle)
	} else {
		b.WriteString(defaultStylesheet())
		b.WriteString("\n")
	}

	b.WriteString(body)
	b.WriteString("\n</svg>\n")
	return b.String(), nil
}

// markdownToPlainText renders description as Markdown (the one place the
// vector back-end accepts rich text, since <desc> is plain-text-only in
// SVG) and strips it back down to plain text with goquery, the same way
// an embedder would scrape rendered HTML for its text content.
func markdownToPlainText(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Text()), nil
}

// validateCSSColors walks every color-literal-shaped token in a
// caller-supplied stylesheet and rejects the document if any fails to
// parse, rather than silently emitting an SVG that no renderer can style.
func validateCSSColors(style string) error {
	for _, tok := range strings.FieldsFunc(style, func(r rune) bool {
		return r == ':' || r == ';' || r == ' ' || r == '\n' || r == '\t' || r == '{' || r == '}'
	}) {
		if !looksLikeColor(tok) {
			continue
		}
		if _, err := csscolorparser.Parse(tok); err != nil {
			return fmt.Errorf("token %q: %w", tok, err)
		}
	}
	return nil
}

func looksLikeColor(tok string) bool {
	return strings.HasPrefix(tok, "#") ||
		strings.HasPrefix(tok, "rgb(") || strings.HasPrefix(tok, "rgba(") ||
		strings.HasPrefix(tok, "hsl(") || strings.HasPrefix(tok, "hsla(")
}

func docClass(cssClass string) string {
	if cssClass == "" {
		return "railroad-diagram"
	}
	return "railroad-diagram " + cssClass
}

func defaultStylesheet() string {
	return `<style>
.rr-box { fill: #fff; stroke: #000; }
.rr-text { font: 13px monospace; text-anchor: middle; dominant-baseline: middle; }
.rr-line, .rr-arc { fill: none; stroke: #000; }
.rr-arrow { fill: #000; }
.rr-arrow-open { fill: none; stroke: #000; }
.rr-end-simple, .rr-end-complex { stroke: #000; }
.rr-group-caption { font: 11px monospace; }
</style>`
}
