package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"legal-docgen/internal/domain"
	"legal-docgen/internal/domain/model"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// BuildHTML converts drafted markup into a self-contained print-ready page.
// Page-break avoidance is expressed as layout constraints here, not
// post-processed: headings stay attached to their first paragraph and
// sections avoid splitting across pages where possible.
func BuildHTML(markup, title string) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(markup), &body); err != nil {
		return "", fmt.Errorf("%w: markdown conversion: %v", domain.ErrRendering, err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(title))
	b.WriteString("</title><style>")
	b.WriteString(printCSS)
	b.WriteString("</style></head><body>")
	b.Write(body.Bytes())
	b.WriteString("</body></html>")
	return b.String(), nil
}

// A4 with fixed margins; the chrome footer is injected at print time, so the
// page itself carries no header/footer markup.
const printCSS = `
@page { size: A4; margin: 20mm 18mm 22mm 18mm; }
body { font-family: "Times New Roman", Georgia, serif; font-size: 11pt; line-height: 1.45; color: #111; }
h1 { font-size: 16pt; text-align: center; margin: 0 0 14pt 0; }
h2 { font-size: 12pt; margin: 12pt 0 4pt 0; page-break-after: avoid; break-after: avoid-page; }
h3 { font-size: 11pt; margin: 10pt 0 3pt 0; page-break-after: avoid; break-after: avoid-page; }
p { margin: 0 0 6pt 0; orphans: 3; widows: 3; }
h2 + p, h3 + p { page-break-before: avoid; break-before: avoid-page; }
section, blockquote, table { page-break-inside: avoid; break-inside: avoid-page; }
ul, ol { margin: 0 0 6pt 0; }
`

// FooterHTML builds the per-page footer template used by the PDF printer:
// signer name/address and contact info on the left, page number on the right.
// Chrome substitutes the pageNumber/totalPages spans at print time.
func FooterHTML(f model.FooterFields) string {
	left := make([]string, 0, 3)
	for _, s := range []string{f.SignerName, f.SignerAddress, f.ContactInfo} {
		if s != "" {
			left = append(left, html.EscapeString(s))
		}
	}
	return `<div style="font-size:8pt; width:100%; padding:0 18mm; display:flex; justify-content:space-between;">` +
		`<span>` + strings.Join(left, " &middot; ") + `</span>` +
		`<span><span class="pageNumber"></span> / <span class="totalPages"></span></span>` +
		`</div>`
}
