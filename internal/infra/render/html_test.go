package render

import (
	"strings"
	"testing"

	"legal-docgen/internal/domain/model"
)

func TestBuildHTML_PageBreakConstraints(t *testing.T) {
	t.Parallel()

	html, err := BuildHTML("# Contract\n\n## 1. Scope\n\nSome text.", "Contract")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, want := range []string{
		"page-break-after: avoid",
		"page-break-inside: avoid",
		"size: A4",
		"<h2>1. Scope</h2>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in rendered page", want)
		}
	}
}

func TestBuildHTML_EscapesTitle(t *testing.T) {
	t.Parallel()

	html, err := BuildHTML("body", `<script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatalf("title must be escaped")
	}
}

func TestFooterHTML(t *testing.T) {
	t.Parallel()

	footer := FooterHTML(model.FooterFields{
		SignerName:    "Acme AG",
		SignerAddress: "Industriestrasse 1",
	})
	if !strings.Contains(footer, "Acme AG") || !strings.Contains(footer, "Industriestrasse 1") {
		t.Fatalf("footer fields missing: %s", footer)
	}
	if !strings.Contains(footer, `class="pageNumber"`) {
		t.Fatalf("page number span missing: %s", footer)
	}

	empty := FooterHTML(model.FooterFields{})
	if !strings.Contains(empty, `class="pageNumber"`) {
		t.Fatalf("empty footer still needs the page number")
	}
}

func TestDocxRender_ProducesArchive(t *testing.T) {
	t.Parallel()

	data, err := newDocxRenderer().render("# Contract\n\n## 1. Scope\n\nSome text.\n\n- item one\n- item two")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// docx files are zip archives
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Fatalf("expected a zip container, got % x", data[:4])
	}
}
