package markdown_test

import (
	"strings"
	"testing"

	"worklog/internal/platform/markdown"
)

func TestFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(map[string]any{"users": 2, "anchor": "Friday"}, "# Week\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(rendered, "---\nanchor: Friday\nusers: 2\n---\n\n# Week\n") {
		t.Fatalf("unexpected rendering: %q", rendered)
	}
	meta, body, err := markdown.SplitFrontmatter(rendered)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["users"] != 2 || body != "\n# Week\n" {
		t.Fatalf("unexpected split: %v %q", meta, body)
	}
	if _, _, err := markdown.SplitFrontmatter("---\nunterminated: true\n"); err == nil {
		t.Fatalf("expected missing closing separator to fail")
	}
	meta, body, err = markdown.SplitFrontmatter("plain note")
	if err != nil || len(meta) != 0 || body != "plain note" {
		t.Fatalf("plain content must pass through: %v %q %v", meta, body, err)
	}
}

func TestReplaceManagedBlock(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"
	fresh := markdown.ReplaceManagedBlock("# Title\n", start, end, "one")
	if fresh != "# Title\n\n<!-- s -->\none\n<!-- e -->\n" {
		t.Fatalf("unexpected append: %q", fresh)
	}
	updated := markdown.ReplaceManagedBlock(fresh+"footer\n", start, end, "two")
	if updated != "# Title\n\n<!-- s -->\ntwo\n<!-- e -->\nfooter\n" {
		t.Fatalf("unexpected replace: %q", updated)
	}
	if got := markdown.ReplaceManagedBlock("", start, end, "x"); got != "<!-- s -->\nx\n<!-- e -->\n" {
		t.Fatalf("unexpected empty body result: %q", got)
	}
}
