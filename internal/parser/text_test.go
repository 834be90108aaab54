package parser

import (
	"strings"
	"testing"
)

func TestTextParserKeepsNumberedLines(t *testing.T) {
	src := strings.Join([]string{
		"第一章 概述",
		"这是一段普通的正文，不应该被识别为标题。",
		"1.1 背景",
		"More prose follows here, again not a heading.",
		"1.2 目标",
	}, "\n")

	p := &TextParser{}
	got, err := p.Parse(strings.NewReader(src), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"第一章 概述", "1.1 背景", "1.2 目标"}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %+v", len(want), len(got), got)
	}
	for i, c := range got {
		if c.Text != want[i] {
			t.Errorf("candidate %d: got %q, want %q", i, c.Text, want[i])
		}
	}
}

func TestHTMLParserCollectsHeadings(t *testing.T) {
	src := `<html><head><title>Doc</title></head><body>
<nav><h2>Site Nav</h2></nav>
<h1>Overview</h1>
<p>Body text.</p>
<h2>First Section</h2>
<h2>Second Section</h2>
</body></html>`

	p := &HTMLParser{}
	got, err := p.Parse(strings.NewReader(src), "doc.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Overview", "First Section", "Second Section"}
	if len(got) != len(want) {
		t.Fatalf("expected %d headings, got %d: %+v", len(want), len(got), got)
	}
	for i, c := range got {
		if c.Text != want[i] {
			t.Errorf("heading %d: got %q, want %q", i, c.Text, want[i])
		}
	}
	if got[0].LevelHint != 1 || got[1].LevelHint != 2 {
		t.Errorf("unexpected level hints: %+v", got)
	}
}
