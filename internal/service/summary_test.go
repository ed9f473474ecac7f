package service

import (
	"strings"
	"testing"
)

func TestDeriveSummaryExplicitWins(t *testing.T) {
	got := DeriveSummary("A", "# B", AnnouncementSummaryLen)
	if got != "A" {
		t.Fatalf("expected explicit summary to win, got %q", got)
	}

	got = DeriveSummary("  padded  ", "ignored", AnnouncementSummaryLen)
	if got != "padded" {
		t.Fatalf("expected trimmed explicit summary, got %q", got)
	}
}

func TestDeriveSummaryStripsMarkdown(t *testing.T) {
	cases := []struct {
		content string
		want    string
	}{
		{"# Hello **world**", "Hello world"},
		{"![alt](https://example.com/a.png) first words", "first words"},
		{"see [the docs](https://example.com) for more", "see the docs for more"},
		{"> quoted line\n- item one\n2. item two", "quoted line item one item two"},
		{"plain   text\twith\n\nruns", "plain text with runs"},
		{"`code` and _emphasis_", "code and emphasis"},
	}

	for _, tc := range cases {
		if got := DeriveSummary("", tc.content, BlogPostSummaryLen); got != tc.want {
			t.Errorf("DeriveSummary(%q) = %q, want %q", tc.content, got, tc.want)
		}
	}
}

func TestDeriveSummaryHardTruncation(t *testing.T) {
	content := strings.Repeat("a", 500)
	got := DeriveSummary("", content, AnnouncementSummaryLen)
	if len([]rune(got)) != AnnouncementSummaryLen {
		t.Fatalf("expected exactly %d characters, got %d", AnnouncementSummaryLen, len([]rune(got)))
	}
	if strings.HasSuffix(got, "…") {
		t.Fatal("expected no ellipsis on truncation")
	}
}

func TestDeriveSummaryEmptyInputs(t *testing.T) {
	if got := DeriveSummary("", "", AnnouncementSummaryLen); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
	if got := DeriveSummary("   ", "  \n\t ", AnnouncementSummaryLen); got != "" {
		t.Fatalf("expected empty summary for blank inputs, got %q", got)
	}
}
