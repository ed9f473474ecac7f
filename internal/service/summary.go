package service

import (
	"regexp"
	"strings"
)

// Summary character budgets per content type.
const (
	AnnouncementSummaryLen = 160
	BlogPostSummaryLen     = 200
)

var (
	markdownImagePattern = regexp.MustCompile(`!\[[^\]]*]\([^)]*\)`)
	markdownLinkPattern  = regexp.MustCompile(`\[([^\]]*)]\([^)]*\)`)
	lineMarkerPattern    = regexp.MustCompile(`(?m)^[ \t]*(#{1,6}[ \t]*|>[ \t]*|[-*+][ \t]+|\d+\.[ \t]+)`)
	emphasisReplacer     = strings.NewReplacer("**", "", "__", "", "~~", "", "*", "", "_", "", "`", "")
)

// DeriveSummary computes a document's persisted summary. An explicit
// author-supplied summary always wins, trimmed but otherwise verbatim.
// Otherwise markdown content is reduced to plain text: images stripped,
// links unwrapped to their label, heading/quote/list markers and emphasis
// removed, whitespace collapsed, then hard-cut at maxLen with no ellipsis
// and no word-boundary handling.
func DeriveSummary(explicit, content string, maxLen int) string {
	if s := strings.TrimSpace(explicit); s != "" {
		return s
	}

	if strings.TrimSpace(content) == "" {
		return ""
	}

	plain := markdownImagePattern.ReplaceAllString(content, " ")
	plain = markdownLinkPattern.ReplaceAllString(plain, "$1")
	plain = lineMarkerPattern.ReplaceAllString(plain, "")
	plain = emphasisReplacer.Replace(plain)
	plain = strings.Join(strings.Fields(plain), " ")

	runes := []rune(plain)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return plain
}
