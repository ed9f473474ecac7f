// Package slug derives URL-safe identifiers for content documents.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases raw, collapses every run of characters outside
// [a-z0-9] to a single hyphen and strips leading and trailing hyphens. When
// nothing survives (all-symbolic or non-Latin input) it falls back to a
// generated {prefix}-{YYYYMMDD}-{4 random chars} slug. Uniqueness is not
// guaranteed here; the write pipeline's collision check enforces it.
func Normalize(raw, prefix string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = nonAlnumRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s != "" {
		return s
	}
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), randomSuffix())
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
}
