package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxBaseSlugLength = 80
	fallbackSlug      = "game"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// BaseSlug lowercases title, collapses runs outside [a-z0-9] to one hyphen,
// trims hyphens and truncates to MaxBaseSlugLength.
func BaseSlug(title string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxBaseSlugLength {
		s = strings.TrimRight(s[:MaxBaseSlugLength], "-")
	}
	if s == "" {
		return fallbackSlug
	}
	return s
}

// GenerateSlug appends the base-36 submission time to the base slug. Two
// submissions collide only when both the base slug and the millisecond match.
func GenerateSlug(title string, submissionTimeMs int64) string {
	if submissionTimeMs < 0 {
		submissionTimeMs = 0
	}
	return BaseSlug(title) + "-" + strconv.FormatInt(submissionTimeMs, 36)
}

// CommunityName derives the owner name of an anonymous creator
func CommunityName(creator string) string {
	var b strings.Builder
	b.WriteString("community:")
	for _, r := range strings.ToLower(creator) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
