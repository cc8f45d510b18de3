package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"gitlab.com/clawgames.net/internal/domain"
)

const (
	MaxTitleLength       = 100
	MinTitleLength       = 2
	MaxDescriptionLength = 500
	MaxCreatorLength     = 50
	DefaultCreator       = "Anonymous"
)

const (
	RuleTitleRequired domain.RuleID = "field.title-required"
	RuleTitleTooShort domain.RuleID = "field.title-too-short"
)

// tagPattern is a best-effort markup stripper, not an HTML parser. Fields are
// only ever displayed, never executed.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// ValidateFields normalizes title and description: trim, truncate, strip tags.
func ValidateFields(title string, description *string) domain.FieldVerdict {
	violations := make([]domain.Violation, 0)

	if strings.TrimSpace(title) == "" {
		violations = append(violations, domain.Violation{RuleID: RuleTitleRequired, Message: "title required"})
		return domain.FieldVerdict{Accepted: false, Violations: violations}
	}

	cleanTitle := normalize(title, MaxTitleLength)
	if utf8.RuneCountInString(cleanTitle) < MinTitleLength {
		violations = append(violations, domain.Violation{
			RuleID:  RuleTitleTooShort,
			Message: "title too short (minimum 2 characters)",
		})
	}

	if len(violations) > 0 {
		return domain.FieldVerdict{Accepted: false, Violations: violations}
	}

	var cleanDescription *string
	if description != nil {
		if d := normalize(*description, MaxDescriptionLength); d != "" {
			cleanDescription = &d
		}
	}

	return domain.FieldVerdict{
		Accepted:              true,
		Violations:            violations,
		NormalizedTitle:       cleanTitle,
		NormalizedDescription: cleanDescription,
	}
}

// NormalizeCreator applies field normalization to a display name, falling
// back to DefaultCreator.
func NormalizeCreator(creator *string) string {
	if creator == nil {
		return DefaultCreator
	}
	name := normalize(*creator, MaxCreatorLength)
	if name == "" {
		return DefaultCreator
	}
	return name
}

func normalize(s string, limit int) string {
	s = truncate(strings.TrimSpace(s), limit)
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
