package sanitize

import (
	"fmt"

	"gitlab.com/clawgames.net/internal/domain"
)

// MaxCodeSize is the size ceiling for submitted code, in bytes
const MaxCodeSize = 512 * 1024

const RuleMaxSize domain.RuleID = "size.max"

// Scanner matches submitted code against a denylist. It holds no mutable
// state and is safe for concurrent use.
type Scanner struct {
	rules   []Rule
	maxSize int
	inject  func(string) string
}

type Option func(*Scanner)

// WithMaxSize overrides the size ceiling
func WithMaxSize(n int) Option {
	return func(s *Scanner) {
		s.maxSize = n
	}
}

// WithExtraRules appends rules after the default denylist
func WithExtraRules(rules ...Rule) Option {
	return func(s *Scanner) {
		s.rules = append(s.rules, rules...)
	}
}

func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		rules:   DefaultRules(),
		maxSize: MaxCodeSize,
		inject:  InjectPolicy,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scanner) Rules() []Rule {
	return s.rules
}

// Scan reports every violation found in code. The verdict is rejected when any
// rule fires; nothing is stripped or rewritten in that case. Accepted code is
// returned with the platform content-security policy injected.
func (s *Scanner) Scan(code string) domain.SanitizationVerdict {
	violations := make([]domain.Violation, 0)

	if len(code) > s.maxSize {
		violations = append(violations, domain.Violation{
			RuleID:  RuleMaxSize,
			Message: fmt.Sprintf("Game HTML exceeds maximum size (%dKB > %dKB)", (len(code)+512)/1024, s.maxSize/1024),
		})
	}

	for _, r := range s.rules {
		if r.Match(code) {
			violations = append(violations, r.violation())
		}
	}

	if len(violations) > 0 {
		return domain.SanitizationVerdict{Accepted: false, Violations: violations}
	}

	sanitized := s.inject(code)
	return domain.SanitizationVerdict{
		Accepted:      true,
		Violations:    violations,
		SanitizedCode: &sanitized,
	}
}

var defaultScanner = NewScanner()

// Scan runs the default scanner
func Scan(code string) domain.SanitizationVerdict {
	return defaultScanner.Scan(code)
}
