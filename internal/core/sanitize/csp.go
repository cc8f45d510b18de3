package sanitize

import (
	"regexp"
)

// PolicyTag is the platform content-security policy: nothing loads by
// default, inline script and style run, images only from data: and blob:.
const PolicyTag = `<meta http-equiv="Content-Security-Policy" content="default-src 'none'; script-src 'unsafe-inline'; style-src 'unsafe-inline'; img-src data: blob:;">`

var (
	// the optional leading newline is the one InjectPolicy writes before the tag
	policyMetaPattern = regexp.MustCompile(`(?i)\n?<meta[^>]*http-equiv\s*=\s*['"]?Content-Security-Policy[^>]*>`)
	headOpenPattern   = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)
	htmlOpenPattern   = regexp.MustCompile(`(?i)<html(\s[^>]*)?>`)
)

// StripPolicies removes every content-security-policy meta declaration,
// including ones that only form once an inner declaration is removed.
func StripPolicies(code string) string {
	for policyMetaPattern.MatchString(code) {
		code = policyMetaPattern.ReplaceAllString(code, "")
	}
	return code
}

// CountPolicies returns the number of content-security-policy meta declarations
func CountPolicies(code string) int {
	return len(policyMetaPattern.FindAllStringIndex(code, -1))
}

// InjectPolicy strips author policies and inserts PolicyTag, preferring the
// existing head, then a synthesized head inside the root element, then the
// start of the document. InjectPolicy(InjectPolicy(x)) == InjectPolicy(x).
func InjectPolicy(code string) string {
	out := StripPolicies(code)

	if loc := headOpenPattern.FindStringIndex(out); loc != nil {
		return out[:loc[1]] + "\n" + PolicyTag + out[loc[1]:]
	}

	if loc := htmlOpenPattern.FindStringIndex(out); loc != nil {
		// written so that a second pass takes the head branch and lands on the same bytes
		return out[:loc[1]] + "<head>\n" + PolicyTag + "</head>" + out[loc[1]:]
	}

	return PolicyTag + out
}
