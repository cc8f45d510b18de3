package sanitize

import (
	"regexp"
	"strings"

	"gitlab.com/clawgames.net/internal/domain"
)

// Category groups rules for reporting
type Category string

const (
	CategoryCapability Category = "capability"
	CategoryBypass     Category = "bypass"
	CategorySize       Category = "size"
)

// Rule is a single denylist entry. Rules are matched independently and each
// matching rule yields exactly one violation.
type Rule struct {
	ID       domain.RuleID
	Category Category
	Pattern  *regexp.Regexp
	Message  string
}

func (r Rule) Match(code string) bool {
	return r.Pattern.MatchString(code)
}

func (r Rule) violation() domain.Violation {
	return domain.Violation{RuleID: r.ID, Message: r.Message}
}

func rule(id string, cat Category, pattern, message string) Rule {
	return Rule{
		ID:       domain.RuleID(id),
		Category: cat,
		Pattern:  regexp.MustCompile(pattern),
		Message:  message,
	}
}

const quote = "['\"`]"

// bracketTargets are capability identifiers that are also reachable through
// string-keyed property access, e.g. window['fetch'].
var bracketTargets = []string{
	"fetch", "XMLHttpRequest", "WebSocket", "EventSource", "sendBeacon",
	"eval", "Function", "import", "cookie", "localStorage", "sessionStorage",
	"indexedDB", "open", "location", "domain",
}

var capabilityRules = []Rule{
	rule("net.fetch", CategoryCapability, `(?i)fetch\s*\(`, "Blocked: network access via fetch()"),
	rule("net.xhr", CategoryCapability, `(?i)XMLHttpRequest`, "Blocked: network access via XMLHttpRequest"),
	rule("net.websocket", CategoryCapability, `(?i)WebSocket`, "Blocked: network access via WebSocket"),
	rule("net.eventsource", CategoryCapability, `(?i)EventSource`, "Blocked: network access via EventSource"),
	rule("net.beacon", CategoryCapability, `(?i)sendBeacon`, "Blocked: network access via navigator.sendBeacon"),
	rule("eval.eval", CategoryCapability, `(?i)eval\s*\(`, "Blocked: dynamic code evaluation via eval()"),
	rule("eval.function", CategoryCapability, `(?i)new\s+Function\s*\(`, "Blocked: dynamic function construction via new Function()"),
	rule("eval.timer-string", CategoryCapability, `(?i)set(Timeout|Interval)\s*\(\s*`+quote, "Blocked: string argument to setTimeout/setInterval"),
	rule("eval.import", CategoryCapability, `(?i)import\s*\(`, "Blocked: dynamic module import()"),
	rule("storage.cookie", CategoryCapability, `(?i)document\s*\.\s*cookie`, "Blocked: cookie access via document.cookie"),
	rule("storage.local", CategoryCapability, `(?i)localStorage`, "Blocked: localStorage access"),
	rule("storage.session", CategoryCapability, `(?i)sessionStorage`, "Blocked: sessionStorage access"),
	rule("storage.indexeddb", CategoryCapability, `(?i)indexedDB`, "Blocked: indexedDB access"),
	rule("markup.script-src", CategoryCapability, `(?i)<script[^>]+src\s*=`, "Blocked: externally sourced <script src>"),
	rule("markup.link-href", CategoryCapability, `(?i)<link[^>]+href\s*=\s*['"]?(https?:)?//`, "Blocked: externally sourced <link href>"),
	rule("markup.iframe", CategoryCapability, `(?i)<iframe`, "Blocked: nested <iframe>"),
	rule("nav.window-open", CategoryCapability, `(?i)window\s*\.\s*open`, "Blocked: window.open navigation"),
	rule("nav.location", CategoryCapability, `(?i)(window|document|top|parent|self)\s*\.\s*location`, "Blocked: navigation via location"),
	rule("nav.document-domain", CategoryCapability, `(?i)document\s*\.\s*domain`, "Blocked: document.domain access"),
}

var bypassRules = []Rule{
	rule("bypass.function-prototype", CategoryBypass, `(?i)Function\s*\.\s*prototype`, "Suspicious: Function.prototype traversal"),
	rule("bypass.constructor-call", CategoryBypass, `(?i)\.\s*constructor\s*\(`, "Suspicious: .constructor() invocation"),
	rule("bypass.constructor-string", CategoryBypass, `(?i)constructor\s*\(\s*`+quote, "Suspicious: constructor called with a code string"),
	rule("bypass.bracket-constructor", CategoryBypass, `(?i)\[\s*`+quote+`constructor`+quote+`\s*\]`, "Suspicious: ['constructor'] property access"),
	rule("bypass.base64", CategoryBypass, `(?i)atob\s*\(`, "Suspicious: base64 decoding via atob()"),
	rule("bypass.char-code", CategoryBypass, `(?i)String\s*\.\s*fromC(harCode|odePoint)`, "Suspicious: string construction from character codes"),
	rule("bypass.create-script", CategoryBypass, `(?i)createElement\s*\(\s*`+quote+`script`, "Suspicious: dynamically created <script> element"),
	rule("bypass.create-link", CategoryBypass, `(?i)createElement\s*\(\s*`+quote+`link`, "Suspicious: dynamically created <link> element"),
	rule("bypass.create-iframe", CategoryBypass, `(?i)createElement\s*\(\s*`+quote+`iframe`, "Suspicious: dynamically created <iframe> element"),
	rule("bypass.csp-meta", CategoryBypass, `(?i)<meta[^>]*http-equiv\s*=\s*['"]?Content-Security-Policy`, "Suspicious: Content-Security-Policy override attempt"),
	rule("bypass.img-src", CategoryBypass, `(?i)<img[^>]+src\s*=\s*['"]?(https?:)?//`, "Suspicious: externally sourced <img src> (image beacon)"),
	rule("bypass.inline-handler", CategoryBypass, `(?i)<[^>]+\bon\w+\s*=`, "Suspicious: inline HTML event handler attribute"),
}

func bracketRules() []Rule {
	out := make([]Rule, 0, len(bracketTargets))
	for _, name := range bracketTargets {
		out = append(out, rule(
			"bypass.bracket-"+strings.ToLower(name),
			CategoryBypass,
			`(?i)\[\s*`+quote+regexp.QuoteMeta(name)+quote+`\s*\]`,
			"Suspicious: ['"+name+"'] property access",
		))
	}
	return out
}

// DefaultRules returns the full denylist in reporting order
func DefaultRules() []Rule {
	rules := make([]Rule, 0, len(capabilityRules)+len(bypassRules)+len(bracketTargets))
	rules = append(rules, capabilityRules...)
	rules = append(rules, bracketRules()...)
	rules = append(rules, bypassRules...)
	return rules
}
