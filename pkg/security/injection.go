package security

import (
	"regexp"
	"strings"
)

// injectionRules is the static prompt-injection rule set. Matching is
// whole-text substring search over lowercased input; rules are compiled
// once at package init and never change at runtime.
//
// The set covers the canonical phrasings: instruction-override requests,
// role reassignment, jailbreak/DAN markers, and explicit meta-instruction
// markers such as bracketed directive tags.
var injectionRules = []*regexp.Regexp{
	regexp.MustCompile(`ignore\s+(previous|all|above)\s+instructions?`),
	regexp.MustCompile(`forget\s+(previous|all|above)`),
	regexp.MustCompile(`you\s+are\s+now`),
	regexp.MustCompile(`act\s+as\s+if`),
	regexp.MustCompile(`pretend\s+to\s+be`),
	regexp.MustCompile(`reset\s+(the\s+)?conversation`),
	regexp.MustCompile(`disregard\s+(all|previous|above)\s+instructions?`),
	regexp.MustCompile(`(replace|override|bypass|jailbreak).{0,15}instructions?`),
	regexp.MustCompile(`assume\s+the\s+role\s+of`),
	regexp.MustCompile(`remove\s+all\s+filters`),
	regexp.MustCompile(`(###|\{prompt\}|\[instruction\])`),
	regexp.MustCompile(`from\s+now\s+on[, ]*\s*you\s+(must|shall)`),
	regexp.MustCompile(`ignore\s+your\s+previous\s+(rules|guidelines|directives)`),
	regexp.MustCompile(`these\s+are\s+your\s+new\s+instructions`),
	regexp.MustCompile(`new\s+set\s+of\s+rules\s+for\s+you`),
	regexp.MustCompile(`forget\s+everything\s+you\s+have\s+been\s+told`),
	regexp.MustCompile(`ignore\s+the\s+(system|safety)\s+instructions?`),
	regexp.MustCompile(`you\s+must\s+not\s+follow\s+any\s+previous\s+instructions`),
	regexp.MustCompile(`\b(do[-\s]?anything[-\s]?now|dan)\b`),
}

// DetectInjection reports whether text contains a known prompt-injection
// pattern. Matching is case-insensitive and a single hit anywhere in the
// text is sufficient.
//
// Callers should pass sanitized text; the verdict is advisory for the
// caller to act on (the pipeline rejects flagged requests outright).
func DetectInjection(text string) bool {
	// Single lowercase pass instead of per-rule case-insensitive matching.
	lower := strings.ToLower(text)
	for _, rule := range injectionRules {
		if rule.MatchString(lower) {
			return true
		}
	}
	return false
}
