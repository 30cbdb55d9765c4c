package jsonout

import (
	"regexp"

	"github.com/tidwall/gjson"
)

// trailingComma matches a comma immediately preceding a closing brace or
// bracket, the most common defect in model-emitted JSON.
var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// Result reports the outcome of a validation pass.
type Result struct {
	// Text is the validated output. When a repair succeeded this is the
	// repaired text; otherwise it is the input unchanged.
	Text string

	// Valid reports whether Text parses as JSON and matches the shape.
	Valid bool

	// Repaired reports whether the repair pass produced Text.
	Repaired bool
}

// Validate checks that text is well-formed JSON and, when shape is
// non-nil, that the root object satisfies it. On a parse failure one
// repair pass runs before the verdict; shape mismatches are never
// repaired.
func Validate(text string, shape Shape) Result {
	candidate := text
	repaired := false

	if !gjson.Valid(candidate) {
		candidate = repairTrailingCommas(candidate)
		if candidate == text || !gjson.Valid(candidate) {
			return Result{Text: text}
		}
		repaired = true
	}

	if shape != nil {
		root := gjson.Parse(candidate)
		if !root.IsObject() || !shape.matchesObject(root) {
			return Result{Text: text}
		}
	}

	return Result{Text: candidate, Valid: true, Repaired: repaired}
}

// repairTrailingCommas strips commas that directly precede a closing
// brace or bracket. It does not inspect string contents; a comma inside
// a string literal followed by "]" could in principle be mangled, which
// is acceptable because repair only runs on text that already failed to
// parse.
func repairTrailingCommas(text string) string {
	return trailingComma.ReplaceAllString(text, "$1")
}
