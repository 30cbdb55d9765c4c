/*
Package security provides input sanitization and prompt-injection detection
for text entering the gateway pipeline.

# Sanitization

Sanitize normalizes raw message content before any other processing: C0
control characters are stripped and whitespace runs are collapsed to a
single space. The function is pure and idempotent.

	clean := security.Sanitize("hello\x00   world\n")
	// "hello world"

# Injection Detection

DetectInjection runs on sanitized text and applies a fixed, case-insensitive
rule set covering canonical prompt-injection phrasings (instruction
overrides, role reassignment, jailbreak markers, bracketed directive tags).
A single match anywhere in the text flags it:

	if security.DetectInjection(clean) {
		// reject before any upstream call
	}

Policy is fail-closed: false negatives on novel phrasings are an accepted
limitation of the static rule set, not a defect.
*/
package security
