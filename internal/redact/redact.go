// Package redact provides deep masking of sensitive fields in message payloads.
//
// Any code path that writes a domain message to a log or audit trail must pass
// it through a Redactor first; this package is the single chokepoint preventing
// PII and financial-identifier leakage into observability systems.
//
// Redaction is best-effort on shape: fields not matched by any rule pass through
// unchanged. It is a defense-in-depth tool, not an exhaustive PII classifier.
package redact

import (
	"regexp"
)

// Rule matches sensitive field names. A field whose key matches Pattern has its
// string value masked.
type Rule struct {
	// Name identifies the rule (e.g., "card-number") for configuration and debugging.
	Name string
	// Pattern is matched against mapping keys, unanchored and case-insensitively.
	Pattern *regexp.Regexp
}

// MustRule builds a Rule from a pattern, panicking on an invalid expression.
// Intended for package-level rule declarations.
func MustRule(name, pattern string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile("(?i)" + pattern)}
}

// DefaultRules returns the built-in rule set covering the sensitive field names
// (and their camelCase/snake_case synonyms) exchanged on the financial event bus:
// national IDs, card data, bank account and routing numbers, contact details,
// credentials, and tax identifiers.
func DefaultRules() []Rule {
	return []Rule{
		MustRule("national-id", `ssn|social.?security|national.?id`),
		MustRule("card-number", `card.?number|pan$|cvv|cvc`),
		MustRule("bank-account", `account.?number|routing.?number|iban|swift|bic$`),
		MustRule("email", `email`),
		MustRule("phone", `phone|msisdn|mobile`),
		MustRule("credential", `password|passwd|pin$|pin.?code|secret|token`),
		MustRule("tax-id", `tax.?id|tin$`),
	}
}

// Redactor deep-masks sensitive fields in nested map structures.
//
// A Redactor is immutable after construction and safe for concurrent use.
type Redactor struct {
	rules []Rule
}

// Option customizes Redactor construction.
type Option func(*Redactor)

// WithRules replaces the default rule set entirely.
func WithRules(rules ...Rule) Option {
	return func(r *Redactor) {
		r.rules = rules
	}
}

// WithAdditionalRules appends rules to the default rule set.
func WithAdditionalRules(rules ...Rule) Option {
	return func(r *Redactor) {
		r.rules = append(r.rules, rules...)
	}
}

// New creates a Redactor with the default rule set, customized by opts.
func New(opts ...Option) *Redactor {
	r := &Redactor{rules: DefaultRules()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sensitive reports whether the given mapping key matches any redaction rule.
func (r *Redactor) Sensitive(key string) bool {
	for _, rule := range r.rules {
		if rule.Pattern.MatchString(key) {
			return true
		}
	}
	return false
}

// Mask returns a deep copy of data with every string value under a sensitive
// key replaced by its masked form. The input is never mutated. Recursion
// continues into nested maps and slices, but never into a masked leaf.
func (r *Redactor) Mask(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}

	masked := make(map[string]any, len(data))
	for key, value := range data {
		masked[key] = r.maskValue(key, value)
	}
	return masked
}

// maskValue copies a single value, masking string leaves under sensitive keys.
func (r *Redactor) maskValue(key string, value any) any {
	switch v := value.(type) {
	case map[string]any:
		return r.Mask(v)
	case []any:
		copied := make([]any, len(v))
		for i, item := range v {
			copied[i] = r.maskValue(key, item)
		}
		return copied
	case string:
		if r.Sensitive(key) {
			return MaskString(v)
		}
		return v
	default:
		return value
	}
}

// MaskString irreversibly masks a sensitive string value.
//
// Strings of length 4 or less become all asterisks; longer strings keep the
// first two and last two characters with the middle replaced by asterisks:
//
//	MaskString("1234")       == "****"
//	MaskString("1234567890") == "12******90"
func MaskString(s string) string {
	runes := []rune(s)
	if len(runes) <= 4 {
		return repeatAsterisk(len(runes))
	}
	return string(runes[:2]) + repeatAsterisk(len(runes)-4) + string(runes[len(runes)-2:])
}

func repeatAsterisk(n int) string {
	stars := make([]byte, n)
	for i := range stars {
		stars[i] = '*'
	}
	return string(stars)
}
