// Package classify exposes the placeholder-key classifier so callers can
// register additional rules ahead of the built-in table.
package classify

import "github.com/goliatone/go-docforms/internal/classify"

type (
	// Key is a parsed placeholder key.
	Key = classify.Key
	// Result is the tagged classification of a key.
	Result = classify.Result
	// Rule is one entry of the ordered rule table.
	Rule = classify.Rule
	// Classifier evaluates the rule table.
	Classifier = classify.Classifier
	// Option configures a Classifier.
	Option = classify.Option
)

const (
	RuleAuthority      = classify.RuleAuthority
	RuleNumberedPerson = classify.RuleNumberedPerson
	RuleUnnumberedRole = classify.RuleUnnumberedRole
	RuleThirdParty     = classify.RuleThirdParty
	RuleProcess        = classify.RuleProcess
	RuleAddress        = classify.RuleAddress
	RuleClient         = classify.RuleClient
	RuleFallback       = classify.RuleFallback
	RuleReconciled     = classify.RuleReconciled
)

// New builds a classifier with the default table plus any custom rules.
func New(options ...Option) *Classifier {
	return classify.New(options...)
}

// WithRules evaluates the supplied rules ahead of the default table.
func WithRules(rules ...Rule) Option {
	return classify.WithRules(rules...)
}

// Parse normalises a raw key into lowercase, accent-free tokens.
func Parse(raw string) Key {
	return classify.Parse(raw)
}

// Classify runs the default table against key.
func Classify(key string) Result {
	return classify.Classify(key)
}

// Reconcile moves authority-referencing results out of the generic address
// category and returns the keys it changed.
func Reconcile(results []Result) []string {
	return classify.Reconcile(results)
}
