package classify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-docforms/internal/model"
)

// Result is the tagged classification of a single placeholder key. It is the
// only place key names are parsed; every later stage reads these fields.
type Result struct {
	Key      string
	Tokens   []string
	Category model.Category
	Instance *int
	Sub      model.SubCategory
	// Role is the canonical role word ("autor", "reu", "autoridade",
	// "advogado", ...). Empty for non-persona categories.
	Role string
	// Rest holds the tokens that describe the field once the role and
	// instance prefix are removed.
	Rest []string
	// Rule names the rule that matched.
	Rule string
	// Anomaly is set when a numbered-looking segment could not be parsed.
	Anomaly string
}

// Rule is one entry of the ordered classification table. Match returns false
// when the rule does not apply to the key.
type Rule struct {
	Name  string
	Match func(Key) (Result, bool)
}

// Rule names of the default table, in evaluation order.
const (
	RuleAuthority      = "authority"
	RuleNumberedPerson = "numbered_person"
	RuleUnnumberedRole = "unnumbered_person"
	RuleThirdParty     = "third_party"
	RuleProcess        = "process"
	RuleAddress        = "address"
	RuleClient         = "client"
	RuleFallback       = "fallback"
	RuleReconciled     = "reconciled"

	canonicalActive    = "autor"
	canonicalPassive   = "reu"
	canonicalAuthority = "autoridade"
)

// DefaultRules returns the built-in table. Authority and person-role rules are
// evaluated before the generic address rule so that an authority or persona
// address never lands in the generic address section.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleAuthority, Match: matchAuthority},
		{Name: RuleNumberedPerson, Match: matchNumberedPerson},
		{Name: RuleUnnumberedRole, Match: matchUnnumberedPerson},
		{Name: RuleThirdParty, Match: matchThirdParty},
		{Name: RuleProcess, Match: matchMarker(processSet, model.CategoryProcess)},
		{Name: RuleAddress, Match: matchMarker(addressSet, model.CategoryAddress)},
		{Name: RuleClient, Match: matchMarker(clientSet, model.CategoryClient)},
	}
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRules evaluates the supplied rules ahead of the default table.
func WithRules(rules ...Rule) Option {
	return func(c *Classifier) {
		for _, rule := range rules {
			if rule.Match == nil {
				continue
			}
			c.custom = append(c.custom, rule)
		}
	}
}

// Classifier evaluates the rule table. The zero value is not usable; call New.
type Classifier struct {
	custom []Rule
	rules  []Rule
}

// New builds a Classifier with the default table plus any custom rules.
func New(options ...Option) *Classifier {
	c := &Classifier{}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	c.rules = append(append([]Rule(nil), c.custom...), DefaultRules()...)
	return c
}

var defaultClassifier = New()

// Classify runs the default table against key.
func Classify(key string) Result {
	return defaultClassifier.Classify(key)
}

// RuleNames lists the rule names in evaluation order.
func (c *Classifier) RuleNames() []string {
	names := make([]string, 0, len(c.rules)+1)
	for _, rule := range c.rules {
		names = append(names, rule.Name)
	}
	return append(names, RuleFallback)
}

// Classify evaluates the rules in order; the first match wins. Keys that match
// no rule are tagged as CategoryOther.
func (c *Classifier) Classify(key string) Result {
	parsed := Parse(key)
	for _, rule := range c.rules {
		result, ok := rule.Match(parsed)
		if !ok {
			continue
		}
		result.Key = key
		result.Tokens = parsed.Tokens
		if result.Rule == "" {
			result.Rule = rule.Name
		}
		if result.Category == "" {
			result.Category = model.CategoryOther
		}
		if result.Sub == "" {
			result.Sub = subCategory(result.Rest)
		}
		return result
	}
	return Result{
		Key:      key,
		Tokens:   parsed.Tokens,
		Category: model.CategoryOther,
		Sub:      subCategory(parsed.Tokens),
		Rest:     parsed.Tokens,
		Rule:     RuleFallback,
	}
}

// ClassifyAll classifies keys in order.
func (c *Classifier) ClassifyAll(keys []string) []Result {
	out := make([]Result, 0, len(keys))
	for _, key := range keys {
		out = append(out, c.Classify(key))
	}
	return out
}

// Reconcile re-tags results that reference an authority but ended up in the
// generic address category, which can happen when custom rules run ahead of
// the default table. It returns the keys that were changed.
func Reconcile(results []Result) []string {
	var changed []string
	for i := range results {
		r := results[i]
		if r.Category != model.CategoryAddress || !HasAuthorityMarker(r.Tokens) {
			continue
		}
		fixed, ok := matchAuthority(Key{Raw: r.Key, Tokens: r.Tokens})
		if !ok {
			continue
		}
		fixed.Key = r.Key
		fixed.Tokens = r.Tokens
		fixed.Rule = RuleReconciled
		results[i] = fixed
		changed = append(changed, r.Key)
	}
	return changed
}

func matchAuthority(k Key) (Result, bool) {
	p, idx := authoritySet.find(k.Tokens)
	if idx < 0 {
		return Result{}, false
	}
	res := Result{Category: model.CategoryAuthority, Role: canonicalAuthority}
	if lead := authoritySet.leading(k.Tokens); lead > 0 {
		res.Instance, res.Rest, res.Anomaly = splitInstance(k.Tokens, lead)
	} else {
		res.Rest = without(k.Tokens, idx, len(p))
	}
	if len(res.Rest) == 0 {
		res.Rest = k.Tokens
	}
	res.Sub = subCategory(res.Rest)
	return res, true
}

func matchNumberedPerson(k Key) (Result, bool) {
	res, lead, ok := personPrefix(k)
	if !ok || lead >= len(k.Tokens) || !startsWithDigit(k.Tokens[lead]) {
		return Result{}, false
	}
	res.Instance, res.Rest, res.Anomaly = splitInstance(k.Tokens, lead)
	res.Sub = subCategory(res.Rest)
	return res, true
}

func matchUnnumberedPerson(k Key) (Result, bool) {
	res, lead, ok := personPrefix(k)
	if !ok {
		return Result{}, false
	}
	res.Rest = k.Tokens[lead:]
	res.Sub = subCategory(res.Rest)
	return res, true
}

func personPrefix(k Key) (Result, int, bool) {
	if lead := activeSet.leading(k.Tokens); lead > 0 {
		return Result{Category: model.CategoryPersonActive, Role: canonicalActive}, lead, true
	}
	if lead := passiveSet.leading(k.Tokens); lead > 0 {
		return Result{Category: model.CategoryPersonPassive, Role: canonicalPassive}, lead, true
	}
	return Result{}, 0, false
}

func matchThirdParty(k Key) (Result, bool) {
	p, idx := thirdPartySet.find(k.Tokens)
	if idx < 0 {
		return Result{}, false
	}
	res := Result{
		Category: model.CategoryThirdParty,
		Role:     joinPhrase(p),
	}
	if idx == 0 {
		instance, rest, anomaly := splitInstance(k.Tokens, len(p))
		res.Instance = instance
		res.Anomaly = anomaly
		// The role words stay in Rest so that lawyers and curators sharing an
		// instance remain distinguishable by label.
		res.Rest = append(append([]string(nil), p...), rest...)
	} else {
		res.Rest = k.Tokens
	}
	res.Sub = subCategory(res.Rest)
	return res, true
}

func matchMarker(set phraseSet, category model.Category) func(Key) (Result, bool) {
	return func(k Key) (Result, bool) {
		if !set.contains(k.Tokens) {
			return Result{}, false
		}
		return Result{
			Category: category,
			Rest:     k.Tokens,
		}, true
	}
}

// splitInstance reads the segment at position lead as an instance number.
// Non-numeric or non-positive segments degrade to an un-numbered result with
// an anomaly description.
func splitInstance(tokens []string, lead int) (*int, []string, string) {
	if lead >= len(tokens) {
		return nil, nil, ""
	}
	segment := tokens[lead]
	if !startsWithDigit(segment) {
		return nil, tokens[lead:], ""
	}
	rest := tokens[lead+1:]
	n, err := strconv.Atoi(segment)
	if err != nil {
		return nil, rest, fmt.Sprintf("instance segment %q is not a number", segment)
	}
	if n <= 0 {
		return nil, rest, fmt.Sprintf("instance segment %q is not a positive number", segment)
	}
	return &n, rest, ""
}

func subCategory(rest []string) model.SubCategory {
	if IsAddress(rest) {
		return model.SubCategoryAddress
	}
	return model.SubCategoryData
}

func startsWithDigit(token string) bool {
	return token != "" && token[0] >= '0' && token[0] <= '9'
}

func without(tokens []string, idx, n int) []string {
	out := make([]string, 0, len(tokens))
	out = append(out, tokens[:idx]...)
	out = append(out, tokens[idx+n:]...)
	if len(out) == 0 {
		return tokens
	}
	return out
}

func joinPhrase(p phrase) string {
	return strings.Join(p, " ")
}
