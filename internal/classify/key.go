package classify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	tokenSplitPattern = regexp.MustCompile(`[_\-\s]+`)
	// trailingDigits separates role tokens glued to their instance, as in
	// "autor2_nome".
	trailingDigits = regexp.MustCompile(`^([a-z]+)([0-9]+)$`)
)

// Key is a placeholder key split into normalised tokens.
type Key struct {
	Raw    string
	Tokens []string
}

// Parse lower-cases the key, folds accents and splits it into tokens.
func Parse(raw string) Key {
	folded := strings.ToLower(foldAccents(strings.TrimSpace(raw)))
	parts := tokenSplitPattern.Split(folded, -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if m := trailingDigits.FindStringSubmatch(part); m != nil {
			tokens = append(tokens, m[1], m[2])
			continue
		}
		tokens = append(tokens, part)
	}
	return Key{Raw: raw, Tokens: tokens}
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

type phrase []string

func compile(list []string) []phrase {
	out := make([]phrase, 0, len(list))
	for _, entry := range list {
		out = append(out, strings.Fields(entry))
	}
	return out
}

// indexOf returns the position of the first occurrence of p in tokens, or -1.
func (p phrase) indexOf(tokens []string) int {
	if len(p) == 0 || len(p) > len(tokens) {
		return -1
	}
outer:
	for i := 0; i+len(p) <= len(tokens); i++ {
		for j, word := range p {
			if tokens[i+j] != word {
				continue outer
			}
		}
		return i
	}
	return -1
}

type phraseSet struct {
	phrases    []phrase
	exclusions []phrase
}

func newPhraseSet(list []string, exclusions ...string) phraseSet {
	return phraseSet{phrases: compile(list), exclusions: compile(exclusions)}
}

// mask blanks tokens covered by an exclusion phrase.
func (s phraseSet) mask(tokens []string) []string {
	if len(s.exclusions) == 0 {
		return tokens
	}
	masked := append([]string(nil), tokens...)
	for _, ex := range s.exclusions {
		for {
			idx := ex.indexOf(masked)
			if idx < 0 {
				break
			}
			for j := range ex {
				masked[idx+j] = ""
			}
		}
	}
	return masked
}

// find returns the first phrase (in declaration order) present in tokens and
// its position.
func (s phraseSet) find(tokens []string) (phrase, int) {
	masked := s.mask(tokens)
	for _, p := range s.phrases {
		if idx := p.indexOf(masked); idx >= 0 {
			return p, idx
		}
	}
	return nil, -1
}

func (s phraseSet) contains(tokens []string) bool {
	_, idx := s.find(tokens)
	return idx >= 0
}

// leading returns how many tokens at the start of tokens are covered by
// phrases of the set, allowing connectors between them.
func (s phraseSet) leading(tokens []string) int {
	masked := s.mask(tokens)
	pos := 0
	matched := 0
	for pos < len(masked) {
		advanced := false
		for _, p := range s.phrases {
			if p.indexOf(masked[pos:]) == 0 {
				pos += len(p)
				matched = pos
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}
		if _, ok := connectors[masked[pos]]; ok && matched > 0 {
			pos++
			continue
		}
		break
	}
	return matched
}

var (
	activeSet     = newPhraseSet(activeRoles)
	passiveSet    = newPhraseSet(passiveRoles)
	authoritySet  = newPhraseSet(authorityMarkers, authorityExclusions...)
	thirdPartySet = newPhraseSet(thirdPartyMarkers)
	processSet    = newPhraseSet(processMarkers)
	addressSet    = newPhraseSet(addressMarkers, addressExclusions...)
	clientSet     = newPhraseSet(clientMarkers)
)

// IsAddress reports whether the tokens describe an address component. It is
// the single address test shared by persona sub-bucketing and the generic
// address rule.
func IsAddress(tokens []string) bool {
	return addressSet.contains(tokens)
}

// HasAuthorityMarker reports whether the tokens reference an authority body.
func HasAuthorityMarker(tokens []string) bool {
	return authoritySet.contains(tokens)
}
