// internal/filtergroup/filtergroup.go
// Package filtergroup converts a fixed set of named boolean filter flags into
// a compact token string and back.
//
// The encoding lists the flags that are switched off. A group with every flag
// on encodes to the empty string, which keeps default URLs short.
package filtergroup

import "strings"

// Separator joins tokens in an encoded filter string.
const Separator = "~"

// Flag is a single boolean filter within a group.
type Flag struct {
	Token string
	Label string
}

// Group is an ordered set of independent flags. The order of Flags fixes the
// token order of encoded strings.
type Group struct {
	Name  string
	Key   string
	Flags []Flag
}

// Flags maps a flag token to its current value. Tokens missing from the map
// count as true.
type Flags map[string]bool

// Set is the decoded form of an encoded string: the tokens it contains.
type Set map[string]struct{}

var (
	// Parallelism filters single-threaded and multithreaded results.
	Parallelism = Group{Name: "Parallelism", Key: "fp", Flags: []Flag{
		{Token: "st", Label: "Single-threaded"},
		{Token: "mt", Label: "Multithreaded"},
	}}

	// Algorithm filters results by sieve algorithm.
	Algorithm = Group{Name: "Algorithm", Key: "fa", Flags: []Flag{
		{Token: "ba", Label: "Base"},
		{Token: "wh", Label: "Wheel"},
		{Token: "ot", Label: "Other"},
	}}

	// Faithful filters faithful and unfaithful implementations.
	Faithful = Group{Name: "Faithfulness", Key: "ff", Flags: []Flag{
		{Token: "ff", Label: "Faithful"},
		{Token: "uf", Label: "Unfaithful"},
	}}

	// Bits filters results by the number of bits used per sieve entry.
	Bits = Group{Name: "Bit count", Key: "fb", Flags: []Flag{
		{Token: "uk", Label: "Unknown"},
		{Token: "on", Label: "One"},
		{Token: "ot", Label: "Other"},
	}}
)

// Groups lists the flag groups in display order.
func Groups() []Group {
	return []Group{Parallelism, Algorithm, Faithful, Bits}
}

// Split breaks an encoded string into its tokens, dropping empty segments.
// Token order is preserved.
func Split(text string) []string {
	parts := strings.Split(text, Separator)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		tokens = append(tokens, part)
	}
	return tokens
}

// Join concatenates tokens with the separator, skipping empty ones.
func Join(tokens []string) string {
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token != "" {
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, Separator)
}

// Decode returns the set of tokens in text. Unknown tokens are kept; they
// simply match no flag of any group.
func Decode(text string) Set {
	set := Set{}
	for _, token := range Split(text) {
		set[token] = struct{}{}
	}
	return set
}

// Has reports whether token is in the set.
func (s Set) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Encode emits the tokens of every flag that is false, in group order.
func (g Group) Encode(flags Flags) string {
	var excluded []string
	for _, flag := range g.Flags {
		if on, ok := flags[flag.Token]; ok && !on {
			excluded = append(excluded, flag.Token)
		}
	}
	return strings.Join(excluded, Separator)
}

// Decode returns the full flag assignment described by text. A flag is true
// unless its token appears in text.
func (g Group) Decode(text string) Flags {
	set := Decode(text)
	flags := make(Flags, len(g.Flags))
	for _, flag := range g.Flags {
		flags[flag.Token] = !set.Has(flag.Token)
	}
	return flags
}

// AllOn returns the default assignment with every flag true.
func (g Group) AllOn() Flags {
	flags := make(Flags, len(g.Flags))
	for _, flag := range g.Flags {
		flags[flag.Token] = true
	}
	return flags
}

// Canonical rewrites text in group token order, without duplicates or
// unknown tokens.
func (g Group) Canonical(text string) string {
	return g.Encode(g.Decode(text))
}

// Unknown returns the tokens in text that name no flag of the group.
func (g Group) Unknown(text string) []string {
	var unknown []string
	for _, token := range Split(text) {
		if _, ok := g.Lookup(token); !ok {
			unknown = append(unknown, token)
		}
	}
	return unknown
}

// Lookup finds the flag with the given token.
func (g Group) Lookup(token string) (Flag, bool) {
	for _, flag := range g.Flags {
		if flag.Token == token {
			return flag, true
		}
	}
	return Flag{}, false
}
