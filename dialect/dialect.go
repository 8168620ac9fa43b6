// Package dialect implements the dialect registry: a mutable bag of
// named grammars, keyword sets, bracket sets and lexer matchers that
// derived dialects build by copying and overriding a base dialect, then
// freezing via Expand.
package dialect

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/shapesql/shapesql/grammar"
	"github.com/shapesql/shapesql/lexer"
)

// SegmentGenerator builds a Matchable lazily from the dialect's current
// state, resolved once at Expand time. Generators may read d but must
// not mutate it; Expand enforces this by handing generators a *View
// rather than the mutable *Dialect.
type SegmentGenerator func(d *View) grammar.Matchable

// View is the read-only projection of a Dialect handed to a
// SegmentGenerator, preventing a generator from mutating the dialect it
// is being resolved against.
type View struct {
	d *Dialect
}

// LookupGrammar satisfies grammar.DialectLookup so a generator can build
// a Ref-closure-validated Matchable against the same names Expand will
// validate.
func (v *View) LookupGrammar(name string) (grammar.Matchable, bool) {
	return v.d.LookupGrammar(name)
}

// KeywordSet returns the named keyword set, or nil if undefined.
func (v *View) KeywordSet(name string) map[string]struct{} {
	return v.d.keywordSets[name]
}

// BracketSet returns the named bracket pair set, or nil if undefined.
func (v *View) BracketSet(name string) []grammar.BracketPair {
	return v.d.bracketSets[name]
}

// entry is either a resolved Matchable or an unresolved SegmentGenerator;
// exactly one of the two fields is set.
type entry struct {
	matchable grammar.Matchable
	generator SegmentGenerator
}

// Dialect is a named, mutable-until-Expand bag of grammars, keyword sets,
// bracket sets and lexer matchers.
type Dialect struct {
	Name string

	grammars    map[string]entry
	keywordSets map[string]map[string]struct{}
	bracketSets map[string][]grammar.BracketPair
	matchers    []lexer.Matcher

	expanded bool
}

// New builds an empty dialect named name.
func New(name string) *Dialect {
	return &Dialect{
		Name:        name,
		grammars:    make(map[string]entry),
		keywordSets: make(map[string]map[string]struct{}),
		bracketSets: make(map[string][]grammar.BracketPair),
	}
}

// Add registers a resolved Matchable under name. Use AddGenerator for a
// grammar that must be built lazily against the dialect's final state.
func (d *Dialect) Add(name string, m grammar.Matchable) {
	d.mustNotBeExpanded()
	d.grammars[name] = entry{matchable: m}
}

// AddGenerator registers a SegmentGenerator under name, resolved at
// Expand time once every base grammar it might reference is in place.
func (d *Dialect) AddGenerator(name string, gen SegmentGenerator) {
	d.mustNotBeExpanded()
	d.grammars[name] = entry{generator: gen}
}

// ReplaceGrammar overwrites an existing (or not yet existing) grammar
// entry wholesale — the blunt tool a derived dialect uses when Copy's
// structural Insert/Remove editing isn't precise enough.
func (d *Dialect) ReplaceGrammar(name string, m grammar.Matchable) {
	d.mustNotBeExpanded()
	d.grammars[name] = entry{matchable: m}
}

// PatchGrammar loads the named grammar's current Matchable (it must
// already be resolved, i.e. added via Add not AddGenerator) and replaces
// it with the result of applying opts via Matchable.Copy — the precise,
// structural alternative to ReplaceGrammar's wholesale swap.
func (d *Dialect) PatchGrammar(name string, opts grammar.CopyOptions) error {
	d.mustNotBeExpanded()
	e, ok := d.grammars[name]
	if !ok || e.matchable == nil {
		return errors.Newf("dialect %s: cannot patch undefined or ungenerated grammar %q", d.Name, name)
	}
	d.grammars[name] = entry{matchable: e.matchable.Copy(opts)}
	return nil
}

// InsertLexerMatchers appends matchers to the dialect's lexer matcher
// list, in order, after any matcher named after (or at the end, if after
// is empty) — the lexer-extension hook, used e.g. by BigQuery to admit
// hyphenated identifiers.
func (d *Dialect) InsertLexerMatchers(after string, ms ...lexer.Matcher) {
	d.mustNotBeExpanded()
	if after == "" {
		d.matchers = append(d.matchers, ms...)
		return
	}
	out := make([]lexer.Matcher, 0, len(d.matchers)+len(ms))
	inserted := false
	for _, m := range d.matchers {
		out = append(out, m)
		if m.Name == after {
			out = append(out, ms...)
			inserted = true
		}
	}
	if !inserted {
		out = append(out, ms...)
	}
	d.matchers = out
}

// PatchLexerMatchers replaces the matcher named name wholesale.
func (d *Dialect) PatchLexerMatchers(name string, replacement lexer.Matcher) error {
	d.mustNotBeExpanded()
	for i, m := range d.matchers {
		if m.Name == name {
			d.matchers[i] = replacement
			return nil
		}
	}
	return errors.Newf("dialect %s: no lexer matcher named %q to patch", d.Name, name)
}

// SetsMut returns the named keyword set for in-place mutation (add/remove
// individual words), creating an empty set under that name if none exists
// yet — a third override axis alongside grammars and lexer matchers.
// Bracket sets are changed through SetBracketSet instead.
func (d *Dialect) SetsMut(name string) map[string]struct{} {
	d.mustNotBeExpanded()
	s, ok := d.keywordSets[name]
	if !ok {
		s = make(map[string]struct{})
		d.keywordSets[name] = s
	}
	return s
}

// BracketSet returns the named bracket pair list, nil if undefined.
func (d *Dialect) BracketSet(name string) []grammar.BracketPair {
	return d.bracketSets[name]
}

// SetBracketSet replaces the named bracket pair list wholesale.
func (d *Dialect) SetBracketSet(name string, pairs []grammar.BracketPair) {
	d.mustNotBeExpanded()
	d.bracketSets[name] = pairs
}

// Copy returns a deep structural clone: every resolved Matchable is
// cloned via its own Copy(CopyOptions{}) (a no-op edit, used purely for
// its deep-copy side effect), every keyword/bracket set is copied
// element-wise, and the clone starts unexpanded even if the receiver was
// already expanded — the only way a derived dialect (e.g. bigquery from
// ansi) comes into being.
func (d *Dialect) Copy(name string) *Dialect {
	cp := New(name)
	for k, e := range d.grammars {
		if e.matchable != nil {
			cp.grammars[k] = entry{matchable: e.matchable.Copy(grammar.CopyOptions{})}
		} else {
			cp.grammars[k] = entry{generator: e.generator}
		}
	}
	for k, set := range d.keywordSets {
		ns := make(map[string]struct{}, len(set))
		for w := range set {
			ns[w] = struct{}{}
		}
		cp.keywordSets[k] = ns
	}
	for k, pairs := range d.bracketSets {
		cp.bracketSets[k] = append([]grammar.BracketPair(nil), pairs...)
	}
	cp.matchers = append([]lexer.Matcher(nil), d.matchers...)
	return cp
}

// LookupGrammar satisfies grammar.DialectLookup: Ref calls this at Match
// time, and Matchable.Simple calls it on demand at Match time for OneOf's
// pruning. Expand does not precompute Simple hints.
func (d *Dialect) LookupGrammar(name string) (grammar.Matchable, bool) {
	e, ok := d.grammars[name]
	if !ok || e.matchable == nil {
		return nil, false
	}
	return e.matchable, true
}

// LexerMatchers returns the dialect's ordered lexer matcher list.
func (d *Dialect) LexerMatchers() []lexer.Matcher {
	return d.matchers
}

func (d *Dialect) mustNotBeExpanded() {
	if d.expanded {
		panic("dialect: " + d.Name + " mutated after Expand")
	}
}

// Expand freezes the dialect: resolves every SegmentGenerator against a
// read-only View, then validates that every Ref appearing anywhere in the
// resulting grammar set names a grammar that exists in this dialect — a
// dangling Ref is an unrecoverable authoring error, reported as a fatal
// ClosureError rather than a recoverable ParseError.
func Expand(d *Dialect) (*Dialect, error) {
	view := &View{d: d}

	// Resolve generators to a fixed point: a generator may itself Ref a
	// name that is still a generator, so iterate until nothing changes or
	// no progress is made.
	for i := 0; i < len(d.grammars)+1; i++ {
		progressed := false
		for name, e := range d.grammars {
			if e.generator == nil {
				continue
			}
			m := e.generator(view)
			d.grammars[name] = entry{matchable: m}
			progressed = true
		}
		if !progressed {
			break
		}
	}

	for name, e := range d.grammars {
		if e.generator != nil {
			return nil, errors.Newf("dialect %s: grammar %q could not be resolved from its generator", d.Name, name)
		}
	}

	if err := validateClosure(d); err != nil {
		return nil, err
	}

	d.expanded = true
	return d, nil
}

// validateClosure walks every registered grammar via grammar.Walk,
// collecting every Ref's target name (grammar.RefNamer), and reports any
// name not itself registered in d.
func validateClosure(d *Dialect) error {
	var missing []string
	seen := map[string]bool{}
	for _, name := range sortedNames(d.grammars) {
		e := d.grammars[name]
		grammar.Walk(e.matchable, func(m grammar.Matchable) {
			rn, ok := m.(grammar.RefNamer)
			if !ok {
				return
			}
			refName := rn.RefName()
			if seen[refName] {
				return
			}
			if _, ok := d.grammars[refName]; !ok {
				missing = append(missing, refName)
			}
			seen[refName] = true
		})
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.WithHint(
			errors.Newf("dialect %s: %d unresolved Ref(s): %v", d.Name, len(missing), missing),
			"every grammar named by Ref must be registered via Add/AddGenerator before Expand",
		)
	}
	return nil
}

func sortedNames(m map[string]entry) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
