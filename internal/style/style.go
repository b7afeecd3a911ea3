// Package style evaluates ordered conditional styling rules. A rule set is
// the data form of an if/elif/else chain: rules are checked top to bottom
// and the first rule whose predicate accepts the value decides the style.
package style

import "github.com/rotisserie/eris"

// Style holds the resolved visual attributes for one feature.
type Style struct {
	Color string
	Size  float64
}

// Predicate reports whether a rule applies to an attribute value.
// Predicates must be deterministic and side-effect free.
type Predicate[T any] func(T) bool

// Rule pairs a predicate with the style to use when it matches.
type Rule[T any] struct {
	Name  string // optional, used in diagnostics only
	When  Predicate[T]
	Style Style
}

// RuleSet is an ordered sequence of rules. Order is significant: Resolve
// stops at the first match.
type RuleSet[T any] []Rule[T]

// Resolve returns the style of the first rule whose predicate accepts v.
// The second return is false when no rule matches; the caller decides
// whether that is an error or a fallback to a default style.
func (rs RuleSet[T]) Resolve(v T) (Style, bool) {
	for _, r := range rs {
		if r.When(v) {
			return r.Style, true
		}
	}
	return Style{}, false
}

// Validate checks the rule set for structural problems. Called before any
// record is evaluated so that a malformed rule sequence fails the whole
// build up front.
func (rs RuleSet[T]) Validate() error {
	for i, r := range rs {
		if r.When == nil {
			return eris.Errorf("style: rule %d (%s) has no predicate", i, ruleLabel(r.Name))
		}
	}
	return nil
}

func ruleLabel(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}
