package style

import "cmp"

// Eq matches values equal to want.
func Eq[T comparable](want T) Predicate[T] {
	return func(v T) bool { return v == want }
}

// NotEq matches values different from want.
func NotEq[T comparable](want T) Predicate[T] {
	return func(v T) bool { return v != want }
}

// OneOf matches values contained in the given set.
func OneOf[T comparable](want ...T) Predicate[T] {
	set := make(map[T]struct{}, len(want))
	for _, w := range want {
		set[w] = struct{}{}
	}
	return func(v T) bool {
		_, ok := set[v]
		return ok
	}
}

// LessThan matches values strictly below limit.
func LessThan[T cmp.Ordered](limit T) Predicate[T] {
	return func(v T) bool { return v < limit }
}

// AtMost matches values at or below limit.
func AtMost[T cmp.Ordered](limit T) Predicate[T] {
	return func(v T) bool { return v <= limit }
}

// GreaterThan matches values strictly above limit.
func GreaterThan[T cmp.Ordered](limit T) Predicate[T] {
	return func(v T) bool { return v > limit }
}

// AtLeast matches values at or above limit.
func AtLeast[T cmp.Ordered](limit T) Predicate[T] {
	return func(v T) bool { return v >= limit }
}

// Between matches values in the inclusive range [lo, hi].
func Between[T cmp.Ordered](lo, hi T) Predicate[T] {
	return func(v T) bool { return v >= lo && v <= hi }
}

// Always matches every value. Placing it last in a rule set gives the set
// an "else" branch, guaranteeing a match.
func Always[T any]() Predicate[T] {
	return func(T) bool { return true }
}
