// Package dice provides the randomness abstraction used by the Delve combat engine.
//
// Every random decision in the engine (damage variance, crit and miss overlays,
// flee attempts, drop rolls, roster size) goes through a Source so tests can
// substitute a deterministic one.
package dice

// Source produces uniformly distributed integers.
type Source interface {
	// Intn returns a value in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Percent rolls Intn(100) and reports whether the roll landed below chance.
//
// Precondition: src must be non-nil.
// Postcondition: chance <= 0 never succeeds; chance >= 100 always succeeds.
func Percent(src Source, chance int) bool {
	return src.Intn(100) < chance
}

// Between returns a value in [lo, hi] inclusive.
//
// Precondition: hi >= lo.
func Between(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}
