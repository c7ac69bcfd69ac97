// Package dice provides the randomness abstraction used by the dungeon model
// for teleport destination choice and random border generation.
package dice

// Source is the randomness provider.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Bool draws a fair coin from src.
//
// Precondition: src must be non-nil.
func Bool(src Source) bool {
	return src.Intn(2) == 1
}

// Pick returns a uniformly chosen index into a collection of length n, or -1
// when the collection is empty.
//
// Precondition: src must be non-nil.
// Postcondition: -1 iff n <= 0; otherwise a value in [0, n).
func Pick(src Source, n int) int {
	if n <= 0 {
		return -1
	}
	return src.Intn(n)
}
