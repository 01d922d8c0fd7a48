package choreo

// ShouldAnimate reports whether the element at index takes part in motion.
// Non-sticky indices always animate; sticky ones only when the caller has
// animate-sticky enabled.
func ShouldAnimate(index int, sticky map[int]bool, animateSticky bool) bool {
	if !sticky[index] {
		return true
	}
	return animateSticky
}

// EnforceSticky validates perm as a bijection over [0,len(perm)) that maps
// every sticky index to itself. Valid input is returned unchanged. A sticky
// violation is a caller bug, not something to repair: silently reassigning
// non-sticky slots could stack two elements in one slot.
func EnforceSticky(perm []int, sticky map[int]bool) ([]int, error) {
	n := len(perm)
	seen := make([]bool, n)
	for i, old := range perm {
		if old < 0 || old >= n {
			return nil, &PermutationError{Index: i, Reason: "value out of range"}
		}
		if seen[old] {
			return nil, &PermutationError{Index: i, Reason: "duplicate source index"}
		}
		seen[old] = true
	}
	for i := range perm {
		if sticky[i] && perm[i] != i {
			return nil, &PermutationError{Index: i, Reason: "sticky index reassigned"}
		}
	}
	return perm, nil
}

// Animatable returns the new-order indices whose elements a strategy may
// move. Strategies receive only this filtered set and carry no sticky
// awareness of their own. Sticky indices are fixed points of perm, so old
// and new index agree for them.
func Animatable(perm []int, sticky map[int]bool, animateSticky bool) []int {
	out := make([]int, 0, len(perm))
	for i := range perm {
		if ShouldAnimate(i, sticky, animateSticky) {
			out = append(out, i)
		}
	}
	return out
}
