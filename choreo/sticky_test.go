package choreo

import (
	"errors"
	"math/rand"
	"testing"
)

func TestShouldAnimate(t *testing.T) {
	sticky := map[int]bool{1: true, 3: true}
	if !ShouldAnimate(0, sticky, false) {
		t.Fatalf("non-sticky index should always animate")
	}
	if ShouldAnimate(1, sticky, false) {
		t.Fatalf("sticky index animated with animateSticky=false")
	}
	if !ShouldAnimate(3, sticky, true) {
		t.Fatalf("sticky index should animate with animateSticky=true")
	}
}

func TestEnforceStickyValid(t *testing.T) {
	perm := []int{4, 1, 0, 3, 2}
	sticky := map[int]bool{1: true, 3: true}
	got, err := EnforceSticky(perm, sticky)
	if err != nil {
		t.Fatalf("EnforceSticky: %v", err)
	}
	for i := range perm {
		if got[i] != perm[i] {
			t.Fatalf("valid permutation was altered at %d", i)
		}
	}
}

func TestEnforceStickyViolations(t *testing.T) {
	cases := []struct {
		name   string
		perm   []int
		sticky map[int]bool
	}{
		{"sticky moved", []int{1, 0, 2}, map[int]bool{0: true}},
		{"duplicate", []int{0, 0, 2}, nil},
		{"out of range", []int{0, 3, 1}, nil},
		{"negative", []int{0, -1, 1}, nil},
	}
	for _, tc := range cases {
		_, err := EnforceSticky(tc.perm, tc.sticky)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var pe *PermutationError
		if !errors.As(err, &pe) {
			t.Fatalf("%s: error type = %T, want *PermutationError", tc.name, err)
		}
	}
}

// Property 2: after a successful EnforceSticky, every sticky index maps to
// itself — checked across random permutations built around the sticky set.
func TestEnforceStickyInvariantRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		n := 2 + rng.Intn(12)
		sticky := map[int]bool{}
		for i := 0; i < n; i++ {
			if rng.Intn(3) == 0 {
				sticky[i] = true
			}
		}
		perm := randomStickyPerm(rng, n, sticky)
		got, err := EnforceSticky(perm, sticky)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}
		for i := range got {
			if sticky[i] && got[i] != i {
				t.Fatalf("trial %d: sticky %d maps to %d", trial, i, got[i])
			}
		}
	}
}

func TestAnimatable(t *testing.T) {
	perm := []int{4, 1, 0, 3, 2}
	sticky := map[int]bool{1: true, 3: true}
	got := Animatable(perm, sticky, false)
	want := []int{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("Animatable = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Animatable = %v, want %v", got, want)
		}
	}
	if all := Animatable(perm, sticky, true); len(all) != 5 {
		t.Fatalf("animateSticky=true: len = %d, want 5", len(all))
	}
}

// randomStickyPerm shuffles only the non-sticky indices among themselves.
func randomStickyPerm(rng *rand.Rand, n int, sticky map[int]bool) []int {
	perm := make([]int, n)
	free := make([]int, 0, n)
	for i := 0; i < n; i++ {
		perm[i] = i
		if !sticky[i] {
			free = append(free, i)
		}
	}
	shuffled := make([]int, len(free))
	copy(shuffled, free)
	rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
	for k, slot := range free {
		perm[slot] = shuffled[k]
	}
	return perm
}
