package choreo

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/agnivade/levenshtein"
)

// StrategyContext is everything a motion strategy may look at. Elements is
// the full post-mutation set indexed by new slot; Animatable lists the new
// indices the strategy is allowed to move — sticky filtering has already
// happened, strategies never re-check it. Every instruction goes onto
// Timeline; strategies must end each moved element at offset zero with
// neutral rotation and scale, and never signal completion themselves.
type StrategyContext struct {
	Elements   []Element
	Animatable []int
	Perm       []int
	Positions  []Position
	Grid       Grid
	Container  Rect
	Stage      Stage
	Timeline   *Timeline
}

// StrategyFunc builds motion instructions for one reorder. An error (or a
// panic) makes the controller discard the strategy's contributions and fall
// back to the identity motion.
type StrategyFunc func(ctx *StrategyContext) error

// Descriptor names a motion strategy and its requirements.
type Descriptor struct {
	Key              string
	DisplayName      string
	Strategy         StrategyFunc
	NeedsOverflow    bool
	EnabledByDefault bool
}

// Registry holds the named motion strategies registered at setup. Selection
// draws from the caller-supplied enablement state; the registry itself keeps
// no mutable enablement (that state is persisted by collaborators and passed
// in per request).
type Registry struct {
	descriptors map[string]Descriptor
	keys        []string
	rng         *rand.Rand
}

// NewRegistry returns an empty registry drawing randomness from rng. A nil
// rng gets a time-seeded source; tests pass a fixed seed.
func NewRegistry(rng *rand.Rand) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Registry{descriptors: make(map[string]Descriptor), rng: rng}
}

// Register adds a descriptor. Keys are registered once, at process setup.
func (r *Registry) Register(d Descriptor) error {
	if d.Key == "" {
		return fmt.Errorf("choreo: descriptor key is empty")
	}
	if d.Strategy == nil {
		return fmt.Errorf("choreo: descriptor %q has no strategy", d.Key)
	}
	if _, exists := r.descriptors[d.Key]; exists {
		return fmt.Errorf("choreo: descriptor %q already registered", d.Key)
	}
	r.descriptors[d.Key] = d
	r.keys = append(r.keys, d.Key)
	sort.Strings(r.keys)
	return nil
}

// Keys returns all registered keys, sorted.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get looks up a descriptor by key.
func (r *Registry) Get(key string) (Descriptor, bool) {
	d, ok := r.descriptors[key]
	return d, ok
}

// Enabled resolves the persisted enablement state against the registered
// keys. Nil or empty state means "all enabled". Keys present in state but
// not registered are ignored (stale prefs survive renames).
func (r *Registry) Enabled(state map[string]bool) []string {
	if len(state) == 0 {
		return r.Keys()
	}
	out := make([]string, 0, len(r.keys))
	for _, k := range r.keys {
		enabled, known := state[k]
		if !known {
			enabled = r.descriptors[k].EnabledByDefault
		}
		if enabled {
			out = append(out, k)
		}
	}
	return out
}

// SuggestKey returns the registered key closest to bad by edit distance, or
// "" when nothing is plausibly close. Used to explain stale config entries.
func (r *Registry) SuggestKey(bad string) string {
	best := ""
	bestDist := len(bad)/2 + 1 // anything further is noise
	for _, k := range r.keys {
		if d := levenshtein.ComputeDistance(bad, k); d < bestDist {
			best = k
			bestDist = d
		}
	}
	return best
}

// SelectRandom picks uniformly from the enabled keys. An empty set falls
// back to the built-in identity descriptor, so selection always succeeds.
func (r *Registry) SelectRandom(enabled []string) Descriptor {
	candidates := enabled[:0:0]
	for _, k := range enabled {
		if _, ok := r.descriptors[k]; ok {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return IdentityDescriptor()
	}
	return r.descriptors[candidates[r.rng.Intn(len(candidates))]]
}

// IdentityDescriptor is the built-in fallback: every animatable element moves
// directly to its final position with the default easing, rotation and scale
// returning to neutral.
func IdentityDescriptor() Descriptor {
	return Descriptor{
		Key:              "identity",
		DisplayName:      "Direct",
		Strategy:         IdentityStrategy,
		NeedsOverflow:    false,
		EnabledByDefault: true,
	}
}

// identityDuration is how long the fallback motion takes.
const identityDuration = 300 * time.Millisecond

// IdentityStrategy tweens each animatable element's offset straight to zero
// and restores neutral rotation and scale.
func IdentityStrategy(ctx *StrategyContext) error {
	for _, i := range ctx.Animatable {
		e := ctx.Elements[i]
		ctx.Timeline.Add(Tween{
			Element:  e,
			Property: PropOffset,
			FromPos:  e.Offset(),
			ToPos:    Position{},
			Duration: identityDuration,
		})
		if e.Rotation() != 0 {
			ctx.Timeline.Add(Tween{
				Element:  e,
				Property: PropRotation,
				From:     e.Rotation(),
				To:       0,
				Duration: identityDuration,
			})
		}
		if e.Scale() != 1 {
			ctx.Timeline.Add(Tween{
				Element:  e,
				Property: PropScale,
				From:     e.Scale(),
				To:       1,
				Duration: identityDuration,
			})
		}
	}
	return nil
}
