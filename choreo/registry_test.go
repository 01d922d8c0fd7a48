package choreo

import (
	"math/rand"
	"testing"
	"time"
)

func noopStrategy(*StrategyContext) error { return nil }

func testRegistry(t *testing.T, keys ...string) *Registry {
	t.Helper()
	r := NewRegistry(rand.New(rand.NewSource(1)))
	for _, k := range keys {
		if err := r.Register(Descriptor{Key: k, DisplayName: k, Strategy: noopStrategy, EnabledByDefault: true}); err != nil {
			t.Fatalf("Register(%q): %v", k, err)
		}
	}
	return r
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := testRegistry(t, "cascade")
	err := r.Register(Descriptor{Key: "cascade", Strategy: noopStrategy})
	if err == nil {
		t.Fatalf("duplicate key accepted")
	}
}

func TestEnabledDefaultsToAll(t *testing.T) {
	r := testRegistry(t, "cascade", "ripple", "carousel")
	got := r.Enabled(nil)
	if len(got) != 3 {
		t.Fatalf("Enabled(nil) = %v, want all 3", got)
	}
}

func TestEnabledRespectsState(t *testing.T) {
	r := testRegistry(t, "cascade", "ripple", "carousel")
	got := r.Enabled(map[string]bool{"ripple": false, "cascade": true, "swoosh": true})
	if len(got) != 2 {
		t.Fatalf("Enabled = %v, want [carousel cascade]", got)
	}
	for _, k := range got {
		if k == "ripple" {
			t.Fatalf("disabled key selected: %v", got)
		}
	}
}

// Property 5: an empty enabled set yields the identity fallback, whose
// strategy moves every animatable element straight to its final geometry.
func TestSelectRandomEmptyFallsBackToIdentity(t *testing.T) {
	r := testRegistry(t)
	d := r.SelectRandom(nil)
	if d.Key != "identity" {
		t.Fatalf("Key = %q, want identity", d.Key)
	}
	if d.NeedsOverflow {
		t.Fatalf("identity descriptor must not need overflow")
	}

	stage := newFakeStage("A", "B")
	grid := ComputeGrid(70, 40, 2, 22, 7)
	for i, e := range stage.Elements() {
		e.SetSlot(grid.Positions[i])
	}
	stage.Elements()[0].SetOffset(Position{X: 22})
	stage.Elements()[1].SetOffset(Position{X: -22})
	stage.Elements()[1].SetRotation(15)
	stage.Elements()[1].SetScale(1.2)

	tl := NewTimeline()
	ctx := &StrategyContext{
		Elements:   stage.Elements(),
		Animatable: []int{0, 1},
		Perm:       []int{1, 0},
		Positions:  grid.Positions,
		Grid:       grid,
		Container:  stage.Rect(),
		Stage:      stage,
		Timeline:   tl,
	}
	if err := d.Strategy(ctx); err != nil {
		t.Fatalf("identity strategy: %v", err)
	}
	tl.Advance(time.Hour)
	for i, e := range stage.Elements() {
		if e.Offset() != (Position{}) {
			t.Fatalf("element %d offset = %+v, want zero", i, e.Offset())
		}
		if e.Rotation() != 0 || e.Scale() != 1 {
			t.Fatalf("element %d rotation/scale = %v/%v, want neutral", i, e.Rotation(), e.Scale())
		}
	}
}

func TestSelectRandomUniformOverEnabled(t *testing.T) {
	r := testRegistry(t, "cascade", "ripple", "carousel")
	enabled := r.Enabled(nil)
	picked := map[string]int{}
	for i := 0; i < 300; i++ {
		picked[r.SelectRandom(enabled).Key]++
	}
	for _, k := range enabled {
		if picked[k] == 0 {
			t.Fatalf("key %q never selected in 300 draws: %v", k, picked)
		}
	}
	if picked["identity"] != 0 {
		t.Fatalf("identity selected despite non-empty enabled set")
	}
}

func TestSuggestKey(t *testing.T) {
	r := testRegistry(t, "cascade", "ripple", "carousel")
	if got := r.SuggestKey("casade"); got != "cascade" {
		t.Fatalf("SuggestKey(casade) = %q, want cascade", got)
	}
	if got := r.SuggestKey("zzzzzzzz"); got != "" {
		t.Fatalf("SuggestKey(zzzzzzzz) = %q, want empty", got)
	}
}
