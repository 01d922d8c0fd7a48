package choreo

import (
	"math"
	"testing"
	"time"
)

func TestTimelineAdvanceEndsExact(t *testing.T) {
	e := newFakeElement("A")
	e.SetOffset(Position{X: 10, Y: 4})
	tl := NewTimeline()
	tl.Add(Tween{Element: e, Property: PropOffset, FromPos: Position{X: 10, Y: 4}, Duration: 100 * time.Millisecond})

	if tl.Advance(50 * time.Millisecond) {
		t.Fatalf("done at half time")
	}
	mid := e.Offset()
	if mid.X >= 10 || mid.X < 0 {
		t.Fatalf("offset X = %v, want between 0 and 10", mid.X)
	}
	if !tl.Advance(100 * time.Millisecond) {
		t.Fatalf("not done at full time")
	}
	if e.Offset() != (Position{}) {
		t.Fatalf("offset = %+v, want exactly zero", e.Offset())
	}
	if !tl.Done() {
		t.Fatalf("Done() = false after completion")
	}
}

func TestTimelineHoldsUntilStart(t *testing.T) {
	e := newFakeElement("A")
	e.SetOffset(Position{X: 8})
	tl := NewTimeline()
	tl.Add(Tween{
		Element: e, Property: PropOffset,
		FromPos: Position{X: 8},
		Start:   200 * time.Millisecond, Duration: 100 * time.Millisecond,
	})
	tl.Advance(100 * time.Millisecond)
	if e.Offset().X != 8 {
		t.Fatalf("element moved before its tween started: %+v", e.Offset())
	}
}

func TestTimelineZeroDurationAppliesImmediately(t *testing.T) {
	e := newFakeElement("A")
	tl := NewTimeline()
	tl.Add(Tween{Element: e, Property: PropScale, From: 1, To: 1.5, Duration: 0})
	if !tl.Advance(0) {
		t.Fatalf("zero-length timeline not done at t=0")
	}
	if e.Scale() != 1.5 {
		t.Fatalf("scale = %v, want 1.5", e.Scale())
	}
}

func TestTimelineComposition(t *testing.T) {
	e1 := newFakeElement("A")
	e2 := newFakeElement("B")
	sub := NewTimeline()
	sub.Add(Tween{Element: e2, Property: PropRotation, From: 0, To: 90, Duration: 100 * time.Millisecond})

	tl := NewTimeline()
	tl.Add(Tween{Element: e1, Property: PropRotation, From: 0, To: 45, Duration: 100 * time.Millisecond})
	tl.AddTimeline(sub, 150*time.Millisecond)

	if got, want := tl.Length(), 250*time.Millisecond; got != want {
		t.Fatalf("Length = %v, want %v", got, want)
	}
	tl.Advance(120 * time.Millisecond)
	if e1.Rotation() != 45 {
		t.Fatalf("e1 rotation = %v, want 45 (tween finished)", e1.Rotation())
	}
	if e2.Rotation() != 0 {
		t.Fatalf("e2 rotation = %v, want 0 (not started)", e2.Rotation())
	}
	if !tl.Advance(250 * time.Millisecond) {
		t.Fatalf("not done at composed length")
	}
	if e2.Rotation() != 90 {
		t.Fatalf("e2 rotation = %v, want 90", e2.Rotation())
	}
}

func TestEasingsEndpointExact(t *testing.T) {
	for name, fn := range map[string]EaseFunc{
		"linear":    EaseLinear,
		"outCubic":  EaseOutCubic,
		"inOutQuad": EaseInOutQuad,
		"outBack":   EaseOutBack,
	} {
		if v := fn(0); math.Abs(v) > 1e-9 {
			t.Fatalf("%s(0) = %v, want 0", name, v)
		}
		if v := fn(1); math.Abs(v-1) > 1e-9 {
			t.Fatalf("%s(1) = %v, want 1", name, v)
		}
	}
}
