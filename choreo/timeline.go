package choreo

import "time"

// Property selects which visual property a tween drives.
type Property int

const (
	PropOffset Property = iota
	PropRotation
	PropScale
)

// Tween is one timed motion instruction: drive a single property of a single
// element from a start value to an end value over a duration, beginning at a
// relative start offset. Offset tweens use FromPos/ToPos; rotation and scale
// use From/To.
type Tween struct {
	Element  Element
	Property Property
	FromPos  Position
	ToPos    Position
	From     float64
	To       float64
	Start    time.Duration
	Duration time.Duration
	Ease     EaseFunc
}

func (t Tween) end() time.Duration { return t.Start + t.Duration }

// Timeline is an ordered collection of tweens with a single completion
// event. Sub-timelines compose at an offset; playback is driven externally
// through Advance so the host owns frame scheduling.
type Timeline struct {
	tweens []Tween
	done   bool
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Add appends a tween. A nil easing means EaseOutCubic.
func (tl *Timeline) Add(t Tween) {
	if t.Ease == nil {
		t.Ease = EaseOutCubic
	}
	if t.Duration < 0 {
		t.Duration = 0
	}
	tl.tweens = append(tl.tweens, t)
}

// AddTimeline merges every tween of sub into tl, shifted by at.
func (tl *Timeline) AddTimeline(sub *Timeline, at time.Duration) {
	if sub == nil {
		return
	}
	for _, t := range sub.tweens {
		t.Start += at
		tl.Add(t)
	}
}

// Len returns the number of tweens.
func (tl *Timeline) Len() int { return len(tl.tweens) }

// Length returns the total play time: the latest tween end.
func (tl *Timeline) Length() time.Duration {
	var end time.Duration
	for _, t := range tl.tweens {
		if t.end() > end {
			end = t.end()
		}
	}
	return end
}

// Done reports whether Advance has run the timeline to completion.
func (tl *Timeline) Done() bool { return tl.done }

// Advance applies every tween's interpolated value for the given elapsed
// time since play start and returns true once the whole timeline has
// finished. Tweens that have not started yet are left untouched so elements
// hold their re-anchored geometry until their motion begins. Finished tweens
// are pinned to their exact end value.
func (tl *Timeline) Advance(elapsed time.Duration) bool {
	if tl.done {
		return true
	}
	for _, t := range tl.tweens {
		if elapsed < t.Start {
			continue
		}
		progress := 1.0
		if t.Duration > 0 && elapsed < t.end() {
			frac := float64(elapsed-t.Start) / float64(t.Duration)
			progress = t.Ease(frac)
		}
		apply(t, progress)
	}
	if elapsed >= tl.Length() {
		tl.done = true
	}
	return tl.done
}

func apply(t Tween, progress float64) {
	switch t.Property {
	case PropOffset:
		t.Element.SetOffset(Position{
			X: lerp(t.FromPos.X, t.ToPos.X, progress),
			Y: lerp(t.FromPos.Y, t.ToPos.Y, progress),
		})
	case PropRotation:
		t.Element.SetRotation(lerp(t.From, t.To, progress))
	case PropScale:
		t.Element.SetScale(lerp(t.From, t.To, progress))
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
