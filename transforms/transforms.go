package transforms

import (
	"math"
	"time"

	"github.com/jask/cardwall/choreo"
)

const (
	moveDuration = 350 * time.Millisecond
	staggerStep  = 60 * time.Millisecond
	rippleStep   = 18 * time.Millisecond
	carouselLift = 280 * time.Millisecond
	carouselDrop = 320 * time.Millisecond
)

// All returns the descriptors to register at setup, in display order.
func All() []choreo.Descriptor {
	return []choreo.Descriptor{
		{
			Key:              "cascade",
			DisplayName:      "Cascade",
			Strategy:         Cascade,
			NeedsOverflow:    false,
			EnabledByDefault: true,
		},
		{
			Key:              "ripple",
			DisplayName:      "Ripple",
			Strategy:         Ripple,
			NeedsOverflow:    true,
			EnabledByDefault: true,
		},
		{
			Key:              "carousel",
			DisplayName:      "Carousel",
			Strategy:         Carousel,
			NeedsOverflow:    true,
			EnabledByDefault: true,
		},
	}
}

// Register adds every built-in strategy to the registry.
func Register(r *choreo.Registry) error {
	for _, d := range All() {
		if err := r.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// Cascade moves cards in row-major waves: each successive grid row starts a
// beat after the previous one, decelerating into place.
func Cascade(ctx *choreo.StrategyContext) error {
	perRow := ctx.Grid.CardsPerRow
	if perRow < 1 {
		perRow = 1
	}
	for _, i := range ctx.Animatable {
		e := ctx.Elements[i]
		row := i / perRow
		ctx.Timeline.Add(choreo.Tween{
			Element:  e,
			Property: choreo.PropOffset,
			FromPos:  e.Offset(),
			ToPos:    choreo.Position{},
			Start:    time.Duration(row) * staggerStep,
			Duration: moveDuration,
			Ease:     choreo.EaseOutCubic,
		})
	}
	return nil
}

// Ripple delays each card by its distance from the container center and
// lands with a slight overshoot, so motion spreads outward like a wave.
// Overshoot can leave the container, hence NeedsOverflow.
func Ripple(ctx *choreo.StrategyContext) error {
	center := ctx.Container.Center()
	for _, i := range ctx.Animatable {
		e := ctx.Elements[i]
		final := ctx.Positions[i]
		dist := math.Hypot(final.X-center.X, final.Y-center.Y)
		ctx.Timeline.Add(choreo.Tween{
			Element:  e,
			Property: choreo.PropOffset,
			FromPos:  e.Offset(),
			ToPos:    choreo.Position{},
			Start:    time.Duration(dist) * rippleStep,
			Duration: moveDuration,
			Ease:     choreo.EaseOutBack,
		})
	}
	return nil
}

// Carousel swings every card horizontally out past its row edge, then drops
// it into the final slot. The excursion leaves the container, hence
// NeedsOverflow. Both legs compose as a sub-timeline per card.
func Carousel(ctx *choreo.StrategyContext) error {
	width := ctx.Container.W
	if width <= 0 {
		width = float64(ctx.Grid.Width)
	}
	for k, i := range ctx.Animatable {
		e := ctx.Elements[i]
		start := e.Offset()
		final := ctx.Positions[i]

		// Swing toward the nearer horizontal edge, one card-width beyond it.
		exitX := -final.X - float64(ctx.Grid.Width)/float64(maxInt(ctx.Grid.CardsPerRow, 1))
		if final.X+start.X > width/2 {
			exitX = width - final.X + 2
		}
		waypoint := choreo.Position{X: exitX, Y: start.Y}

		leg := choreo.NewTimeline()
		leg.Add(choreo.Tween{
			Element:  e,
			Property: choreo.PropOffset,
			FromPos:  start,
			ToPos:    waypoint,
			Duration: carouselLift,
			Ease:     choreo.EaseInOutQuad,
		})
		leg.Add(choreo.Tween{
			Element:  e,
			Property: choreo.PropOffset,
			FromPos:  waypoint,
			ToPos:    choreo.Position{},
			Start:    carouselLift,
			Duration: carouselDrop,
			Ease:     choreo.EaseOutCubic,
		})
		ctx.Timeline.AddTimeline(leg, time.Duration(k)*staggerStep/2)
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
