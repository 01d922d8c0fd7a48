package choreo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is the controller lifecycle phase. Terminal phases cycle back to
// StateIdle; only one request lives at a time.
type State int

const (
	StateIdle State = iota
	StatePreparing
	StateMutated
	StateAnimating
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing"
	case StateMutated:
		return "mutated"
	case StateAnimating:
		return "animating"
	case StateSettling:
		return "settling"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Request carries everything one reorder needs. Enablement state and the
// animate-sticky flag travel with the request rather than living on the
// controller, so persisted preferences are read once per reorder by the
// caller and never shared mutable state.
type Request struct {
	// Perm maps new slot index to old element index; must be a bijection.
	Perm []int
	// Sticky indices are exempt from reordering: Perm[i] == i must hold.
	Sticky map[int]bool
	// AnimateSticky lets sticky elements take part in decorative motion.
	AnimateSticky bool
	// Enabled is the persisted transform enablement state; nil means all.
	Enabled map[string]bool
	// ForceKey pins a specific transform instead of random selection.
	ForceKey string
	// OnDone fires exactly once when every element has settled.
	OnDone func()
}

type inflight struct {
	id            uuid.UUID
	perm          []int
	exclude       map[int]bool
	animatable    []int
	snapshot      Snapshot
	descriptor    Descriptor
	timeline      *Timeline
	prevOverflow  bool
	overflowMoved bool
	elapsed       time.Duration
	onDone        func()
	fired         bool
}

// Controller composes layout, sticky policy, capture and the transform
// registry into a request/response lifecycle with a single completion signal
// per request. All methods run on the host event loop; nothing blocks.
type Controller struct {
	stage    Stage
	registry *Registry

	// Logf receives mid-flight degradation notices (missing captures,
	// strategy failures). Defaults to a no-op.
	Logf func(format string, args ...any)

	cellW, cellH int
	width        int
	height       int
	grid         Grid

	state         State
	req           *inflight
	pendingResize *[2]int
}

// NewController wires a controller to its stage and registry. Cell sizes are
// the fixed card footprint (width+margin, height+margin) used for every
// layout computation.
func NewController(stage Stage, registry *Registry, cellW, cellH int) *Controller {
	return &Controller{
		stage:    stage,
		registry: registry,
		Logf:     func(string, ...any) {},
		cellW:    cellW,
		cellH:    cellH,
	}
}

// logf prefixes Logf output with the in-flight request id, so interleaved
// notices from consecutive reorders stay attributable.
func (c *Controller) logf(format string, args ...any) {
	if c.req != nil {
		c.Logf("req %s: "+format, append([]any{c.req.id}, args...)...)
		return
	}
	c.Logf(format, args...)
}

// State returns the current lifecycle phase.
func (c *Controller) State() State { return c.state }

// Animating reports whether a request is between mutation and settle, i.e.
// the host should be feeding Tick.
func (c *Controller) Animating() bool { return c.state == StateAnimating }

// Grid returns the last computed layout.
func (c *Controller) Grid() Grid { return c.grid }

// ActiveTransform returns the descriptor driving the in-flight request. It
// is available from the moment RequestReorder selects it until settle.
func (c *Controller) ActiveTransform() (Descriptor, bool) {
	if c.req == nil {
		return Descriptor{}, false
	}
	return c.req.descriptor, true
}

// Resize records a new container size. When idle the grid is recomputed and
// elements re-slotted immediately; while a request is in flight the resize
// is deferred until the controller returns to idle.
func (c *Controller) Resize(width, height int) {
	if c.state != StateIdle {
		c.pendingResize = &[2]int{width, height}
		return
	}
	c.applySize(width, height)
}

func (c *Controller) applySize(width, height int) {
	c.width = width
	c.height = height
	c.grid = ComputeGrid(width, height, len(c.stage.Elements()), c.cellW, c.cellH)
	for w := range c.grid.Warnings {
		c.Logf("layout: %s", c.grid.Warnings[w])
	}
	c.reslot(c.grid)
}

func (c *Controller) reslot(grid Grid) {
	for i, e := range c.stage.Elements() {
		if i >= len(grid.Positions) {
			break
		}
		e.SetSlot(grid.Positions[i])
	}
}

// RequestReorder starts the lifecycle for one permutation. It validates the
// permutation against the sticky set (fail fast), captures pre-mutation
// geometry and returns. The caller then applies the permutation to its own
// data model and calls NotifyMutated. A request already in flight is
// rejected with ErrBusy — there is no cancellation.
func (c *Controller) RequestReorder(req Request) error {
	if c.state != StateIdle {
		return ErrBusy
	}
	n := len(c.stage.Elements())
	if len(req.Perm) != n {
		return &PermutationError{Index: len(req.Perm), Reason: fmt.Sprintf("length %d, stage has %d elements", len(req.Perm), n)}
	}
	perm, err := EnforceSticky(req.Perm, req.Sticky)
	if err != nil {
		return err
	}

	exclude := make(map[int]bool)
	for i := range perm {
		if !ShouldAnimate(i, req.Sticky, req.AnimateSticky) {
			exclude[i] = true
		}
	}

	c.state = StatePreparing
	c.req = &inflight{
		id:         uuid.New(),
		perm:       perm,
		exclude:    exclude,
		animatable: Animatable(perm, req.Sticky, req.AnimateSticky),
		snapshot:   Prepare(c.stage, exclude),
		onDone:     req.OnDone,
	}
	c.req.descriptor = c.selectDescriptor(req)
	return nil
}

func (c *Controller) selectDescriptor(req Request) Descriptor {
	if req.ForceKey != "" {
		if d, ok := c.registry.Get(req.ForceKey); ok {
			return d
		}
		if hint := c.registry.SuggestKey(req.ForceKey); hint != "" {
			c.logf("transform %q not registered (did you mean %q?); selecting randomly", req.ForceKey, hint)
		} else {
			c.logf("transform %q not registered; selecting randomly", req.ForceKey)
		}
	}
	return c.registry.SelectRandom(c.registry.Enabled(req.Enabled))
}

// NotifyMutated is the caller's signal that the data model now reflects the
// permutation and a re-render at the new order is due. It recomputes the
// layout, re-slots every element, re-anchors them at their captured
// positions and starts the selected strategy — all synchronously, so no
// frame ever paints the un-anchored state.
func (c *Controller) NotifyMutated() error {
	if c.state != StatePreparing {
		return ErrNotPreparing
	}
	req := c.req
	c.state = StateMutated

	grid := ComputeGrid(c.width, c.height, len(c.stage.Elements()), c.cellW, c.cellH)
	for w := range grid.Warnings {
		c.logf("layout: %s", grid.Warnings[w])
	}
	c.grid = grid

	// Degenerate layout: nothing to place, nothing to animate. Complete
	// immediately — the completion signal is never starved.
	if len(grid.Positions) == 0 {
		c.settle()
		return nil
	}

	c.reslot(grid)
	if missing := Reanchor(c.stage, req.snapshot, grid, req.perm, req.exclude); missing > 0 {
		c.logf("reanchor: %d element(s) had no captured geometry; animating from layout position", missing)
	}
	req.snapshot = nil // capture is spent once re-anchoring is done

	req.prevOverflow = c.stage.SetOverflowVisible(req.descriptor.NeedsOverflow)
	req.overflowMoved = true

	req.timeline = NewTimeline()
	ctx := &StrategyContext{
		Elements:   c.stage.Elements(),
		Animatable: req.animatable,
		Perm:       req.perm,
		Positions:  grid.Positions,
		Grid:       grid,
		Container:  c.stage.Rect(),
		Stage:      c.stage,
		Timeline:   req.timeline,
	}
	if err := runStrategy(req.descriptor, ctx); err != nil {
		c.logf("transform %q failed: %v; falling back to direct motion", req.descriptor.Key, err)
		// Discard whatever the strategy managed to build and rebuild the
		// timeline with the identity motion so every element still arrives.
		req.descriptor = IdentityDescriptor()
		req.timeline = NewTimeline()
		ctx.Timeline = req.timeline
		_ = IdentityStrategy(ctx)
	}

	c.state = StateAnimating
	if req.timeline.Len() == 0 {
		c.settle()
	}
	return nil
}

// runStrategy guards the strategy call: a panic is degradation, not a crash.
func runStrategy(d Descriptor, ctx *StrategyContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return d.Strategy(ctx)
}

// Tick advances the in-flight timeline by delta and returns true when the
// request completed on this tick. The host calls it from its frame
// scheduler; it never blocks.
func (c *Controller) Tick(delta time.Duration) bool {
	if c.state != StateAnimating || c.req == nil {
		return false
	}
	c.req.elapsed += delta
	if c.req.timeline.Advance(c.req.elapsed) {
		c.settle()
		return true
	}
	return false
}

// settle forces every element to its exact final geometry, restores the
// overflow flag, destroys the request and fires its completion callback
// exactly once.
func (c *Controller) settle() {
	req := c.req
	c.state = StateSettling

	for _, e := range c.stage.Elements() {
		e.SetOffset(Position{})
		e.SetRotation(0)
		e.SetScale(1)
	}
	if ds, ok := c.stage.(DecoratedStage); ok {
		for _, d := range ds.Decorations() {
			ds.RemoveDecoration(d)
		}
	}
	if req != nil && req.overflowMoved {
		c.stage.SetOverflowVisible(req.prevOverflow)
	}

	c.req = nil
	c.state = StateIdle
	if c.pendingResize != nil {
		size := *c.pendingResize
		c.pendingResize = nil
		c.applySize(size[0], size[1])
	}
	if req != nil && req.onDone != nil && !req.fired {
		req.fired = true
		req.onDone()
	}
}
