package choreo

// Position is a point in container-relative coordinates. Float so tweens can
// move elements in sub-cell steps; renderers round once at draw time.
type Position struct {
	X float64
	Y float64
}

// Add returns p shifted by q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is a container rectangle in the same coordinate space as Position.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Center returns the midpoint of the rect.
func (r Rect) Center() Position {
	return Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Element is an opaque handle to one rendered visual item. Its layout slot is
// where the current layout placed it; the visual offset, rotation and scale
// are the animatable properties a timeline drives. The rendered position is
// always Slot()+Offset().
type Element interface {
	// Slot returns the element's layout position.
	Slot() Position
	// SetSlot moves the element's layout position (a re-layout, not motion).
	SetSlot(Position)
	// Offset returns the current visual offset relative to the slot.
	Offset() Position
	// SetOffset replaces the visual offset.
	SetOffset(Position)
	// Rotation returns the visual rotation; 0 is neutral.
	Rotation() float64
	SetRotation(float64)
	// Scale returns the visual scale; 1 is neutral.
	Scale() float64
	SetScale(float64)
}

// RenderedPosition returns the position the element currently appears at.
func RenderedPosition(e Element) Position {
	return e.Slot().Add(e.Offset())
}

// Stage is the surface holding the elements under choreography. Element order
// follows the owning data model: before a mutation Elements()[i] is the
// element at old index i, after it the element at new index i.
type Stage interface {
	Elements() []Element
	// Rect returns the container rectangle elements live in.
	Rect() Rect
	// SetOverflowVisible toggles whether elements may render outside the
	// container, returning the previous value so it can be restored.
	SetOverflowVisible(visible bool) bool
}

// DecoratedStage is implemented by stages that can host transient, purely
// decorative elements added by motion strategies (trails, sparks). The
// controller clears any leftovers when a request settles.
type DecoratedStage interface {
	Stage
	AddDecoration(Element)
	RemoveDecoration(Element)
	Decorations() []Element
}
