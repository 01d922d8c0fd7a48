package choreo

// Test doubles shared across the package tests: a minimal element and stage
// with the same geometry semantics the app's cards have.

type fakeElement struct {
	slot     Position
	offset   Position
	rotation float64
	scale    float64
	label    string
}

func newFakeElement(label string) *fakeElement {
	return &fakeElement{scale: 1, label: label}
}

func (e *fakeElement) Slot() Position        { return e.slot }
func (e *fakeElement) SetSlot(p Position)    { e.slot = p }
func (e *fakeElement) Offset() Position      { return e.offset }
func (e *fakeElement) SetOffset(p Position)  { e.offset = p }
func (e *fakeElement) Rotation() float64     { return e.rotation }
func (e *fakeElement) SetRotation(r float64) { e.rotation = r }
func (e *fakeElement) Scale() float64        { return e.scale }
func (e *fakeElement) SetScale(s float64)    { e.scale = s }

type fakeStage struct {
	elements    []Element
	rect        Rect
	overflow    bool
	decorations []Element
}

func newFakeStage(labels ...string) *fakeStage {
	s := &fakeStage{rect: Rect{W: 60, H: 24}}
	for _, l := range labels {
		s.elements = append(s.elements, newFakeElement(l))
	}
	return s
}

func (s *fakeStage) Elements() []Element { return s.elements }
func (s *fakeStage) Rect() Rect          { return s.rect }

func (s *fakeStage) SetOverflowVisible(v bool) bool {
	prev := s.overflow
	s.overflow = v
	return prev
}

func (s *fakeStage) AddDecoration(e Element) { s.decorations = append(s.decorations, e) }

func (s *fakeStage) RemoveDecoration(e Element) {
	for i, d := range s.decorations {
		if d == e {
			s.decorations = append(s.decorations[:i], s.decorations[i+1:]...)
			return
		}
	}
}

func (s *fakeStage) Decorations() []Element {
	out := make([]Element, len(s.decorations))
	copy(out, s.decorations)
	return out
}

// applyPerm reorders the stage's elements the way the owning app mutates its
// card list: the element at old index perm[i] lands at new index i.
func (s *fakeStage) applyPerm(perm []int) {
	next := make([]Element, len(perm))
	for newIdx, old := range perm {
		next[newIdx] = s.elements[old]
	}
	s.elements = next
}

func (s *fakeStage) labels() []string {
	out := make([]string, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.(*fakeElement).label
	}
	return out
}
