package main

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/jask/cardwall/choreo"
	"github.com/jask/cardwall/internal/database/repository"
)

// ---------------------------------------------------------------------------
// Card — one visual item on the wall, the app's choreo.Element
// ---------------------------------------------------------------------------

type card struct {
	id     string
	label  string
	sticky bool

	slot     choreo.Position
	offset   choreo.Position
	rotation float64
	scale    float64
}

func newCard(label string) *card {
	return &card{id: uuid.New().String(), label: label, scale: 1}
}

func (c *card) Slot() choreo.Position       { return c.slot }
func (c *card) SetSlot(p choreo.Position)   { c.slot = p }
func (c *card) Offset() choreo.Position     { return c.offset }
func (c *card) SetOffset(p choreo.Position) { c.offset = p }
func (c *card) Rotation() float64           { return c.rotation }
func (c *card) SetRotation(r float64)       { c.rotation = r }
func (c *card) Scale() float64              { return c.scale }
func (c *card) SetScale(s float64)          { c.scale = s }

// ---------------------------------------------------------------------------
// Deck — the wall of cards, the app's choreo.Stage
// ---------------------------------------------------------------------------

// shuffleResult carries settle-time facts from the controller's completion
// callback out to the next Update, where a tea.Cmd persists them. The deck is
// held by pointer, so the closure's writes survive model copies.
type shuffleResult struct {
	transformKey string
	cardCount    int
}

type deck struct {
	cards       []*card
	rect        choreo.Rect
	overflow    bool
	decorations []choreo.Element
	lastResult  *shuffleResult
	notices     []string
}

func (d *deck) Elements() []choreo.Element {
	out := make([]choreo.Element, len(d.cards))
	for i, c := range d.cards {
		out[i] = c
	}
	return out
}

func (d *deck) Rect() choreo.Rect { return d.rect }

func (d *deck) SetOverflowVisible(v bool) bool {
	prev := d.overflow
	d.overflow = v
	return prev
}

func (d *deck) AddDecoration(e choreo.Element) { d.decorations = append(d.decorations, e) }

func (d *deck) RemoveDecoration(e choreo.Element) {
	for i, dec := range d.decorations {
		if dec == e {
			d.decorations = append(d.decorations[:i], d.decorations[i+1:]...)
			return
		}
	}
}

func (d *deck) Decorations() []choreo.Element {
	out := make([]choreo.Element, len(d.decorations))
	copy(out, d.decorations)
	return out
}

// apply reorders the deck: the card at old index perm[i] lands at index i.
func (d *deck) apply(perm []int) {
	next := make([]*card, len(perm))
	for newIdx, old := range perm {
		next[newIdx] = d.cards[old]
	}
	d.cards = next
}

// stickySet returns the indices of pinned cards.
func (d *deck) stickySet() map[int]bool {
	out := make(map[int]bool)
	for i, c := range d.cards {
		if c.sticky {
			out[i] = true
		}
	}
	return out
}

// takeResult pops the completion record left by the last settle.
func (d *deck) takeResult() *shuffleResult {
	r := d.lastResult
	d.lastResult = nil
	return r
}

// takeNotice pops the most recent mid-flight degradation notice, if any.
func (d *deck) takeNotice() string {
	if len(d.notices) == 0 {
		return ""
	}
	n := d.notices[len(d.notices)-1]
	d.notices = nil
	return n
}

func (d *deck) toRepo() []repository.Card {
	out := make([]repository.Card, len(d.cards))
	for i, c := range d.cards {
		out[i] = repository.Card{ID: c.id, Label: c.label, Position: i, Sticky: c.sticky}
	}
	return out
}

func deckFromRepo(rows []repository.Card) *deck {
	d := &deck{}
	for _, r := range rows {
		c := newCard(r.Label)
		c.id = r.ID
		c.sticky = r.Sticky
		d.cards = append(d.cards, c)
	}
	return d
}

// defaultDeck seeds a fresh wall.
func defaultDeck() *deck {
	d := &deck{}
	for _, label := range []string{"Inbox", "Today", "Doing", "Blocked", "Review", "Done"} {
		d.cards = append(d.cards, newCard(label))
	}
	return d
}

// ---------------------------------------------------------------------------
// Permutation builders
// ---------------------------------------------------------------------------

// shufflePermutation builds a random permutation that keeps every sticky
// index fixed: only the free slots trade occupants. The result always passes
// choreo.EnforceSticky by construction.
func shufflePermutation(rng *rand.Rand, n int, sticky map[int]bool) []int {
	perm := make([]int, n)
	free := make([]int, 0, n)
	for i := 0; i < n; i++ {
		perm[i] = i
		if !sticky[i] {
			free = append(free, i)
		}
	}
	occupants := make([]int, len(free))
	copy(occupants, free)
	rng.Shuffle(len(occupants), func(a, b int) { occupants[a], occupants[b] = occupants[b], occupants[a] })
	for k, slot := range free {
		perm[slot] = occupants[k]
	}
	return perm
}

// swapPermutation is the identity except indices a and b trade places.
func swapPermutation(n, a, b int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	perm[a], perm[b] = perm[b], perm[a]
	return perm
}
