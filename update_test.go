package main

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/cardwall/choreo"
	"github.com/jask/cardwall/internal/config"
	"github.com/jask/cardwall/internal/database/repository"
	"github.com/jask/cardwall/internal/prefs"
	"github.com/jask/cardwall/transforms"
)

// testModel builds a ready model with four cards and an 80x24 terminal. The
// repositories are never exercised synchronously, so they carry no database.
func testModel(t *testing.T) model {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	reg := choreo.NewRegistry(rng)
	if err := reg.Register(choreo.IdentityDescriptor()); err != nil {
		t.Fatalf("Register(identity) = %v", err)
	}
	if err := transforms.Register(reg); err != nil {
		t.Fatalf("transforms.Register = %v", err)
	}

	cfg := config.Config{}
	cfg.UI.CellWidth = 20
	cfg.UI.CellHeight = 6
	cfg.UI.FPS = 30

	d := testDeck("A", "B", "C", "D")
	m := newModel(cfg, d, reg,
		repository.NewCardRepo(nil),
		repository.NewShuffleRepo(nil),
		prefs.State{}, rng)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(model)
	m.ready = true
	return m
}

// drain runs frame messages through Update until the controller goes idle.
func drain(t *testing.T, m model) model {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if m.ctrl.State() == choreo.StateIdle {
			return m
		}
		next, _ := m.Update(frameMsg{})
		m = next.(model)
	}
	t.Fatal("controller never settled")
	return m
}

func keyPress(k string) tea.KeyMsg {
	if len(k) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestShuffleLifecycleSettles(t *testing.T) {
	m := testModel(t)
	before := m.deck.labels()

	next, cmd := m.Update(keyPress("s"))
	m = next.(model)
	if cmd == nil && m.ctrl.State() != choreo.StateIdle {
		t.Fatal("shuffle in flight but no frame command scheduled")
	}
	m = drain(t, m)

	after := m.deck.labels()
	if len(after) != len(before) {
		t.Fatalf("card count changed: %d -> %d", len(before), len(after))
	}
	seen := make(map[string]bool)
	for _, l := range after {
		seen[l] = true
	}
	for _, l := range before {
		if !seen[l] {
			t.Fatalf("card %q lost in shuffle", l)
		}
	}
	for _, c := range m.deck.cards {
		if c.offset != (choreo.Position{}) {
			t.Fatalf("card %q settled with offset %v", c.label, c.offset)
		}
		if c.rotation != 0 || c.scale != 1 {
			t.Fatalf("card %q settled with rotation %v scale %v", c.label, c.rotation, c.scale)
		}
	}
}

func TestShuffleWhileAnimatingIsRejected(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(keyPress("s"))
	m = next.(model)
	if m.ctrl.State() == choreo.StateIdle {
		t.Skip("layout settled immediately")
	}

	labelsDuring := m.deck.labels()
	next, _ = m.Update(keyPress("s"))
	m = next.(model)
	for i, l := range m.deck.labels() {
		if l != labelsDuring[i] {
			t.Fatal("second shuffle mutated the deck while one was in flight")
		}
	}
	m = drain(t, m)
}

func TestMoveSwapsNeighbors(t *testing.T) {
	m := testModel(t)
	m.cursor = 1

	next, _ := m.Update(keyPress("L"))
	m = next.(model)
	m = drain(t, m)

	got := m.deck.labels()
	want := []string{"A", "C", "B", "D"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %v, want %v", got, want)
		}
	}
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 (follows the moved card)", m.cursor)
	}
}

func TestMoveRefusesPinnedNeighbor(t *testing.T) {
	m := testModel(t)
	m.deck.cards[2].sticky = true
	m.cursor = 1

	next, _ := m.Update(keyPress("L"))
	m = next.(model)
	got := m.deck.labels()
	want := []string{"A", "B", "C", "D"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("labels = %v, want %v (pinned card must hold its slot)", got, want)
		}
	}
}

func TestShuffleKeepsPinnedCards(t *testing.T) {
	m := testModel(t)
	m.deck.cards[0].sticky = true
	m.deck.cards[2].sticky = true

	for round := 0; round < 20; round++ {
		next, _ := m.Update(keyPress("s"))
		m = next.(model)
		m = drain(t, m)
		got := m.deck.labels()
		if got[0] != "A" || got[2] != "C" {
			t.Fatalf("round %d: labels = %v, pinned A and C moved", round, got)
		}
	}
}

func TestAddCardViaPrompt(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(keyPress("a"))
	m = next.(model)
	if m.editMode != editAdd {
		t.Fatalf("editMode = %d, want editAdd", m.editMode)
	}
	for _, r := range "Next" {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	next, _ = m.Update(keyPress("enter"))
	m = next.(model)

	got := m.deck.labels()
	if len(got) != 5 || got[4] != "Next" {
		t.Fatalf("labels = %v, want trailing %q", got, "Next")
	}
	if m.cursor != 4 {
		t.Fatalf("cursor = %d, want 4", m.cursor)
	}
}

func TestRenamePromptEscCancels(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(keyPress("r"))
	m = next.(model)
	next, _ = m.Update(keyPress("esc"))
	m = next.(model)
	if m.editMode != editNone {
		t.Fatal("esc should close the prompt")
	}
	if got := m.deck.cards[0].label; got != "A" {
		t.Fatalf("label = %q, want %q", got, "A")
	}
}

func TestDeleteCard(t *testing.T) {
	m := testModel(t)
	m.cursor = 3
	next, _ := m.Update(keyPress("d"))
	m = next.(model)
	got := m.deck.labels()
	if len(got) != 3 {
		t.Fatalf("labels = %v, want 3 cards", got)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
}

func TestStickyToggle(t *testing.T) {
	m := testModel(t)
	next, _ := m.Update(keyPress("x"))
	m = next.(model)
	if !m.deck.cards[0].sticky {
		t.Fatal("x should pin the selected card")
	}
	next, _ = m.Update(keyPress("x"))
	m = next.(model)
	if m.deck.cards[0].sticky {
		t.Fatal("x again should unpin")
	}
}

func TestTabCycling(t *testing.T) {
	m := testModel(t)
	for i := 0; i < tabCount; i++ {
		if m.activeTab != i {
			t.Fatalf("activeTab = %d, want %d", m.activeTab, i)
		}
		next, _ := m.Update(keyPress("tab"))
		m = next.(model)
	}
	if m.activeTab != tabWall {
		t.Fatalf("activeTab = %d, want wrap to %d", m.activeTab, tabWall)
	}
}

func TestSettingsToggleTransform(t *testing.T) {
	m := testModel(t)
	m.activeTab = tabSettings
	m.settCursor = 0
	firstKey := m.registry.Keys()[0]

	next, _ := m.Update(keyPress("enter"))
	m = next.(model)
	if m.prefs.Transforms[firstKey] {
		t.Fatalf("transform %q still enabled after toggle", firstKey)
	}
	for _, k := range m.registry.Enabled(m.prefs.Transforms) {
		if k == firstKey {
			t.Fatalf("registry still reports %q enabled", firstKey)
		}
	}
}

func TestSettingsToggleAnimateSticky(t *testing.T) {
	m := testModel(t)
	m.activeTab = tabSettings
	m.settCursor = m.settingsRows() - 1
	next, _ := m.Update(keyPress("enter"))
	m = next.(model)
	if !m.prefs.AnimateSticky {
		t.Fatal("animate-pinned toggle did not flip on")
	}
}

func TestWallViewShowsLabels(t *testing.T) {
	m := testModel(t)
	view := m.wallView()
	for _, l := range m.deck.labels() {
		if !strings.Contains(view, l) {
			t.Fatalf("wall view missing card %q", l)
		}
	}
}

func TestViewRendersAllTabs(t *testing.T) {
	m := testModel(t)
	for tab := 0; tab < tabCount; tab++ {
		m.activeTab = tab
		if out := m.View(); out == "" {
			t.Fatalf("tab %d rendered empty view", tab)
		}
	}
}
