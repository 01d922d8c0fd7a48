package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/cardwall/choreo"
	"github.com/jask/cardwall/internal/database/repository"
	"github.com/jask/cardwall/internal/prefs"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case deckLoadedMsg:
		return m.handleDeckLoaded(msg)
	case historyLoadedMsg:
		return m.handleHistoryLoaded(msg)
	case deckSavedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Save failed: %v", msg.err))
		}
		return m, nil
	case prefsSavedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Preference write failed: %v", msg.err))
		}
		return m, nil
	case shuffleSavedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("History write failed: %v", msg.err))
			return m, nil
		}
		return m, loadHistoryCmd(m.shuffleRepo)
	case frameMsg:
		return m.handleFrame()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.deck.rect = choreo.Rect{W: float64(m.width), H: float64(m.wallHeight())}
		m.ctrl.Resize(m.width, m.wallHeight())
		return m, nil
	case tea.KeyMsg:
		if m.editMode != editNone {
			return m.updateEdit(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Async results
// ---------------------------------------------------------------------------

func (m model) handleDeckLoaded(msg deckLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(fmt.Sprintf("Load failed: %v", msg.err))
		m.ready = true
		return m, nil
	}
	var cmd tea.Cmd
	if len(msg.rows) == 0 {
		// First run: seed the wall and persist it.
		m.deck.cards = defaultDeck().cards
		cmd = saveDeckCmd(m.cardRepo, m.deck.toRepo())
	} else {
		m.deck.cards = deckFromRepo(msg.rows).cards
	}
	m.ready = true
	m.cursor = 0
	m.status = fmt.Sprintf("%d cards.", len(m.deck.cards))
	m.statusErr = false
	if m.width > 0 {
		m.ctrl.Resize(m.width, m.wallHeight())
	}
	return m, cmd
}

func (m model) handleHistoryLoaded(msg historyLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(fmt.Sprintf("History load failed: %v", msg.err))
		return m, nil
	}
	m.histRows = msg.rows
	if m.histCursor >= len(m.histRows) {
		m.histCursor = maxInt(0, len(m.histRows)-1)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Frame loop
// ---------------------------------------------------------------------------

func (m model) handleFrame() (tea.Model, tea.Cmd) {
	if !m.ctrl.Animating() {
		return m, nil
	}
	if done := m.ctrl.Tick(m.frameInterval()); done {
		return m.finishShuffle()
	}
	return m, frameCmd(m.frameInterval())
}

// finishShuffle runs once per settled reorder: persist the new order, record
// the history row and refresh the status line.
func (m model) finishShuffle() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{saveDeckCmd(m.cardRepo, m.deck.toRepo())}

	if res := m.deck.takeResult(); res != nil {
		row := repository.Shuffle{
			TransformKey: res.transformKey,
			CardCount:    res.cardCount,
			DurationMS:   time.Since(m.shuffleStart).Milliseconds(),
			RequestedAt:  m.shuffleStart,
		}
		cmds = append(cmds, saveShuffleCmd(m.shuffleRepo, row))
		m.status = fmt.Sprintf("Shuffled %d cards with %s.", res.cardCount, res.transformKey)
		m.statusErr = false
	}
	if notice := m.deck.takeNotice(); notice != "" {
		m.status = notice
	}
	return m, tea.Batch(cmds...)
}

// ---------------------------------------------------------------------------
// Reorder lifecycle
// ---------------------------------------------------------------------------

// startReorder drives one full request: prepare, mutate, notify. forceKey
// pins a transform ("" lets the registry pick among the enabled ones).
func (m model) startReorder(perm []int, forceKey string) (tea.Model, tea.Cmd) {
	res := &shuffleResult{}
	d := m.deck
	err := m.ctrl.RequestReorder(choreo.Request{
		Perm:          perm,
		Sticky:        d.stickySet(),
		AnimateSticky: m.prefs.AnimateSticky,
		Enabled:       m.prefs.Transforms,
		ForceKey:      forceKey,
		OnDone:        func() { d.lastResult = res },
	})
	if err != nil {
		if errors.Is(err, choreo.ErrBusy) {
			m.status = "Still settling — hold on."
			m.statusErr = false
			return m, nil
		}
		m.setError(fmt.Sprintf("Reorder rejected: %v", err))
		return m, nil
	}

	m.shuffleStart = time.Now()
	if desc, ok := m.ctrl.ActiveTransform(); ok {
		res.transformKey = desc.Key
	}
	res.cardCount = len(d.cards)

	// The mutation and the notify happen in the same Update call, so no
	// frame ever paints the new order un-anchored.
	d.apply(perm)
	m.cursor = indexAfterPerm(perm, m.cursor)
	if err := m.ctrl.NotifyMutated(); err != nil {
		m.setError(fmt.Sprintf("Reorder failed: %v", err))
		return m, nil
	}

	if !m.ctrl.Animating() {
		// Degenerate layout settled immediately.
		return m.finishShuffle()
	}
	if desc, ok := m.ctrl.ActiveTransform(); ok {
		m.status = fmt.Sprintf("Shuffling — %s", desc.DisplayName)
		m.statusErr = false
	}
	return m, frameCmd(m.frameInterval())
}

// indexAfterPerm tracks where the card at old index lands.
func indexAfterPerm(perm []int, old int) int {
	for newIdx, o := range perm {
		if o == old {
			return newIdx
		}
	}
	return old
}

// ---------------------------------------------------------------------------
// Key handling
// ---------------------------------------------------------------------------

func (m model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.activeTab = (m.activeTab + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		return m, nil
	}

	switch m.activeTab {
	case tabHistory:
		return m.updateHistory(msg)
	case tabSettings:
		return m.updateSettings(msg)
	default:
		return m.updateWall(msg)
	}
}

func (m model) updateWall(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.deck.cards)
	switch {
	case key.Matches(msg, m.keys.Shuffle):
		if n < 2 {
			m.status = "Nothing to shuffle."
			return m, nil
		}
		perm := shufflePermutation(m.rng, n, m.deck.stickySet())
		return m.startReorder(perm, m.cfg.Motion.Transform)

	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.cursor < n-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveLeft):
		return m.moveSelected(-1)

	case key.Matches(msg, m.keys.MoveRight):
		return m.moveSelected(1)

	case key.Matches(msg, m.keys.Sticky):
		if n == 0 {
			return m, nil
		}
		c := m.deck.cards[m.cursor]
		c.sticky = !c.sticky
		if c.sticky {
			m.status = fmt.Sprintf("Pinned %q.", c.label)
		} else {
			m.status = fmt.Sprintf("Unpinned %q.", c.label)
		}
		m.statusErr = false
		return m, saveDeckCmd(m.cardRepo, m.deck.toRepo())

	case key.Matches(msg, m.keys.Add):
		if m.ctrl.State() != choreo.StateIdle {
			m.status = "Still settling — hold on."
			return m, nil
		}
		m.editMode = editAdd
		m.editBuf = ""
		return m, nil

	case key.Matches(msg, m.keys.Rename):
		if n == 0 || m.ctrl.State() != choreo.StateIdle {
			return m, nil
		}
		m.editMode = editRename
		m.editBuf = m.deck.cards[m.cursor].label
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if n == 0 || m.ctrl.State() != choreo.StateIdle {
			return m, nil
		}
		removed := m.deck.cards[m.cursor]
		m.deck.cards = append(m.deck.cards[:m.cursor], m.deck.cards[m.cursor+1:]...)
		if m.cursor >= len(m.deck.cards) && m.cursor > 0 {
			m.cursor--
		}
		m.ctrl.Resize(m.width, m.wallHeight())
		m.status = fmt.Sprintf("Deleted %q.", removed.label)
		m.statusErr = false
		return m, saveDeckCmd(m.cardRepo, m.deck.toRepo())
	}
	return m, nil
}

// moveSelected swaps the selected card with its neighbor through the same
// choreography lifecycle as a shuffle, pinned to the direct transform.
func (m model) moveSelected(dir int) (tea.Model, tea.Cmd) {
	n := len(m.deck.cards)
	target := m.cursor + dir
	if target < 0 || target >= n {
		return m, nil
	}
	if m.deck.cards[m.cursor].sticky || m.deck.cards[target].sticky {
		m.status = "Pinned cards hold their slot."
		m.statusErr = false
		return m, nil
	}
	return m.startReorder(swapPermutation(n, m.cursor, target), "identity")
}

func (m model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.UpDown) {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.histCursor > 0 {
			m.histCursor--
		}
	case "down", "j":
		if m.histCursor < len(m.histRows)-1 {
			m.histCursor++
		}
	}
	return m, nil
}

func (m model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.UpDown):
		switch msg.String() {
		case "up", "k":
			if m.settCursor > 0 {
				m.settCursor--
			}
		case "down", "j":
			if m.settCursor < m.settingsRows()-1 {
				m.settCursor++
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		keys := m.registry.Keys()
		if m.settCursor == len(keys) {
			m.prefs.AnimateSticky = !m.prefs.AnimateSticky
		} else {
			k := keys[m.settCursor]
			enabled := make(map[string]bool)
			for _, e := range m.registry.Enabled(m.prefs.Transforms) {
				enabled[e] = true
			}
			enabled[k] = !enabled[k]
			m.prefs.Transforms = enabled
		}
		p := m.prefs
		return m, func() tea.Msg {
			return prefsSavedMsg{err: prefs.Save(p)}
		}
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Inline text prompt (add / rename)
// ---------------------------------------------------------------------------

func (m model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editMode = editNone
		m.editBuf = ""
		return m, nil

	case tea.KeyEnter:
		label := strings.TrimSpace(m.editBuf)
		mode := m.editMode
		m.editMode = editNone
		m.editBuf = ""
		if label == "" {
			return m, nil
		}
		if mode == editAdd {
			m.deck.cards = append(m.deck.cards, newCard(label))
			m.cursor = len(m.deck.cards) - 1
			m.ctrl.Resize(m.width, m.wallHeight())
			m.status = fmt.Sprintf("Added %q.", label)
		} else {
			m.deck.cards[m.cursor].label = label
			m.status = fmt.Sprintf("Renamed to %q.", label)
		}
		m.statusErr = false
		return m, saveDeckCmd(m.cardRepo, m.deck.toRepo())

	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			runes := []rune(m.editBuf)
			m.editBuf = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		if len(m.editBuf) < 40 {
			m.editBuf += string(msg.Runes)
		}
		return m, nil
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Status helpers
// ---------------------------------------------------------------------------

func (m *model) setError(text string) {
	m.status = text
	m.statusErr = true
}
