package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/cardwall/choreo"
	"github.com/jask/cardwall/internal/config"
	"github.com/jask/cardwall/internal/database/repository"
	"github.com/jask/cardwall/internal/prefs"
)

// ---------------------------------------------------------------------------
// Domain constants
// ---------------------------------------------------------------------------

const appName = "Cardwall"

// Tab indices
const (
	tabWall     = 0
	tabHistory  = 1
	tabSettings = 2
	tabCount    = 3
)

// Edit modes for the wall's inline text prompt.
const (
	editNone = iota
	editAdd
	editRename
)

const historyLimit = 50

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------

type deckLoadedMsg struct {
	rows []repository.Card
	err  error
}

type historyLoadedMsg struct {
	rows []repository.Shuffle
	err  error
}

type deckSavedMsg struct {
	err error
}

type shuffleSavedMsg struct {
	err error
}

type prefsSavedMsg struct {
	err error
}

type frameMsg time.Time

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

type model struct {
	cfg  config.Config
	keys keyMap

	// deck is shared by pointer with the controller; Bubble Tea copies the
	// model by value, so all card state lives behind this pointer.
	deck     *deck
	ctrl     *choreo.Controller
	registry *choreo.Registry
	rng      *rand.Rand

	cardRepo    *repository.CardRepo
	shuffleRepo *repository.ShuffleRepo
	prefs       prefs.State

	activeTab  int
	cursor     int
	histRows   []repository.Shuffle
	histCursor int
	settCursor int

	editMode int
	editBuf  string

	status    string
	statusErr bool

	width  int
	height int
	ready  bool

	// shuffleStart stamps the moment a reorder was requested so the history
	// row can record wall-clock duration at settle.
	shuffleStart time.Time
}

func newModel(cfg config.Config, d *deck, reg *choreo.Registry, cards *repository.CardRepo, shuffles *repository.ShuffleRepo, p prefs.State, rng *rand.Rand) model {
	ctrl := choreo.NewController(d, reg, cfg.UI.CellWidth, cfg.UI.CellHeight)
	ctrl.Logf = func(format string, args ...any) {
		d.notices = append(d.notices, fmt.Sprintf(format, args...))
	}
	return model{
		cfg:         cfg,
		keys:        newKeyMap(),
		deck:        d,
		ctrl:        ctrl,
		registry:    reg,
		rng:         rng,
		cardRepo:    cards,
		shuffleRepo: shuffles,
		prefs:       p,
		activeTab:   tabWall,
		status:      "Loading deck...",
	}
}

// frameInterval is the timeline step between frame ticks.
func (m model) frameInterval() time.Duration {
	return time.Second / time.Duration(m.cfg.UI.FPS)
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func loadDeckCmd(repo *repository.CardRepo) tea.Cmd {
	return func() tea.Msg {
		rows, err := repo.List(context.Background())
		return deckLoadedMsg{rows: rows, err: err}
	}
}

func loadHistoryCmd(repo *repository.ShuffleRepo) tea.Cmd {
	return func() tea.Msg {
		rows, err := repo.ListRecent(context.Background(), historyLimit)
		return historyLoadedMsg{rows: rows, err: err}
	}
}

func saveDeckCmd(repo *repository.CardRepo, cards []repository.Card) tea.Cmd {
	return func() tea.Msg {
		err := repo.ReplaceAll(context.Background(), cards)
		return deckSavedMsg{err: err}
	}
}

func saveShuffleCmd(repo *repository.ShuffleRepo, s repository.Shuffle) tea.Cmd {
	return func() tea.Msg {
		_, err := repo.Insert(context.Background(), s)
		return shuffleSavedMsg{err: err}
	}
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// ---------------------------------------------------------------------------
// Bubble Tea interface: Init / View (Update lives in update.go)
// ---------------------------------------------------------------------------

func (m model) Init() tea.Cmd {
	return tea.Batch(loadDeckCmd(m.cardRepo), loadHistoryCmd(m.shuffleRepo))
}

func (m model) View() string {
	if !m.ready {
		return statusStyle.Render(m.status)
	}

	header := renderHeader(appName, m.activeTab, m.width)
	statusLine := m.renderStatus(m.status)
	footer := m.renderFooter(m.footerBindings())

	var body string
	switch m.activeTab {
	case tabHistory:
		body = m.historyView()
	case tabSettings:
		body = m.settingsView()
	default:
		body = m.wallView()
	}

	main := header + "\n\n" + body
	return m.placeWithFooter(main, statusLine, footer)
}

func (m model) footerBindings() []key.Binding {
	if m.editMode != editNone {
		return m.keys.renameBindings()
	}
	switch m.activeTab {
	case tabHistory:
		return m.keys.historyBindings()
	case tabSettings:
		return m.keys.settingsBindings()
	default:
		return m.keys.wallBindings()
	}
}
