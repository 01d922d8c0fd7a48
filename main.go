package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/cardwall/choreo"
	"github.com/jask/cardwall/internal/config"
	"github.com/jask/cardwall/internal/database"
	"github.com/jask/cardwall/internal/database/repository"
	"github.com/jask/cardwall/internal/prefs"
	"github.com/jask/cardwall/transforms"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.RunMigrations(db, "migrations"); err != nil {
		return err
	}

	p, err := prefs.Load()
	if err != nil {
		// Unreadable prefs should never block startup; fall back to defaults.
		p = prefs.State{}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	reg := choreo.NewRegistry(rng)
	if err := reg.Register(choreo.IdentityDescriptor()); err != nil {
		return err
	}
	if err := transforms.Register(reg); err != nil {
		return err
	}

	m := newModel(cfg, &deck{}, reg,
		repository.NewCardRepo(db),
		repository.NewShuffleRepo(db),
		p, rng)

	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}
