package repository

import "time"

// Card is one persisted card on the wall. Position is the card's slot in the
// deck order; positions are contiguous from 0.
type Card struct {
	ID        string
	Label     string
	Position  int
	Sticky    bool
	CreatedAt time.Time
}

// Shuffle is one completed reorder, recorded for the history tab.
type Shuffle struct {
	ID           string
	TransformKey string
	CardCount    int
	DurationMS   int64
	RequestedAt  time.Time
}
