// Package store persists decks for the authoring hosts.
//
// The layout engine never touches storage - it hands back serializable
// values and this package files them. Backends:
//   - memory: development and tests
//   - file: JSON documents in a directory, for single-user CLI work
//   - mongo: document database for server deployments
package store

import (
	"context"
	"errors"

	"github.com/slatedeck/slatedeck/pkg/slide"
)

// ErrNotFound is returned when a requested deck does not exist.
var ErrNotFound = errors.New("deck not found")

// DeckInfo is the listing view of a stored deck.
type DeckInfo struct {
	ID         string `json:"id" bson:"id"`
	Title      string `json:"title" bson:"title"`
	SlideCount int    `json:"slideCount" bson:"slideCount"`
}

// Store is the interface for deck storage backends.
type Store interface {
	// Get retrieves a deck by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (slide.Deck, error)

	// Put stores a deck, replacing any existing deck with the same ID.
	Put(ctx context.Context, d slide.Deck) error

	// Delete removes a deck. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns summaries of all stored decks.
	List(ctx context.Context) ([]DeckInfo, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func infoOf(d slide.Deck) DeckInfo {
	return DeckInfo{ID: d.ID, Title: d.Title, SlideCount: len(d.Slides)}
}
