// Package slide defines the authoring data model: decks of slides whose
// content blocks are arranged by the grid layout engine.
//
// Block content is opaque to the geometry logic - the layout engine only
// ever sees block identifiers. Blocks carry a Kind tag so hosts can render
// them, and an optional Group used by connection inference.
package slide

import (
	"github.com/google/uuid"

	"github.com/slatedeck/slatedeck/pkg/grid"
	"github.com/slatedeck/slatedeck/pkg/grid/connect"
)

// Block kinds. The layout engine is agnostic to these; they exist so hosts
// can dispatch rendering without polymorphism inside the core.
const (
	KindText     = "text"
	KindImage    = "image"
	KindQuestion = "question"
	KindChat     = "chat"
)

// Block is a unit of slide content identified by a stable ID.
// Kind-specific payload lives in Body/Meta and never enters the core.
type Block struct {
	ID    string            `json:"id" bson:"id"`
	Kind  string            `json:"kind" bson:"kind"`
	Group string            `json:"group,omitempty" bson:"group,omitempty"`
	Title string            `json:"title,omitempty" bson:"title,omitempty"`
	Body  string            `json:"body,omitempty" bson:"body,omitempty"`
	Meta  map[string]string `json:"meta,omitempty" bson:"meta,omitempty"`
}

// NewBlock creates a block of the given kind with a generated ID.
func NewBlock(kind string) Block {
	return Block{ID: uuid.NewString(), Kind: kind}
}

// Slide is one presentable page: an ordered block list plus the grid
// arrangement of those blocks.
type Slide struct {
	ID     string      `json:"id" bson:"id"`
	Title  string      `json:"title,omitempty" bson:"title,omitempty"`
	Blocks []Block     `json:"blocks" bson:"blocks"`
	Layout grid.Layout `json:"layout" bson:"layout"`
}

// NewSlide creates an empty slide with a fresh 1x1 layout.
func NewSlide(title string) Slide {
	return Slide{ID: uuid.NewString(), Title: title, Layout: grid.New()}
}

// Block returns the block with the given ID.
func (s *Slide) Block(id string) (Block, bool) {
	for _, b := range s.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// BlockIDs returns the IDs of all blocks in block-list order.
func (s *Slide) BlockIDs() []string {
	ids := make([]string, len(s.Blocks))
	for i, b := range s.Blocks {
		ids[i] = b.ID
	}
	return ids
}

// Members returns the connection-inference view of the block list.
func (s *Slide) Members() []connect.Member {
	members := make([]connect.Member, len(s.Blocks))
	for i, b := range s.Blocks {
		members[i] = connect.Member{ID: b.ID, Group: b.Group}
	}
	return members
}

// Connections derives the display connections for the slide's current
// layout and grouping.
func (s *Slide) Connections() []connect.Connection {
	return connect.Derive(s.Layout, s.Members())
}

// AddBlock appends a block to the slide. The block starts unassigned; the
// host places it with a layout mutation.
func (s *Slide) AddBlock(b Block) {
	s.Blocks = append(s.Blocks, b)
}

// RemoveBlock deletes a block and prunes its layout entries, so positions
// and spans are keyed only by live blocks. Removing an unknown ID is a
// no-op.
func (s *Slide) RemoveBlock(id string) {
	kept := s.Blocks[:0]
	removed := false
	for _, b := range s.Blocks {
		if b.ID == id {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	s.Blocks = kept
	if removed {
		s.Layout = s.Layout.Prune(s.BlockIDs())
	}
}

// Deck is an ordered collection of slides - one lesson.
type Deck struct {
	ID     string  `json:"id" bson:"id"`
	Title  string  `json:"title,omitempty" bson:"title,omitempty"`
	Slides []Slide `json:"slides" bson:"slides"`
}

// NewDeck creates an empty deck with a generated ID.
func NewDeck(title string) Deck {
	return Deck{ID: uuid.NewString(), Title: title}
}

// Slide returns a pointer to the slide with the given ID, or nil.
func (d *Deck) Slide(id string) *Slide {
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return &d.Slides[i]
		}
	}
	return nil
}
