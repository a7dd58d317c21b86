// Package connect derives display-only relationships between slide blocks
// from their grid geometry.
//
// Connections drive rendering affordances (span highlight regions, group
// link lines) and are never authoritative over the layout: they are pure
// derivations of a [grid.Layout] snapshot plus per-block group metadata,
// recomputed in full whenever either changes. Slides hold tens of blocks,
// not thousands, so incremental updates would buy nothing.
package connect

import (
	"cmp"
	"slices"

	"github.com/slatedeck/slatedeck/pkg/grid"
)

// Connection kinds.
const (
	// KindSpan marks a single block whose span exceeds 1x1. The connection
	// is self-referential and drives the spanning highlight region.
	KindSpan = "span"

	// KindGroup links two blocks sharing an author-assigned group,
	// ordered by grid reading order.
	KindGroup = "group"
)

// Connection is a derived, directed relationship between two blocks.
type Connection struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Kind string `json:"kind" bson:"kind"`
}

// Member is the per-block metadata connection inference needs: the block's
// identity and its optional group. The host supplies members in block-list
// order; block content never enters the geometry logic.
type Member struct {
	ID    string
	Group string
}

// SpanConnections emits one self-referential span connection for every
// member whose span exceeds 1x1. Order follows the member list, not the
// grid - stable output keeps derivations reproducible.
func SpanConnections(l grid.Layout, members []Member) []Connection {
	var out []Connection
	for _, m := range members {
		s := l.SpanOf(m.ID)
		if s.RowSpan > 1 || s.ColumnSpan > 1 {
			out = append(out, Connection{From: m.ID, To: m.ID, Kind: KindSpan})
		}
	}
	return out
}

// GroupConnections links members sharing a non-empty group into a chain:
// consecutive pairs in row-major reading order, k-1 connections for a group
// of k. Members without a position sort as if placed at (0,0); that default
// affects ordering only, it does not place them. Groups of size 0 or 1
// emit nothing.
func GroupConnections(l grid.Layout, members []Member) []Connection {
	groups := make(map[string][]Member)
	var order []string
	for _, m := range members {
		if m.Group == "" {
			continue
		}
		if _, seen := groups[m.Group]; !seen {
			order = append(order, m.Group)
		}
		groups[m.Group] = append(groups[m.Group], m)
	}

	var out []Connection
	for _, g := range order {
		chain := groups[g]
		if len(chain) < 2 {
			continue
		}
		slices.SortStableFunc(chain, func(a, b Member) int {
			pa, _ := l.PositionOf(a.ID)
			pb, _ := l.PositionOf(b.ID)
			if c := cmp.Compare(pa.Row, pb.Row); c != 0 {
				return c
			}
			return cmp.Compare(pa.Column, pb.Column)
		})
		for i := 0; i < len(chain)-1; i++ {
			out = append(out, Connection{From: chain[i].ID, To: chain[i+1].ID, Kind: KindGroup})
		}
	}
	return out
}

// Derive returns the span connections followed by the group connections
// for a layout snapshot.
func Derive(l grid.Layout, members []Member) []Connection {
	return append(SpanConnections(l, members), GroupConnections(l, members)...)
}
