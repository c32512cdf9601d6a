// Package idgen produces identifiers for server-side records.
package idgen

import (
	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
)

// MatchIDLength is the length of generated match ids.
const MatchIDLength = 21

// Generator hands out unique identifiers.
type Generator interface {
	NewID() string
}

// NanoID generates URL-safe, unguessable ids.
type NanoID struct {
	next func() string
}

// NewNanoID builds a NanoID generator producing ids of the given length.
func NewNanoID(length int) (*NanoID, error) {
	f, err := nanoid.Standard(length)
	if err != nil {
		return nil, err
	}
	return &NanoID{next: f}, nil
}

func (g *NanoID) NewID() string { return g.next() }

// UUID generates random v4 uuids.
type UUID struct{}

func (UUID) NewID() string { return uuid.NewString() }
