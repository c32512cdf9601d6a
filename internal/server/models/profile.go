// Package models defines server-side data models persisted in the database.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/langmatch/internal/common"
)

// ProficiencyLevel is a self-reported, ordered skill tier. The zero value
// means "unset".
type ProficiencyLevel string

const (
	LevelUnset  ProficiencyLevel = ""
	LevelA1     ProficiencyLevel = "A1"
	LevelA2     ProficiencyLevel = "A2"
	LevelB1     ProficiencyLevel = "B1"
	LevelB2     ProficiencyLevel = "B2"
	LevelC1     ProficiencyLevel = "C1"
	LevelC2     ProficiencyLevel = "C2"
	LevelNative ProficiencyLevel = "Native"
)

var levelRank = map[ProficiencyLevel]int{
	LevelA1: 1, LevelA2: 2, LevelB1: 3, LevelB2: 4, LevelC1: 5, LevelC2: 6, LevelNative: 7,
}

// Rank orders levels from 1 (A1) to 7 (Native); unset and unknown are 0.
func (l ProficiencyLevel) Rank() int { return levelRank[l] }

// Valid reports whether l is unset or one of the seven known levels.
func (l ProficiencyLevel) Valid() bool {
	return l == LevelUnset || l.Rank() > 0
}

// ParseLevel validates s as a proficiency level.
func ParseLevel(s string) (ProficiencyLevel, error) {
	l := ProficiencyLevel(s)
	if !l.Valid() {
		return LevelUnset, fmt.Errorf("%w: unknown proficiency level %q", common.ErrorValidation, s)
	}
	return l, nil
}

// Profile is the per-user state the matchmaking core reads and mutates.
//
// CurrentMatchID is empty when the user is not in an active match. A profile
// is never looking for a match while CurrentMatchID is set.
type Profile struct {
	ID                string           `json:"id"`
	Email             string           `json:"email,omitempty"`
	DisplayName       string           `json:"displayName"`
	PhotoURL          string           `json:"photoURL,omitempty"`
	PhotoKey          string           `json:"-"`
	Bio               string           `json:"bio,omitempty"`
	ProficiencyLevel  ProficiencyLevel `json:"proficiencyLevel,omitempty"`
	IsLookingForMatch bool             `json:"isLookingForMatch"`
	CurrentMatchID    string           `json:"currentMatchId,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// InMatch reports whether the profile points at a match.
func (p *Profile) InMatch() bool { return p.CurrentMatchID != "" }

// Snapshot captures the display info copied into a match at creation time.
func (p *Profile) Snapshot() Participant {
	name := p.DisplayName
	if name == "" {
		name = common.DefaultDisplayName
	}
	return Participant{UserID: p.ID, DisplayName: name, PhotoURL: p.PhotoURL}
}
