package models

import "time"

// QueueEntry marks a user as actively seeking a partner.
type QueueEntry struct {
	UserID           string           `json:"userId"`
	EnqueuedAt       time.Time        `json:"enqueuedAt"`
	ProficiencyLevel ProficiencyLevel `json:"proficiencyLevel,omitempty"`
}

// Before orders entries FIFO, breaking timestamp ties by user id so the
// order is total.
func (e *QueueEntry) Before(o *QueueEntry) bool {
	if !e.EnqueuedAt.Equal(o.EnqueuedAt) {
		return e.EnqueuedAt.Before(o.EnqueuedAt)
	}
	return e.UserID < o.UserID
}
