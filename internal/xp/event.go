package xp

import "time"

type EventKind string

const (
	EventKindSet EventKind = "SET"
	EventKindPR  EventKind = "PR"
)

// XP amounts are fixed by policy and never user provided.
const (
	AmountPerSet = 2
	AmountPerPR  = 10
)

// Event is one append-only XP ledger entry. Events are never updated
// or deleted, the total is always the sum over the whole ledger.
type Event struct {
	ID        int       `json:"id"`
	Kind      EventKind `json:"kind"`
	Amount    int       `json:"amount"`
	Exercise  *string   `json:"exercise,omitempty"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
