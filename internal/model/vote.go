package model

import "github.com/google/uuid"

// Vote is one participant's submitted value for a round. UserName is
// denormalized from the users table at read time. At most one vote per
// (round, user) exists; a resubmission updates the row in place.
type Vote struct {
	UserID   uuid.UUID `json:"userId"`
	UserName string    `json:"userName"`
	Value    *string   `json:"value"`
}
