package model

import "github.com/google/uuid"

// Round is one estimation item within a room. FinalEstimate is only
// meaningful once Revealed is true.
type Round struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle"`
	Revealed      bool      `json:"revealed"`
	FinalEstimate *string   `json:"finalEstimate"`
	Votes         []Vote    `json:"votes"`
}
