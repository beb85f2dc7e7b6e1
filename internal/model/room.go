package model

import "github.com/google/uuid"

// CodeLength is the length of the human-enterable room code.
const CodeLength = 4

// SeedRoundTitle is the title of the round every room is created with.
const SeedRoundTitle = "New story"

// Room is the fully materialized snapshot sent to clients: the room row
// joined with its users, its rounds (newest first) and their votes.
//
// CurrentRound and ActiveVoting are session-layer state: the materializer
// defaults them (most recent round, false) and command handlers overlay
// the live values before the snapshot is cached or broadcast.
type Room struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	HostID       uuid.UUID `json:"hostId"`
	Users        []User    `json:"users"`
	Rounds       []Round   `json:"rounds"`
	CurrentRound *Round    `json:"currentRound"`
	ActiveVoting bool      `json:"activeVoting"`
}

// FindUser returns the member with the given id, or nil.
func (r *Room) FindUser(userID uuid.UUID) *User {
	for i := range r.Users {
		if r.Users[i].ID == userID {
			return &r.Users[i]
		}
	}
	return nil
}

// FindRound returns the round with the given id, or nil.
func (r *Room) FindRound(roundID uuid.UUID) *Round {
	for i := range r.Rounds {
		if r.Rounds[i].ID == roundID {
			return &r.Rounds[i]
		}
	}
	return nil
}

// HasUser reports whether the user is a member of the room.
func (r *Room) HasUser(userID uuid.UUID) bool {
	return r.FindUser(userID) != nil
}
