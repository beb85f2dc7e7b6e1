package ws_room

import (
	"encoding/json"

	"github.com/google/uuid"
)

const (
	CommandJoinRoom         = "join-room"
	CommandLeaveRoom        = "leave-room"
	CommandSubmitVote       = "submit-vote"
	CommandRevealCards      = "reveal-cards"
	CommandHideCards        = "hide-cards"
	CommandStartNewRound    = "start-new-round"
	CommandSetFinalEstimate = "set-final-estimate"
	CommandDeleteRound      = "delete-round"
	CommandStartVoting      = "start-voting"
	CommandEndVoting        = "end-voting"
)

// Command is the inbound envelope. The payload stays raw until the
// type is known, then binds to one of the DTOs below.
type Command struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RoomCode is optional on every command: it only serves to catch a
// stale room id, resolution falls back to the id when absent.

type joinRoomPayload struct {
	RoomID   uuid.UUID `json:"roomId" validate:"required"`
	UserID   uuid.UUID `json:"userId" validate:"required"`
	RoomCode string    `json:"roomCode"`
}

type leaveRoomPayload struct {
	RoomID   uuid.UUID `json:"roomId" validate:"required"`
	UserID   uuid.UUID `json:"userId" validate:"required"`
	RoomCode string    `json:"roomCode"`
}

type submitVotePayload struct {
	RoomID   uuid.UUID `json:"roomId" validate:"required"`
	RoundID  uuid.UUID `json:"roundId" validate:"required"`
	UserID   uuid.UUID `json:"userId" validate:"required"`
	Value    string    `json:"value" validate:"required"`
	RoomCode string    `json:"roomCode"`
}

type roundActionPayload struct {
	RoomID   uuid.UUID `json:"roomId" validate:"required"`
	RoundID  uuid.UUID `json:"roundId" validate:"required"`
	RoomCode string    `json:"roomCode"`
}

type startNewRoundPayload struct {
	RoomID   uuid.UUID `json:"roomId" validate:"required"`
	Title    string    `json:"title" validate:"required"`
	Subtitle string    `json:"subtitle"`
	RoomCode string    `json:"roomCode"`
}

type setFinalEstimatePayload struct {
	RoomID   uuid.UUID `json:"roomId" validate:"required"`
	RoundID  uuid.UUID `json:"roundId" validate:"required"`
	Value    string    `json:"value" validate:"required"`
	RoomCode string    `json:"roomCode"`
}

type endVotingPayload struct {
	RoomID   uuid.UUID `json:"roomId" validate:"required"`
	RoomCode string    `json:"roomCode"`
}
