package usecase_session

import (
	"github.com/google/uuid"

	"github.com/planningpoko/core/internal/model"
)

const (
	EventRoomUpdated      = "room-updated"
	EventUserJoined       = "user-joined"
	EventUserLeft         = "user-left"
	EventVoteSubmitted    = "vote-submitted"
	EventCardsRevealed    = "cards-revealed"
	EventCardsHidden      = "cards-hidden"
	EventNewRoundStarted  = "new-round-started"
	EventFinalEstimateSet = "final-estimate-set"
	EventRoundDeleted     = "round-deleted"
	EventVotingStarted    = "voting-started"
	EventVotingEnded      = "voting-ended"
	EventError            = "error"
)

// Event is one outbound message. Room snapshots travel as EventRoomUpdated
// with a *model.Room payload; the rest carry the targeted payloads below.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type UserJoinedPayload struct {
	RoomID uuid.UUID  `json:"roomId"`
	User   model.User `json:"user"`
}

type UserLeftPayload struct {
	RoomID uuid.UUID `json:"roomId"`
	UserID uuid.UUID `json:"userId"`
}

type VoteSubmittedPayload struct {
	RoomID uuid.UUID  `json:"roomId"`
	Vote   model.Vote `json:"vote"`
}

type NewRoundStartedPayload struct {
	RoomID uuid.UUID    `json:"roomId"`
	Round  *model.Round `json:"round"`
}

type FinalEstimateSetPayload struct {
	RoomID  uuid.UUID `json:"roomId"`
	RoundID uuid.UUID `json:"roundId"`
	Value   string    `json:"value"`
}

type RoundDeletedPayload struct {
	RoomID  uuid.UUID `json:"roomId"`
	RoundID uuid.UUID `json:"roundId"`
}

type VotingStartedPayload struct {
	RoomID  uuid.UUID `json:"roomId"`
	RoundID uuid.UUID `json:"roundId"`
}

// RoomPayload serves cards-revealed, cards-hidden and voting-ended.
type RoomPayload struct {
	RoomID uuid.UUID `json:"roomId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
