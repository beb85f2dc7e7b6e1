package usecase_session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/planningpoko/core/internal/model"
)

var (
	ErrResourceNotFound = errors.New("no such resource")
	ErrInternal         = errors.New("internal error")
)

// The name a participant gets when a join command has to insert a row
// for a user the room has never seen (stale-id redirect). The normal
// path creates users over HTTP with their real name first.
const redirectedUserName = "Guest"

//go:generate mockery --name=RoomRepository --output=./mocks/session/repository --filename=repository.go
type RoomRepository interface {
	// LoadRoom materializes the full room snapshot: room row, users,
	// rounds newest-first, votes joined with voter names. An absent
	// room yields (nil, nil). CurrentRound defaults to the most recent
	// round and ActiveVoting to false; callers overlay the live values.
	LoadRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	LoadAllRooms(ctx context.Context) ([]*model.Room, error)

	// AddUser inserts the user unless a row with that id already
	// exists, so a re-join never duplicates a member.
	AddUser(ctx context.Context, roomID uuid.UUID, user model.User) error
	RemoveUser(ctx context.Context, roomID, userID uuid.UUID) error

	IsActiveVoting(ctx context.Context, roomID uuid.UUID) (bool, error)
	SetActiveVoting(ctx context.Context, roomID uuid.UUID, active bool) error

	CreateRound(ctx context.Context, roomID uuid.UUID, round model.Round) error
	SetRevealed(ctx context.Context, roundID uuid.UUID, revealed bool) error
	SetFinalEstimate(ctx context.Context, roundID uuid.UUID, value string) error
	DeleteRound(ctx context.Context, roundID uuid.UUID) error
	RoundBelongsToRoom(ctx context.Context, roundID, roomID uuid.UUID) (bool, error)

	UpsertVote(ctx context.Context, roundID, userID uuid.UUID, value string) error
}

// Broadcaster is the transport side of the engine: it tracks which
// connections observe which room and delivers events to all of them.
// Subscriptions are keyed by canonical room id only; ids and codes from
// the client are reconciled before any call lands here.
type Broadcaster interface {
	Subscribe(sessionID string, roomID uuid.UUID)
	Unsubscribe(sessionID string, roomID uuid.UUID)
	Broadcast(roomID uuid.UUID, event Event)
}

// Engine applies participant commands against durable state, reconciles
// the room cache and broadcasts the resulting snapshots. Every mutating
// command follows the same shape: resolve the canonical room id, write
// to the repository, re-materialize, overlay the session-layer voting
// flags storage does not own, cache, broadcast.
type Engine struct {
	repo        RoomRepository
	cache       *RoomCache
	registry    *SessionRegistry
	broadcaster Broadcaster
	logger      *slog.Logger
}

func New(
	repo RoomRepository,
	cache *RoomCache,
	registry *SessionRegistry,
	broadcaster Broadcaster,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		repo:        repo,
		cache:       cache,
		registry:    registry,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Warmup loads every existing room into the cache so code resolution
// works from the first command on.
func (e *Engine) Warmup(ctx context.Context) error {
	rooms, err := e.repo.LoadAllRooms(ctx)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	for _, room := range rooms {
		e.cache.Put(room)
	}
	e.logger.Info("rooms loaded into cache", slog.Int("count", len(rooms)))
	return nil
}

// resolveRoom collapses a stale client-held room id onto the live room
// holding the same code. Silent and best-effort: with no code, or a
// code the cache does not know, the claimed id stands.
func (e *Engine) resolveRoom(claimedID uuid.UUID, code string) uuid.UUID {
	if code == "" {
		return claimedID
	}
	if id, ok := e.cache.ResolveCode(code); ok && id != claimedID {
		return id
	}
	return claimedID
}

// Join subscribes the connection to the canonical room and announces
// the participant. Inserting the user row is attempted every time; the
// repository's id dedup makes a re-join a no-op.
func (e *Engine) Join(ctx context.Context, sessionID string, roomID, userID uuid.UUID, code string) error {
	roomID = e.resolveRoom(roomID, code)

	if err := e.repo.AddUser(ctx, roomID, model.NewUser(userID, redirectedUserName, false)); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	active := e.votingStateOrDefault(ctx, roomID)
	room, err := e.refresh(ctx, roomID, func(r *model.Room) {
		r.ActiveVoting = active
	})
	if err != nil {
		return err
	}

	e.registry.Bind(userID, sessionID)
	e.broadcaster.Subscribe(sessionID, roomID)

	e.broadcaster.Broadcast(roomID, Event{Type: EventRoomUpdated, Payload: room})
	if user := room.FindUser(userID); user != nil {
		e.broadcaster.Broadcast(roomID, Event{
			Type:    EventUserJoined,
			Payload: UserJoinedPayload{RoomID: roomID, User: *user},
		})
	}
	return nil
}

// Leave removes the participant and, when the room empties, evicts it
// from the cache so the code becomes free again.
func (e *Engine) Leave(ctx context.Context, sessionID string, roomID, userID uuid.UUID, code string) error {
	roomID = e.resolveRoom(roomID, code)
	return e.removeUser(ctx, sessionID, roomID, userID)
}

// Disconnect handles a transport-level close, which carries no room or
// user identifiers: the user is found by reverse-scanning the session
// registry, their room by scanning cached memberships.
func (e *Engine) Disconnect(ctx context.Context, sessionID string) {
	userID, ok := e.registry.FindUser(sessionID)
	if !ok {
		return
	}
	room, ok := e.cache.FindRoomOf(userID)
	if !ok {
		e.registry.Unbind(userID)
		return
	}
	if err := e.removeUser(ctx, sessionID, room.ID, userID); err != nil {
		e.logger.Error("disconnect cleanup failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("room", room.ID.String()))
	}
}

func (e *Engine) removeUser(ctx context.Context, sessionID string, roomID, userID uuid.UUID) error {
	if err := e.repo.RemoveUser(ctx, roomID, userID); err != nil {
		return errors.Join(ErrInternal, err)
	}

	e.registry.Unbind(userID)
	e.broadcaster.Unsubscribe(sessionID, roomID)

	room, err := e.repo.LoadRoom(ctx, roomID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if room == nil || len(room.Users) == 0 {
		// Nobody is left to broadcast to.
		e.cache.Evict(roomID)
		e.logger.Info("empty room evicted", slog.String("room", roomID.String()))
		return nil
	}

	room.ActiveVoting = e.votingStateOrDefault(ctx, roomID)
	e.cache.Put(room)

	e.broadcaster.Broadcast(roomID, Event{Type: EventRoomUpdated, Payload: room})
	e.broadcaster.Broadcast(roomID, Event{
		Type:    EventUserLeft,
		Payload: UserLeftPayload{RoomID: roomID, UserID: userID},
	})
	return nil
}

// StartNewRound creates a round; being the most recent, it becomes the
// snapshot's current round without any overlay.
func (e *Engine) StartNewRound(ctx context.Context, roomID uuid.UUID, code, title, subtitle string) error {
	roomID = e.resolveRoom(roomID, code)

	round := model.Round{
		ID:       uuid.New(),
		Title:    title,
		Subtitle: subtitle,
		Votes:    []model.Vote{},
	}
	if err := e.repo.CreateRound(ctx, roomID, round); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	room, err := e.refresh(ctx, roomID, nil)
	if err != nil {
		return err
	}

	e.broadcaster.Broadcast(roomID, Event{Type: EventRoomUpdated, Payload: room})
	e.broadcaster.Broadcast(roomID, Event{
		Type:    EventNewRoundStarted,
		Payload: NewRoundStartedPayload{RoomID: roomID, Round: room.CurrentRound},
	})
	return nil
}

// StartVoting makes the given round the active one and raises the
// session-layer voting flag.
func (e *Engine) StartVoting(ctx context.Context, roomID, roundID uuid.UUID, code string) error {
	roomID = e.resolveRoom(roomID, code)

	belongs, err := e.repo.RoundBelongsToRoom(ctx, roundID, roomID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if !belongs {
		return ErrResourceNotFound
	}

	e.persistVotingState(ctx, roomID, true)

	room, err := e.refresh(ctx, roomID, func(r *model.Room) {
		r.ActiveVoting = true
		if round := r.FindRound(roundID); round != nil {
			r.CurrentRound = round
		}
	})
	if err != nil {
		return err
	}

	e.broadcaster.Broadcast(roomID, Event{Type: EventRoomUpdated, Payload: room})
	e.broadcaster.Broadcast(roomID, Event{
		Type:    EventVotingStarted,
		Payload: VotingStartedPayload{RoomID: roomID, RoundID: roundID},
	})
	return nil
}

// SubmitVote upserts the participant's vote for the round: one row per
// (round, user), the latest value wins.
func (e *Engine) SubmitVote(ctx context.Context, roomID, roundID, userID uuid.UUID, value, code string) error {
	roomID = e.resolveRoom(roomID, code)

	if err := e.repo.UpsertVote(ctx, roundID, userID, value); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	room, err := e.refresh(ctx, roomID, keepVotingActive)
	if err != nil {
		return err
	}

	vote := model.Vote{UserID: userID, Value: &value}
	if user := room.FindUser(userID); user != nil {
		vote.UserName = user.Name
	}
	e.broadcaster.Broadcast(roomID, Event{Type: EventRoomUpdated, Payload: room})
	e.broadcaster.Broadcast(roomID, Event{
		Type:    EventVoteSubmitted,
		Payload: VoteSubmittedPayload{RoomID: roomID, Vote: vote},
	})
	return nil
}

func (e *Engine) RevealCards(ctx context.Context, roomID, roundID uuid.UUID, code string) error {
	return e.toggleCards(ctx, roomID, roundID, code, true)
}

func (e *Engine) HideCards(ctx context.Context, roomID, roundID uuid.UUID, code string) error {
	return e.toggleCards(ctx, roomID, roundID, code, false)
}

func (e *Engine) toggleCards(ctx context.Context, roomID, roundID uuid.UUID, code string, revealed bool) error {
	roomID = e.resolveRoom(roomID, code)

	if err := e.repo.SetRevealed(ctx, roundID, revealed); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	room, err := e.refresh(ctx, roomID, keepVotingActive)
	if err != nil {
		return err
	}

	eventType := EventCardsRevealed
	if !revealed {
		eventType = EventCardsHidden
	}
	e.broadcaster.Broadcast(roomID, Event{Type: EventRoomUpdated, Payload: room})
	e.broadcaster.Broadcast(roomID, Event{Type: eventType, Payload: RoomPayload{RoomID: roomID}})
	return nil
}

func (e *Engine) SetFinalEstimate(ctx context.Context, roomID, roundID uuid.UUID, value, code string) error {
	roomID = e.resolveRoom(roomID, code)

	if err := e.repo.SetFinalEstimate(ctx, roundID, value); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	room, err := e.refresh(ctx, roomID, keepVotingActive)
	if err != nil {
		return err
	}

	e.broadcaster.Broadcast(roomID, Event{Type: EventRoomUpdated, Payload: room})
	e.broadcaster.Broadcast(roomID, Event{
		Type:    EventFinalEstimateSet,
		Payload: FinalEstimateSetPayload{RoomID: roomID, RoundID: roundID, Value: value},
	})
	return nil
}

// DeleteRound removes the round and its votes. Deleting the round that
// is currently being voted on also force-ends the voting, so no client
// is left pointing at a round that no longer exists.
func (e *Engine) DeleteRound(ctx context.Context, roomID, roundID uuid.UUID, code string) error {
	roomID = e.resolveRoom(roomID, code)

	wasActive := false
	if cached, ok := e.cache.Get(roomID); ok {
		wasActive = cached.ActiveVoting && cached.CurrentRound != nil && cached.CurrentRound.ID == roundID
	}

	if err := e.repo.DeleteRound(ctx, roundID); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	if wasActive {
		e.persistVotingState(ctx, roomID, false)
	}

	room, err := e.refresh(ctx, roomID, nil)
	if err != nil {
		return err
	}

	e.broadcaster.Broadcast(roomID, Event{Type: EventRoomUpdated, Payload: room})
	e.broadcaster.Broadcast(roomID, Event{
		Type:    EventRoundDeleted,
		Payload: RoundDeletedPayload{RoomID: roomID, RoundID: roundID},
	})
	if wasActive {
		e.broadcaster.Broadcast(roomID, Event{Type: EventVotingEnded, Payload: RoomPayload{RoomID: roomID}})
	}
	return nil
}

// EndVoting lowers the session-layer flag. No round data changes.
func (e *Engine) EndVoting(ctx context.Context, roomID uuid.UUID, code string) error {
	roomID = e.resolveRoom(roomID, code)

	e.persistVotingState(ctx, roomID, false)

	room, err := e.refresh(ctx, roomID, func(r *model.Room) {
		r.ActiveVoting = false
	})
	if err != nil {
		return err
	}

	e.broadcaster.Broadcast(roomID, Event{Type: EventRoomUpdated, Payload: room})
	e.broadcaster.Broadcast(roomID, Event{Type: EventVotingEnded, Payload: RoomPayload{RoomID: roomID}})
	return nil
}

// refresh re-materializes the room, applies the caller's runtime-flag
// overlay and rewrites the cache. The overlay step is what keeps
// ActiveVoting from silently resetting to the materializer's default of
// false; every handler that runs while voting may be active must pass
// one.
func (e *Engine) refresh(ctx context.Context, roomID uuid.UUID, overlay func(*model.Room)) (*model.Room, error) {
	room, err := e.repo.LoadRoom(ctx, roomID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if room == nil {
		return nil, ErrResourceNotFound
	}
	if overlay != nil {
		overlay(room)
	}
	e.cache.Put(room)
	return room, nil
}

func keepVotingActive(r *model.Room) {
	r.ActiveVoting = true
}

// votingStateOrDefault is a secondary read treated as non-fatal: on
// failure the command proceeds with voting considered inactive.
func (e *Engine) votingStateOrDefault(ctx context.Context, roomID uuid.UUID) bool {
	active, err := e.repo.IsActiveVoting(ctx, roomID)
	if err != nil {
		e.logger.Error("failed to read voting state",
			slog.String("error", err.Error()),
			slog.String("room", roomID.String()))
		return false
	}
	return active
}

// persistVotingState mirrors the flag into storage so later joins can
// recover it. Also non-fatal: the in-memory overlay is authoritative
// for the snapshot being broadcast.
func (e *Engine) persistVotingState(ctx context.Context, roomID uuid.UUID, active bool) {
	if err := e.repo.SetActiveVoting(ctx, roomID, active); err != nil {
		e.logger.Error("failed to persist voting state",
			slog.String("error", err.Error()),
			slog.String("room", roomID.String()))
	}
}
