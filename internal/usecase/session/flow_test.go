package usecase_session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planningpoko/core/internal/model"
)

// memoryRepo is a storage stand-in with the same contract as the
// postgres driver: snapshots materialize rounds newest-first, the
// voting flag defaults to false on reads and an absent room loads as
// (nil, nil).
type memoryRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*memoryRoom
}

type memoryRoom struct {
	code   string
	name   string
	hostID uuid.UUID
	active bool
	users  []model.User
	rounds []*memoryRound
}

type memoryRound struct {
	round model.Round
	votes map[uuid.UUID]string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rooms: make(map[uuid.UUID]*memoryRoom)}
}

func (m *memoryRepo) seedRoom(name, code string, host model.User) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	m.rooms[id] = &memoryRoom{
		code:   code,
		name:   name,
		hostID: host.ID,
		users:  []model.User{host},
		rounds: []*memoryRound{{
			round: model.Round{ID: uuid.New(), Title: model.SeedRoundTitle},
			votes: make(map[uuid.UUID]string),
		}},
	}
	return id
}

func (m *memoryRepo) LoadRoom(_ context.Context, roomID uuid.UUID) (*model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rooms[roomID]
	if !ok {
		return nil, nil
	}

	room := &model.Room{
		ID:     roomID,
		Code:   stored.code,
		Name:   stored.name,
		HostID: stored.hostID,
		Users:  append([]model.User(nil), stored.users...),
		Rounds: make([]model.Round, 0, len(stored.rounds)),
	}
	for i := len(stored.rounds) - 1; i >= 0; i-- {
		round := stored.rounds[i].round
		round.Votes = []model.Vote{}
		for userID, value := range stored.rounds[i].votes {
			v := value
			vote := model.Vote{UserID: userID, Value: &v}
			for _, u := range stored.users {
				if u.ID == userID {
					vote.UserName = u.Name
				}
			}
			round.Votes = append(round.Votes, vote)
		}
		room.Rounds = append(room.Rounds, round)
	}
	if len(room.Rounds) > 0 {
		room.CurrentRound = &room.Rounds[0]
	}
	return room, nil
}

func (m *memoryRepo) LoadAllRooms(ctx context.Context) ([]*model.Room, error) {
	m.mu.Lock()
	ids := make([]uuid.UUID, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	rooms := make([]*model.Room, 0, len(ids))
	for _, id := range ids {
		room, err := m.LoadRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (m *memoryRepo) AddUser(_ context.Context, roomID uuid.UUID, user model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rooms[roomID]
	if !ok {
		return ErrResourceNotFound
	}
	for _, u := range stored.users {
		if u.ID == user.ID {
			return nil
		}
	}
	stored.users = append(stored.users, user)
	return nil
}

func (m *memoryRepo) RemoveUser(_ context.Context, roomID, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rooms[roomID]
	if !ok {
		return nil
	}
	for i, u := range stored.users {
		if u.ID == userID {
			stored.users = append(stored.users[:i], stored.users[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryRepo) IsActiveVoting(_ context.Context, roomID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rooms[roomID]
	if !ok {
		return false, ErrResourceNotFound
	}
	return stored.active, nil
}

func (m *memoryRepo) SetActiveVoting(_ context.Context, roomID uuid.UUID, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rooms[roomID]
	if !ok {
		return ErrResourceNotFound
	}
	stored.active = active
	return nil
}

func (m *memoryRepo) CreateRound(_ context.Context, roomID uuid.UUID, round model.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rooms[roomID]
	if !ok {
		return ErrResourceNotFound
	}
	stored.rounds = append(stored.rounds, &memoryRound{
		round: round,
		votes: make(map[uuid.UUID]string),
	})
	return nil
}

func (m *memoryRepo) SetRevealed(_ context.Context, roundID uuid.UUID, revealed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if round := m.findRound(roundID); round != nil {
		round.round.Revealed = revealed
		return nil
	}
	return ErrResourceNotFound
}

func (m *memoryRepo) SetFinalEstimate(_ context.Context, roundID uuid.UUID, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if round := m.findRound(roundID); round != nil {
		round.round.FinalEstimate = &value
		return nil
	}
	return ErrResourceNotFound
}

func (m *memoryRepo) DeleteRound(_ context.Context, roundID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, stored := range m.rooms {
		for i, round := range stored.rounds {
			if round.round.ID == roundID {
				stored.rounds = append(stored.rounds[:i], stored.rounds[i+1:]...)
				return nil
			}
		}
	}
	return ErrResourceNotFound
}

func (m *memoryRepo) RoundBelongsToRoom(_ context.Context, roundID, roomID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rooms[roomID]
	if !ok {
		return false, nil
	}
	for _, round := range stored.rounds {
		if round.round.ID == roundID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) UpsertVote(_ context.Context, roundID, userID uuid.UUID, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if round := m.findRound(roundID); round != nil {
		round.votes[userID] = value
		return nil
	}
	return ErrResourceNotFound
}

// callers hold m.mu
func (m *memoryRepo) findRound(roundID uuid.UUID) *memoryRound {
	for _, stored := range m.rooms {
		for _, round := range stored.rounds {
			if round.round.ID == roundID {
				return round
			}
		}
	}
	return nil
}

type EngineFlowSuite struct {
	suite.Suite
}

// TestEstimationFlow drives a full session the way two connected
// clients would: the host creates and joins, a player joins, a story
// is added, voted on, revealed, estimated and the voting ends; then
// both leave and the room disappears.
func (suite *EngineFlowSuite) TestEstimationFlow(t provider.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMemoryRepo()
	cache := NewRoomCache()
	registry := NewSessionRegistry()
	broadcaster := newBroadcastRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := New(repo, cache, registry, broadcaster, logger)

	host := model.NewUser(uuid.New(), "Alice", true)
	roomID := repo.seedRoom("Sprint 12", "QWER", host)
	require.NoError(t, engine.Warmup(ctx))

	hostSession := uuid.NewString()
	playerSession := uuid.NewString()
	player := uuid.New()

	// Both participants join; the player only holds the code.
	require.NoError(t, engine.Join(ctx, hostSession, roomID, host.ID, "QWER"))
	require.NoError(t, engine.Join(ctx, playerSession, uuid.Nil, player, "qwer"))

	cached, ok := cache.Get(roomID)
	require.True(t, ok)
	assert.Len(t, cached.Users, 2)

	// The host adds a story and opens voting on it.
	require.NoError(t, engine.StartNewRound(ctx, roomID, "QWER", "Checkout flow", "PAY-42"))
	cached, _ = cache.Get(roomID)
	require.NotNil(t, cached.CurrentRound)
	storyID := cached.CurrentRound.ID
	assert.Equal(t, "Checkout flow", cached.CurrentRound.Title)

	require.NoError(t, engine.StartVoting(ctx, roomID, storyID, "QWER"))
	cached, _ = cache.Get(roomID)
	assert.True(t, cached.ActiveVoting)

	// Votes from both sides; the player corrects theirs.
	require.NoError(t, engine.SubmitVote(ctx, roomID, storyID, host.ID, "5", "QWER"))
	require.NoError(t, engine.SubmitVote(ctx, roomID, storyID, player, "3", "QWER"))
	require.NoError(t, engine.SubmitVote(ctx, roomID, storyID, player, "8", "QWER"))

	cached, _ = cache.Get(roomID)
	round := cached.FindRound(storyID)
	require.NotNil(t, round)
	assert.Len(t, round.Votes, 2)
	assert.True(t, cached.ActiveVoting)

	require.NoError(t, engine.RevealCards(ctx, roomID, storyID, "QWER"))
	require.NoError(t, engine.SetFinalEstimate(ctx, roomID, storyID, "8", "QWER"))

	cached, _ = cache.Get(roomID)
	round = cached.FindRound(storyID)
	require.NotNil(t, round)
	assert.True(t, round.Revealed)
	require.NotNil(t, round.FinalEstimate)
	assert.Equal(t, "8", *round.FinalEstimate)

	require.NoError(t, engine.EndVoting(ctx, roomID, "QWER"))
	cached, _ = cache.Get(roomID)
	assert.False(t, cached.ActiveVoting)

	// The player leaves explicitly, the host's connection just drops.
	require.NoError(t, engine.Leave(ctx, playerSession, roomID, player, "QWER"))
	engine.Disconnect(ctx, hostSession)

	_, ok = cache.Get(roomID)
	assert.False(t, ok)
	_, ok = cache.ResolveCode("QWER")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())

	assert.Equal(t, []string{
		EventRoomUpdated, EventUserJoined,
		EventRoomUpdated, EventUserJoined,
		EventRoomUpdated, EventNewRoundStarted,
		EventRoomUpdated, EventVotingStarted,
		EventRoomUpdated, EventVoteSubmitted,
		EventRoomUpdated, EventVoteSubmitted,
		EventRoomUpdated, EventVoteSubmitted,
		EventRoomUpdated, EventCardsRevealed,
		EventRoomUpdated, EventFinalEstimateSet,
		EventRoomUpdated, EventVotingEnded,
		EventRoomUpdated, EventUserLeft,
	}, broadcaster.eventTypes())
}

// TestStaleRoomRedirect recreates the scenario where a client rejoins
// with the id of a room that has since been replaced under the same
// code: the command must land on the live room.
func (suite *EngineFlowSuite) TestStaleRoomRedirect(t provider.T) {
	t.Parallel()

	ctx := context.Background()
	repo := newMemoryRepo()
	cache := NewRoomCache()
	registry := NewSessionRegistry()
	broadcaster := newBroadcastRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := New(repo, cache, registry, broadcaster, logger)

	staleID := uuid.New()
	liveID := repo.seedRoom("Replanning", "ZXCV", model.NewUser(uuid.New(), "Bob", true))
	require.NoError(t, engine.Warmup(ctx))

	userID := uuid.New()
	require.NoError(t, engine.Join(ctx, uuid.NewString(), staleID, userID, "ZXCV"))

	live, err := repo.LoadRoom(ctx, liveID)
	require.NoError(t, err)
	assert.True(t, live.HasUser(userID))

	_, ok := cache.Get(staleID)
	assert.False(t, ok)
}

func TestEngineFlowSuite(t *testing.T) {
	suite.RunSuite(t, new(EngineFlowSuite))
}
