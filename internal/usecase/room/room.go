package usecase_room

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/planningpoko/core/internal/model"
	usecase_session "github.com/planningpoko/core/internal/usecase/session"
)

var (
	ErrCodeConflict     = errors.New("code conflict")
	ErrRoomsUnavailable = errors.New("no available rooms")
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = usecase_session.ErrResourceNotFound
)

// Attempts at generating a code before giving up. With 26^4 codes a
// second collision in a row already means something is wrong.
const codeRetries = 5

//go:generate mockery --name=RoomRepository --output=./mocks/room/repository --filename=repository.go
type RoomRepository interface {
	// CreateRoom atomically inserts the room, its host user and the
	// seed round; a code collision yields ErrCodeConflict.
	CreateRoom(ctx context.Context, room model.Room, host model.User, seed model.Round) error
	LoadRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error)
	// LoadRoomByCode yields (nil, nil) when no room holds the code.
	LoadRoomByCode(ctx context.Context, code string) (*model.Room, error)
	AddUser(ctx context.Context, roomID uuid.UUID, user model.User) error
	IsActiveVoting(ctx context.Context, roomID uuid.UUID) (bool, error)
}

type Usecase struct {
	repo   RoomRepository
	logger *slog.Logger
}

func New(repo RoomRepository) *Usecase {
	return &Usecase{
		repo:   repo,
		logger: slog.Default(),
	}
}

// Create makes a new room with the caller as host, seeded with one
// round. When a code is supplied and a room already holds it, the
// caller is added to that room as a host instead of creating a phantom
// duplicate; the returned bool reports that case.
func (u *Usecase) Create(ctx context.Context, name, userName, code string) (*model.Room, *model.User, bool, error) {
	if code != "" {
		existing, err := u.repo.LoadRoomByCode(ctx, strings.ToUpper(code))
		if err != nil {
			return nil, nil, false, errors.Join(ErrInternal, err)
		}
		if existing != nil {
			user := model.NewUser(uuid.New(), userName, true)
			room, err := u.addToRoom(ctx, existing.ID, user)
			if err != nil {
				return nil, nil, false, err
			}
			return room, &user, true, nil
		}
	}

	host := model.NewUser(uuid.New(), userName, true)
	roomID, err := u.createWithUniqueCode(ctx, name, host)
	if err != nil {
		return nil, nil, false, err
	}

	room, err := u.repo.LoadRoom(ctx, roomID)
	if err != nil {
		return nil, nil, false, errors.Join(ErrInternal, err)
	}
	if room == nil {
		return nil, nil, false, ErrInternal
	}
	return room, &host, false, nil
}

// Assuming codes can conflict. Retrying with a fresh code until the
// repository confirms uniqueness.
func (u *Usecase) createWithUniqueCode(ctx context.Context, name string, host model.User) (uuid.UUID, error) {
	for retries := codeRetries; retries > 0; retries-- {
		room := model.Room{
			ID:     uuid.New(),
			Code:   u.buildRoomCode(),
			Name:   name,
			HostID: host.ID,
		}
		seed := model.Round{ID: uuid.New(), Title: model.SeedRoundTitle}

		err := u.repo.CreateRoom(ctx, room, host, seed)
		if err == nil {
			return room.ID, nil
		}
		if !errors.Is(err, ErrCodeConflict) {
			return uuid.Nil, errors.Join(ErrInternal, err)
		}
	}
	return uuid.Nil, ErrRoomsUnavailable
}

func (u *Usecase) buildRoomCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var builder strings.Builder
	builder.Grow(model.CodeLength)
	for i := 0; i < model.CodeLength; i++ {
		builder.WriteByte(letters[rand.Intn(len(letters))])
	}
	return builder.String()
}

// GetByCode looks a room up by its code, case-insensitively.
func (u *Usecase) GetByCode(ctx context.Context, code string) (*model.Room, error) {
	room, err := u.repo.LoadRoomByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if room == nil {
		return nil, ErrResourceNotFound
	}
	return room, nil
}

// Join adds a new player to the room holding the code.
func (u *Usecase) Join(ctx context.Context, code, userName string) (*model.Room, *model.User, error) {
	existing, err := u.repo.LoadRoomByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, nil, errors.Join(ErrInternal, err)
	}
	if existing == nil {
		return nil, nil, ErrResourceNotFound
	}

	user := model.NewUser(uuid.New(), userName, false)
	room, err := u.addToRoom(ctx, existing.ID, user)
	if err != nil {
		return nil, nil, err
	}
	return room, &user, nil
}

// addToRoom persists the user and reloads the snapshot, preserving a
// voting session that is already in progress. The voting-state read is
// non-fatal: on failure the flag defaults to false.
func (u *Usecase) addToRoom(ctx context.Context, roomID uuid.UUID, user model.User) (*model.Room, error) {
	if err := u.repo.AddUser(ctx, roomID, user); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}

	room, err := u.repo.LoadRoom(ctx, roomID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if room == nil {
		return nil, ErrResourceNotFound
	}

	active, err := u.repo.IsActiveVoting(ctx, roomID)
	if err != nil {
		u.logger.Error("failed to read voting state",
			slog.String("error", err.Error()),
			slog.String("room", roomID.String()))
		active = false
	}
	room.ActiveVoting = active
	return room, nil
}
