package infra_postgres_room

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/planningpoko/core/internal/model"
)

type roundDTO struct {
	ID            uuid.UUID `db:"id"`
	Title         string    `db:"title"`
	Subtitle      string    `db:"subtitle"`
	Revealed      bool      `db:"revealed"`
	FinalEstimate *string   `db:"final_estimate"`
}

type voteDTO struct {
	UserID   uuid.UUID `db:"user_id"`
	UserName string    `db:"user_name"`
	Value    *string   `db:"value"`
}

// LoadRoom builds the denormalized snapshot: room row, users, rounds
// newest-first with their votes joined to voter names. An absent room
// yields (nil, nil). CurrentRound is the most recent round and
// ActiveVoting is left false; those are storage-level defaults, the
// session layer overlays the live values.
func (d *Driver) LoadRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	const roomQuery = `
		SELECT id, code, name, host_id
		FROM rooms
		WHERE id = $1
	`
	var room roomDTO
	if err := d.db.GetContext(ctx, &room, roomQuery, roomID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	const usersQuery = `
		SELECT id, name, is_host, role
		FROM users
		WHERE room_id = $1
		ORDER BY created_at
	`
	var users []userDTO
	if err := d.db.SelectContext(ctx, &users, usersQuery, roomID); err != nil {
		return nil, err
	}

	const roundsQuery = `
		SELECT id, title, subtitle, revealed, final_estimate
		FROM rounds
		WHERE room_id = $1
		ORDER BY created_at DESC
	`
	var rounds []roundDTO
	if err := d.db.SelectContext(ctx, &rounds, roundsQuery, roomID); err != nil {
		return nil, err
	}

	result := &model.Room{
		ID:     room.ID,
		Code:   room.Code,
		Name:   room.Name,
		HostID: room.HostID,
		Users:  make([]model.User, 0, len(users)),
		Rounds: make([]model.Round, 0, len(rounds)),
	}
	for _, u := range users {
		result.Users = append(result.Users, model.User{
			ID:     u.ID,
			Name:   u.Name,
			Role:   u.Role,
			IsHost: u.IsHost,
		})
	}
	for _, r := range rounds {
		votes, err := d.loadVotes(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		result.Rounds = append(result.Rounds, model.Round{
			ID:            r.ID,
			Title:         r.Title,
			Subtitle:      r.Subtitle,
			Revealed:      r.Revealed,
			FinalEstimate: r.FinalEstimate,
			Votes:         votes,
		})
	}
	if len(result.Rounds) > 0 {
		result.CurrentRound = &result.Rounds[0]
	}
	return result, nil
}

func (d *Driver) loadVotes(ctx context.Context, roundID uuid.UUID) ([]model.Vote, error) {
	const query = `
		SELECT v.user_id, u.name AS user_name, v.value
		FROM votes v
		JOIN users u ON v.user_id = u.id
		WHERE v.round_id = $1
		ORDER BY v.created_at
	`
	var votes []voteDTO
	if err := d.db.SelectContext(ctx, &votes, query, roundID); err != nil {
		return nil, err
	}

	result := make([]model.Vote, 0, len(votes))
	for _, v := range votes {
		result = append(result, model.Vote{
			UserID:   v.UserID,
			UserName: v.UserName,
			Value:    v.Value,
		})
	}
	return result, nil
}

// LoadRoomByCode resolves the code to a room id, case already
// normalized by the caller, then materializes as LoadRoom does.
func (d *Driver) LoadRoomByCode(ctx context.Context, code string) (*model.Room, error) {
	const query = `
		SELECT id
		FROM rooms
		WHERE code = $1
	`
	var roomID uuid.UUID
	if err := d.db.GetContext(ctx, &roomID, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return d.LoadRoom(ctx, roomID)
}

// LoadAllRooms materializes every room, used once at startup to warm
// the cache.
func (d *Driver) LoadAllRooms(ctx context.Context) ([]*model.Room, error) {
	const query = `
		SELECT id
		FROM rooms
	`
	var ids []uuid.UUID
	if err := d.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, err
	}

	rooms := make([]*model.Room, 0, len(ids))
	for _, id := range ids {
		room, err := d.LoadRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		if room != nil {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}
