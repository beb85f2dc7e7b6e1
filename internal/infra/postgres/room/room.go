package infra_postgres_room

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/planningpoko/core/internal/model"
	usecase_room "github.com/planningpoko/core/internal/usecase/room"
	usecase_session "github.com/planningpoko/core/internal/usecase/session"
)

// Driver is the durable repository for rooms, users, rounds and votes.
// It implements both the session engine's and the room usecase's
// repository contracts. Cascades (room -> users, room -> rounds ->
// votes) are enforced by the schema's foreign keys.
type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID     uuid.UUID `db:"id"`
	Code   string    `db:"code"`
	Name   string    `db:"name"`
	HostID uuid.UUID `db:"host_id"`
}

type userDTO struct {
	ID     uuid.UUID `db:"id"`
	Name   string    `db:"name"`
	IsHost bool      `db:"is_host"`
	Role   string    `db:"role"`
}

func (d *Driver) CreateRoom(ctx context.Context, room model.Room, host model.User, seed model.Round) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const insertRoom = `
		INSERT INTO rooms (id, code, name, host_id)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, insertRoom, room.ID, room.Code, room.Name, room.HostID); err != nil {
		if isUniqueViolation(err) {
			return usecase_room.ErrCodeConflict
		}
		return err
	}

	const insertHost = `
		INSERT INTO users (id, name, room_id, is_host, role)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, insertHost, host.ID, host.Name, room.ID, host.IsHost, host.Role); err != nil {
		return err
	}

	const insertSeedRound = `
		INSERT INTO rounds (id, room_id, title, subtitle)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, insertSeedRound, seed.ID, room.ID, seed.Title, seed.Subtitle); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Driver) AddUser(ctx context.Context, roomID uuid.UUID, user model.User) error {
	const query = `
		INSERT INTO users (id, name, room_id, is_host, role)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := d.db.ExecContext(ctx, query, user.ID, user.Name, roomID, user.IsHost, user.Role)
	if err != nil {
		if isForeignKeyViolation(err) {
			return usecase_session.ErrResourceNotFound
		}
		return err
	}
	return nil
}

func (d *Driver) RemoveUser(ctx context.Context, roomID, userID uuid.UUID) error {
	const query = `
		DELETE FROM users
		WHERE id = $1 AND room_id = $2
	`
	// Removing an already-absent user is a no-op, not an error.
	_, err := d.db.ExecContext(ctx, query, userID, roomID)
	return err
}

func (d *Driver) IsActiveVoting(ctx context.Context, roomID uuid.UUID) (bool, error) {
	const query = `
		SELECT active_voting
		FROM rooms
		WHERE id = $1
	`
	var active bool
	if err := d.db.GetContext(ctx, &active, query, roomID); err != nil {
		if err == sql.ErrNoRows {
			return false, usecase_session.ErrResourceNotFound
		}
		return false, err
	}
	return active, nil
}

func (d *Driver) SetActiveVoting(ctx context.Context, roomID uuid.UUID, active bool) error {
	const query = `
		UPDATE rooms
		SET active_voting = $1
		WHERE id = $2
	`
	result, err := d.db.ExecContext(ctx, query, active, roomID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return usecase_session.ErrResourceNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key")
}

func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "foreign key constraint")
}
