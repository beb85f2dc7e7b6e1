package infra_postgres_room

import (
	"context"

	"github.com/google/uuid"

	"github.com/planningpoko/core/internal/model"
	usecase_session "github.com/planningpoko/core/internal/usecase/session"
)

func (d *Driver) CreateRound(ctx context.Context, roomID uuid.UUID, round model.Round) error {
	const query = `
		INSERT INTO rounds (id, room_id, title, subtitle)
		VALUES ($1, $2, $3, $4)
	`
	_, err := d.db.ExecContext(ctx, query, round.ID, roomID, round.Title, round.Subtitle)
	if err != nil {
		if isForeignKeyViolation(err) {
			return usecase_session.ErrResourceNotFound
		}
		return err
	}
	return nil
}

func (d *Driver) SetRevealed(ctx context.Context, roundID uuid.UUID, revealed bool) error {
	const query = `
		UPDATE rounds
		SET revealed = $1
		WHERE id = $2
	`
	return d.execOnRound(ctx, query, revealed, roundID)
}

func (d *Driver) SetFinalEstimate(ctx context.Context, roundID uuid.UUID, value string) error {
	const query = `
		UPDATE rounds
		SET final_estimate = $1
		WHERE id = $2
	`
	return d.execOnRound(ctx, query, value, roundID)
}

func (d *Driver) DeleteRound(ctx context.Context, roundID uuid.UUID) error {
	const query = `
		DELETE FROM rounds
		WHERE id = $1
	`
	// Votes go with the round via the cascade.
	return d.execOnRound(ctx, query, roundID)
}

func (d *Driver) RoundBelongsToRoom(ctx context.Context, roundID, roomID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM rounds
			WHERE id = $1 AND room_id = $2
		)
	`
	var exists bool
	if err := d.db.GetContext(ctx, &exists, query, roundID, roomID); err != nil {
		return false, err
	}
	return exists, nil
}

func (d *Driver) UpsertVote(ctx context.Context, roundID, userID uuid.UUID, value string) error {
	const query = `
		INSERT INTO votes (id, round_id, user_id, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (round_id, user_id)
		DO UPDATE SET value = EXCLUDED.value
	`
	_, err := d.db.ExecContext(ctx, query, uuid.New(), roundID, userID, value)
	if err != nil {
		if isForeignKeyViolation(err) {
			return usecase_session.ErrResourceNotFound
		}
		return err
	}
	return nil
}

// execOnRound runs a statement targeting one round row and maps "no row
// touched" to not-found.
func (d *Driver) execOnRound(ctx context.Context, query string, args ...any) error {
	result, err := d.db.ExecContext(ctx, query, args...)
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
