package repository

import (
	"context"
	"fmt"
	"time"

	"roomsvc/pkg/model"

	"github.com/jmoiron/sqlx"
)

const ReservationTableName = "reservations"

// ReservationRepository lists bookings for a room. This service never
// mutates reservations; another service owns that table's writes.
type ReservationRepository interface {
	FindFutureForRoom(ctx context.Context, roomID int64) ([]model.Reservation, error)
}

type postgresReservationRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostgresReservationRepository(db *sqlx.DB) ReservationRepository {
	return &postgresReservationRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *postgresReservationRepository) FindFutureForRoom(ctx context.Context, roomID int64) ([]model.Reservation, error) {
	reservations := []model.Reservation{}
	query := fmt.Sprintf(
		"SELECT id, room_id, from_time, to_time, created FROM %s WHERE room_id = $1 AND to_time > $2 ORDER BY from_time",
		ReservationTableName,
	)
	if err := r.db.SelectContext(ctx, &reservations, query, roomID, r.now()); err != nil {
		return nil, fmt.Errorf("failed to query reservations for room %d: %w", roomID, err)
	}
	return reservations, nil
}
