// Package postgres creates the schema for the meeting-rooms service.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// statements run in order; each is idempotent so the job can be re-run.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS meeting_rooms (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		description TEXT,
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		created     TIMESTAMPTZ NOT NULL,
		updated     TIMESTAMPTZ
	)`,

	// Names are unique among active rooms only; soft-deleted rooms may
	// share a name. The index also backstops the service-level duplicate
	// guard against concurrent creates.
	`CREATE UNIQUE INDEX IF NOT EXISTS meeting_rooms_active_name_key
		ON meeting_rooms (name) WHERE is_active`,

	`CREATE TABLE IF NOT EXISTS reservations (
		id        BIGSERIAL PRIMARY KEY,
		room_id   BIGINT NOT NULL REFERENCES meeting_rooms (id),
		from_time TIMESTAMPTZ NOT NULL,
		to_time   TIMESTAMPTZ NOT NULL,
		created   TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (from_time < to_time)
	)`,

	`CREATE INDEX IF NOT EXISTS reservations_room_time_idx
		ON reservations (room_id, from_time)`,
}

func RunMigration(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement failed: %w", err)
		}
	}
	return nil
}
