package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	roomerrors "roomsvc/internal/meetingrooms/errors"
	"roomsvc/pkg/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	TableName = "meeting_rooms"

	roomColumns = "id, name, description, is_active, created, updated"

	pqUniqueViolation = "23505"
)

// MeetingRoomRepository is the persistence surface for meeting rooms. It is
// a dumb primitive: uniqueness and existence rules live in the service
// layer, not here.
type MeetingRoomRepository interface {
	FindAll(ctx context.Context) ([]model.MeetingRoom, error)
	FindAllActive(ctx context.Context) ([]model.MeetingRoom, error)
	FindByID(ctx context.Context, id int64) (*model.MeetingRoom, error)
	FindByName(ctx context.Context, name string) (*model.MeetingRoom, error)
	FindIDByName(ctx context.Context, name string) (int64, bool, error)
	Create(ctx context.Context, payload model.MeetingRoomCreate) (*model.MeetingRoom, error)
	Update(ctx context.Context, room *model.MeetingRoom, payload model.MeetingRoomUpdate) (*model.MeetingRoom, error)
	SoftDelete(ctx context.Context, room *model.MeetingRoom) (*model.MeetingRoom, error)
	Restore(ctx context.Context, room *model.MeetingRoom, payload model.MeetingRoomCreate) (*model.MeetingRoom, error)
}

type roomStore = Store[model.MeetingRoom, *model.MeetingRoom, model.MeetingRoomCreate, model.MeetingRoomUpdate]

type postgresMeetingRoomRepository struct {
	db    *sqlx.DB
	store *roomStore
}

func NewPostgresMeetingRoomRepository(db *sqlx.DB) MeetingRoomRepository {
	backend := &roomBackend{db: db}
	return &postgresMeetingRoomRepository{
		db:    db,
		store: NewStore[model.MeetingRoom, *model.MeetingRoom, model.MeetingRoomCreate, model.MeetingRoomUpdate](db, backend),
	}
}

func (r *postgresMeetingRoomRepository) FindAll(ctx context.Context) ([]model.MeetingRoom, error) {
	return r.store.FindAll(ctx)
}

func (r *postgresMeetingRoomRepository) FindAllActive(ctx context.Context) ([]model.MeetingRoom, error) {
	rooms := []model.MeetingRoom{}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE is_active ORDER BY id", roomColumns, TableName)
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("failed to query active meeting rooms: %w", err)
	}
	return rooms, nil
}

func (r *postgresMeetingRoomRepository) FindByID(ctx context.Context, id int64) (*model.MeetingRoom, error) {
	return r.store.FindByID(ctx, id)
}

// FindByName matches across all rows, active and inactive, so the restore
// path can find a soft-deleted room holding the requested name.
func (r *postgresMeetingRoomRepository) FindByName(ctx context.Context, name string) (*model.MeetingRoom, error) {
	var room model.MeetingRoom
	query := fmt.Sprintf("SELECT %s FROM %s WHERE name = $1 LIMIT 1", roomColumns, TableName)
	if err := r.db.GetContext(ctx, &room, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find meeting room by name: %w", err)
	}
	return &room, nil
}

func (r *postgresMeetingRoomRepository) FindIDByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	query := fmt.Sprintf("SELECT id FROM %s WHERE name = $1 LIMIT 1", TableName)
	if err := r.db.GetContext(ctx, &id, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to find meeting room id by name: %w", err)
	}
	return id, true, nil
}

func (r *postgresMeetingRoomRepository) Create(ctx context.Context, payload model.MeetingRoomCreate) (*model.MeetingRoom, error) {
	return r.store.Create(ctx, payload)
}

func (r *postgresMeetingRoomRepository) Update(ctx context.Context, room *model.MeetingRoom, payload model.MeetingRoomUpdate) (*model.MeetingRoom, error) {
	return r.store.Update(ctx, room, payload)
}

func (r *postgresMeetingRoomRepository) SoftDelete(ctx context.Context, room *model.MeetingRoom) (*model.MeetingRoom, error) {
	return r.store.SoftDelete(ctx, room)
}

func (r *postgresMeetingRoomRepository) Restore(ctx context.Context, room *model.MeetingRoom, payload model.MeetingRoomCreate) (*model.MeetingRoom, error) {
	return r.store.Restore(ctx, room, payload)
}

// roomBackend binds the generic store to the meeting_rooms table.
type roomBackend struct {
	db *sqlx.DB
}

func (b *roomBackend) SelectAll(ctx context.Context) ([]model.MeetingRoom, error) {
	rooms := []model.MeetingRoom{}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id", roomColumns, TableName)
	if err := b.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("failed to query meeting rooms: %w", err)
	}
	return rooms, nil
}

func (b *roomBackend) SelectByID(ctx context.Context, id int64) (*model.MeetingRoom, error) {
	var room model.MeetingRoom
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", roomColumns, TableName)
	if err := b.db.GetContext(ctx, &room, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find meeting room: %w", err)
	}
	return &room, nil
}

func (b *roomBackend) Insert(ctx context.Context, tx *sqlx.Tx, room *model.MeetingRoom, now time.Time) error {
	room.Created = now
	query := fmt.Sprintf(
		"INSERT INTO %s (name, description, is_active, created) VALUES ($1, $2, $3, $4) RETURNING id",
		TableName,
	)
	if err := tx.QueryRowxContext(ctx, query, room.Name, room.Description, room.IsActive, room.Created).Scan(&room.ID); err != nil {
		return translateWriteError(err, "failed to insert meeting room")
	}
	return nil
}

func (b *roomBackend) Save(ctx context.Context, tx *sqlx.Tx, room *model.MeetingRoom, now time.Time) error {
	room.Updated = &now
	query := fmt.Sprintf(
		"UPDATE %s SET name = $1, description = $2, is_active = $3, updated = $4 WHERE id = $5",
		TableName,
	)
	if _, err := tx.ExecContext(ctx, query, room.Name, room.Description, room.IsActive, room.Updated, room.ID); err != nil {
		return translateWriteError(err, "failed to update meeting room")
	}
	return nil
}

// translateWriteError surfaces the partial unique index on active names as a
// domain error so the service can answer Conflict instead of 500.
func translateWriteError(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("%w: %v", roomerrors.ErrDuplicateName, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
