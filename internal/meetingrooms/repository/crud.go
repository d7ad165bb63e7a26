package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Payload applies its supplied fields onto an entity. Create payloads copy
// everything; update payloads merge only what the caller set.
type Payload[T any] interface {
	ApplyTo(entity *T)
}

// lifecycle constrains the entity pointer type to one carrying a
// soft-delete flag.
type lifecycle[T any] interface {
	*T
	SetActive(active bool)
}

// Backend supplies the per-entity SQL. The Store owns lifecycle transitions,
// merge application and commit boundaries; backends only move rows.
//
// Insert must fill the generated id and stamp Created with now; Save must
// stamp Updated with now. SelectByID returns (nil, nil) when no row matches.
type Backend[T any] interface {
	SelectAll(ctx context.Context) ([]T, error)
	SelectByID(ctx context.Context, id int64) (*T, error)
	Insert(ctx context.Context, tx *sqlx.Tx, entity *T, now time.Time) error
	Save(ctx context.Context, tx *sqlx.Tx, entity *T, now time.Time) error
}

// Store is the generic CRUD engine shared by every soft-deletable entity.
// Each write runs in its own transaction; a validation check and its
// mutation are never part of one transaction.
type Store[T any, PT lifecycle[T], C Payload[T], U Payload[T]] struct {
	db      *sqlx.DB
	backend Backend[T]
	now     func() time.Time
}

func NewStore[T any, PT lifecycle[T], C Payload[T], U Payload[T]](db *sqlx.DB, backend Backend[T]) *Store[T, PT, C, U] {
	return &Store[T, PT, C, U]{
		db:      db,
		backend: backend,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// FindAll returns every row regardless of the active flag.
func (s *Store[T, PT, C, U]) FindAll(ctx context.Context) ([]T, error) {
	return s.backend.SelectAll(ctx)
}

// FindByID returns (nil, nil) when no row matches; a missing row is not an
// error.
func (s *Store[T, PT, C, U]) FindByID(ctx context.Context, id int64) (*T, error) {
	return s.backend.SelectByID(ctx, id)
}

// Create materializes a new active entity from the payload and persists it.
func (s *Store[T, PT, C, U]) Create(ctx context.Context, payload C) (*T, error) {
	var entity T
	payload.ApplyTo(&entity)
	PT(&entity).SetActive(true)

	if err := s.write(ctx, func(tx *sqlx.Tx) error {
		return s.backend.Insert(ctx, tx, &entity, s.now())
	}); err != nil {
		return nil, err
	}

	return &entity, nil
}

// Update merges the supplied fields onto the entity and persists it.
func (s *Store[T, PT, C, U]) Update(ctx context.Context, entity *T, payload U) (*T, error) {
	payload.ApplyTo(entity)
	return s.save(ctx, entity)
}

// SoftDelete marks the entity inactive. Deleting an already-inactive entity
// still succeeds and re-persists.
func (s *Store[T, PT, C, U]) SoftDelete(ctx context.Context, entity *T) (*T, error) {
	PT(entity).SetActive(false)
	return s.save(ctx, entity)
}

// Restore merges the supplied fields onto the entity, forces it active, and
// persists it. Any payload shape with merge semantics is accepted so the
// create-or-restore flow can reuse its create payload here.
func (s *Store[T, PT, C, U]) Restore(ctx context.Context, entity *T, payload Payload[T]) (*T, error) {
	payload.ApplyTo(entity)
	PT(entity).SetActive(true)
	return s.save(ctx, entity)
}

func (s *Store[T, PT, C, U]) save(ctx context.Context, entity *T) (*T, error) {
	if err := s.write(ctx, func(tx *sqlx.Tx) error {
		return s.backend.Save(ctx, tx, entity, s.now())
	}); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Store[T, PT, C, U]) write(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
