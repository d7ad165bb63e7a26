package service

import (
	"context"
	"errors"
	"strconv"

	roomerrors "roomsvc/internal/meetingrooms/errors"
	"roomsvc/internal/meetingrooms/repository"
	"roomsvc/internal/meetingrooms/validator"
	"roomsvc/pkg/config"
	apperrors "roomsvc/pkg/errors"
	"roomsvc/pkg/kafka"
	"roomsvc/pkg/model"
	"roomsvc/pkg/sanitizer"
)

const (
	EventRoomCreated  = "meeting_room.created"
	EventRoomRestored = "meeting_room.restored"
	EventRoomUpdated  = "meeting_room.updated"
	EventRoomDeleted  = "meeting_room.deleted"

	eventSource = "meeting-rooms"
)

// EventPublisher pushes lifecycle events to the broker. Publishing is
// best-effort: a broker failure never fails the request that triggered it.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type MeetingRoomService interface {
	GetAllActive(ctx context.Context) ([]model.MeetingRoom, error)
	GetByID(ctx context.Context, id int64) (*model.MeetingRoom, error)
	Create(ctx context.Context, payload *model.MeetingRoomCreate) (*model.MeetingRoom, error)
	Update(ctx context.Context, id int64, payload *model.MeetingRoomUpdate) (*model.MeetingRoom, error)
	Delete(ctx context.Context, id int64) (*model.MeetingRoom, error)
	ListReservations(ctx context.Context, id int64) ([]model.Reservation, error)
}

type meetingRoomService struct {
	repo         repository.MeetingRoomRepository
	reservations repository.ReservationRepository
	validator    *validator.MeetingRoomValidator
	publisher    EventPublisher
	cfg          *config.Config
}

func NewMeetingRoomService(
	repo repository.MeetingRoomRepository,
	reservations repository.ReservationRepository,
	roomValidator *validator.MeetingRoomValidator,
	publisher EventPublisher,
	cfg *config.Config,
) MeetingRoomService {
	return &meetingRoomService{
		repo:         repo,
		reservations: reservations,
		validator:    roomValidator,
		publisher:    publisher,
		cfg:          cfg,
	}
}

func (s *meetingRoomService) GetAllActive(ctx context.Context) ([]model.MeetingRoom, error) {
	rooms, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list meeting rooms", "error", err)
		return nil, apperrors.Internal("Failed to retrieve meeting rooms", err)
	}
	return rooms, nil
}

func (s *meetingRoomService) GetByID(ctx context.Context, id int64) (*model.MeetingRoom, error) {
	return s.checkRoomExists(ctx, id)
}

// Create runs the create-or-restore flow: an active name collision is a
// Conflict, an inactive row holding the name is restored in place with the
// create payload, and otherwise a fresh row is inserted.
func (s *meetingRoomService) Create(ctx context.Context, payload *model.MeetingRoomCreate) (*model.MeetingRoom, error) {
	s.sanitizeCreate(payload)

	if err := s.validator.ValidateCreate(payload); err != nil {
		s.cfg.Log.Warn("Meeting room validation failed",
			"name", payload.Name,
			"error", err,
		)
		return nil, apperrors.Validation("Meeting room validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	deleted, err := s.checkNameDuplicate(ctx, payload.Name)
	if err != nil {
		return nil, err
	}

	if deleted != nil {
		restored, err := s.repo.Restore(ctx, deleted, *payload)
		if err != nil {
			return nil, s.writeError(err, "Failed to restore meeting room", "name", payload.Name)
		}

		s.cfg.Log.Info("Meeting room restored",
			"id", restored.ID,
			"name", restored.Name,
		)
		s.publishEvent(ctx, EventRoomRestored, restored)
		return restored, nil
	}

	room, err := s.repo.Create(ctx, *payload)
	if err != nil {
		return nil, s.writeError(err, "Failed to create meeting room", "name", payload.Name)
	}

	s.cfg.Log.Info("Meeting room created",
		"id", room.ID,
		"name", room.Name,
	)
	s.publishEvent(ctx, EventRoomCreated, room)
	return room, nil
}

func (s *meetingRoomService) Update(ctx context.Context, id int64, payload *model.MeetingRoomUpdate) (*model.MeetingRoom, error) {
	s.sanitizeUpdate(payload)

	if err := s.validator.ValidateUpdate(payload); err != nil {
		s.cfg.Log.Warn("Meeting room validation failed",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Validation("Meeting room validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	room, err := s.checkRoomExists(ctx, id)
	if err != nil {
		return nil, err
	}

	// Renaming must not collide with another active room; an inactive row
	// holding the name is fine, inactive rooms may share names.
	if payload.Name != nil && *payload.Name != room.Name {
		if _, err := s.checkNameDuplicate(ctx, *payload.Name); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, room, *payload)
	if err != nil {
		return nil, s.writeError(err, "Failed to update meeting room", "id", id)
	}

	s.cfg.Log.Info("Meeting room updated",
		"id", updated.ID,
		"name", updated.Name,
	)
	s.publishEvent(ctx, EventRoomUpdated, updated)
	return updated, nil
}

func (s *meetingRoomService) Delete(ctx context.Context, id int64) (*model.MeetingRoom, error) {
	room, err := s.checkRoomExists(ctx, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.SoftDelete(ctx, room)
	if err != nil {
		return nil, s.writeError(err, "Failed to delete meeting room", "id", id)
	}

	s.cfg.Log.Info("Meeting room deleted", "id", deleted.ID)
	s.publishEvent(ctx, EventRoomDeleted, deleted)
	return deleted, nil
}

func (s *meetingRoomService) ListReservations(ctx context.Context, id int64) ([]model.Reservation, error) {
	if _, err := s.checkRoomExists(ctx, id); err != nil {
		return nil, err
	}

	reservations, err := s.reservations.FindFutureForRoom(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to list reservations",
			"room_id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve reservations", err)
	}
	return reservations, nil
}

// checkNameDuplicate is the restore-aware duplicate guard. An active row
// with the name fails with Conflict; an inactive one is returned so the
// caller can restore it; no match returns (nil, nil).
func (s *meetingRoomService) checkNameDuplicate(ctx context.Context, name string) (*model.MeetingRoom, error) {
	room, err := s.repo.FindByName(ctx, name)
	if err != nil {
		s.cfg.Log.Error("Failed to check name duplicate",
			"name", name,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to check meeting room name", err)
	}
	if room == nil {
		return nil, nil
	}
	if room.IsActive {
		return nil, apperrors.Conflict("A meeting room with this name already exists")
	}
	return room, nil
}

// checkRoomExists treats an inactive row as not existing: callers never see
// soft-deleted rooms through this guard.
func (s *meetingRoomService) checkRoomExists(ctx context.Context, id int64) (*model.MeetingRoom, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to get meeting room by ID",
			"id", id,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve meeting room", err)
	}
	if room == nil || !room.IsActive {
		return nil, apperrors.NotFoundWithID("Meeting room", id)
	}
	return room, nil
}

func (s *meetingRoomService) sanitizeCreate(payload *model.MeetingRoomCreate) {
	payload.Name = sanitizer.NormalizeName(payload.Name)
	if payload.Description != nil {
		normalized := sanitizer.TrimAndNormalize(*payload.Description)
		payload.Description = &normalized
	}
}

func (s *meetingRoomService) sanitizeUpdate(payload *model.MeetingRoomUpdate) {
	if payload.Name != nil {
		normalized := sanitizer.NormalizeName(*payload.Name)
		payload.Name = &normalized
	}
	if payload.Description != nil {
		normalized := sanitizer.TrimAndNormalize(*payload.Description)
		payload.Description = &normalized
	}
}

// writeError maps the unique-index backstop to Conflict; everything else is
// an internal store failure.
func (s *meetingRoomService) writeError(err error, msg string, args ...any) error {
	if errors.Is(err, roomerrors.ErrDuplicateName) {
		return apperrors.Conflict("A meeting room with this name already exists")
	}
	s.cfg.Log.Error(msg, append(args, "error", err)...)
	return apperrors.Internal(msg, err)
}

func (s *meetingRoomService) publishEvent(ctx context.Context, eventType string, room *model.MeetingRoom) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewMessage(eventType, eventSource, strconv.FormatInt(room.ID, 10), room)
	if err != nil {
		s.cfg.Log.Error("Failed to build lifecycle event",
			"event_type", eventType,
			"room_id", room.ID,
			"error", err,
		)
		return
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish lifecycle event",
			"event_type", eventType,
			"room_id", room.ID,
			"error", err,
		)
	}
}
