package model

import "time"

// MeetingRoom is a bookable room. Rows are never hard-deleted: IsActive
// flips to false on delete and back to true on restore, so Name is only
// unique among active rooms.
type MeetingRoom struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name" validate:"required,min=1,max=100"`
	Description *string    `db:"description" json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	Created     time.Time  `db:"created" json:"created"`
	Updated     *time.Time `db:"updated" json:"updated,omitempty"`
}

// SetActive flips the lifecycle flag. ID, Created and Updated stay untouched;
// the store layer stamps timestamps on persist.
func (m *MeetingRoom) SetActive(active bool) {
	m.IsActive = active
}

// MeetingRoomCreate is the create payload. Name is required; Description is
// optional.
type MeetingRoomCreate struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=500"`
}

// ApplyTo copies all supplied fields onto the room.
func (p MeetingRoomCreate) ApplyTo(room *MeetingRoom) {
	room.Name = p.Name
	if p.Description != nil {
		room.Description = p.Description
	}
}

// MeetingRoomUpdate is the partial-update payload. A nil field means "leave
// unchanged"; JSON cannot distinguish an explicit null from an absent key,
// so both are treated as not supplied.
type MeetingRoomUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=500"`
}

// ApplyTo merges only the supplied fields onto the room.
func (p MeetingRoomUpdate) ApplyTo(room *MeetingRoom) {
	if p.Name != nil {
		room.Name = *p.Name
	}
	if p.Description != nil {
		room.Description = p.Description
	}
}
