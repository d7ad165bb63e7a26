package model

import (
	"testing"
	"time"
)

func TestMeetingRoomUpdate_ApplyToMergesSuppliedFields(t *testing.T) {
	desc := "old description"
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	newName := "War Room"
	newDesc := "new description"

	tests := []struct {
		name     string
		payload  MeetingRoomUpdate
		wantName string
		wantDesc string
	}{
		{
			name:     "name only",
			payload:  MeetingRoomUpdate{Name: &newName},
			wantName: "War Room",
			wantDesc: "old description",
		},
		{
			name:     "description only",
			payload:  MeetingRoomUpdate{Description: &newDesc},
			wantName: "Boardroom",
			wantDesc: "new description",
		},
		{
			name:     "both fields",
			payload:  MeetingRoomUpdate{Name: &newName, Description: &newDesc},
			wantName: "War Room",
			wantDesc: "new description",
		},
		{
			name:     "nothing supplied",
			payload:  MeetingRoomUpdate{},
			wantName: "Boardroom",
			wantDesc: "old description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := MeetingRoom{
				ID:          4,
				Name:        "Boardroom",
				Description: &desc,
				IsActive:    true,
				Created:     created,
			}

			tt.payload.ApplyTo(&room)

			if room.Name != tt.wantName {
				t.Errorf("name = %q, want %q", room.Name, tt.wantName)
			}
			if room.Description == nil || *room.Description != tt.wantDesc {
				t.Errorf("description = %v, want %q", room.Description, tt.wantDesc)
			}
			if room.ID != 4 || !room.Created.Equal(created) {
				t.Error("identity fields must never change on update")
			}
		})
	}
}

func TestMeetingRoomCreate_ApplyToKeepsDescriptionWhenAbsent(t *testing.T) {
	desc := "kept from before deletion"
	room := MeetingRoom{ID: 9, Name: "Old Name", Description: &desc}

	MeetingRoomCreate{Name: "New Name"}.ApplyTo(&room)

	if room.Name != "New Name" {
		t.Errorf("name = %q, want %q", room.Name, "New Name")
	}
	if room.Description == nil || *room.Description != desc {
		t.Error("absent description in payload must not clear the existing one")
	}
}

func TestSetActive_RoundTrip(t *testing.T) {
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	room := MeetingRoom{ID: 4, Name: "Boardroom", IsActive: true, Created: created}

	room.SetActive(false)
	if room.IsActive {
		t.Error("room should be inactive after SetActive(false)")
	}

	room.SetActive(true)
	if !room.IsActive {
		t.Error("room should be active after SetActive(true)")
	}
	if room.ID != 4 || room.Name != "Boardroom" || !room.Created.Equal(created) {
		t.Error("lifecycle flips must leave all other fields untouched")
	}
}
