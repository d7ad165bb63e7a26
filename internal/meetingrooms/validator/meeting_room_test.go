package validator

import (
	"strings"
	"testing"

	"roomsvc/pkg/model"
)

func TestValidateCreate_NameBounds(t *testing.T) {
	v := NewMeetingRoomValidator()

	tests := []struct {
		name    string
		room    string
		wantErr bool
	}{
		{name: "single character", room: "A", wantErr: false},
		{name: "exactly 100 characters", room: strings.Repeat("a", 100), wantErr: false},
		{name: "101 characters", room: strings.Repeat("a", 101), wantErr: true},
		{name: "empty", room: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(&model.MeetingRoomCreate{Name: tt.room})
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidateCreate_DescriptionBounds(t *testing.T) {
	v := NewMeetingRoomValidator()

	ok := strings.Repeat("d", 500)
	tooLong := strings.Repeat("d", 501)

	tests := []struct {
		name        string
		description *string
		wantErr     bool
	}{
		{name: "absent", description: nil, wantErr: false},
		{name: "exactly 500 characters", description: &ok, wantErr: false},
		{name: "501 characters", description: &tooLong, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(&model.MeetingRoomCreate{
				Name:        "Boardroom",
				Description: tt.description,
			})
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidateCreate_MissingNameReportsField(t *testing.T) {
	v := NewMeetingRoomValidator()

	err := v.ValidateCreate(&model.MeetingRoomCreate{})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Field != "Name" || errs[0].Message != "is required" {
		t.Errorf("unexpected error: %+v", errs[0])
	}
}

func TestValidateUpdate_AllFieldsOptional(t *testing.T) {
	v := NewMeetingRoomValidator()

	if err := v.ValidateUpdate(&model.MeetingRoomUpdate{}); err != nil {
		t.Errorf("empty update payload should pass validation, got: %v", err)
	}
}

func TestValidateUpdate_SuppliedFieldsAreBounded(t *testing.T) {
	v := NewMeetingRoomValidator()

	empty := ""
	tooLong := strings.Repeat("a", 101)

	tests := []struct {
		name    string
		payload model.MeetingRoomUpdate
		wantErr bool
	}{
		{name: "supplied empty name", payload: model.MeetingRoomUpdate{Name: &empty}, wantErr: true},
		{name: "supplied oversized name", payload: model.MeetingRoomUpdate{Name: &tooLong}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdate(&tt.payload)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
