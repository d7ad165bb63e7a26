package meetingrooms

import (
	"context"
	"testing"

	"roomsvc/internal/meetingrooms/repository"
	"roomsvc/pkg/model"
	"roomsvc/test/integration/common"
)

func TestRepository_SoftDeleteTwiceIsIdempotent(t *testing.T) {
	pg := common.NewPostgresHelper(t)
	defer pg.Close(t)
	pg.CleanDatabase(t)

	ctx := context.Background()
	repo := repository.NewPostgresMeetingRoomRepository(pg.DB)

	room, err := repo.Create(ctx, model.MeetingRoomCreate{Name: "Boardroom"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := repo.SoftDelete(ctx, room)
	if err != nil {
		t.Fatalf("first soft-delete failed: %v", err)
	}
	if first.IsActive {
		t.Error("room should be inactive after first soft-delete")
	}

	second, err := repo.SoftDelete(ctx, first)
	if err != nil {
		t.Fatalf("second soft-delete must not error: %v", err)
	}
	if second.IsActive {
		t.Error("room should stay inactive after second soft-delete")
	}
}

func TestRepository_RestoreRoundTrip(t *testing.T) {
	pg := common.NewPostgresHelper(t)
	defer pg.Close(t)
	pg.CleanDatabase(t)

	ctx := context.Background()
	repo := repository.NewPostgresMeetingRoomRepository(pg.DB)

	origDesc := "original description"
	room, err := repo.Create(ctx, model.MeetingRoomCreate{Name: "Boardroom", Description: &origDesc})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	deleted, err := repo.SoftDelete(ctx, room)
	if err != nil {
		t.Fatalf("soft-delete failed: %v", err)
	}

	// Restore with a payload that renames but leaves description absent:
	// supplied fields win, everything else keeps its pre-deletion value.
	restored, err := repo.Restore(ctx, deleted, model.MeetingRoomCreate{Name: "War Room"})
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	if restored.ID != room.ID {
		t.Errorf("restore changed the row id: %d != %d", restored.ID, room.ID)
	}
	if !restored.IsActive {
		t.Error("restored room should be active")
	}
	if restored.Name != "War Room" {
		t.Errorf("supplied name not applied: %q", restored.Name)
	}
	if restored.Description == nil || *restored.Description != origDesc {
		t.Error("unsupplied description should keep its prior value")
	}

	fetched, err := repo.FindByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if fetched == nil || !fetched.IsActive || fetched.Name != "War Room" {
		t.Errorf("persisted row does not match restore result: %+v", fetched)
	}
}

func TestRepository_FindByIDAbsentReturnsNil(t *testing.T) {
	pg := common.NewPostgresHelper(t)
	defer pg.Close(t)
	pg.CleanDatabase(t)

	repo := repository.NewPostgresMeetingRoomRepository(pg.DB)

	room, err := repo.FindByID(context.Background(), 99999)
	if err != nil {
		t.Fatalf("absent id must not error: %v", err)
	}
	if room != nil {
		t.Errorf("expected nil for absent id, got %+v", room)
	}
}

func TestRepository_CreateSetsLifecycleFields(t *testing.T) {
	pg := common.NewPostgresHelper(t)
	defer pg.Close(t)
	pg.CleanDatabase(t)

	repo := repository.NewPostgresMeetingRoomRepository(pg.DB)

	room, err := repo.Create(context.Background(), model.MeetingRoomCreate{Name: "Boardroom"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !room.IsActive {
		t.Error("fresh room should be active")
	}
	if room.Created.IsZero() {
		t.Error("created timestamp should be stamped")
	}
	if room.Updated != nil {
		t.Error("updated should be absent until the first mutation")
	}
}
