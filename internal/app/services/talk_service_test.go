package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/pkg/apperrors"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/upload"
)

type talkFixture struct {
	svc     TalkService
	talks   *fakeTalkStore
	uploads *fakeUploader
	media   *fakeMedia
}

func setupTalkService(t *testing.T, now time.Time) *talkFixture {
	t.Helper()

	f := &talkFixture{
		talks:   newFakeTalkStore(),
		uploads: &fakeUploader{},
		media:   &fakeMedia{objects: make(map[string]*mediastore.Object)},
	}
	svc := NewTalkService(f.talks, f.uploads, f.media, upload.Limits{
		MaxSize:      5 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png"},
	})
	svc.(*talkServiceImpl).now = func() time.Time { return now }
	f.svc = svc
	return f
}

func TestTalkServiceCreateComputesStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want models.TalkStatus
	}{
		{name: "past date is completed", date: "2026-03-01", want: models.TalkCompleted},
		{name: "today is upcoming", date: "2026-03-15", want: models.TalkUpcoming},
		{name: "future date is upcoming", date: "2026-06-20", want: models.TalkUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTalkService(t, now)
			talk, err := f.svc.CreateTalk(context.Background(), &dto.CreateTalkRequest{
				Title: "Seminar",
				Date:  tt.date,
				Venue: "Room 101",
			}, nil)
			if err != nil {
				t.Fatalf("CreateTalk() error = %v", err)
			}
			if talk.Status != tt.want {
				t.Errorf("CreateTalk() status = %q, want %q", talk.Status, tt.want)
			}
		})
	}
}

func TestTalkServiceCreateWithFlyer(t *testing.T) {
	f := setupTalkService(t, time.Now())

	flyer := makeFileHeader(t, "flyer.png", []byte{0x89, 'P', 'N', 'G'})
	talk, err := f.svc.CreateTalk(context.Background(), &dto.CreateTalkRequest{
		Title: "Guest Lecture",
		Date:  "2099-01-01",
		Venue: "Main Hall",
	}, flyer)
	if err != nil {
		t.Fatalf("CreateTalk() error = %v", err)
	}
	if talk.FlyerURL == nil || *talk.FlyerURL == "" {
		t.Error("CreateTalk() FlyerURL empty, want upload URL")
	}
}

func TestTalkServiceUpdateStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	f := setupTalkService(t, now)
	ctx := context.Background()

	created, err := f.svc.CreateTalk(ctx, &dto.CreateTalkRequest{
		Title: "Seminar", Date: "2026-06-20", Venue: "Room 101",
	}, nil)
	if err != nil {
		t.Fatalf("CreateTalk() error = %v", err)
	}

	// Explicit status wins.
	updated, err := f.svc.UpdateTalk(ctx, created.ID, &dto.UpdateTalkRequest{
		Title: "Seminar", Date: "2026-06-20", Venue: "Room 101", Status: "cancelled",
	})
	if err != nil {
		t.Fatalf("UpdateTalk() error = %v", err)
	}
	if updated.Status != models.TalkCancelled {
		t.Errorf("UpdateTalk() status = %q, want cancelled", updated.Status)
	}

	// Empty status is recomputed from the (now past) date.
	updated, err = f.svc.UpdateTalk(ctx, created.ID, &dto.UpdateTalkRequest{
		Title: "Seminar", Date: "2026-03-01", Venue: "Room 101",
	})
	if err != nil {
		t.Fatalf("UpdateTalk() error = %v", err)
	}
	if updated.Status != models.TalkCompleted {
		t.Errorf("UpdateTalk() status = %q, want completed", updated.Status)
	}
}

func TestTalkServiceUpdateNotFound(t *testing.T) {
	f := setupTalkService(t, time.Now())

	_, err := f.svc.UpdateTalk(context.Background(), 99, &dto.UpdateTalkRequest{
		Title: "Ghost", Date: "2026-01-01", Venue: "Nowhere",
	})
	if !errors.Is(err, apperrors.ErrTalkNotFound) {
		t.Errorf("UpdateTalk() error = %v, want ErrTalkNotFound", err)
	}
}

func TestTalkServiceUploadFlyerReplacesOld(t *testing.T) {
	f := setupTalkService(t, time.Now())
	ctx := context.Background()

	created, err := f.svc.CreateTalk(ctx, &dto.CreateTalkRequest{
		Title: "Seminar", Date: "2099-01-01", Venue: "Room 101",
	}, makeFileHeader(t, "v1.png", []byte{0x89, 'P', 'N', 'G'}))
	if err != nil {
		t.Fatalf("CreateTalk() error = %v", err)
	}
	oldURL := *created.FlyerURL

	updated, err := f.svc.UploadFlyer(ctx, created.ID, makeFileHeader(t, "v2.png", []byte{0x89, 'P', 'N', 'G'}))
	if err != nil {
		t.Fatalf("UploadFlyer() error = %v", err)
	}
	if updated.FlyerURL == nil || *updated.FlyerURL == oldURL {
		t.Error("UploadFlyer() did not replace the stored flyer URL")
	}

	found := false
	for _, u := range f.media.deleted {
		if u == oldURL {
			found = true
		}
	}
	if !found {
		t.Errorf("previous flyer %q was not removed, deleted = %v", oldURL, f.media.deleted)
	}
}

func TestTalkServiceDelete(t *testing.T) {
	f := setupTalkService(t, time.Now())
	ctx := context.Background()

	created, err := f.svc.CreateTalk(ctx, &dto.CreateTalkRequest{
		Title: "Seminar", Date: "2099-01-01", Venue: "Room 101",
	}, makeFileHeader(t, "flyer.png", []byte{0x89, 'P', 'N', 'G'}))
	if err != nil {
		t.Fatalf("CreateTalk() error = %v", err)
	}

	if err := f.svc.DeleteTalk(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTalk() error = %v", err)
	}
	if _, err := f.svc.GetTalkByID(ctx, created.ID); !errors.Is(err, apperrors.ErrTalkNotFound) {
		t.Errorf("GetTalkByID() after delete error = %v, want ErrTalkNotFound", err)
	}

	found := false
	for _, u := range f.media.deleted {
		if u == *created.FlyerURL {
			found = true
		}
	}
	if !found {
		t.Error("flyer was not removed from the media host")
	}

	// Idempotent.
	if err := f.svc.DeleteTalk(ctx, created.ID); err != nil {
		t.Errorf("DeleteTalk() second call error = %v", err)
	}
}

func TestTalkServiceGetAllOrdering(t *testing.T) {
	f := setupTalkService(t, time.Now())
	ctx := context.Background()

	dates := []struct{ date, time string }{
		{"2026-06-20", "14:00"},
		{"2026-03-01", "09:00"},
		{"2026-06-20", "10:00"},
	}
	for _, d := range dates {
		if _, err := f.svc.CreateTalk(ctx, &dto.CreateTalkRequest{
			Title: "Talk", Date: d.date, Time: d.time, Venue: "Hall",
		}, nil); err != nil {
			t.Fatalf("CreateTalk() error = %v", err)
		}
	}

	talks, err := f.svc.GetAllTalks(ctx)
	if err != nil {
		t.Fatalf("GetAllTalks() error = %v", err)
	}
	want := []string{"2026-03-01", "2026-06-20", "2026-06-20"}
	for i, w := range want {
		if talks[i].Date != w {
			t.Errorf("talks[%d].Date = %s, want %s", i, talks[i].Date, w)
		}
	}
	if talks[1].Time != "10:00" {
		t.Errorf("talks[1].Time = %s, want 10:00 (time breaks the tie)", talks[1].Time)
	}
}
