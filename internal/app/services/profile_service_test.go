package services

import (
	"context"
	"testing"

	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/upload"
)

type profileFixture struct {
	svc     ProfileService
	profile *fakeProfileStore
	uploads *fakeUploader
	media   *fakeMedia
}

func setupProfileService(t *testing.T) *profileFixture {
	t.Helper()

	f := &profileFixture{
		profile: &fakeProfileStore{},
		uploads: &fakeUploader{},
		media:   &fakeMedia{objects: make(map[string]*mediastore.Object)},
	}
	f.svc = NewProfileService(f.profile, f.uploads, f.media, upload.Limits{
		MaxSize:      5 << 20,
		AllowedTypes: []string{"image/jpeg", "image/png"},
	})
	return f
}

func TestProfileServiceGetReturnsDefault(t *testing.T) {
	f := setupProfileService(t)

	profile, err := f.svc.GetProfile(context.Background())
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.DisplayName == "" {
		t.Error("GetProfile() returned empty display name, want default")
	}
	if profile.Contact.Email == "" {
		t.Error("GetProfile() returned empty contact email, want default")
	}
}

func TestProfileServiceUpdate(t *testing.T) {
	f := setupProfileService(t)
	ctx := context.Background()

	phone := "+90 555 000 0000"
	updated, err := f.svc.UpdateProfile(ctx, &dto.UpdateProfileRequest{
		DisplayName: "Dr. Jane Roe",
		Title:       "Professor of Mathematics",
		Biography:   "Research interests include numerical analysis.",
		Contact: dto.ContactRequest{
			Email: "jane.roe@university.edu",
			Phone: &phone,
		},
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.DisplayName != "Dr. Jane Roe" {
		t.Errorf("UpdateProfile() displayName = %q", updated.DisplayName)
	}
	if updated.Contact.Phone == nil || *updated.Contact.Phone != phone {
		t.Error("UpdateProfile() lost the contact phone")
	}
}

func TestProfileServiceUpdatePhotoReplacesOld(t *testing.T) {
	f := setupProfileService(t)
	ctx := context.Background()

	first, err := f.svc.UpdatePhoto(ctx, makeFileHeader(t, "v1.png", []byte{0x89, 'P', 'N', 'G'}))
	if err != nil {
		t.Fatalf("UpdatePhoto() error = %v", err)
	}
	if first.PhotoURL == nil || *first.PhotoURL == "" {
		t.Fatal("UpdatePhoto() PhotoURL empty, want upload URL")
	}
	oldURL := *first.PhotoURL

	second, err := f.svc.UpdatePhoto(ctx, makeFileHeader(t, "v2.png", []byte{0x89, 'P', 'N', 'G'}))
	if err != nil {
		t.Fatalf("UpdatePhoto() second call error = %v", err)
	}
	if second.PhotoURL == nil || *second.PhotoURL == oldURL {
		t.Error("UpdatePhoto() did not replace the stored photo URL")
	}

	found := false
	for _, u := range f.media.deleted {
		if u == oldURL {
			found = true
		}
	}
	if !found {
		t.Errorf("previous photo %q was not removed, deleted = %v", oldURL, f.media.deleted)
	}
}
