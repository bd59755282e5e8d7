package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/pkg/apperrors"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/upload"
)

type publicationFixture struct {
	svc          PublicationService
	publications *fakePublicationStore
	uploads      *fakeUploader
	media        *fakeMedia
}

func setupPublicationService(t *testing.T) *publicationFixture {
	t.Helper()

	f := &publicationFixture{
		publications: newFakePublicationStore(),
		uploads:      &fakeUploader{},
		media:        &fakeMedia{objects: make(map[string]*mediastore.Object)},
	}
	f.svc = NewPublicationService(f.publications, f.uploads, f.media, upload.Limits{
		MaxSize:      50 << 20,
		AllowedTypes: []string{"application/pdf"},
	})
	return f
}

func samplePublicationRequest() *dto.CreatePublicationRequest {
	return &dto.CreatePublicationRequest{
		Title: "On the Convergence of Things",
		Authors: []dto.AuthorRequest{
			{Name: "Jane Roe", IsMainAuthor: true},
			{Name: "John Smith"},
			{Name: "Ada Byron"},
		},
		Type:   "journal",
		Year:   2024,
		Status: "published",
	}
}

func TestPublicationServiceCreatePreservesAuthorOrder(t *testing.T) {
	f := setupPublicationService(t)
	ctx := context.Background()

	pub, err := f.svc.CreatePublication(ctx, samplePublicationRequest(), nil)
	if err != nil {
		t.Fatalf("CreatePublication() error = %v", err)
	}
	if pub.ID == 0 {
		t.Error("CreatePublication() did not assign an id")
	}
	if pub.PdfURL != nil {
		t.Error("CreatePublication() set PdfURL without a file")
	}

	wantOrder := []string{"Jane Roe", "John Smith", "Ada Byron"}
	if len(pub.Authors) != len(wantOrder) {
		t.Fatalf("CreatePublication() returned %d authors, want %d", len(pub.Authors), len(wantOrder))
	}
	for i, want := range wantOrder {
		if pub.Authors[i].Name != want {
			t.Errorf("author[%d] = %q, want %q", i, pub.Authors[i].Name, want)
		}
		if pub.Authors[i].Position != i {
			t.Errorf("author[%d].Position = %d, want %d", i, pub.Authors[i].Position, i)
		}
	}
	if !pub.Authors[0].IsMainAuthor {
		t.Error("first author lost its main author flag")
	}
}

func TestPublicationServiceCreateWithPdf(t *testing.T) {
	f := setupPublicationService(t)
	ctx := context.Background()

	pdf := makeFileHeader(t, "paper.pdf", []byte("%PDF-1.4 paper"))
	pub, err := f.svc.CreatePublication(ctx, samplePublicationRequest(), pdf)
	if err != nil {
		t.Fatalf("CreatePublication() error = %v", err)
	}
	if pub.PdfURL == nil || *pub.PdfURL == "" {
		t.Fatal("CreatePublication() PdfURL empty, want upload URL")
	}
}

func TestPublicationServiceCreateCleansUpPdfOnRepoFailure(t *testing.T) {
	f := setupPublicationService(t)
	ctx := context.Background()
	f.publications.createErr = errors.New("insert failed")

	pdf := makeFileHeader(t, "paper.pdf", []byte("%PDF-1.4 paper"))
	if _, err := f.svc.CreatePublication(ctx, samplePublicationRequest(), pdf); err == nil {
		t.Fatal("CreatePublication() error = nil, want repo error")
	}
	if len(f.media.deleted) != 1 {
		t.Errorf("orphaned pdf was not removed, deleted = %v", f.media.deleted)
	}
}

func TestPublicationServiceUpdateKeepsPdf(t *testing.T) {
	f := setupPublicationService(t)
	ctx := context.Background()

	pdf := makeFileHeader(t, "paper.pdf", []byte("%PDF-1.4"))
	created, err := f.svc.CreatePublication(ctx, samplePublicationRequest(), pdf)
	if err != nil {
		t.Fatalf("CreatePublication() error = %v", err)
	}

	updated, err := f.svc.UpdatePublication(ctx, created.ID, &dto.UpdatePublicationRequest{
		Title: "On the Convergence of Things, Revised",
		Authors: []dto.AuthorRequest{
			{Name: "Jane Roe", IsMainAuthor: true},
		},
		Type:   "journal",
		Year:   2025,
		Status: "accepted",
	})
	if err != nil {
		t.Fatalf("UpdatePublication() error = %v", err)
	}
	if updated.Year != 2025 {
		t.Errorf("UpdatePublication() year = %d, want 2025", updated.Year)
	}
	if len(updated.Authors) != 1 {
		t.Errorf("UpdatePublication() authors = %d, want 1", len(updated.Authors))
	}
	if updated.PdfURL == nil || *updated.PdfURL != *created.PdfURL {
		t.Error("UpdatePublication() should leave the stored pdf untouched")
	}
}

func TestPublicationServiceUpdateNotFound(t *testing.T) {
	f := setupPublicationService(t)
	ctx := context.Background()

	_, err := f.svc.UpdatePublication(ctx, 99, &dto.UpdatePublicationRequest{
		Title:   "Ghost",
		Authors: []dto.AuthorRequest{{Name: "Nobody"}},
		Type:    "other",
		Year:    2024,
		Status:  "published",
	})
	if !errors.Is(err, apperrors.ErrPublicationNotFound) {
		t.Errorf("UpdatePublication() error = %v, want ErrPublicationNotFound", err)
	}
}

func TestPublicationServiceUploadPdfReplacesOld(t *testing.T) {
	f := setupPublicationService(t)
	ctx := context.Background()

	created, err := f.svc.CreatePublication(ctx, samplePublicationRequest(), makeFileHeader(t, "v1.pdf", []byte("%PDF-1.4 v1")))
	if err != nil {
		t.Fatalf("CreatePublication() error = %v", err)
	}
	oldURL := *created.PdfURL

	updated, err := f.svc.UploadPdf(ctx, created.ID, makeFileHeader(t, "v2.pdf", []byte("%PDF-1.4 v2")))
	if err != nil {
		t.Fatalf("UploadPdf() error = %v", err)
	}
	if updated.PdfURL == nil || *updated.PdfURL == oldURL {
		t.Error("UploadPdf() did not replace the stored pdf URL")
	}

	found := false
	for _, u := range f.media.deleted {
		if u == oldURL {
			found = true
		}
	}
	if !found {
		t.Errorf("previous pdf %q was not removed, deleted = %v", oldURL, f.media.deleted)
	}
}

func TestPublicationServiceUploadPdfUnknownPublication(t *testing.T) {
	f := setupPublicationService(t)
	ctx := context.Background()

	_, err := f.svc.UploadPdf(ctx, 99, makeFileHeader(t, "v1.pdf", []byte("%PDF-1.4")))
	if !errors.Is(err, apperrors.ErrPublicationNotFound) {
		t.Errorf("UploadPdf() error = %v, want ErrPublicationNotFound", err)
	}
	// The fresh upload must not be left behind.
	if len(f.uploads.uploads) == 1 && (len(f.media.deleted) != 1 || f.media.deleted[0] != f.uploads.uploads[0]) {
		t.Errorf("orphaned pdf was not removed, deleted = %v", f.media.deleted)
	}
}

func TestPublicationServiceDelete(t *testing.T) {
	f := setupPublicationService(t)
	ctx := context.Background()

	created, err := f.svc.CreatePublication(ctx, samplePublicationRequest(), makeFileHeader(t, "p.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("CreatePublication() error = %v", err)
	}

	if err := f.svc.DeletePublication(ctx, created.ID); err != nil {
		t.Fatalf("DeletePublication() error = %v", err)
	}
	if _, err := f.svc.GetPublicationByID(ctx, created.ID); !errors.Is(err, apperrors.ErrPublicationNotFound) {
		t.Errorf("GetPublicationByID() after delete error = %v, want ErrPublicationNotFound", err)
	}

	found := false
	for _, u := range f.media.deleted {
		if u == *created.PdfURL {
			found = true
		}
	}
	if !found {
		t.Error("publication pdf was not removed from the media host")
	}

	// Idempotent.
	if err := f.svc.DeletePublication(ctx, created.ID); err != nil {
		t.Errorf("DeletePublication() second call error = %v", err)
	}
}
