package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/ozank/lectern/internal/app/models"
	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/pkg/apperrors"
	"github.com/ozank/lectern/internal/pkg/mediastore"
	"github.com/ozank/lectern/internal/pkg/upload"
)

// makeFileHeader builds a real *multipart.FileHeader from in-memory content.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("part.Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("writer.Close() error = %v", err)
	}

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 10240)
	if err != nil {
		t.Fatalf("ReadForm() error = %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	headers := form.File["file"]
	if len(headers) != 1 {
		t.Fatalf("expected 1 file header, got %d", len(headers))
	}
	return headers[0]
}

type materialFixture struct {
	svc       MaterialService
	materials *fakeMaterialStore
	courses   *fakeCourseStore
	uploads   *fakeUploader
	media     *fakeMedia
}

func setupMaterialService(t *testing.T) *materialFixture {
	t.Helper()

	f := &materialFixture{
		materials: newFakeMaterialStore(),
		courses:   newFakeCourseStore(),
		uploads:   &fakeUploader{},
		media:     &fakeMedia{objects: make(map[string]*mediastore.Object)},
	}
	f.svc = NewMaterialService(f.materials, f.courses, f.uploads, f.media, upload.Limits{
		MaxSize:      50 << 20,
		AllowedTypes: []string{"application/pdf"},
	})
	return f
}

func (f *materialFixture) seedCourse(t *testing.T) int64 {
	t.Helper()
	course := &models.Course{Title: "Calculus I", Code: "MTH101", Semester: "Fall", Session: "2024/2025"}
	if err := f.courses.Create(context.Background(), course); err != nil {
		t.Fatalf("seed course error = %v", err)
	}
	return course.ID
}

func TestMaterialServiceCreate(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	req := &dto.CreateMaterialRequest{Title: "Week 5 Notes", Type: "notes"}
	material, err := f.svc.CreateMaterial(ctx, courseID, req, makeFileHeader(t, "notes.pdf", []byte("%PDF-1.4 content")))
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}
	if material.ID == 0 {
		t.Error("CreateMaterial() did not assign an id")
	}
	if material.Type != models.MaterialNotes {
		t.Errorf("CreateMaterial() type = %q, want notes", material.Type)
	}
	if material.FileURL == "" {
		t.Error("CreateMaterial() returned empty file URL")
	}
	if material.DueAt != nil {
		t.Error("CreateMaterial() set DueAt for a non-assignment")
	}
}

func TestMaterialServiceCreateAssignmentDueDate(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	req := &dto.CreateMaterialRequest{Title: "Problem Set 3", Type: "assignment", DueDate: "2026-10-01"}
	material, err := f.svc.CreateMaterial(ctx, courseID, req, makeFileHeader(t, "ps3.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}
	if material.DueAt == nil {
		t.Fatal("CreateMaterial() DueAt = nil, want parsed date")
	}
	if got := material.DueAt.Format("2006-01-02"); got != "2026-10-01" {
		t.Errorf("CreateMaterial() DueAt = %s, want 2026-10-01", got)
	}
}

func TestMaterialServiceCreateBadDueDate(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	req := &dto.CreateMaterialRequest{Title: "Problem Set 3", Type: "assignment", DueDate: "01/10/2026"}
	_, err := f.svc.CreateMaterial(ctx, courseID, req, makeFileHeader(t, "ps3.pdf", []byte("%PDF-1.4")))
	if err == nil {
		t.Fatal("CreateMaterial() error = nil, want due date error")
	}
	// The file must not have reached the media host.
	if len(f.uploads.uploads) != 0 {
		t.Errorf("CreateMaterial() uploaded %d files despite rejected metadata", len(f.uploads.uploads))
	}
}

func TestMaterialServiceCreateUnknownCourse(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()

	req := &dto.CreateMaterialRequest{Title: "Notes", Type: "notes"}
	_, err := f.svc.CreateMaterial(ctx, 99, req, makeFileHeader(t, "notes.pdf", []byte("%PDF-1.4")))
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("CreateMaterial() error = %v, want ErrCourseNotFound", err)
	}
	if len(f.uploads.uploads) != 0 {
		t.Error("CreateMaterial() uploaded a file for a missing course")
	}
}

func TestMaterialServiceCreateCleansUpOnRepoFailure(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)
	f.materials.createErr = errors.New("insert failed")

	req := &dto.CreateMaterialRequest{Title: "Notes", Type: "notes"}
	_, err := f.svc.CreateMaterial(ctx, courseID, req, makeFileHeader(t, "notes.pdf", []byte("%PDF-1.4")))
	if err == nil {
		t.Fatal("CreateMaterial() error = nil, want repo error")
	}
	if len(f.uploads.uploads) != 1 {
		t.Fatalf("expected one upload attempt, got %d", len(f.uploads.uploads))
	}
	if len(f.media.deleted) != 1 || f.media.deleted[0] != f.uploads.uploads[0] {
		t.Errorf("orphaned object was not removed, deleted = %v", f.media.deleted)
	}
}

func TestMaterialServiceGetCourseMaterials(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	for _, title := range []string{"Week 1", "Week 2"} {
		req := &dto.CreateMaterialRequest{Title: title, Type: "notes"}
		if _, err := f.svc.CreateMaterial(ctx, courseID, req, makeFileHeader(t, "f.pdf", []byte("%PDF-1.4"))); err != nil {
			t.Fatalf("CreateMaterial() error = %v", err)
		}
	}

	materials, err := f.svc.GetCourseMaterials(ctx, courseID)
	if err != nil {
		t.Fatalf("GetCourseMaterials() error = %v", err)
	}
	if len(materials) != 2 {
		t.Errorf("GetCourseMaterials() returned %d materials, want 2", len(materials))
	}

	if _, err := f.svc.GetCourseMaterials(ctx, 99); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("GetCourseMaterials() for unknown course error = %v, want ErrCourseNotFound", err)
	}
}

func TestMaterialServiceDownload(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	req := &dto.CreateMaterialRequest{Title: "Week 5 Lecture Notes", Type: "notes"}
	material, err := f.svc.CreateMaterial(ctx, courseID, req, makeFileHeader(t, "week5.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}

	f.media.objects[material.FileURL] = &mediastore.Object{
		Body:        io.NopCloser(strings.NewReader("%PDF-1.4")),
		ContentType: "application/pdf",
		Size:        8,
	}

	download, err := f.svc.DownloadMaterial(ctx, material.ID)
	if err != nil {
		t.Fatalf("DownloadMaterial() error = %v", err)
	}
	defer download.Object.Body.Close()

	if !strings.HasSuffix(download.Filename, ".pdf") {
		t.Errorf("DownloadMaterial() filename = %q, want .pdf suffix", download.Filename)
	}
	if !strings.HasPrefix(download.Filename, "Week 5 Lecture Notes") {
		t.Errorf("DownloadMaterial() filename = %q, want title prefix", download.Filename)
	}
}

func TestMaterialServiceDownloadFailures(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	if _, err := f.svc.DownloadMaterial(ctx, 99); !errors.Is(err, apperrors.ErrMaterialNotFound) {
		t.Errorf("DownloadMaterial() error = %v, want ErrMaterialNotFound", err)
	}

	req := &dto.CreateMaterialRequest{Title: "Notes", Type: "notes"}
	material, err := f.svc.CreateMaterial(ctx, courseID, req, makeFileHeader(t, "f.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}

	f.media.fetchErr = errors.New("bucket unreachable")
	if _, err := f.svc.DownloadMaterial(ctx, material.ID); !errors.Is(err, apperrors.ErrMediaHostFailure) {
		t.Errorf("DownloadMaterial() error = %v, want ErrMediaHostFailure", err)
	}
}

func TestMaterialServiceDelete(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	req := &dto.CreateMaterialRequest{Title: "Notes", Type: "notes"}
	material, err := f.svc.CreateMaterial(ctx, courseID, req, makeFileHeader(t, "f.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}

	if err := f.svc.DeleteMaterial(ctx, material.ID); err != nil {
		t.Fatalf("DeleteMaterial() error = %v", err)
	}
	if _, err := f.svc.GetMaterialByID(ctx, material.ID); !errors.Is(err, apperrors.ErrMaterialNotFound) {
		t.Errorf("GetMaterialByID() after delete error = %v, want ErrMaterialNotFound", err)
	}
	if len(f.media.deleted) != 1 || f.media.deleted[0] != material.FileURL {
		t.Errorf("remote file was not removed, deleted = %v", f.media.deleted)
	}

	// Deleting a missing material is not an error.
	if err := f.svc.DeleteMaterial(ctx, material.ID); err != nil {
		t.Errorf("DeleteMaterial() second call error = %v", err)
	}
}

func TestCourseDeleteLeavesMaterials(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()
	courseID := f.seedCourse(t)

	req := &dto.CreateMaterialRequest{Title: "Notes", Type: "notes"}
	material, err := f.svc.CreateMaterial(ctx, courseID, req, makeFileHeader(t, "f.pdf", []byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}

	courseSvc := NewCourseService(f.courses)
	if err := courseSvc.DeleteCourse(ctx, courseID); err != nil {
		t.Fatalf("DeleteCourse() error = %v", err)
	}

	// Materials survive their course; only an explicit material delete
	// removes them.
	kept, err := f.svc.GetMaterialByID(ctx, material.ID)
	if err != nil {
		t.Fatalf("GetMaterialByID() after course delete error = %v", err)
	}
	if kept.CourseID != courseID {
		t.Errorf("material course id = %d, want %d", kept.CourseID, courseID)
	}
	if len(f.media.deleted) != 0 {
		t.Errorf("course delete removed remote objects: %v", f.media.deleted)
	}
}
