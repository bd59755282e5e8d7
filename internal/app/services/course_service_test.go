package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ozank/lectern/internal/app/models/dto"
	"github.com/ozank/lectern/internal/pkg/apperrors"
)

func TestCourseServiceLifecycle(t *testing.T) {
	courses := newFakeCourseStore()
	svc := NewCourseService(courses)
	ctx := context.Background()

	created, err := svc.CreateCourse(ctx, &dto.CreateCourseRequest{
		Title:    "Calculus I",
		Code:     "MTH101",
		Semester: "Fall",
		Session:  "2024/2025",
	})
	if err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateCourse() did not assign an id")
	}

	got, err := svc.GetCourseByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCourseByID() error = %v", err)
	}
	if got.Code != "MTH101" {
		t.Errorf("GetCourseByID() code = %q, want MTH101", got.Code)
	}

	updated, err := svc.UpdateCourse(ctx, created.ID, &dto.UpdateCourseRequest{
		Title:    "Calculus I",
		Code:     "MTH101",
		Semester: "Spring",
		Session:  "2025/2026",
	})
	if err != nil {
		t.Fatalf("UpdateCourse() error = %v", err)
	}
	if updated.Semester != "Spring" {
		t.Errorf("UpdateCourse() semester = %q, want Spring", updated.Semester)
	}

	if err := svc.DeleteCourse(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCourse() error = %v", err)
	}
	if _, err := svc.GetCourseByID(ctx, created.ID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("GetCourseByID() after delete error = %v, want ErrCourseNotFound", err)
	}

	// Deleting again is not an error.
	if err := svc.DeleteCourse(ctx, created.ID); err != nil {
		t.Errorf("DeleteCourse() second call error = %v", err)
	}
}

func TestCourseServiceUpdateNotFound(t *testing.T) {
	svc := NewCourseService(newFakeCourseStore())

	_, err := svc.UpdateCourse(context.Background(), 99, &dto.UpdateCourseRequest{
		Title:    "Ghost",
		Code:     "GST000",
		Semester: "Fall",
		Session:  "2024/2025",
	})
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("UpdateCourse() error = %v, want ErrCourseNotFound", err)
	}
}
