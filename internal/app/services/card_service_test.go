package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/idcard"
)

type mockAvatarReader struct{}

func (m *mockAvatarReader) Open(path string) (*os.File, error) {
	return nil, os.ErrNotExist
}

func (m *mockAvatarReader) ResolveURL(path string) string {
	return "http://portal/" + path
}

func cardStudentStore(student *models.Student) *mockStudentStore {
	return &mockStudentStore{
		getByUserIDFn: func(_ context.Context, userID int64) (*models.Student, error) {
			if student == nil {
				return nil, apperrors.ErrStudentNotFound
			}
			return student, nil
		},
	}
}

func completeStudent() *models.Student {
	admit := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	return &models.Student{
		ID: 31, UserID: 5,
		FullName:  "Ahmed Khan",
		RollNo:    "154",
		StudentID: "QT-2024-0154",
		Email:     "ahmed@quicktech.edu.pk",
		AdmitDate: &admit,
	}
}

func TestExportPDFSuccess(t *testing.T) {
	svc := NewCardService(cardStudentStore(completeStudent()), &mockAvatarReader{}, &idcard.Renderer{}, zerolog.Nop())

	pdf, err := svc.ExportPDF(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestExportPDFIncompleteProfile(t *testing.T) {
	student := completeStudent()
	student.RollNo = ""
	svc := NewCardService(cardStudentStore(student), &mockAvatarReader{}, &idcard.Renderer{}, zerolog.Nop())

	_, err := svc.ExportPDF(context.Background(), 5)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("incomplete profile must be a bad request, got %v", err)
	}
}

func TestExportPDFNoProfile(t *testing.T) {
	svc := NewCardService(cardStudentStore(nil), &mockAvatarReader{}, &idcard.Renderer{}, zerolog.Nop())

	_, err := svc.ExportPDF(context.Background(), 5)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestPrintHTMLComplete(t *testing.T) {
	student := completeStudent()
	student.Avatar = "5/a.png"
	svc := NewCardService(cardStudentStore(student), &mockAvatarReader{}, &idcard.Renderer{}, zerolog.Nop())

	html, err := svc.PrintHTML(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "Ahmed Khan") {
		t.Error("print surface missing the student name")
	}
	if !strings.Contains(html, `src="http://portal/5/a.png"`) {
		t.Error("avatar path must be resolved to a URL for the print surface")
	}
}

func TestPrintHTMLIncompleteFallsBack(t *testing.T) {
	student := completeStudent()
	student.Email = ""
	svc := NewCardService(cardStudentStore(student), &mockAvatarReader{}, &idcard.Renderer{}, zerolog.Nop())

	html, err := svc.PrintHTML(context.Background(), 5)
	if err != nil {
		t.Fatalf("incomplete profile prints the text fallback, got %v", err)
	}
	if !strings.Contains(html, "<pre>") {
		t.Error("expected the text fallback rendering")
	}
}
