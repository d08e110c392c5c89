package services

import (
	"context"
	"image"
	"os"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/idcard"
)

// AvatarReader opens stored avatar files and resolves paths to URLs.
type AvatarReader interface {
	Open(path string) (*os.File, error)
	ResolveURL(path string) string
}

// CardService builds the two-sided identity card from the caller's profile:
// PDF export for download and the HTML surface for printing.
type CardService struct {
	studentRepo StudentStore
	avatars     AvatarReader
	renderer    *idcard.Renderer
	logger      zerolog.Logger
}

// NewCardService creates a new CardService
func NewCardService(studentRepo StudentStore, avatars AvatarReader, renderer *idcard.Renderer, logger zerolog.Logger) *CardService {
	return &CardService{
		studentRepo: studentRepo,
		avatars:     avatars,
		renderer:    renderer,
		logger:      logger,
	}
}

// loadAvatar decodes the stored avatar image. A missing or unreadable file
// is not fatal; the card renders with a placeholder photo box instead.
func (s *CardService) loadAvatar(path string) image.Image {
	if path == "" {
		return nil
	}

	f, err := s.avatars.Open(path)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Card avatar not readable, rendering placeholder")
		return nil
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Card avatar not decodable, rendering placeholder")
		return nil
	}
	return img
}

// ExportPDF renders both card faces and composes the two-page download. Any
// face failing to render aborts the export; the client never receives a
// partial document.
func (s *CardService) ExportPDF(ctx context.Context, userID int64) ([]byte, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := idcard.FromStudent(student)
	avatar := s.loadAvatar(student.Avatar)

	front, err := s.renderer.RenderFront(data, avatar)
	if err != nil {
		return nil, s.renderError(userID, err)
	}
	back, err := s.renderer.RenderBack(data)
	if err != nil {
		return nil, s.renderError(userID, err)
	}

	pdfBytes, err := idcard.ExportPDF(front, back)
	if err != nil {
		return nil, s.renderError(userID, err)
	}

	return pdfBytes, nil
}

// PrintHTML renders the printable card surface. Incomplete profiles get the
// text fallback rather than an error.
func (s *CardService) PrintHTML(ctx context.Context, userID int64) (string, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	data := idcard.FromStudent(student)
	avatarURL := ""
	if student.Avatar != "" {
		avatarURL = s.avatars.ResolveURL(student.Avatar)
	}

	html, err := idcard.RenderPrintHTML(data, avatarURL)
	if err != nil {
		return "", s.renderError(userID, err)
	}
	return html, nil
}

func (s *CardService) renderError(userID int64, err error) error {
	if idcard.IsIncomplete(err) {
		return apperrors.NewBadRequestError("profile is missing the fields required for the ID card")
	}
	s.logger.Error().Err(err).Int64("userID", userID).Msg("Card export failed")
	return apperrors.NewCustomError(apperrors.ErrCardRenderFailed, "failed to export ID card")
}
