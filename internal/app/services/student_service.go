package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models"
	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/cache"
)

// StudentStore is the profile persistence surface.
type StudentStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Insert(ctx context.Context, student *models.Student) error
	UpdateByUserID(ctx context.Context, student *models.Student) (int64, error)
	UpdateAvatar(ctx context.Context, userID int64, avatarPath string) error
}

// AvatarStore saves uploaded avatars and resolves stored paths to URLs.
type AvatarStore interface {
	SaveAvatar(userID int64, fileHeader *multipart.FileHeader) (string, error)
	DeleteAvatar(path string) error
	ResolveURL(path string) string
	DefaultURL() string
}

// StudentService handles profile reads and writes. Reads go through the
// tagged cache; every write invalidates the profile tags before returning,
// so a read that follows a reported success always sees the new values.
type StudentService struct {
	studentRepo StudentStore
	avatars     AvatarStore
	store       *cache.Store
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo StudentStore, avatars AvatarStore, store *cache.Store, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		avatars:     avatars,
		store:       store,
		logger:      logger,
	}
}

func profileCacheKey(userID int64) string {
	return fmt.Sprintf("student:%d", userID)
}

func profileTags(userID int64) []string {
	return []string{
		fmt.Sprintf("student-%d", userID),
		fmt.Sprintf("profile-%d", userID),
		"students",
	}
}

func (s *StudentService) toProfileResponse(student *models.Student) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:         student.ID,
		FullName:   student.FullName,
		FatherName: student.FatherName,
		StudentID:  student.StudentID,
		RollNo:     student.RollNo,
		City:       student.City,
		Gender:     student.Gender,
		Email:      student.Email,
		Currently:  student.Currently,
		Course:     student.Course,
		Batch:      student.Batch,
		AvatarURL:  s.avatars.ResolveURL(student.Avatar),
		AdmitDate:  student.AdmitDate,
	}
}

// GetProfile returns the caller's profile, cached for an hour under the
// profile tags.
func (s *StudentService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	return cache.Fetch(ctx, s.store, profileCacheKey(userID), cacheTTLStandard, profileTags(userID),
		func(ctx context.Context) (*dto.ProfileResponse, error) {
			student, err := s.studentRepo.GetByUserID(ctx, userID)
			if err != nil {
				return nil, err
			}
			return s.toProfileResponse(student), nil
		})
}

// GetStudent returns the caller's raw profile row, bypassing the cache.
func (s *StudentService) GetStudent(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// UpdateProfile saves the caller's profile. The write probes with an update
// keyed on the owning account; when no row matches yet, it inserts instead.
// The profile row is therefore created lazily on first save.
func (s *StudentService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		student = &models.Student{UserID: userID}
	}

	applyProfileUpdate(student, req)

	rows, err := s.studentRepo.UpdateByUserID(ctx, student)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if err := s.studentRepo.Insert(ctx, student); err != nil {
			return nil, err
		}
	}

	s.store.Invalidate(profileTags(userID)...)
	s.logger.Info().Int64("userID", userID).Bool("inserted", rows == 0).Msg("Profile saved")

	return s.toProfileResponse(student), nil
}

// UploadAvatar stores a new avatar image and records its path on the profile
// row. Uploading before the first profile save creates the row.
func (s *StudentService) UploadAvatar(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.AvatarUploadResponse, error) {
	var previousPath string
	if existing, err := s.studentRepo.GetByUserID(ctx, userID); err == nil {
		previousPath = existing.Avatar
	} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	path, err := s.avatars.SaveAvatar(userID, fileHeader)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.UpdateAvatar(ctx, userID, path); err != nil {
		if !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		student := &models.Student{UserID: userID, Avatar: path}
		if err := s.studentRepo.Insert(ctx, student); err != nil {
			return nil, err
		}
	}

	// The replaced file is dead once the row points at the new path.
	// A failed removal leaves an orphan on disk, not a broken profile.
	if previousPath != "" && previousPath != path {
		if err := s.avatars.DeleteAvatar(previousPath); err != nil {
			s.logger.Warn().Err(err).Str("path", previousPath).Msg("Failed to remove replaced avatar")
		}
	}

	s.store.Invalidate(profileTags(userID)...)

	return &dto.AvatarUploadResponse{
		Path:      path,
		AvatarURL: s.avatars.ResolveURL(path),
	}, nil
}

// applyProfileUpdate overlays the provided fields onto the stored row.
// Omitted fields keep their current values.
func applyProfileUpdate(student *models.Student, req *dto.UpdateProfileRequest) {
	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.FatherName != nil {
		student.FatherName = *req.FatherName
	}
	if req.StudentID != nil {
		student.StudentID = *req.StudentID
	}
	if req.RollNo != nil {
		student.RollNo = *req.RollNo
	}
	if req.City != nil {
		student.City = *req.City
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Currently != nil {
		student.Currently = *req.Currently
	}
	if req.Course != nil {
		student.Course = *req.Course
	}
	if req.Batch != nil {
		student.Batch = *req.Batch
	}
	if req.Avatar != nil {
		student.Avatar = *req.Avatar
	}
}
