package filestorage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/quicktech/studentportal/internal/pkg/apperrors"
	"github.com/quicktech/studentportal/internal/pkg/logger"
)

// maxAvatarDim bounds stored avatars; anything larger is downscaled on upload.
const maxAvatarDim = 512

var allowedAvatarExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// AvatarStorage saves avatar uploads under a local root and resolves stored
// paths to public URLs. A missing or unresolvable path always resolves to
// the fixed default avatar, never an error.
type AvatarStorage struct {
	basePath   string
	baseURL    string
	defaultURL string
}

// NewAvatarStorage creates the storage root if needed.
func NewAvatarStorage(basePath, baseURL, defaultURL string) (*AvatarStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create avatar storage directory")
		return nil, fmt.Errorf("failed to create avatar storage directory %s: %w", basePath, err)
	}

	return &AvatarStorage{
		basePath:   basePath,
		baseURL:    strings.TrimRight(baseURL, "/"),
		defaultURL: defaultURL,
	}, nil
}

// SaveAvatar stores an uploaded avatar under "{userID}/{unix-ts}.{ext}" and
// returns that relative path. Oversized images are scaled down to fit
// maxAvatarDim before writing.
func (s *AvatarStorage) SaveAvatar(userID int64, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", apperrors.NewBadRequestError("no file uploaded")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedAvatarExts[ext] {
		return "", apperrors.NewBadRequestError(fmt.Sprintf("unsupported avatar format %q", ext))
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded avatar")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", apperrors.NewBadRequestError("uploaded file is not a decodable image")
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxAvatarDim || bounds.Dy() > maxAvatarDim {
		img = imaging.Fit(img, maxAvatarDim, maxAvatarDim, imaging.Lanczos)
	}

	relPath := fmt.Sprintf("%d/%d%s", userID, time.Now().Unix(), ext)
	dstPath := filepath.Join(s.basePath, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create avatar subdirectory: %w", err)
	}

	if err := imaging.Save(img, dstPath); err != nil {
		_ = os.Remove(dstPath)
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to save avatar")
		return "", fmt.Errorf("failed to save avatar: %w", err)
	}

	logger.Info().Int64("userID", userID).Str("path", relPath).Msg("Avatar saved")
	return relPath, nil
}

// ResolveURL converts a stored avatar path to a fetchable URL. Empty paths
// and paths whose file no longer exists resolve to the default avatar.
func (s *AvatarStorage) ResolveURL(avatarPath string) string {
	if avatarPath == "" {
		return s.defaultURL
	}

	physical := filepath.Join(s.basePath, filepath.FromSlash(avatarPath))
	if _, err := os.Stat(physical); err != nil {
		return s.defaultURL
	}

	return s.baseURL + "/" + path.Clean(avatarPath)
}

// Open loads a stored avatar for server-side rendering. Returns an error
// when the path is empty or the file is unreadable.
func (s *AvatarStorage) Open(avatarPath string) (*os.File, error) {
	if avatarPath == "" {
		return nil, fmt.Errorf("empty avatar path")
	}
	return os.Open(filepath.Join(s.basePath, filepath.FromSlash(avatarPath)))
}

// DeleteAvatar removes a stored avatar. Deleting an absent file is not an
// error (idempotent).
func (s *AvatarStorage) DeleteAvatar(avatarPath string) error {
	if avatarPath == "" {
		return nil
	}

	physical := filepath.Join(s.basePath, filepath.FromSlash(avatarPath))
	if _, err := os.Stat(physical); os.IsNotExist(err) {
		logger.Warn().Str("path", physical).Msg("Avatar to delete does not exist")
		return nil
	}

	if err := os.Remove(physical); err != nil {
		logger.Error().Err(err).Str("path", physical).Msg("Failed to delete avatar")
		return fmt.Errorf("failed to delete avatar: %w", err)
	}

	return nil
}

// DefaultURL exposes the configured placeholder avatar URL.
func (s *AvatarStorage) DefaultURL() string {
	return s.defaultURL
}
