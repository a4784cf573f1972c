package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"

	"vidhub/config"
	domainerrors "vidhub/internal/domain/errors"
	"vidhub/internal/errors"
	"vidhub/internal/util"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadStager copies multipart files into the temp directory so the media
// host can read them from disk.
type UploadStager struct {
	tempDir string
	maxSize int64
	logger  *slog.Logger
}

// NewUploadStager is the constructor for UploadStager.
func NewUploadStager(cfg *config.Config, logger *slog.Logger) *UploadStager {
	return &UploadStager{
		tempDir: cfg.Media.TempDir,
		maxSize: cfg.Media.MaxFileSize,
		logger:  logger,
	}
}

// Stage writes the single file sent in field to disk. It returns "" when the
// field is absent and rejects more than one file per field.
func (s *UploadStager) Stage(c echo.Context, field string) (string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", domainerrors.ErrValidationFailed.WithDetails("request must be multipart/form-data")
	}

	files := form.File[field]
	switch len(files) {
	case 0:
		return "", nil
	case 1:
	default:
		return "", domainerrors.ErrValidationFailed.WithDetails("only one " + field + " file is allowed")
	}

	header := files[0]
	if s.maxSize > 0 && header.Size > s.maxSize {
		return "", domainerrors.ErrValidationFailed.WithDetails(field + " exceeds " + util.FormatBytes(s.maxSize))
	}

	return s.save(header)
}

// Cleanup removes a staged file together with its directory.
func (s *UploadStager) Cleanup(localPath string) {
	if localPath == "" {
		return
	}

	if err := os.RemoveAll(filepath.Dir(localPath)); err != nil {
		s.logger.Warn("Failed to remove staged upload", slog.String("path", localPath), slog.Any("error", err))
	}
}

func (s *UploadStager) save(header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", errors.Wrap(err, "failed to open multipart file")
	}
	defer src.Close()

	dir := filepath.Join(s.tempDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", errors.Wrap(err, "failed to create staging directory")
	}

	localPath := filepath.Join(dir, util.SanitizeFilename(header.Filename))
	dst, err := os.OpenFile(localPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		_ = os.RemoveAll(dir)

		return "", errors.Wrap(err, "failed to create staged file")
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.RemoveAll(dir)

		return "", errors.Wrap(err, "failed to write staged file")
	}

	if err := dst.Close(); err != nil {
		_ = os.RemoveAll(dir)

		return "", errors.Wrap(err, "failed to close staged file")
	}

	return localPath, nil
}
