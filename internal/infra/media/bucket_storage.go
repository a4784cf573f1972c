// Package media hosts uploaded avatars and cover images in a gocloud.dev bucket.
package media

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"vidhub/config"
	"vidhub/internal/domain/service"
	"vidhub/internal/errors"
	"vidhub/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers selectable through media.bucketURL.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

var _ service.MediaStorage = (*BucketStorage)(nil)

// ErrFileTooLarge is returned when the local file exceeds media.maxFileSize.
var ErrFileTooLarge = errors.New("file exceeds the maximum upload size")

// BucketStorage implements service.MediaStorage on top of a blob.Bucket.
type BucketStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	keyPrefix     string
	maxFileSize   int64
}

// Params defines the parameters required for the media host.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and closes it when the app stops.
func New(params Params) (*BucketStorage, error) {
	bucket, err := blob.OpenBucket(context.Background(), params.Config.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open media bucket %s", params.Config.Media.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing media bucket")

			return errors.WithStack(bucket.Close())
		},
	})

	return NewBucketStorage(bucket, params.Config.Media), nil
}

// NewBucketStorage wraps an already opened bucket.
func NewBucketStorage(bucket *blob.Bucket, cfg config.MediaConfig) *BucketStorage {
	return &BucketStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		keyPrefix:     strings.Trim(cfg.KeyPrefix, "/"),
		maxFileSize:   cfg.MaxFileSize,
	}
}

// Upload copies localPath into the bucket under
// <prefix>/<sha256>/<sanitized name> and returns its public URL.
// Identical content uploaded twice lands on the same key.
func (s *BucketStorage) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", errors.New("local path is required")
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to stat upload")
	}
	if info.IsDir() {
		return "", errors.Errorf("%s is a directory", localPath)
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return "", errors.Wrapf(ErrFileTooLarge, "%s > %s",
			util.FormatBytes(info.Size()), util.FormatBytes(s.maxFileSize))
	}

	sum, err := util.FileChecksum(localPath)
	if err != nil {
		return "", err
	}

	mtype, err := mimetype.DetectFile(localPath)
	if err != nil {
		return "", errors.Wrap(err, "failed to detect content type")
	}

	key := s.objectKey(sum, localPath)
	if err := s.write(ctx, key, localPath, mtype.String()); err != nil {
		return "", err
	}

	return s.URL(key), nil
}

// URL returns the public address of key.
func (s *BucketStorage) URL(key string) string {
	if s.publicBaseURL == "" {
		return "/" + key
	}

	return s.publicBaseURL + "/" + key
}

// Open returns a reader for key. The caller closes it.
func (s *BucketStorage) Open(ctx context.Context, key string) (*blob.Reader, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", key)
	}

	return reader, nil
}

func (s *BucketStorage) objectKey(sum, localPath string) string {
	name := util.SanitizeFilename(localPath)
	if s.keyPrefix == "" {
		return path.Join(sum, name)
	}

	return path.Join(s.keyPrefix, sum, name)
}

func (s *BucketStorage) write(ctx context.Context, key, localPath, contentType string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "failed to create writer for %s", key)
	}

	if _, err := io.Copy(writer, file); err != nil {
		// The copy error wins over the close error.
		_ = writer.Close()

		return errors.Wrapf(err, "failed to upload %s", key)
	}

	return errors.Wrapf(writer.Close(), "failed to commit %s", key)
}
