// Package storage keeps uploaded avatar images on local disk, served
// statically under /uploads.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"

	"github.com/pokecamp/backend/x/util"
)

var tracer = otel.Tracer("storage")

// Service is the interface for the avatar store
type Service interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, url string)
}

type service struct {
	config util.Config
}

// NewService creates a new storage service
func NewService(config util.Config) Service {
	return &service{config: config}
}

// Save writes the uploaded file as {unix-millis}-{original-name} and
// returns its public path.
func (s *service) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ctx, span := tracer.Start(ctx, "Storage.Service.Save")
	defer span.End()

	if err := os.MkdirAll(s.config.Server.UploadDir, 0o755); err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to create upload directory")
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))

	src, err := file.Open()
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.config.Server.UploadDir, name))
	if err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to create upload file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		span.RecordError(err)
		return "", errors.Wrap(err, "failed to write upload file")
	}

	return "/uploads/" + name, nil
}

// Remove unlinks the file behind an avatar URL. Shared default images
// and anything outside /uploads are left alone. Failures are logged
// and not retried.
func (s *service) Remove(ctx context.Context, url string) {
	ctx, span := tracer.Start(ctx, "Storage.Service.Remove")
	defer span.End()

	if url == "" || url == s.config.Site.DefaultTrainerImage || url == s.config.Site.DefaultPokemonImage {
		return
	}

	idx := strings.LastIndex(url, "/uploads/")
	if idx < 0 {
		return
	}
	name := url[idx+len("/uploads/"):]
	if name == "" {
		return
	}

	if err := os.Remove(filepath.Join(s.config.Server.UploadDir, filepath.Base(name))); err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to remove avatar file",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
	}
}
