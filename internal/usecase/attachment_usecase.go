package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/apperror"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/upload"
)

type attachmentLifecycle struct {
	store domain.AttachmentStore
	log   *slog.Logger
}

// NewAttachmentLifecycle creates the manager that stages uploads and
// releases store-hosted objects for account mutations.
func NewAttachmentLifecycle(store domain.AttachmentStore, log *slog.Logger) domain.AttachmentLifecycle {
	return &attachmentLifecycle{store: store, log: log}
}

// Stage validates the raw file against the field's allow-list, downscales
// oversized images, and uploads to a folder derived from the account and
// field kinds. The storage key is returned alongside the URL so later
// deletes never have to re-derive it.
func (l *attachmentLifecycle) Stage(ctx context.Context, kind domain.AccountKind, field domain.AttachmentField, up *domain.Upload) (*domain.AttachmentRef, error) {
	if up == nil || len(up.Data) == 0 {
		return nil, apperror.BadRequest("No file provided")
	}

	data := up.Data
	contentType := up.ContentType

	switch field {
	case domain.FieldImage:
		if err := upload.ValidateImage(contentType, data); err != nil {
			return nil, mapUploadErr(err)
		}
		if scaled, scaledType, err := upload.DownscaleImage(data, contentType, upload.MaxImageDimension); err == nil {
			data, contentType = scaled, scaledType
		} else {
			l.log.Warn("image downscale failed, storing original", "filename", up.Filename, "error", err)
		}
	case domain.FieldResume:
		if err := upload.ValidateDocument(contentType, data); err != nil {
			return nil, mapUploadErr(err)
		}
	default:
		return nil, apperror.BadRequest("Unknown attachment field")
	}

	stem := strings.TrimSuffix(up.Filename, filepath.Ext(up.Filename))
	key := fmt.Sprintf("%s/%d-%s",
		domain.AttachmentFolder(kind, field),
		time.Now().UnixMilli(),
		upload.SanitizeFilename(stem),
	)

	url, err := l.store.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.AttachmentRef{URL: url, Key: key}, nil
}

// Release deletes the referenced object when it is store-hosted. Failures
// are logged and swallowed: the account mutation that triggered the release
// is authoritative, and a delete of an already-removed object is benign.
func (l *attachmentLifecycle) Release(ctx context.Context, ref domain.AttachmentRef) {
	if ref.Key == "" {
		if ref.URL == "" || !l.store.Owns(ref.URL) {
			return
		}
	}

	key, ok := ref.StorageKey()
	if !ok {
		l.log.Warn("could not derive storage key for attachment", "url", ref.URL)
		return
	}

	if err := l.store.Delete(ctx, key); err != nil {
		l.log.Error("failed to delete attachment", "key", key, "error", err)
	}
}

func mapUploadErr(err error) error {
	switch {
	case errors.Is(err, upload.ErrUnsupportedMediaType):
		return apperror.BadRequest("Only .png, .jpg, .jpeg, .webp images or PDF/Word documents are allowed")
	case errors.Is(err, upload.ErrFileTooLarge):
		return apperror.BadRequest("File exceeds the 15 MiB upload limit")
	default:
		return apperror.Internal(err)
	}
}
