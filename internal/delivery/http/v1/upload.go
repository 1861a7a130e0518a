package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CodeWithNorayr/job-portal-platform-backend/internal/domain"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/apperror"
	"github.com/CodeWithNorayr/job-portal-platform-backend/pkg/upload"
)

// formUpload reads an optional multipart file field fully into memory.
// Returns nil with no error when the field is absent.
func formUpload(c *gin.Context, field string) (*domain.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperror.BadRequest(fmt.Sprintf("Invalid %s upload", field))
	}

	if header.Size > upload.MaxFileSize {
		return nil, apperror.BadRequest(fmt.Sprintf("File exceeds the %dMB limit", upload.MaxFileSize>>20))
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("Invalid %s upload", field))
	}
	defer file.Close()

	// LimitReader guards against a Size header that lies about the payload.
	data, err := io.ReadAll(io.LimitReader(file, upload.MaxFileSize+1))
	if err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("Failed to read %s upload", field))
	}
	if int64(len(data)) > upload.MaxFileSize {
		return nil, apperror.BadRequest(fmt.Sprintf("File exceeds the %dMB limit", upload.MaxFileSize>>20))
	}

	return &domain.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
