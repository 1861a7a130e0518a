package domain

import (
	"context"
	"path"
	"strings"
)

// AccountKind distinguishes the two principal variants.
type AccountKind string

const (
	AccountKindUser    AccountKind = "user"
	AccountKindCompany AccountKind = "company"
)

// AttachmentField names the account fields that can carry an attachment.
type AttachmentField string

const (
	FieldImage  AttachmentField = "image"
	FieldResume AttachmentField = "resume"
)

// AttachmentFolder derives the storage folder for an account/field pair,
// e.g. "users/images" or "companies/images".
func AttachmentFolder(kind AccountKind, field AttachmentField) string {
	return string(kind) + "s/" + string(field) + "s"
}

// Upload is a raw file received from a client, decoupled from the
// multipart layer.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// AttachmentRef points at a stored object. Key is the storage identifier
// recorded at upload time; URL is the public address served to clients.
// Records written before keys were persisted carry only the URL.
type AttachmentRef struct {
	URL string
	Key string
}

// StorageKey returns the identifier to delete the object under. When the
// key was not recorded it is reconstructed from the URL path: the folder is
// the second-to-last segment and the filename stem is the last segment with
// its extension removed.
func (r AttachmentRef) StorageKey() (string, bool) {
	if r.Key != "" {
		return r.Key, true
	}
	trimmed := strings.Trim(r.URL, "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", false
	}
	folder := parts[len(parts)-2]
	last := parts[len(parts)-1]
	stem := strings.TrimSuffix(last, path.Ext(last))
	if folder == "" || stem == "" {
		return "", false
	}
	return folder + "/" + stem, true
}

// AttachmentStore is the external object-storage service.
type AttachmentStore interface {
	// Upload writes the object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
	// Owns reports whether the URL points into this store.
	Owns(rawURL string) bool
}

// AttachmentLifecycle stages uploads and releases store-hosted objects on
// behalf of account mutations.
type AttachmentLifecycle interface {
	// Stage validates and uploads a raw file for the given account field.
	Stage(ctx context.Context, kind AccountKind, field AttachmentField, up *Upload) (*AttachmentRef, error)
	// Release deletes the referenced object if it is store-hosted.
	// Failures are logged, never propagated: the record mutation that
	// triggered the release is authoritative.
	Release(ctx context.Context, ref AttachmentRef)
}
