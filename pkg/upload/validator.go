package upload

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
)

// MaxFileSize is the hard ceiling for any uploaded file.
const MaxFileSize = 15 << 20 // 15 MiB

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFileTooLarge         = errors.New("file exceeds maximum size")
)

// Allowed media types per attachment category.
var (
	imageMIMETypes = map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
		"image/webp": true,
	}
	documentMIMETypes = map[string]bool{
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	}
)

// Magic byte signatures for the allowed media types. Declared content types
// are not trusted on their own; the payload must match.
var magicBytes = map[string][][]byte{
	"image/png":          {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"image/jpeg":         {{0xFF, 0xD8, 0xFF}},
	"image/jpg":          {{0xFF, 0xD8, 0xFF}},
	"image/webp":         {{0x52, 0x49, 0x46, 0x46}}, // RIFF header
	"application/pdf":    {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	"application/msword": {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {{0x50, 0x4B, 0x03, 0x04}}, // ZIP (PK..)
}

// ValidateImage checks a declared content type and payload against the
// image allow-list.
func ValidateImage(contentType string, data []byte) error {
	return validate(imageMIMETypes, contentType, data)
}

// ValidateDocument checks a declared content type and payload against the
// document allow-list (PDF/Word).
func ValidateDocument(contentType string, data []byte) error {
	return validate(documentMIMETypes, contentType, data)
}

func validate(allowed map[string]bool, contentType string, data []byte) error {
	mime := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !allowed[mime] {
		return ErrUnsupportedMediaType
	}
	if int64(len(data)) > MaxFileSize {
		return ErrFileTooLarge
	}
	if !matchesMagicBytes(mime, data) {
		return ErrUnsupportedMediaType
	}
	return nil
}

func matchesMagicBytes(mime string, data []byte) bool {
	signatures, ok := magicBytes[mime]
	if !ok {
		return false
	}
	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^\w\-]`)
)

// SanitizeFilename normalizes a client-supplied filename stem for use in a
// storage key: whitespace becomes underscores and anything outside
// word characters and hyphens is stripped.
func SanitizeFilename(name string) string {
	name = whitespaceRe.ReplaceAllString(name, "_")
	return disallowedRe.ReplaceAllString(name, "")
}
