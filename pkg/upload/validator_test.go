package upload

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestValidateImage(t *testing.T) {
	t.Run("Should accept a PNG payload", func(t *testing.T) {
		assert.NoError(t, ValidateImage("image/png", append(pngHeader, 0x00)))
	})

	t.Run("Should accept a content type with parameters", func(t *testing.T) {
		assert.NoError(t, ValidateImage("image/png; charset=binary", append(pngHeader, 0x00)))
	})

	t.Run("Should reject an executable content type", func(t *testing.T) {
		err := ValidateImage("application/octet-stream", []byte{0x4D, 0x5A})
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})

	t.Run("Should reject a PNG declaration with non-PNG bytes", func(t *testing.T) {
		err := ValidateImage("image/png", []byte("MZ not a png"))
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})

	t.Run("Should reject a payload over the size ceiling", func(t *testing.T) {
		big := make([]byte, MaxFileSize+1)
		copy(big, pngHeader)
		err := ValidateImage("image/png", big)
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("Should reject a PDF as an image", func(t *testing.T) {
		err := ValidateImage("application/pdf", []byte("%PDF-1.7"))
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})
}

func TestValidateDocument(t *testing.T) {
	t.Run("Should accept a PDF", func(t *testing.T) {
		assert.NoError(t, ValidateDocument("application/pdf", []byte("%PDF-1.7 rest")))
	})

	t.Run("Should accept a docx (zip container)", func(t *testing.T) {
		assert.NoError(t, ValidateDocument(
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			[]byte{0x50, 0x4B, 0x03, 0x04, 0x00},
		))
	})

	t.Run("Should reject an image as a document", func(t *testing.T) {
		err := ValidateDocument("image/png", append(pngHeader, 0x00))
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"my resume":             "my_resume",
		"my  spaced\tname":      "my_spaced_name",
		"report (final) v2":     "report_final_v2",
		"simple-name_ok":        "simple-name_ok",
		"émoji☺and/slash":       "mojiandslash",
		"../../../etc/passwd":   "etcpasswd",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}

func TestDownscaleImage(t *testing.T) {
	encodePNG := func(w, h int) []byte {
		var buf bytes.Buffer
		if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}

	t.Run("Small images pass through unchanged", func(t *testing.T) {
		data := encodePNG(100, 80)
		out, contentType, err := DownscaleImage(data, "image/png", MaxImageDimension)
		assert.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, data, out)
	})

	t.Run("Oversized images are scaled to the long edge and re-encoded", func(t *testing.T) {
		out, contentType, err := DownscaleImage(encodePNG(400, 200), "image/png", 100)
		assert.NoError(t, err)
		assert.Equal(t, "image/jpeg", contentType)

		img, _, err := image.Decode(bytes.NewReader(out))
		assert.NoError(t, err)
		assert.Equal(t, 100, img.Bounds().Dx())
		assert.Equal(t, 50, img.Bounds().Dy())
	})

	t.Run("Garbage input returns an error", func(t *testing.T) {
		_, _, err := DownscaleImage([]byte("not an image"), "image/png", 100)
		assert.Error(t, err)
	})
}
