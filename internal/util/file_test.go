package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidateMimeType(t *testing.T) {
	images := []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	docs := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}

	mt, err := ValidateMimeType(bytes.NewReader(pngHeader), "image/png", images)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mt)

	mt, err = ValidateMimeType(bytes.NewReader([]byte("%PDF-1.7\n")), "", docs)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mt)

	// docx 是 zip 容器，按声明类型判断
	docx := "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mt, err = ValidateMimeType(bytes.NewReader([]byte("PK\x03\x04\x14\x00\x06\x00")), docx, docs)
	require.NoError(t, err)
	assert.Equal(t, docx, mt)

	_, err = ValidateMimeType(bytes.NewReader([]byte("plain text pretending")), "image/png", images)
	assert.ErrorIs(t, err, ErrInvalidFileType)

	_, err = ValidateMimeType(bytes.NewReader(pngHeader), "image/png", docs)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseProbeOutput(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "audio"},
			{"codec_type": "video", "width": 1280, "height": 720}
		],
		"format": {"duration": "93.250000"}
	}`

	info, err := parseProbeOutput(out)
	require.NoError(t, err)
	assert.Equal(t, 1280, info.Width)
	assert.Equal(t, 720, info.Height)
	assert.InDelta(t, 93.25, info.Duration, 0.0001)

	_, err = parseProbeOutput("not json")
	assert.Error(t, err)
}
