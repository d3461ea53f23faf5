package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{name: "Accept png", filename: "front.png", size: 1024},
		{name: "Accept jpg", filename: "front.jpg", size: 1024},
		{name: "Accept jpeg", filename: "front.jpeg", size: 1024},
		{name: "Accept webp", filename: "front.webp", size: 1024},
		{name: "Accept uppercase extension", filename: "FRONT.JPG", size: 1024},
		{name: "Reject pdf", filename: "notes.pdf", size: 1024, expectedCode: "INVALID_FILE_FORMAT"},
		{name: "Reject missing extension", filename: "front", size: 1024, expectedCode: "INVALID_FILE_FORMAT"},
		{name: "Reject oversized file", filename: "huge.png", size: MaxFileSize + 1, expectedCode: "FILE_TOO_LARGE"},
		{name: "Accept file at the size limit", filename: "exact.png", size: MaxFileSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}
			err := ValidateImageFile(header)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			uploadErr, ok := err.(*FileUploadError)
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}
