package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThumbnail(t *testing.T) {
	img := Image{Key: "abc_photo.jpg", URL: "https://x/upload/abc_photo.jpg"}
	assert.Equal(t, "https://x/upload/w_200/abc_photo.jpg", img.Thumbnail())
}

func TestThumbnailSentinelUntouched(t *testing.T) {
	img := Image{Key: SentinelImageKey, URL: "https://x/upload/default.jpg"}
	assert.Equal(t, img.URL, img.Thumbnail())
}
