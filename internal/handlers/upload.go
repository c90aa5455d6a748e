package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"campsite-service/internal/models"
)

// Images wider than this get downscaled before upload; full-size originals
// from phone cameras are a waste of bucket space.
const maxImageWidth = 1600

// uploadImages stores each posted file in the object store and returns the
// resulting asset references. By the time these reach the reconciler the
// binaries are already remote, keys assigned.
func (h *Handler) uploadImages(ctx context.Context, files []*multipart.FileHeader) ([]models.Image, error) {
	var imgs []models.Image
	for _, fh := range files {
		if err := validateImageHeader(fh); err != nil {
			return nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}

		contentType := fh.Header.Get("Content-Type")
		data, contentType = downscale(data, contentType)

		key := uuid.NewString() + "_" + sanitizeFilename(fh.Filename)
		url, err := h.store.Upload(ctx, key, contentType, data)
		if err != nil {
			return nil, err
		}
		imgs = append(imgs, models.Image{Key: key, URL: url})
	}
	return imgs, nil
}

// downscale re-encodes oversized images at maxImageWidth. Anything that
// fails to decode is stored untouched; the validator already bounded it.
func downscale(data []byte, contentType string) ([]byte, string) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data, contentType
	}
	if img.Bounds().Dx() <= maxImageWidth {
		return data, contentType
	}
	resized := imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG); err != nil {
		return data, contentType
	}
	return buf.Bytes(), "image/jpeg"
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return name
}
