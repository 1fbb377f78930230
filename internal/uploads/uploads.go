// Package uploads enforces the image-upload limits before product
// handlers run: file count, per-file size and content-type allow-list.
// Its error messages are part of the API surface and are returned to
// callers verbatim.
package uploads

import (
	"errors"
	"io"
	"mime/multipart"

	"boutique/internal/models"
)

const (
	// MaxImages is the maximum number of image files per product.
	MaxImages = 5
	// MaxFileSize is the per-file size limit in bytes.
	MaxFileSize = 5 << 20
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Fixed messages surfaced to API callers.
var (
	ErrTooManyFiles   = errors.New("Too many files uploaded. Maximum 5 images allowed.")
	ErrFileTooLarge   = errors.New("File size exceeds the 5MB limit.")
	ErrDisallowedType = errors.New("Only JPEG, PNG, WebP, or GIF images are allowed")
)

// CollectImages validates the uploaded files against the count, size and
// content-type limits and reads them into memory. Validation is atomic:
// one bad file rejects the whole batch.
func CollectImages(files []*multipart.FileHeader) ([]models.ProductImage, error) {
	if len(files) > MaxImages {
		return nil, ErrTooManyFiles
	}

	images := make([]models.ProductImage, 0, len(files))
	for _, header := range files {
		contentType := header.Header.Get("Content-Type")
		if !allowedTypes[contentType] {
			return nil, ErrDisallowedType
		}
		if header.Size > MaxFileSize {
			return nil, ErrFileTooLarge
		}

		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
		f.Close()
		if err != nil {
			return nil, err
		}
		// header.Size is client-reported; re-check what was actually read.
		if len(data) > MaxFileSize {
			return nil, ErrFileTooLarge
		}

		images = append(images, models.ProductImage{
			Data:        data,
			ContentType: contentType,
		})
	}
	return images, nil
}
