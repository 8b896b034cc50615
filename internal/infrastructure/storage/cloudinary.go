// Package storage streams listing images to the external object store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/casazul/real-estate-api/internal/core/domain"
	"github.com/casazul/real-estate-api/internal/core/ports"
)

const (
	uploadFolder = "real_estate"
	maxImageSize = 1 << 20 // one megabyte per image
	maxImages    = 10
)

var allowedExtensions = map[string]struct{}{
	"jpg": {},
	"png": {},
}

// CloudinaryUploader implements ports.ImageUploader on top of Cloudinary.
type CloudinaryUploader struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryUploader builds an uploader from a cloudinary:// URL.
func NewCloudinaryUploader(url string) (*CloudinaryUploader, error) {
	client, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{client: client}, nil
}

// Upload validates the payloads and streams each one to the object store,
// returning the public URLs in upload order.
func (u *CloudinaryUploader) Upload(ctx context.Context, images []ports.ImageUpload) ([]string, error) {
	if err := CheckImages(images); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		resp, err := u.client.Upload.Upload(ctx, bytes.NewReader(img.Data), uploader.UploadParams{
			Folder: uploadFolder,
		})
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", img.Filename, err)
		}
		urls = append(urls, resp.SecureURL)
	}
	return urls, nil
}

// CheckImages rejects payload sets that are empty, too large, too numerous,
// or carry a disallowed extension. Failures are client errors.
func CheckImages(images []ports.ImageUpload) error {
	if len(images) == 0 {
		return domain.NewValidationError("please add at least one image")
	}
	if len(images) > maxImages {
		return domain.NewValidationError(fmt.Sprintf("at most %d images are allowed", maxImages))
	}

	for _, img := range images {
		ext := ""
		if i := strings.LastIndexByte(img.Filename, '.'); i >= 0 {
			ext = strings.ToLower(img.Filename[i+1:])
		}
		if _, ok := allowedExtensions[ext]; !ok {
			return domain.NewValidationError(fmt.Sprintf("images with the .%s extension are not allowed", ext))
		}
		if img.Size > maxImageSize {
			return domain.NewValidationError("only files up to one megabyte are allowed")
		}
	}
	return nil
}
