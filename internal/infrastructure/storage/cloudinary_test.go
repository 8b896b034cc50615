package storage

import (
	"testing"

	"github.com/casazul/real-estate-api/internal/core/ports"
)

func image(name string, size int64) ports.ImageUpload {
	return ports.ImageUpload{Filename: name, Size: size, Data: []byte("x")}
}

func TestCheckImages_Valid(t *testing.T) {
	err := CheckImages([]ports.ImageUpload{
		image("front.jpg", 1024),
		image("back.png", maxImageSize),
	})
	if err != nil {
		t.Fatalf("expected valid images, got %v", err)
	}
}

func TestCheckImages_Empty(t *testing.T) {
	if err := CheckImages(nil); err == nil {
		t.Fatalf("expected error for empty set")
	}
}

func TestCheckImages_BadExtension(t *testing.T) {
	if err := CheckImages([]ports.ImageUpload{image("virus.exe", 10)}); err == nil {
		t.Fatalf("expected error for disallowed extension")
	}
	if err := CheckImages([]ports.ImageUpload{image("noextension", 10)}); err == nil {
		t.Fatalf("expected error for missing extension")
	}
}

func TestCheckImages_TooLarge(t *testing.T) {
	if err := CheckImages([]ports.ImageUpload{image("big.jpg", maxImageSize+1)}); err == nil {
		t.Fatalf("expected error for oversized image")
	}
}

func TestCheckImages_TooMany(t *testing.T) {
	images := make([]ports.ImageUpload, maxImages+1)
	for i := range images {
		images[i] = image("a.jpg", 10)
	}
	if err := CheckImages(images); err == nil {
		t.Fatalf("expected error for too many images")
	}
}
