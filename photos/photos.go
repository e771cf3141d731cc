// Package photos stores the pictures workers attach when completing a
// task: the original under static/taskphotos and a fixed-width thumbnail
// alongside it.
package photos

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"fieldops/utils"

	"github.com/disintegration/imaging"
)

const (
	photoDir   = "static/taskphotos"
	thumbDir   = "static/taskphotos/thumb"
	thumbWidth = 300
	maxBytes   = 10 << 20
)

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// SaveCompletionPhoto validates, stores and thumbnails one uploaded photo.
// Returns the stored file name.
func SaveCompletionPhoto(file multipart.File, header *multipart.FileHeader) (string, error) {
	defer file.Close()

	if mimeType := header.Header.Get("Content-Type"); !supportedTypes[mimeType] {
		return "", fmt.Errorf("unsupported photo type %q", mimeType)
	}
	if header.Size > maxBytes {
		return "", fmt.Errorf("photo %q exceeds the 10MB limit", header.Filename)
	}

	buf, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("failed to decode photo %q: %w", header.Filename, err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		ext = map[string]string{"image/jpeg": ".jpg", "image/png": ".png"}[header.Header.Get("Content-Type")]
	}
	name := utils.GetUUID() + ext

	if err := os.MkdirAll(photoDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create photo directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(photoDir, name), buf, 0o644); err != nil {
		return "", fmt.Errorf("failed to save photo: %w", err)
	}

	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, name)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return name, nil
}

// RemoveCompletionPhotos deletes stored photos and their thumbnails. Used
// when the task they were uploaded for turns out not to exist.
func RemoveCompletionPhotos(names []string) {
	for _, name := range names {
		if err := os.Remove(filepath.Join(photoDir, name)); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove photo %s: %v", name, err)
		}
		if err := os.Remove(filepath.Join(thumbDir, name)); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove thumbnail %s: %v", name, err)
		}
	}
}
