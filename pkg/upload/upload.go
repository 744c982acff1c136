package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const maxImageSize = 5 * 1024 * 1024

var allowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// SaveImage stores an uploaded image under dir with a random filename and
// returns that filename. The content type is sniffed, not trusted from the
// request.
func SaveImage(fileHeader *multipart.FileHeader, dir string) (string, error) {
	if fileHeader.Size > maxImageSize {
		return "", fmt.Errorf("file exceeds maximum size of %d MB", maxImageSize/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	mimeType := http.DetectContentType(buffer[:n])

	allowed := false
	for _, t := range allowedImageTypes {
		if mimeType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("invalid file type %s, allowed: %v", mimeType, allowedImageTypes)
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	filename := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}

func Delete(dir, filename string) error {
	if filename == "" {
		return nil
	}
	return os.Remove(filepath.Join(dir, filename))
}
