// Package storage saves uploaded files on the local filesystem and hands
// back path references for the database.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Local stores uploads under a single directory, one flat namespace of
// randomly named files.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Save copies the uploaded file into the storage directory under a random
// name, keeping the original extension, and returns the stored path.
func (l *Local) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("name upload: %w", err)
	}
	name := hex.EncodeToString(b) + filepath.Ext(file.Filename)
	dest := filepath.Join(l.dir, name)

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return dest, nil
}
