package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

const receiptDir = "receipts"

var allowedReceiptTypes = map[string]string{
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// ReceiptStore keeps uploaded payment receipts on local disk.
type ReceiptStore struct {
	root     string
	maxBytes int64
}

func NewReceiptStore(root string, maxBytes int64) (*ReceiptStore, error) {
	if err := os.MkdirAll(filepath.Join(root, receiptDir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ReceiptStore{root: root, maxBytes: maxBytes}, nil
}

// Save sniffs the content type, writes the file under a random name and
// returns its path relative to the upload root.
func (s *ReceiptStore) Save(fh *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return "", domain.NewValidationError("receipt", "file is too large")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", domain.NewValidationError("receipt", "file is empty or unreadable")
	}
	ext, ok := allowedReceiptTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", domain.NewValidationError("receipt", "must be a PNG, JPEG, WebP image or a PDF")
	}

	rel := filepath.Join(receiptDir, uuid.NewString()+ext)
	if err := writeFile(filepath.Join(s.root, rel), io.MultiReader(bytes.NewReader(head[:n]), src)); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// writeFile creates path exclusively and fills it from r. A partly written
// file is removed.
func writeFile(path string, r io.Reader) (err error) {
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create receipt file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("write receipt: %w", closeErr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	return nil
}

// Path resolves a stored relative path, refusing anything outside the
// receipts directory.
func (s *ReceiptStore) Path(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if !strings.HasPrefix(clean, receiptDir+string(filepath.Separator)) {
		return "", &domain.NotFoundError{Resource: "receipt", ID: rel}
	}
	return filepath.Join(s.root, clean), nil
}

func (s *ReceiptStore) Remove(rel string) error {
	p, err := s.Path(rel)
	if err != nil {
		return err
	}
	return os.Remove(p)
}
