package storage

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func fileHeader(t *testing.T, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("receipt", "receipt.bin")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["receipt"][0]
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewReceiptStore(t.TempDir(), 1<<20)
	require.NoError(t, err)

	rel, err := store.Save(fileHeader(t, pngHeader))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(rel))

	p, err := store.Path(rel)
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, store.Remove(rel))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
}

func TestSaveRejects(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		content  []byte
	}{
		{name: "plain text", maxBytes: 1 << 20, content: []byte("just some text")},
		{name: "too large", maxBytes: 4, content: pngHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewReceiptStore(t.TempDir(), tt.maxBytes)
			require.NoError(t, err)

			_, err = store.Save(fileHeader(t, tt.content))
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "receipt", vErr.Field)
		})
	}
}

func TestPathRefusesTraversal(t *testing.T) {
	store, err := NewReceiptStore(t.TempDir(), 0)
	require.NoError(t, err)

	for _, rel := range []string{"../secret", "receipts/../../etc/passwd", "other/file.png"} {
		_, err := store.Path(rel)
		assert.True(t, domain.IsNotFound(err), rel)
	}
}

func TestWriteFileRemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.png")
	broken := io.MultiReader(bytes.NewReader(pngHeader), iotest.ErrReader(errors.New("connection reset")))

	err := writeFile(path, broken)

	assert.ErrorContains(t, err, "connection reset")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
