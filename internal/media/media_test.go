package media

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 4, 3), 0644))

	img, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "PNG", img.Metadata.Format)
	assert.Equal(t, "photo.png", img.Metadata.Name)
	assert.Equal(t, "4x3", img.Metadata.Dimensions())
	assert.Equal(t, int64(len(img.Data)), img.Metadata.SizeBytes)

	att := img.LLMImage()
	assert.Equal(t, img.Data, att.Data)
	assert.Equal(t, "image/png", att.MIMEType)
}

func TestLoadQuotedPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my photo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 1, 1), 0644))

	img, err := Load(" '" + path + "' ")
	require.NoError(t, err)
	assert.Equal(t, "my photo.png", img.Metadata.Name)
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(text, []byte("just some text"), 0644))

	_, err := Load(text)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = Load(dir)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = Load(filepath.Join(dir, "missing.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(MaxSize+1))
	require.NoError(t, f.Close())

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", DetectContentType(pngBytes(t, 1, 1)))
	assert.Equal(t, "image/jpeg", DetectContentType([]byte{0xFF, 0xD8, 0xFF, 0xE0}))
	assert.Equal(t, "text/plain", DetectContentType([]byte("hello")))
}

func TestSizeHuman(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Metadata{SizeBytes: tt.size}.SizeHuman())
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "pics/a.png"), ExpandPath("~/pics/a.png"))
	assert.Equal(t, "/tmp/a b.png", ExpandPath(`/tmp/a\ b.png`))
	assert.Equal(t, "/tmp/x.png", ExpandPath(`"/tmp/x.png"`))
}
