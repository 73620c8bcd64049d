package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/sant0-9/captionkit/internal/llm"
)

// MaxSize is the largest image accepted for upload to a provider.
const MaxSize = 20 << 20

var (
	ErrNotImage = errors.New("not a supported image")
	ErrTooLarge = errors.New("image too large")
)

var supported = map[string]string{
	"image/jpeg": "JPEG",
	"image/png":  "PNG",
	"image/gif":  "GIF",
	"image/webp": "WebP",
}

// Image is a picture loaded from disk, ready to attach to a request.
type Image struct {
	Data     []byte
	MIMEType string
	Metadata Metadata
}

// Metadata describes the loaded file.
type Metadata struct {
	Name       string    `json:"name"`
	SourcePath string    `json:"source_path"`
	Format     string    `json:"format"`
	SizeBytes  int64     `json:"size_bytes"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// SizeHuman returns human-readable file size
func (m Metadata) SizeHuman() string {
	bytes := m.SizeBytes
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

// Dimensions renders "WxH", or "" when the decoder could not tell.
func (m Metadata) Dimensions() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// Load reads path and checks that it holds a supported image within MaxSize.
func Load(path string) (*Image, error) {
	path = ExpandPath(path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, ErrNotImage)
	}
	if info.Size() > MaxSize {
		return nil, fmt.Errorf("%s is %s: %w", path, Metadata{SizeBytes: info.Size()}.SizeHuman(), ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return FromBytes(filepath.Base(path), path, data)
}

// FromBytes validates in-memory image data.
func FromBytes(name, source string, data []byte) (*Image, error) {
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	mime := DetectContentType(data)
	format, ok := supported[mime]
	if !ok {
		return nil, fmt.Errorf("%s (%s): %w", name, mime, ErrNotImage)
	}

	img := &Image{
		Data:     data,
		MIMEType: mime,
		Metadata: Metadata{
			Name:       name,
			SourcePath: source,
			Format:     format,
			SizeBytes:  int64(len(data)),
			LoadedAt:   time.Now(),
		},
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Metadata.Width = cfg.Width
		img.Metadata.Height = cfg.Height
	}
	return img, nil
}

// DetectContentType sniffs the MIME type from the first bytes of data.
func DetectContentType(data []byte) string {
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return mime
}

// LLMImage converts to the attachment type providers accept.
func (i *Image) LLMImage() llm.Image {
	return llm.Image{Data: i.Data, MIMEType: i.MIMEType}
}

// ExpandPath resolves a leading ~ and strips the quotes terminals add
// when a file is dragged in.
func ExpandPath(path string) string {
	path = strings.TrimSpace(path)
	path = strings.Trim(path, `"'`)
	path = strings.ReplaceAll(path, `\ `, " ")
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
