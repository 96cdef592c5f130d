// Package loader decodes source bitmaps and exposes the metadata the
// editor core needs. The editor never decodes pixels anywhere else; every
// other package receives an already-decoded image.Image.
package loader

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"sync"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder (decode only)
)

// ImageInfo is the metadata supplied alongside a decoded bitmap.
type ImageInfo struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ByteSize    int64  `json:"byte_size"`
	MimeType    string `json:"mime_type"`
	DisplayName string `json:"display_name"`
}

// mimeByFormat maps image.Decode format names to MIME types.
var mimeByFormat = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// Cache provides thread-safe caching of decoded images keyed by file
// path, so repeated loads of the active image avoid disk reads. Cached
// images stay in memory until evicted; the editor evicts the previous
// image when a new one is opened.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
	infos  map[string]ImageInfo
}

// NewCache creates an empty cache ready for use.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]image.Image),
		infos:  make(map[string]ImageInfo),
	}
}

// Load returns the decoded image and metadata for path, reading and
// decoding from disk only on the first call for a given path.
func (c *Cache) Load(path string) (image.Image, ImageInfo, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		info := c.infos[path]
		c.mu.RUnlock()
		return img, info, nil
	}
	c.mu.RUnlock()

	img, info, err := Open(path)
	if err != nil {
		return nil, ImageInfo{}, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.infos[path] = info
	c.mu.Unlock()

	return img, info, nil
}

// Evict removes a path from the cache. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	delete(c.infos, path)
	c.mu.Unlock()
}

// Clear removes every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.infos = make(map[string]ImageInfo)
	c.mu.Unlock()
}

// Open decodes the image at path and builds its metadata. Supported
// inputs are PNG, JPEG, GIF, WebP, BMP and TIFF; anything else fails with
// a decode error.
func Open(path string) (image.Image, ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ImageInfo{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, ImageInfo{}, fmt.Errorf("failed to decode image: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, ImageInfo{}, fmt.Errorf("failed to stat file: %w", err)
	}

	mime, ok := mimeByFormat[format]
	if !ok {
		mime = "application/octet-stream"
	}

	bounds := img.Bounds()
	return img, ImageInfo{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ByteSize:    stat.Size(),
		MimeType:    mime,
		DisplayName: filepath.Base(path),
	}, nil
}
