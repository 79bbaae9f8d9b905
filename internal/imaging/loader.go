package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// ImageCache keeps decoded sample images in memory so repeated previews of
// the same file, typically one per candidate exposure, skip disk reads.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu         sync.RWMutex
	images     map[string]image.Image
	maxEntries int
}

// NewImageCache creates an empty image cache holding at most maxEntries
// images. When full, an arbitrary cached image is dropped to make room.
// maxEntries <= 0 means unbounded.
func NewImageCache(maxEntries int) *ImageCache {
	return &ImageCache{
		images:     make(map[string]image.Image),
		maxEntries: maxEntries,
	}
}

// Load retrieves an image from the cache or decodes it from disk.
// PNG, JPEG and GIF are supported. Images are keyed by the exact path string.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	if _, ok := c.images[path]; !ok && c.maxEntries > 0 {
		for len(c.images) >= c.maxEntries {
			for k := range c.images {
				delete(c.images, k)
				break
			}
		}
	}
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Evict removes a specific image from the cache by its path.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}
