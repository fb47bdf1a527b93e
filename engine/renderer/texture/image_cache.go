package texture

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// imageCache is the implementation of the ImageCache interface.
type imageCache struct {
	mu     sync.RWMutex
	id     uuid.UUID
	images map[int]*Image
}

// ImageCache stores the Images of one import session keyed by source id.
// Each source id is materialized into an Image at most once; every later lookup
// returns the same *Image. Lookups and inserts are atomic, so a cache may be shared
// by goroutines of the same session. Separate sessions must use separate caches.
type ImageCache interface {
	// ID returns the session identifier of this cache.
	//
	// Returns:
	//   - uuid.UUID: the identifier
	ID() uuid.UUID

	// GetOrCreate returns the cached Image for sourceID, calling create to build it
	// if none exists yet. create is called at most once per source id.
	//
	// Parameters:
	//   - sourceID: the index of the image in the document
	//   - create: constructor invoked on a miss
	//
	// Returns:
	//   - *Image: the cached image
	//   - bool: true if the image was created by this call
	GetOrCreate(sourceID int, create func() *Image) (*Image, bool)

	// Get looks up an Image without creating it.
	//
	// Parameters:
	//   - sourceID: the index of the image in the document
	//
	// Returns:
	//   - *Image: the cached image or nil
	//   - bool: whether the image was found
	Get(sourceID int) (*Image, bool)

	// Len returns the number of cached images.
	//
	// Returns:
	//   - int: the count
	Len() int

	// Images returns every cached image ordered by source id.
	//
	// Returns:
	//   - []*Image: the images
	Images() []*Image
}

var _ ImageCache = &imageCache{}

// NewImageCache creates an empty ImageCache with a fresh session id.
//
// Parameters:
//   - options: variadic list of ImageCacheBuilderOption functions
//
// Returns:
//   - ImageCache: the cache
func NewImageCache(options ...ImageCacheBuilderOption) ImageCache {
	c := &imageCache{
		id:     uuid.New(),
		images: make(map[int]*Image),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *imageCache) ID() uuid.UUID {
	return c.id
}

func (c *imageCache) GetOrCreate(sourceID int, create func() *Image) (*Image, bool) {
	c.mu.RLock()
	img, ok := c.images[sourceID]
	c.mu.RUnlock()
	if ok {
		return img, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// another goroutine may have inserted between the two locks
	if img, ok := c.images[sourceID]; ok {
		return img, false
	}

	img = create()
	if img == nil {
		img = &Image{}
	}
	img.SourceID = sourceID
	img.label = fmt.Sprintf("%s/%s", c.id.String()[:8], img.Label())
	c.images[sourceID] = img
	return img, true
}

func (c *imageCache) Get(sourceID int) (*Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[sourceID]
	return img, ok
}

func (c *imageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func (c *imageCache) Images() []*Image {
	c.mu.RLock()
	out := make([]*Image, 0, len(c.images))
	for _, img := range c.images {
		out = append(out, img)
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Image) int { return a.SourceID - b.SourceID })
	return out
}
