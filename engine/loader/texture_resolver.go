package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"

	"github.com/qmuntal/gltf"
)

// textureResolverImpl is the implementation of the TextureResolver interface.
type textureResolverImpl struct {
	doc      *Document
	cache    texture.ImageCache
	reporter Reporter
}

// TextureResolver turns a texture reference of a material into a texture.Binding, sharing
// one Image per image source through an ImageCache.
type TextureResolver interface {
	// Resolve looks up textures[textureIndex], binds it to the cached Image of its source and
	// applies the sampler it names. Sampler lookup is best-effort: a missing or out-of-range
	// sampler, or a missing or invalid sampler field, falls back to REPEAT/LINEAR.
	//
	// Parameters:
	//   - textureIndex: the index into the document textures array
	//   - texCoord: the TEXCOORD_n set the material reads the texture with
	//
	// Returns:
	//   - *texture.Binding: a new binding; its Image is shared with every other binding of the same source
	//   - error: ErrIndexOutOfRange for a bad texture or image index, ErrMalformedMaterial for a texture without a source
	Resolve(textureIndex, texCoord int) (*texture.Binding, error)

	// Validate runs the index checks of Resolve without touching the cache or reporting diagnostics.
	//
	// Parameters:
	//   - textureIndex: the index into the document textures array
	//
	// Returns:
	//   - error: the error Resolve would return for textureIndex, or nil
	Validate(textureIndex int) error

	// Cache returns the ImageCache the resolver inserts into.
	//
	// Returns:
	//   - texture.ImageCache: the cache
	Cache() texture.ImageCache
}

var _ TextureResolver = &textureResolverImpl{}

// NewTextureResolver creates a resolver over the arrays of doc.
//
// Parameters:
//   - doc: the document holding textures, images and samplers
//   - cache: the per-session image cache
//   - options: variadic list of TextureResolverBuilderOption functions
//
// Returns:
//   - TextureResolver: the resolver
func NewTextureResolver(doc *Document, cache texture.ImageCache, options ...TextureResolverBuilderOption) TextureResolver {
	r := &textureResolverImpl{
		doc:   doc,
		cache: cache,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *textureResolverImpl) Cache() texture.ImageCache {
	return r.cache
}

func (r *textureResolverImpl) Validate(textureIndex int) error {
	if textureIndex < 0 || textureIndex >= len(r.doc.Textures) {
		return fmt.Errorf("%w: texture %d (document has %d)", ErrIndexOutOfRange, textureIndex, len(r.doc.Textures))
	}

	tex := &r.doc.Textures[textureIndex]
	if tex.Source == nil {
		return fmt.Errorf("%w: texture %d has no source", ErrMalformedMaterial, textureIndex)
	}
	if source := *tex.Source; source < 0 || source >= len(r.doc.Images) {
		return fmt.Errorf("%w: texture %d image %d (document has %d)", ErrIndexOutOfRange, textureIndex, source, len(r.doc.Images))
	}
	return nil
}

func (r *textureResolverImpl) Resolve(textureIndex, texCoord int) (*texture.Binding, error) {
	if textureIndex >= 0 && textureIndex < len(r.doc.Textures) {
		r.reporter.report(ScopeTexture, fmt.Sprintf("texture %d", textureIndex), r.doc.Textures[textureIndex].unknown)
	}
	if err := r.Validate(textureIndex); err != nil {
		return nil, err
	}

	tex := &r.doc.Textures[textureIndex]
	source := *tex.Source

	img, _ := r.cache.GetOrCreate(source, func() *texture.Image {
		def := r.doc.Images[source]
		return &texture.Image{
			Name:       def.Name,
			URI:        def.URI,
			MimeType:   def.MimeType,
			BufferView: def.BufferView,
		}
	})

	options := append([]texture.BindingBuilderOption{texture.WithTexCoordSet(texCoord)}, r.samplerOptions(tex.Sampler)...)
	return texture.NewBinding(img, options...), nil
}

// samplerOptions returns the binding options for the sampler at index, or none when the
// sampler cannot be found.
func (r *textureResolverImpl) samplerOptions(index *int) []texture.BindingBuilderOption {
	if index == nil || *index < 0 || *index >= len(r.doc.Samplers) {
		return nil
	}
	s := r.doc.Samplers[*index]

	wrapS, wrapT := wrapOrDefault(s.WrapS), wrapOrDefault(s.WrapT)
	minFilter, magFilter := filterOrDefault(s.MinFilter, true), filterOrDefault(s.MagFilter, false)
	return []texture.BindingBuilderOption{
		texture.WithWrap(wrapS, wrapT),
		texture.WithFilters(minFilter, magFilter),
	}
}

func wrapOrDefault(code *int) texture.WrapMode {
	if code == nil {
		return gltf.WrapRepeat
	}
	mode, _ := texture.WrapModeFromGLTF(*code)
	return mode
}

func filterOrDefault(code *int, minification bool) texture.FilterMode {
	if code == nil {
		return texture.FilterLinear
	}
	f, _ := texture.FilterModeFromGLTF(*code, minification)
	return f
}
