package texture

import "github.com/google/uuid"

// ImageCacheBuilderOption is a functional option for configuring an ImageCache via NewImageCache.
type ImageCacheBuilderOption func(*imageCache)

// WithSessionID is an option builder that fixes the session id of the cache instead of generating one.
//
// Parameters:
//   - id: the session id
//
// Returns:
//   - ImageCacheBuilderOption: a function that applies the id option to a cache
func WithSessionID(id uuid.UUID) ImageCacheBuilderOption {
	return func(c *imageCache) {
		c.id = id
	}
}

// BindingBuilderOption configures a Binding created by NewBinding.
type BindingBuilderOption func(*Binding)

// WithTexCoordSet is an option builder that sets the UV set index of the binding.
//
// Parameters:
//   - set: the TEXCOORD_n index
//
// Returns:
//   - BindingBuilderOption: a function that applies the option to a binding
func WithTexCoordSet(set int) BindingBuilderOption {
	return func(b *Binding) {
		b.TexCoordSet = set
	}
}

// WithWrap is an option builder that sets both wrap modes of the binding.
//
// Parameters:
//   - s: the U wrap mode
//   - t: the V wrap mode
//
// Returns:
//   - BindingBuilderOption: a function that applies the option to a binding
func WithWrap(s, t WrapMode) BindingBuilderOption {
	return func(b *Binding) {
		b.WrapS = s
		b.WrapT = t
	}
}

// WithFilters is an option builder that sets the minification and magnification filters.
//
// Parameters:
//   - minFilter: the minification filter
//   - magFilter: the magnification filter
//
// Returns:
//   - BindingBuilderOption: a function that applies the option to a binding
func WithFilters(minFilter, magFilter FilterMode) BindingBuilderOption {
	return func(b *Binding) {
		b.MinFilter = minFilter
		b.MagFilter = magFilter
	}
}
