package texture

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/qmuntal/gltf"
)

// WrapMode is the texture coordinate wrapping mode of a sampler.
type WrapMode = gltf.WrappingMode

// glTF sampler wrap constants as they appear in JSON.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-sampler
const (
	gltfWrapClampToEdge    = 33071
	gltfWrapMirroredRepeat = 33648
	gltfWrapRepeat         = 10497
)

// FilterMode is a glTF sampler filter, stored with its JSON enum value.
type FilterMode int

const (
	FilterNearest              FilterMode = 9728
	FilterLinear               FilterMode = 9729
	FilterNearestMipmapNearest FilterMode = 9984
	FilterLinearMipmapNearest  FilterMode = 9985
	FilterNearestMipmapLinear  FilterMode = 9986
	FilterLinearMipmapLinear   FilterMode = 9987
)

// WrapModeFromGLTF converts a JSON wrap constant into a WrapMode.
//
// Parameters:
//   - code: the glTF wrap constant
//
// Returns:
//   - WrapMode: the wrap mode
//   - bool: false if the code is not a glTF wrap constant
func WrapModeFromGLTF(code int) (WrapMode, bool) {
	switch code {
	case gltfWrapRepeat:
		return gltf.WrapRepeat, true
	case gltfWrapClampToEdge:
		return gltf.WrapClampToEdge, true
	case gltfWrapMirroredRepeat:
		return gltf.WrapMirroredRepeat, true
	default:
		return gltf.WrapRepeat, false
	}
}

// FilterModeFromGLTF validates a JSON filter constant.
//
// Parameters:
//   - code: the glTF filter constant
//   - minification: whether mipmapped variants are allowed (only for minFilter)
//
// Returns:
//   - FilterMode: the filter
//   - bool: false if the code is not valid for the requested filter slot
func FilterModeFromGLTF(code int, minification bool) (FilterMode, bool) {
	f := FilterMode(code)
	switch f {
	case FilterNearest, FilterLinear:
		return f, true
	case FilterNearestMipmapNearest, FilterLinearMipmapNearest, FilterNearestMipmapLinear, FilterLinearMipmapLinear:
		if minification {
			return f, true
		}
	}
	return FilterLinear, false
}

func (f FilterMode) String() string {
	switch f {
	case FilterNearest:
		return "NEAREST"
	case FilterLinear:
		return "LINEAR"
	case FilterNearestMipmapNearest:
		return "NEAREST_MIPMAP_NEAREST"
	case FilterLinearMipmapNearest:
		return "LINEAR_MIPMAP_NEAREST"
	case FilterNearestMipmapLinear:
		return "NEAREST_MIPMAP_LINEAR"
	case FilterLinearMipmapLinear:
		return "LINEAR_MIPMAP_LINEAR"
	default:
		return fmt.Sprintf("FilterMode(%d)", int(f))
	}
}

// Binding is one material texture slot: a shared Image plus the UV set and sampler state
// used to read it. Many bindings may point at the same Image; the Image belongs to the
// ImageCache, never to the binding.
type Binding struct {
	// Image is the shared image source.
	Image *Image

	// TexCoordSet selects the TEXCOORD_n channel. The engine only tags it; an external
	// UV binder maps it to a concrete channel on a primitive.
	TexCoordSet int

	// WrapS and WrapT are the U and V wrapping modes.
	WrapS, WrapT WrapMode

	// MinFilter and MagFilter are the minification and magnification filters.
	MinFilter, MagFilter FilterMode
}

// NewBinding creates a binding to img with glTF sampler defaults (REPEAT wrapping, LINEAR filtering, UV set 0).
//
// Parameters:
//   - img: the shared image
//   - options: variadic list of BindingBuilderOption functions
//
// Returns:
//   - *Binding: the binding
func NewBinding(img *Image, options ...BindingBuilderOption) *Binding {
	b := &Binding{
		Image:     img,
		WrapS:     gltf.WrapRepeat,
		WrapT:     gltf.WrapRepeat,
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// SamplerDescriptor converts the binding's sampler state into a webgpu sampler descriptor.
// Unmipmapped minification filters select the nearest mip level.
//
// Parameters:
//   - label: the label of the sampler
//
// Returns:
//   - *wgpu.SamplerDescriptor: the descriptor, ready for Device.CreateSampler
func (b *Binding) SamplerDescriptor(label string) *wgpu.SamplerDescriptor {
	desc := &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wrapToAddressMode(b.WrapS),
		AddressModeV:  wrapToAddressMode(b.WrapT),
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}

	if b.MagFilter == FilterNearest {
		desc.MagFilter = wgpu.FilterModeNearest
	}

	switch b.MinFilter {
	case FilterNearest, FilterNearestMipmapNearest, FilterNearestMipmapLinear:
		desc.MinFilter = wgpu.FilterModeNearest
	}
	switch b.MinFilter {
	case FilterNearest, FilterLinear, FilterNearestMipmapNearest, FilterLinearMipmapNearest:
		desc.MipmapFilter = wgpu.MipmapFilterModeNearest
	}

	return desc
}

// wrapToAddressMode converts a wrap mode to a wgpu AddressMode.
func wrapToAddressMode(wrap WrapMode) wgpu.AddressMode {
	switch wrap {
	case gltf.WrapClampToEdge:
		return wgpu.AddressModeClampToEdge
	case gltf.WrapMirroredRepeat:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeRepeat
	}
}
