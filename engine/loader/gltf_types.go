// gltf_types.go contains the glTF 2.0 data structures the material engine reads.
// Only the document arrays a material can reach are kept: materials (raw), textures, images and samplers.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package loader

import (
	"encoding/json"
	"slices"
)

// --- glTF Root Structure ---

// Document holds the document-wide arrays a material references by index.
// Materials are kept as raw JSON so that each one can be parsed (and fail) in isolation.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-gltf
type Document struct {
	// Materials is the raw JSON of every material object.
	Materials []json.RawMessage `json:"materials,omitempty"`

	// Textures is an array of textures.
	Textures []Texture `json:"textures,omitempty"`

	// Images is an array of images.
	Images []Image `json:"images,omitempty"`

	// Samplers define texture sampling parameters.
	Samplers []Sampler `json:"samplers,omitempty"`

	// ExtensionsUsed lists extensions used by this asset.
	ExtensionsUsed []string `json:"extensionsUsed,omitempty"`
}

// UsesExtension reports whether the document declares the named extension in extensionsUsed.
//
// Parameters:
//   - name: the extension name
//
// Returns:
//   - bool: true if declared
func (d *Document) UsesExtension(name string) bool {
	return slices.Contains(d.ExtensionsUsed, name)
}

// --- Textures ---

// Texture combines an image and a sampler.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-texture
type Texture struct {
	// Name is an optional name.
	Name string `json:"name,omitempty"`

	// Sampler is the sampler index.
	Sampler *int `json:"sampler,omitempty"`

	// Source is the image index.
	Source *int `json:"source,omitempty"`

	// unknown lists keys the engine does not interpret, sorted.
	unknown []string
}

// textureKeys are the texture object keys the resolver understands.
var textureKeys = keySet("name", "sampler", "source", "extensions", "extras")

// UnmarshalJSON decodes a texture and records its unrecognized keys.
func (t *Texture) UnmarshalJSON(data []byte) error {
	type plain Texture
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*t = Texture(p)
	t.unknown = unknownKeys(keys, textureKeys)
	return nil
}

// Image is a texture image source.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-image
type Image struct {
	// Name is an optional name.
	Name string `json:"name,omitempty"`

	// URI is the image URI (can be data: URI or external file).
	URI string `json:"uri,omitempty"`

	// MimeType is the MIME type when embedded in a bufferView.
	MimeType string `json:"mimeType,omitempty"`

	// BufferView is the index of the bufferView containing the image.
	BufferView *int `json:"bufferView,omitempty"`
}

// Sampler defines texture sampling parameters.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-sampler
type Sampler struct {
	// Name is an optional name.
	Name string `json:"name,omitempty"`

	// MagFilter is the magnification filter.
	// 9728=NEAREST, 9729=LINEAR
	MagFilter *int `json:"magFilter,omitempty"`

	// MinFilter is the minification filter.
	// 9728=NEAREST, 9729=LINEAR, 9984-9987=mipmapped variants
	MinFilter *int `json:"minFilter,omitempty"`

	// WrapS is the U wrapping mode.
	// 33071=CLAMP_TO_EDGE, 33648=MIRRORED_REPEAT, 10497=REPEAT (default)
	WrapS *int `json:"wrapS,omitempty"`

	// WrapT is the V wrapping mode.
	WrapT *int `json:"wrapT,omitempty"`
}

// --- Materials ---

// gltfMaterial describes the surface appearance of geometry.
// Sub-objects stay raw so their keys can be diagnosed before decoding.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-material
type gltfMaterial struct {
	// Name is an optional name.
	Name *string `json:"name"`

	// PbrMetallicRoughness is the metallic-roughness parameter block.
	PbrMetallicRoughness json.RawMessage `json:"pbrMetallicRoughness"`

	// NormalTexture is the tangent-space normal map.
	NormalTexture *gltfTextureInfo `json:"normalTexture"`

	// OcclusionTexture is the ambient occlusion map (R channel).
	OcclusionTexture *gltfTextureInfo `json:"occlusionTexture"`

	// EmissiveTexture is the emissive map.
	EmissiveTexture *gltfTextureInfo `json:"emissiveTexture"`

	// EmissiveFactor is the emissive color (RGB, or RGBA kept verbatim).
	EmissiveFactor []float32 `json:"emissiveFactor"`

	// AlphaMode is "OPAQUE" (default), "MASK" or "BLEND".
	AlphaMode *string `json:"alphaMode"`

	// AlphaCutoff is the alpha cutoff for MASK mode.
	AlphaCutoff *float32 `json:"alphaCutoff"`

	// DoubleSided indicates if the material is double-sided.
	DoubleSided *bool `json:"doubleSided"`

	// Extensions holds per-extension parameter blocks.
	Extensions map[string]json.RawMessage `json:"extensions"`
}

// gltfPbrMetallicRoughness is the metallic-roughness material model.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-material-pbrmetallicroughness
type gltfPbrMetallicRoughness struct {
	// BaseColorFactor is the base color (RGBA).
	BaseColorFactor []float32 `json:"baseColorFactor"`

	// BaseColorTexture is the base color texture.
	BaseColorTexture *gltfTextureInfo `json:"baseColorTexture"`

	// MetallicFactor is the metalness (0.0 = dielectric, 1.0 = metal).
	MetallicFactor *float32 `json:"metallicFactor"`

	// RoughnessFactor is the roughness (0.0 = smooth, 1.0 = rough).
	RoughnessFactor *float32 `json:"roughnessFactor"`

	// MetallicRoughnessTexture contains metallic (B) and roughness (G) channels.
	MetallicRoughnessTexture *gltfTextureInfo `json:"metallicRoughnessTexture"`
}

// gltfSpecularGlossiness is the KHR_materials_pbrSpecularGlossiness parameter block.
// Reference: https://github.com/KhronosGroup/glTF/tree/main/extensions/2.0/Archived/KHR_materials_pbrSpecularGlossiness
type gltfSpecularGlossiness struct {
	// DiffuseFactor is the diffuse color (RGBA).
	DiffuseFactor []float32 `json:"diffuseFactor"`

	// DiffuseTexture is the diffuse texture.
	DiffuseTexture *gltfTextureInfo `json:"diffuseTexture"`

	// SpecularFactor is the specular color (RGB).
	SpecularFactor []float32 `json:"specularFactor"`

	// GlossinessFactor is the glossiness (1.0 = perfectly smooth).
	GlossinessFactor *float32 `json:"glossinessFactor"`

	// SpecularGlossinessTexture carries specular in RGB and glossiness in A.
	SpecularGlossinessTexture *gltfTextureInfo `json:"specularGlossinessTexture"`
}

// gltfTextureInfo references a texture. Index is mandatory.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-textureinfo
type gltfTextureInfo struct {
	// Index is the texture index.
	Index *int `json:"index"`

	// TexCoord is the UV set to use (default 0).
	TexCoord *int `json:"texCoord"`
}

// Extension and scope names.
const (
	extSpecularGlossiness = "KHR_materials_pbrSpecularGlossiness"

	ScopeMaterial           = "MATERIAL"
	ScopePBR                = "PBR"
	ScopeSpecularGlossiness = extSpecularGlossiness
	ScopeMaterialExtension  = "MATERIAL EXTENSION"
	ScopeTexture            = "TEXTURE"
)

var (
	materialKeys = keySet(
		"name", "pbrMetallicRoughness", "normalTexture", "occlusionTexture", "emissiveTexture",
		"emissiveFactor", "alphaMode", "alphaCutoff", "doubleSided", "extensions", "extras",
	)
	pbrKeys = keySet(
		"baseColorFactor", "baseColorTexture", "metallicFactor", "roughnessFactor", "metallicRoughnessTexture",
		"extensions", "extras",
	)
	specularGlossinessKeys = keySet(
		"diffuseFactor", "diffuseTexture", "specularFactor", "glossinessFactor", "specularGlossinessTexture",
		"extensions", "extras",
	)
)

func keySet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// unknownKeys returns the keys of obj missing from known, sorted so diagnostics are stable.
func unknownKeys(obj map[string]json.RawMessage, known map[string]struct{}) []string {
	var out []string
	for k := range obj {
		if _, ok := known[k]; !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
