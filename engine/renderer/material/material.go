package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// DefaultMaterialName is the name given to the implicit material of primitives without one.
const DefaultMaterialName = "Default Material"

// AlphaMode is the glTF alpha rendering mode.
type AlphaMode = gltf.AlphaMode

// ParseAlphaMode converts a JSON alphaMode string.
//
// Parameters:
//   - s: "OPAQUE", "MASK" or "BLEND"
//
// Returns:
//   - AlphaMode: the mode
//   - error: error if s is not a glTF alpha mode
func ParseAlphaMode(s string) (AlphaMode, error) {
	switch s {
	case "OPAQUE":
		return gltf.AlphaOpaque, nil
	case "MASK":
		return gltf.AlphaMask, nil
	case "BLEND":
		return gltf.AlphaBlend, nil
	default:
		return gltf.AlphaOpaque, fmt.Errorf("unknown alphaMode %q", s)
	}
}

// Model is the resolved, typed form of one glTF material. Exactly one workflow variant is
// populated. A Model is immutable after parsing except for the vertex-color flag, which the
// mesh layer sets once it knows the owning primitive carries COLOR_0.
type Model struct {
	// Name is the material name, or a generated one.
	Name string

	// Workflow is the PBR parameterization: *MetallicRoughness or *SpecularGlossiness.
	Workflow Workflow

	// EmissiveFactor is the emissive color; alpha is 1 unless the document supplied four components.
	EmissiveFactor mgl32.Vec4

	EmissiveTexture  *texture.Binding
	NormalTexture    *texture.Binding
	OcclusionTexture *texture.Binding

	DoubleSided bool

	AlphaMode AlphaMode

	// AlphaCutoff is only meaningful for MASK but is always stored.
	AlphaCutoff float32

	useVertexColor bool
}

// New creates a fully defaulted Model (metallic-roughness, no textures, OPAQUE, cutoff 0.5)
// and applies the options in order.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the model
//
// Returns:
//   - *Model: the model
func New(options ...ModelBuilderOption) *Model {
	m := &Model{
		Workflow:       NewMetallicRoughness(),
		EmissiveFactor: mgl32.Vec4{0, 0, 0, 1},
		AlphaMode:      gltf.AlphaOpaque,
		AlphaCutoff:    0.5,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewDefault creates the implicit default material used by primitives with no material index.
//
// Returns:
//   - *Model: the default material
func NewDefault() *Model {
	return New(WithName(DefaultMaterialName))
}

// UseVertexColor reports whether the owning primitive's COLOR_0 attribute should be blended in.
func (m *Model) UseVertexColor() bool {
	return m.useVertexColor
}

// SetUseVertexColor records whether the owning primitive carries vertex colors.
//
// Parameters:
//   - use: true if COLOR_0 is present on the primitive
func (m *Model) SetUseVertexColor(use bool) {
	m.useVertexColor = use
}

// Textures returns the populated texture slots of the model in graph order: the workflow slots
// (baseColor then metallicRoughness, or specularGlossiness then diffuse), emissive, normal, occlusion.
//
// Returns:
//   - []Slot: the populated slots
func (m *Model) Textures() []Slot {
	var out []Slot
	add := func(kind SlotKind, b *texture.Binding) {
		if b != nil {
			out = append(out, Slot{Kind: kind, Binding: b})
		}
	}

	switch w := m.Workflow.(type) {
	case *MetallicRoughness:
		add(SlotBaseColor, w.BaseColorTexture)
		add(SlotMetallicRoughness, w.MetallicRoughnessTexture)
	case *SpecularGlossiness:
		add(SlotSpecularGlossiness, w.SpecularGlossinessTexture)
		add(SlotDiffuse, w.DiffuseTexture)
	}
	add(SlotEmissive, m.EmissiveTexture)
	add(SlotNormal, m.NormalTexture)
	add(SlotOcclusion, m.OcclusionTexture)
	return out
}

// SlotKind names a texture slot of a material.
type SlotKind int

const (
	SlotBaseColor SlotKind = iota
	SlotMetallicRoughness
	SlotDiffuse
	SlotSpecularGlossiness
	SlotEmissive
	SlotNormal
	SlotOcclusion
)

var slotNames = [...]string{
	SlotBaseColor:          "baseColorTexture",
	SlotMetallicRoughness:  "metallicRoughnessTexture",
	SlotDiffuse:            "diffuseTexture",
	SlotSpecularGlossiness: "specularGlossinessTexture",
	SlotEmissive:           "emissiveTexture",
	SlotNormal:             "normalTexture",
	SlotOcclusion:          "occlusionTexture",
}

// String returns the glTF JSON key of the slot.
func (k SlotKind) String() string {
	if k < 0 || int(k) >= len(slotNames) {
		return fmt.Sprintf("SlotKind(%d)", int(k))
	}
	return slotNames[k]
}

// Slot is one populated texture slot.
type Slot struct {
	Kind    SlotKind
	Binding *texture.Binding
}
