package material

import (
	"github.com/Carmen-Shannon/oxy-matgraph/common"
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// WorkflowKind discriminates the two PBR parameterizations.
type WorkflowKind int

const (
	WorkflowMetallicRoughness WorkflowKind = iota
	WorkflowSpecularGlossiness
)

func (k WorkflowKind) String() string {
	switch k {
	case WorkflowMetallicRoughness:
		return "MetallicRoughness"
	case WorkflowSpecularGlossiness:
		return "SpecularGlossiness"
	default:
		return "Unknown"
	}
}

// Workflow is the tagged union of PBR parameterizations. The only implementations are
// *MetallicRoughness and *SpecularGlossiness.
type Workflow interface {
	// Kind returns the variant tag.
	Kind() WorkflowKind

	workflow()
}

// MetallicRoughness is the core glTF PBR workflow.
type MetallicRoughness struct {
	BaseColorFactor          mgl32.Vec4
	BaseColorTexture         *texture.Binding
	MetallicFactor           float32
	RoughnessFactor          float32
	MetallicRoughnessTexture *texture.Binding
}

// NewMetallicRoughness returns the workflow with glTF defaults: white base color, fully metallic, fully rough.
func NewMetallicRoughness() *MetallicRoughness {
	return &MetallicRoughness{
		BaseColorFactor: common.White,
		MetallicFactor:  1,
		RoughnessFactor: 1,
	}
}

func (*MetallicRoughness) Kind() WorkflowKind { return WorkflowMetallicRoughness }
func (*MetallicRoughness) workflow() {}

// SpecularGlossiness is the KHR_materials_pbrSpecularGlossiness workflow.
type SpecularGlossiness struct {
	DiffuseFactor             mgl32.Vec4
	DiffuseTexture            *texture.Binding
	GlossinessFactor          float32
	SpecularFactor            mgl32.Vec4
	SpecularGlossinessTexture *texture.Binding
}

// NewSpecularGlossiness returns the workflow with extension defaults: white diffuse and specular, glossiness 1.
func NewSpecularGlossiness() *SpecularGlossiness {
	return &SpecularGlossiness{
		DiffuseFactor:    common.White,
		GlossinessFactor: 1,
		SpecularFactor:   common.White,
	}
}

func (*SpecularGlossiness) Kind() WorkflowKind { return WorkflowSpecularGlossiness }
func (*SpecularGlossiness) workflow() {}
