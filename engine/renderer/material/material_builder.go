package material

import (
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// ModelBuilderOption is a function that configures a Model during construction.
type ModelBuilderOption func(*Model)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *Model) {
		m.Name = name
	}
}

// WithWorkflow is an option builder that replaces the PBR workflow variant.
//
// Parameters:
//   - w: *MetallicRoughness or *SpecularGlossiness
//
// Returns:
//   - ModelBuilderOption: a function that applies the workflow option to a model
func WithWorkflow(w Workflow) ModelBuilderOption {
	return func(m *Model) {
		if w != nil {
			m.Workflow = w
		}
	}
}

// WithEmissive is an option builder that sets the emissive factor and texture.
//
// Parameters:
//   - factor: the emissive color
//   - tex: the emissive texture, or nil
//
// Returns:
//   - ModelBuilderOption: a function that applies the emissive option to a model
func WithEmissive(factor mgl32.Vec4, tex *texture.Binding) ModelBuilderOption {
	return func(m *Model) {
		m.EmissiveFactor = factor
		m.EmissiveTexture = tex
	}
}

// WithNormalTexture is an option builder that sets the normal map.
//
// Parameters:
//   - tex: the normal texture binding
//
// Returns:
//   - ModelBuilderOption: a function that applies the normal texture option to a model
func WithNormalTexture(tex *texture.Binding) ModelBuilderOption {
	return func(m *Model) {
		m.NormalTexture = tex
	}
}

// WithOcclusionTexture is an option builder that sets the occlusion map.
//
// Parameters:
//   - tex: the occlusion texture binding
//
// Returns:
//   - ModelBuilderOption: a function that applies the occlusion texture option to a model
func WithOcclusionTexture(tex *texture.Binding) ModelBuilderOption {
	return func(m *Model) {
		m.OcclusionTexture = tex
	}
}

// WithAlpha is an option builder that sets the alpha mode and cutoff.
//
// Parameters:
//   - mode: the alpha mode
//   - cutoff: the MASK cutoff
//
// Returns:
//   - ModelBuilderOption: a function that applies the alpha option to a model
func WithAlpha(mode AlphaMode, cutoff float32) ModelBuilderOption {
	return func(m *Model) {
		m.AlphaMode = mode
		m.AlphaCutoff = cutoff
	}
}

// WithDoubleSided is an option builder that sets back-face rendering.
//
// Parameters:
//   - doubleSided: whether back faces are rendered
//
// Returns:
//   - ModelBuilderOption: a function that applies the option to a model
func WithDoubleSided(doubleSided bool) ModelBuilderOption {
	return func(m *Model) {
		m.DoubleSided = doubleSided
	}
}

// WithVertexColor is an option builder that sets the vertex-color flag up front.
//
// Parameters:
//   - use: whether COLOR_0 is blended in
//
// Returns:
//   - ModelBuilderOption: a function that applies the option to a model
func WithVertexColor(use bool) ModelBuilderOption {
	return func(m *Model) {
		m.useVertexColor = use
	}
}
