package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	m := New()

	mr, ok := m.Workflow.(*MetallicRoughness)
	require.True(t, ok)
	assert.Equal(t, WorkflowMetallicRoughness, m.Workflow.Kind())
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, mr.BaseColorFactor)
	assert.Equal(t, float32(1), mr.MetallicFactor)
	assert.Equal(t, float32(1), mr.RoughnessFactor)
	assert.Nil(t, mr.BaseColorTexture)
	assert.Nil(t, mr.MetallicRoughnessTexture)

	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, m.EmissiveFactor)
	assert.Equal(t, gltf.AlphaOpaque, m.AlphaMode)
	assert.Equal(t, float32(0.5), m.AlphaCutoff)
	assert.False(t, m.DoubleSided)
	assert.False(t, m.UseVertexColor())
	assert.Empty(t, m.Textures())
}

func TestNewDefault_Name(t *testing.T) {
	assert.Equal(t, DefaultMaterialName, NewDefault().Name)
}

func TestNewSpecularGlossiness_Defaults(t *testing.T) {
	sg := NewSpecularGlossiness()
	assert.Equal(t, WorkflowSpecularGlossiness, sg.Kind())
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, sg.DiffuseFactor)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, sg.SpecularFactor)
	assert.Equal(t, float32(1), sg.GlossinessFactor)
}

func TestModel_TexturesOrder(t *testing.T) {
	img := &texture.Image{}
	base := texture.NewBinding(img)
	mr := texture.NewBinding(img)
	normal := texture.NewBinding(img)
	occl := texture.NewBinding(img)

	m := New(
		WithWorkflow(&MetallicRoughness{BaseColorTexture: base, MetallicRoughnessTexture: mr}),
		WithNormalTexture(normal),
		WithOcclusionTexture(occl),
	)

	slots := m.Textures()
	require.Len(t, slots, 4)
	assert.Equal(t, []SlotKind{SlotBaseColor, SlotMetallicRoughness, SlotNormal, SlotOcclusion},
		[]SlotKind{slots[0].Kind, slots[1].Kind, slots[2].Kind, slots[3].Kind})
	assert.Same(t, occl, slots[3].Binding)
	assert.Equal(t, "metallicRoughnessTexture", slots[1].Kind.String())
}

func TestModel_SpecularGlossinessTextures(t *testing.T) {
	img := &texture.Image{}
	m := New(
		WithWorkflow(&SpecularGlossiness{
			DiffuseTexture:            texture.NewBinding(img),
			SpecularGlossinessTexture: texture.NewBinding(img),
		}),
		WithEmissive(mgl32.Vec4{1, 0, 0, 1}, texture.NewBinding(img)),
	)

	slots := m.Textures()
	require.Len(t, slots, 3)
	assert.Equal(t, SlotSpecularGlossiness, slots[0].Kind)
	assert.Equal(t, SlotDiffuse, slots[1].Kind)
	assert.Equal(t, SlotEmissive, slots[2].Kind)
}

func TestModel_VertexColorIsLateBound(t *testing.T) {
	m := New(WithAlpha(gltf.AlphaMask, 0.3), WithDoubleSided(true))
	assert.False(t, m.UseVertexColor())
	m.SetUseVertexColor(true)
	assert.True(t, m.UseVertexColor())
	assert.Equal(t, float32(0.3), m.AlphaCutoff)
	assert.True(t, m.DoubleSided)

	assert.True(t, New(WithVertexColor(true)).UseVertexColor())
}

func TestParseAlphaMode(t *testing.T) {
	tests := []struct {
		in      string
		want    AlphaMode
		wantErr bool
	}{
		{"OPAQUE", gltf.AlphaOpaque, false},
		{"MASK", gltf.AlphaMask, false},
		{"BLEND", gltf.AlphaBlend, false},
		{"mask", gltf.AlphaOpaque, true},
	}
	for _, tt := range tests {
		got, err := ParseAlphaMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
