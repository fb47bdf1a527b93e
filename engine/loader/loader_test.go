package loader

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Carmen-Shannon/oxy-matgraph/common"
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocument = `{
	"asset": {"version": "2.0"},
	"images": [
		{"uri": "a.png"},
		{"uri": "b.png", "name": "bee"},
		{"uri": "c.png"}
	],
	"samplers": [
		{"wrapS": 33071, "wrapT": 33648, "minFilter": 9987, "magFilter": 9728},
		{"wrapS": 12345}
	],
	"textures": [
		{"source": 0, "sampler": 0},
		{"source": 0},
		{"source": 2, "sampler": 7, "flavor": "x"},
		{"source": 1, "sampler": 1},
		{"sampler": 0},
		{"source": 9}
	],
	"materials": []
}`

func newTestSession(t *testing.T, materials ...string) Session {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(testDocument))
	require.NoError(t, err)
	for _, m := range materials {
		doc.Materials = append(doc.Materials, json.RawMessage(m))
	}
	s, err := NewSession(doc)
	require.NoError(t, err)
	return s
}

func TestParse_NoPBRYieldsMetallicRoughnessDefaults(t *testing.T) {
	for _, raw := range []string{`{}`, `{"doubleSided": true}`, `{"pbrMetallicRoughness": {}}`} {
		s := newTestSession(t, raw)
		m, err := s.Material(0)
		require.NoError(t, err, raw)

		mr, ok := m.Workflow.(*material.MetallicRoughness)
		require.True(t, ok, raw)
		assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, mr.BaseColorFactor, raw)
		assert.Equal(t, float32(1), mr.MetallicFactor, raw)
		assert.Equal(t, float32(1), mr.RoughnessFactor, raw)
		assert.Empty(t, m.Textures(), raw)
		assert.Equal(t, gltf.AlphaOpaque, m.AlphaMode, raw)
		assert.Equal(t, float32(0.5), m.AlphaCutoff, raw)
	}
}

func TestParse_ExtensionSelectsSpecularGlossiness(t *testing.T) {
	s := newTestSession(t, `{
		"pbrMetallicRoughness": {"baseColorFactor": [0, 0, 0, 1], "baseColorTexture": {"index": 0}},
		"extensions": {"KHR_materials_pbrSpecularGlossiness": {"glossinessFactor": 0.25}}
	}`)
	m, err := s.Material(0)
	require.NoError(t, err)

	sg, ok := m.Workflow.(*material.SpecularGlossiness)
	require.True(t, ok)
	assert.Equal(t, float32(0.25), sg.GlossinessFactor)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, sg.DiffuseFactor)
	assert.Nil(t, sg.DiffuseTexture)
	assert.Equal(t, 0, s.ImageCache().Len(), "ignored pbr block must not resolve textures")
}

func TestParse_ColorFactorWidths(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    mgl32.Vec4
		wantErr bool
	}{
		{"emissive rgb", `{"emissiveFactor": [0.1, 0.2, 0.3]}`, mgl32.Vec4{0.1, 0.2, 0.3, 1}, false},
		{"emissive rgba", `{"emissiveFactor": [0.1, 0.2, 0.3, 0.4]}`, mgl32.Vec4{0.1, 0.2, 0.3, 0.4}, false},
		{"emissive short", `{"emissiveFactor": [0.1, 0.2]}`, mgl32.Vec4{}, true},
		{"emissive long", `{"emissiveFactor": [0, 0, 0, 0, 0]}`, mgl32.Vec4{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, tt.raw)
			m, err := s.Material(0)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedMaterial)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.EmissiveFactor)
		})
	}
}

func TestParse_SpecularFactorWidths(t *testing.T) {
	s := newTestSession(t,
		`{"extensions": {"KHR_materials_pbrSpecularGlossiness": {"specularFactor": [0.5, 0.5, 0.5]}}}`,
		`{"extensions": {"KHR_materials_pbrSpecularGlossiness": {"specularFactor": [0.5, 0.5, 0.5, 0.7]}}}`,
		`{"extensions": {"KHR_materials_pbrSpecularGlossiness": {"specularFactor": [0.5]}}}`,
	)

	m, err := s.Material(0)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0.5, 0.5, 0.5, 1}, m.Workflow.(*material.SpecularGlossiness).SpecularFactor)

	m, err = s.Material(1)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0.5, 0.5, 0.5, 0.7}, m.Workflow.(*material.SpecularGlossiness).SpecularFactor)

	_, err = s.Material(2)
	assert.ErrorIs(t, err, ErrMalformedMaterial)
}

func TestParse_SharedSourceSharesImage(t *testing.T) {
	s := newTestSession(t, `{
		"pbrMetallicRoughness": {"baseColorTexture": {"index": 0}, "metallicRoughnessTexture": {"index": 1}}
	}`)
	m, err := s.Material(0)
	require.NoError(t, err)

	mr := m.Workflow.(*material.MetallicRoughness)
	require.NotNil(t, mr.BaseColorTexture)
	require.NotNil(t, mr.MetallicRoughnessTexture)
	assert.NotSame(t, mr.BaseColorTexture, mr.MetallicRoughnessTexture)
	assert.Same(t, mr.BaseColorTexture.Image, mr.MetallicRoughnessTexture.Image)
	assert.Equal(t, 1, s.ImageCache().Len())
}

func TestParse_TexCoordDefaultsToZero(t *testing.T) {
	s := newTestSession(t, `{"normalTexture": {"index": 1, "scale": 2}}`)
	m, err := s.Material(0)
	require.NoError(t, err)
	require.NotNil(t, m.NormalTexture)
	assert.Equal(t, 0, m.NormalTexture.TexCoordSet)
}

func TestParse_MaskScenario(t *testing.T) {
	s := newTestSession(t, `{"pbrMetallicRoughness": {"baseColorFactor": [0.8,0.2,0.2]}, "alphaMode": "MASK", "alphaCutoff": 0.4}`)
	m, err := s.Material(0)
	require.NoError(t, err)

	mr, ok := m.Workflow.(*material.MetallicRoughness)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec4{0.8, 0.2, 0.2, 1}, mr.BaseColorFactor)
	assert.Nil(t, mr.BaseColorTexture)
	assert.Equal(t, gltf.AlphaMask, m.AlphaMode)
	assert.Equal(t, float32(0.4), m.AlphaCutoff)
}

func TestParse_SpecularGlossinessDiffuseScenario(t *testing.T) {
	s := newTestSession(t, `{"extensions": {"KHR_materials_pbrSpecularGlossiness": {"diffuseTexture": {"index": 2, "texCoord": 1}}}}`)
	m, err := s.Material(0)
	require.NoError(t, err)

	sg := m.Workflow.(*material.SpecularGlossiness)
	require.NotNil(t, sg.DiffuseTexture)
	assert.Equal(t, 1, sg.DiffuseTexture.TexCoordSet)

	img, ok := s.ImageCache().Get(2)
	require.True(t, ok)
	assert.Same(t, img, sg.DiffuseTexture.Image)
	assert.Equal(t, "c.png", img.URI)
}

func TestParse_SamplerResolution(t *testing.T) {
	s := newTestSession(t,
		`{"emissiveTexture": {"index": 0}}`,
		`{"emissiveTexture": {"index": 1}}`,
		`{"emissiveTexture": {"index": 2}}`,
		`{"emissiveTexture": {"index": 3}}`,
	)

	m, err := s.Material(0)
	require.NoError(t, err)
	b := m.EmissiveTexture
	assert.Equal(t, gltf.WrapClampToEdge, b.WrapS)
	assert.Equal(t, gltf.WrapMirroredRepeat, b.WrapT)
	assert.Equal(t, texture.FilterLinearMipmapLinear, b.MinFilter)
	assert.Equal(t, texture.FilterNearest, b.MagFilter)

	// no sampler, sampler past the array, invalid wrap code
	for i := 1; i <= 3; i++ {
		m, err := s.Material(i)
		require.NoError(t, err)
		b := m.EmissiveTexture
		assert.Equal(t, gltf.WrapRepeat, b.WrapS, i)
		assert.Equal(t, gltf.WrapRepeat, b.WrapT, i)
		assert.Equal(t, texture.FilterLinear, b.MinFilter, i)
		assert.Equal(t, texture.FilterLinear, b.MagFilter, i)
	}
}

func TestParse_MalformedTextureReferences(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		outOfRange bool
	}{
		{"texture info without index", `{"occlusionTexture": {"texCoord": 0}}`, false},
		{"texture without source", `{"occlusionTexture": {"index": 4}}`, false},
		{"texture index out of range", `{"occlusionTexture": {"index": 40}}`, true},
		{"image index out of range", `{"occlusionTexture": {"index": 5}}`, true},
		{"negative texCoord", `{"occlusionTexture": {"index": 0, "texCoord": -1}}`, false},
		{"bad alpha mode", `{"alphaMode": "SOMETIMES"}`, false},
		{"wrong json type", `{"doubleSided": "yes"}`, false},
		{"not an object", `[1, 2]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, tt.raw)
			m, err := s.Material(0)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrMalformedMaterial)
			assert.Equal(t, tt.outOfRange, errors.Is(err, ErrIndexOutOfRange))
		})
	}
}

func TestParse_FailedMaterialLeavesCacheEmpty(t *testing.T) {
	tests := []string{
		`{"pbrMetallicRoughness": {"baseColorTexture": {"index": 0}}, "normalTexture": {"index": 40}}`,
		`{"emissiveTexture": {"index": 3}, "occlusionTexture": {"index": 4}}`,
		`{"pbrMetallicRoughness": {"baseColorTexture": {"index": 2}}, "alphaMode": "SOMETIMES"}`,
		`{"extensions": {"KHR_materials_pbrSpecularGlossiness": {"specularGlossinessTexture": {"index": 0}, "diffuseTexture": {"index": 5}}}}`,
	}
	for _, raw := range tests {
		s := newTestSession(t, raw)
		_, err := s.Material(0)
		require.ErrorIs(t, err, ErrMalformedMaterial, raw)
		assert.Equal(t, 0, s.ImageCache().Len(), raw)
		assert.Empty(t, s.Diagnostics(), raw)
	}
}

func TestParse_Naming(t *testing.T) {
	s := newTestSession(t, `{"name": "brick"}`, `{}`)

	m, err := s.Material(0)
	require.NoError(t, err)
	assert.Equal(t, "brick", m.Name)

	m, err = s.Material(1)
	require.NoError(t, err)
	assert.Equal(t, "Material_1", m.Name)

	assert.Equal(t, material.DefaultMaterialName, s.DefaultMaterial().Name)
}

func TestSession_Diagnostics(t *testing.T) {
	s := newTestSession(t, `{
		"zeta": 1,
		"alpha": 2,
		"pbrMetallicRoughness": {"shininess": 3, "baseColorTexture": {"index": 2}},
		"extensions": {"KHR_materials_clearcoat": {}}
	}`, `{
		"extensions": {"KHR_materials_pbrSpecularGlossiness": {"sheen": 1}}
	}`)

	_, err := s.Materials()
	require.NoError(t, err)

	assert.Equal(t, []Diagnostic{
		{Scope: ScopeMaterial, Key: "alpha", Subject: "material 0"},
		{Scope: ScopeMaterial, Key: "zeta", Subject: "material 0"},
		{Scope: ScopeMaterialExtension, Key: "KHR_materials_clearcoat", Subject: "material 0"},
		{Scope: ScopePBR, Key: "shininess", Subject: "material 0"},
		{Scope: ScopeTexture, Key: "flavor", Subject: "texture 2"},
		{Scope: ScopeSpecularGlossiness, Key: "sheen", Subject: "material 1"},
	}, s.Diagnostics())
	assert.Equal(t, "PBR unrecognized key shininess (material 0)", s.Diagnostics()[3].String())

	// cached materials are not diagnosed twice
	_, _ = s.Material(0)
	assert.Len(t, s.Diagnostics(), 6)
}

func TestSession_DiagnosticsAreLogged(t *testing.T) {
	doc, err := ParseDocument(strings.NewReader(testDocument))
	require.NoError(t, err)
	doc.Materials = []json.RawMessage{json.RawMessage(`{"mystery": true}`)}

	var out, errOut bytes.Buffer
	s, err := NewSession(doc, WithLogger(common.NewWriterLogger(&out, &errOut, "loader", true)))
	require.NoError(t, err)

	_, err = s.Material(0)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[loader] DEBUG: MATERIAL unrecognized key mystery (material 0)")
}

func TestSession_MaterialsIsolatesFailures(t *testing.T) {
	s := newTestSession(t, `{"name": "ok"}`, `{"emissiveFactor": [1]}`, `{"name": "also ok"}`)

	ms, err := s.Materials()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedMaterial)
	require.Len(t, ms, 3)
	assert.Equal(t, "ok", ms[0].Name)
	assert.Nil(t, ms[1])
	assert.Equal(t, "also ok", ms[2].Name)
}

func TestSession_MaterialIndexOutOfRange(t *testing.T) {
	s := newTestSession(t, `{}`)
	_, err := s.Material(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.Material(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSession_MaterialForVertexColor(t *testing.T) {
	s := newTestSession(t, `{"name": "painted"}`)
	idx := 0

	plain, err := s.MaterialFor(&idx, false)
	require.NoError(t, err)
	colored, err := s.MaterialFor(&idx, true)
	require.NoError(t, err)

	assert.NotSame(t, plain, colored)
	assert.False(t, plain.UseVertexColor())
	assert.True(t, colored.UseVertexColor())
	assert.Equal(t, "painted", colored.Name)

	again, err := s.MaterialFor(&idx, true)
	require.NoError(t, err)
	assert.Same(t, colored, again)

	def, err := s.MaterialFor(nil, true)
	require.NoError(t, err)
	assert.Equal(t, material.DefaultMaterialName, def.Name)
	assert.True(t, def.UseVertexColor())
	assert.False(t, s.DefaultMaterial().UseVertexColor())
}

func TestSession_MaterializeImages(t *testing.T) {
	s := newTestSession(t,
		`{"pbrMetallicRoughness": {"baseColorTexture": {"index": 0}}, "emissiveTexture": {"index": 1}}`,
		`{"normalTexture": {"index": 3}, "occlusionTexture": {"index": 2}}`,
	)
	_, err := s.Materials()
	require.NoError(t, err)
	require.Equal(t, 3, s.ImageCache().Len())

	var calls atomic.Int32
	dec := texture.DecoderFunc(func(img *texture.Image) (any, error) {
		calls.Add(1)
		if img.URI == "b.png" {
			return nil, errors.New("corrupt")
		}
		return img.URI, nil
	})

	err = s.MaterializeImages(dec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
	assert.Equal(t, int32(3), calls.Load())

	// second pass decodes nothing
	_ = s.MaterializeImages(dec)
	assert.Equal(t, int32(3), calls.Load())

	img, _ := s.ImageCache().Get(0)
	h, ok := img.Handle()
	assert.True(t, ok)
	assert.Equal(t, "a.png", h)
}

func TestNewSession_NilDocument(t *testing.T) {
	_, err := NewSession(nil)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestParseDocument_GLB(t *testing.T) {
	jsonChunk := []byte(`{"asset":{"version":"2.0"},"materials":[{"name":"glb"}],"extensionsUsed":["KHR_materials_pbrSpecularGlossiness"]}`)
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{
		Magic:   gltfGLBMagic,
		Version: gltfGLBVersion,
		Length:  uint32(12 + 8 + len(jsonChunk)),
	}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{
		ChunkLength: uint32(len(jsonChunk)),
		ChunkType:   gltfGLBChunkJSON,
	}))
	buf.Write(jsonChunk)

	doc, err := ParseDocument(&buf)
	require.NoError(t, err)
	require.Len(t, doc.Materials, 1)
	assert.True(t, doc.UsesExtension("KHR_materials_pbrSpecularGlossiness"))
	assert.False(t, doc.UsesExtension("KHR_materials_unlit"))
}

func TestParseDocument_TruncatedGLB(t *testing.T) {
	glb := func(declared, chunkLength uint32) io.Reader {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{
			Magic:   gltfGLBMagic,
			Version: gltfGLBVersion,
			Length:  declared,
		}))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{
			ChunkLength: chunkLength,
			ChunkType:   gltfGLBChunkJSON,
		}))
		buf.WriteString("{}")
		return &buf
	}

	tests := []struct {
		name        string
		declared    uint32
		chunkLength uint32
	}{
		{"chunk longer than data", 22, 1 << 30},
		{"header longer than data", 1 << 30, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument(glb(tt.declared, tt.chunkLength))
			assert.ErrorIs(t, err, errTruncatedGLB)
		})
	}
}

func TestParseDocument_RejectsVersion(t *testing.T) {
	_, err := ParseDocument(strings.NewReader(`{"asset": {"version": "1.0"}}`))
	assert.ErrorIs(t, err, errInvalidGLTFVersion)

	_, err = ParseDocument(strings.NewReader(`not json`))
	assert.Error(t, err)
}
