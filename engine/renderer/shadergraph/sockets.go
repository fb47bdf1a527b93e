package shadergraph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Group node names.
const (
	GroupMetallicRoughnessName  = "glTF Metallic Roughness"
	GroupSpecularGlossinessName = "glTF Specular Glossiness"
)

// Socket names of the workflow group nodes.
const (
	SocketBaseColorFactor   = "BaseColorFactor"
	SocketBaseColor         = "BaseColor"
	SocketMetallicFactor    = "MetallicFactor"
	SocketRoughnessFactor   = "RoughnessFactor"
	SocketMetallicRoughness = "MetallicRoughness"

	SocketDiffuseFactor    = "DiffuseFactor"
	SocketDiffuse          = "Diffuse"
	SocketSpecularFactor   = "SpecularFactor"
	SocketGlossinessFactor = "GlossinessFactor"
	SocketSpecular         = "Specular"
	SocketGlossiness       = "Glossiness"

	SocketAlpha          = "Alpha"
	SocketEmissiveFactor = "EmissiveFactor"
	SocketEmissive       = "Emissive"
	SocketNormal         = "Normal"
	SocketOcclusion      = "Occlusion"
	SocketAlphaCutoff    = "AlphaCutoff"
	SocketDoubleSided    = "DoubleSided"
	SocketAlphaMode      = "AlphaMode"
	SocketColor0         = "COLOR_0"
	SocketUseColor0      = "Use COLOR_0"
)

// Socket names of the other node kinds.
const (
	SocketShaderOut = "Shader"
	SocketSurface   = "Surface"
	SocketVolume    = "Volume"
	SocketVector    = "Vector"
	SocketColorOut  = "Color"
	SocketFac       = "Fac"
	SocketUV        = "UV"
)

var (
	white      = mgl32.Vec4{1, 1, 1, 1}
	flatNormal = mgl32.Vec4{0.5, 0.5, 1, 1}
)

// sharedGroupInputs are the inputs both workflow groups expose.
var sharedGroupInputs = []Socket{
	{Name: SocketEmissiveFactor, Type: SocketColor, Value: mgl32.Vec4{0, 0, 0, 1}},
	{Name: SocketEmissive, Type: SocketColor, Value: white},
	{Name: SocketNormal, Type: SocketColor, Value: flatNormal},
	{Name: SocketOcclusion, Type: SocketColor, Value: white},
	{Name: SocketAlphaCutoff, Type: SocketFloat, Value: mgl32.Vec4{0.5}},
	{Name: SocketDoubleSided, Type: SocketFloat},
	{Name: SocketAlphaMode, Type: SocketFloat},
	{Name: SocketColor0, Type: SocketColor, Value: white},
	{Name: SocketUseColor0, Type: SocketFloat},
}

var inputTemplates = map[NodeKind][]Socket{
	NodeOutputMaterial: {
		{Name: SocketSurface, Type: SocketShader},
		{Name: SocketVolume, Type: SocketShader},
	},
	NodeGroupMetallicRoughness: append([]Socket{
		{Name: SocketBaseColorFactor, Type: SocketColor, Value: white},
		{Name: SocketBaseColor, Type: SocketColor, Value: white},
		{Name: SocketMetallicFactor, Type: SocketFloat, Value: mgl32.Vec4{1}},
		{Name: SocketRoughnessFactor, Type: SocketFloat, Value: mgl32.Vec4{1}},
		{Name: SocketMetallicRoughness, Type: SocketColor, Value: white},
		{Name: SocketAlpha, Type: SocketFloat, Value: mgl32.Vec4{1}},
	}, sharedGroupInputs...),
	NodeGroupSpecularGlossiness: append([]Socket{
		{Name: SocketDiffuseFactor, Type: SocketColor, Value: white},
		{Name: SocketDiffuse, Type: SocketColor, Value: white},
		{Name: SocketSpecularFactor, Type: SocketColor, Value: white},
		{Name: SocketGlossinessFactor, Type: SocketFloat, Value: mgl32.Vec4{1}},
		{Name: SocketSpecular, Type: SocketColor, Value: white},
		{Name: SocketGlossiness, Type: SocketFloat, Value: mgl32.Vec4{1}},
		{Name: SocketAlpha, Type: SocketFloat, Value: mgl32.Vec4{1}},
	}, sharedGroupInputs...),
	NodeTexImage: {
		{Name: SocketVector, Type: SocketVector},
	},
	NodeMapping: {
		{Name: SocketVector, Type: SocketVector},
	},
}

var outputTemplates = map[NodeKind][]Socket{
	NodeGroupMetallicRoughness:  {{Name: SocketShaderOut, Type: SocketShader}},
	NodeGroupSpecularGlossiness: {{Name: SocketShaderOut, Type: SocketShader}},
	NodeTexImage: {
		{Name: SocketColorOut, Type: SocketColor},
		{Name: SocketAlpha, Type: SocketFloat},
	},
	NodeMapping: {{Name: SocketVector, Type: SocketVector}},
	NodeUVMap:   {{Name: SocketUV, Type: SocketVector}},
	NodeAttribute: {
		{Name: SocketColorOut, Type: SocketColor},
		{Name: SocketVector, Type: SocketVector},
		{Name: SocketFac, Type: SocketFloat},
	},
}
