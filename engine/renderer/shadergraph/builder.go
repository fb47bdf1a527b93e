package shadergraph

import (
	"github.com/Carmen-Shannon/oxy-matgraph/common"
	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/material"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// Layout holds the fixed node coordinates of a built graph.
type Layout struct {
	// Output is the anchor of the output node.
	Output mgl32.Vec2

	// Group is the position of the workflow group node.
	Group mgl32.Vec2

	// FirstColumnX is the x coordinate of the first texture sub-graph; each further sub-graph
	// moves right by ColumnStep.
	FirstColumnX float32
	ColumnStep   float32

	// SampleY, MappingY and UVMapY are the rows of the three nodes of a texture sub-graph.
	SampleY  float32
	MappingY float32
	UVMapY   float32

	// AttributeY is the row of the vertex-color attribute node.
	AttributeY float32
}

// DefaultLayout returns the standard layout: output at (1400, 600), group at (1000, 600),
// texture columns from x=200 every 400 units.
func DefaultLayout() Layout {
	return Layout{
		Output:       mgl32.Vec2{1400, 600},
		Group:        mgl32.Vec2{1000, 600},
		FirstColumnX: 200,
		ColumnStep:   400,
		SampleY:      0,
		MappingY:     -280,
		UVMapY:       -570,
		AttributeY:   300,
	}
}

// builder is the implementation of the Builder interface.
type builder struct {
	layout Layout
	logger common.Logger
}

// Builder turns a material.Model into a NodeGraph.
type Builder interface {
	// Build constructs the node graph of m. The result depends only on m and the layout:
	// building the same model twice yields structurally identical graphs.
	//
	// Nodes are created in a fixed order: the output node, the workflow group node, then one
	// sample/mapping/UV-source triple per texture slot in material.Model.Textures order, then the
	// vertex-color attribute node when m.UseVertexColor is set. Factors become constant group
	// inputs. A color texture's alpha is wired only when the alpha mode is not OPAQUE.
	//
	// Parameters:
	//   - m: the resolved material
	//
	// Returns:
	//   - *NodeGraph: the graph
	Build(m *material.Model) *NodeGraph
}

var _ Builder = &builder{}

// NewBuilder creates a Builder with DefaultLayout.
//
// Parameters:
//   - options: variadic list of BuilderOption functions
//
// Returns:
//   - Builder: the builder
func NewBuilder(options ...BuilderOption) Builder {
	b := &builder{
		layout: DefaultLayout(),
		logger: common.NopLogger{},
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *builder) Build(m *material.Model) *NodeGraph {
	g := &NodeGraph{}

	out := g.addNode(NodeOutputMaterial, "Material Output", b.layout.Output)
	g.output = out.ID

	var group *Node
	switch w := m.Workflow.(type) {
	case *material.SpecularGlossiness:
		group = g.addNode(NodeGroupSpecularGlossiness, GroupSpecularGlossinessName, b.layout.Group)
		group.setInput(SocketDiffuseFactor, w.DiffuseFactor)
		group.setInput(SocketSpecularFactor, w.SpecularFactor)
		group.setFloat(SocketGlossinessFactor, w.GlossinessFactor)
	default:
		mr, ok := w.(*material.MetallicRoughness)
		if !ok {
			mr = material.NewMetallicRoughness()
		}
		group = g.addNode(NodeGroupMetallicRoughness, GroupMetallicRoughnessName, b.layout.Group)
		group.setInput(SocketBaseColorFactor, mr.BaseColorFactor)
		group.setFloat(SocketMetallicFactor, mr.MetallicFactor)
		group.setFloat(SocketRoughnessFactor, mr.RoughnessFactor)
	}
	g.group = group.ID
	g.connect(group, SocketShaderOut, out, SocketSurface)

	group.setInput(SocketEmissiveFactor, m.EmissiveFactor)
	group.setFloat(SocketAlphaCutoff, m.AlphaCutoff)
	group.setFloat(SocketDoubleSided, common.BoolToFloat(m.DoubleSided))
	// BLEND maps to 0 like OPAQUE; the two differ only in whether Alpha is linked.
	group.setFloat(SocketAlphaMode, common.BoolToFloat(m.AlphaMode == gltf.AlphaMask))

	wireAlpha := m.AlphaMode != gltf.AlphaOpaque
	column := 0
	for _, slot := range m.Textures() {
		sample := b.addTextureChain(g, slot, column)
		column++

		switch slot.Kind {
		case material.SlotBaseColor:
			g.connect(sample, SocketColorOut, group, SocketBaseColor)
			if wireAlpha {
				g.connect(sample, SocketAlpha, group, SocketAlpha)
			}
		case material.SlotDiffuse:
			g.connect(sample, SocketColorOut, group, SocketDiffuse)
			if wireAlpha {
				g.connect(sample, SocketAlpha, group, SocketAlpha)
			}
		case material.SlotMetallicRoughness:
			g.connect(sample, SocketColorOut, group, SocketMetallicRoughness)
		case material.SlotSpecularGlossiness:
			g.connect(sample, SocketColorOut, group, SocketSpecular)
			g.connect(sample, SocketAlpha, group, SocketGlossiness)
		case material.SlotEmissive:
			g.connect(sample, SocketColorOut, group, SocketEmissive)
		case material.SlotNormal:
			g.connect(sample, SocketColorOut, group, SocketNormal)
		case material.SlotOcclusion:
			g.connect(sample, SocketColorOut, group, SocketOcclusion)
		}
	}

	if m.UseVertexColor() {
		attr := g.addNode(NodeAttribute, gltf.COLOR_0, mgl32.Vec2{b.columnX(column), b.layout.AttributeY})
		attr.AttributeName = gltf.COLOR_0
		g.connect(attr, SocketColorOut, group, SocketColor0)
		group.setFloat(SocketUseColor0, 1)
	}

	b.logger.Debugf("material %q: %s graph with %d nodes, %d links", m.Name, group.Kind, len(g.Nodes), len(g.Links))
	return g
}

// addTextureChain creates the UV source, mapping and sample nodes of one texture slot in the
// given column and returns the sample node.
func (b *builder) addTextureChain(g *NodeGraph, slot material.Slot, column int) *Node {
	x := b.columnX(column)

	sample := g.addNode(NodeTexImage, slot.Kind.String(), mgl32.Vec2{x, b.layout.SampleY})
	sample.Texture = slot.Binding
	sample.ColorSpace = colorSpace(slot.Kind)

	mapping := g.addNode(NodeMapping, slot.Kind.String()+" Mapping", mgl32.Vec2{x, b.layout.MappingY})

	uv := g.addNode(NodeUVMap, slot.Kind.String()+" UV", mgl32.Vec2{x, b.layout.UVMapY})
	uv.TexCoordSet = slot.Binding.TexCoordSet

	g.connect(uv, SocketUV, mapping, SocketVector)
	g.connect(mapping, SocketVector, sample, SocketVector)
	return sample
}

func (b *builder) columnX(column int) float32 {
	return b.layout.FirstColumnX + float32(column)*b.layout.ColumnStep
}

// colorSpace returns how a slot's pixels are interpreted. Only color and emissive maps are perceptual.
func colorSpace(kind material.SlotKind) ColorSpace {
	switch kind {
	case material.SlotBaseColor, material.SlotDiffuse, material.SlotEmissive, material.SlotSpecularGlossiness:
		return ColorSpaceSRGB
	default:
		return ColorSpaceNonColor
	}
}
