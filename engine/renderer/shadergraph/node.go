// Package shadergraph builds the shader node graph of a resolved material. The graph is plain data:
// a host renderer walks it through a Materializer to create its own native nodes.
package shadergraph

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-matgraph/engine/renderer/texture"

	"cogentcore.org/core/base/ordmap"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeKind identifies what a node computes.
type NodeKind int

const (
	// NodeOutputMaterial is the single root of the graph.
	NodeOutputMaterial NodeKind = iota

	// NodeGroupMetallicRoughness is the workflow group node of metallic-roughness materials.
	NodeGroupMetallicRoughness

	// NodeGroupSpecularGlossiness is the workflow group node of specular-glossiness materials.
	NodeGroupSpecularGlossiness

	// NodeTexImage samples a texture binding.
	NodeTexImage

	// NodeMapping transforms UV coordinates.
	NodeMapping

	// NodeUVMap sources UV coordinates from the TEXCOORD set in Node.TexCoordSet.
	NodeUVMap

	// NodeAttribute reads a named vertex attribute.
	NodeAttribute
)

func (k NodeKind) String() string {
	switch k {
	case NodeOutputMaterial:
		return "OutputMaterial"
	case NodeGroupMetallicRoughness:
		return "GroupMetallicRoughness"
	case NodeGroupSpecularGlossiness:
		return "GroupSpecularGlossiness"
	case NodeTexImage:
		return "TexImage"
	case NodeMapping:
		return "Mapping"
	case NodeUVMap:
		return "UVMap"
	case NodeAttribute:
		return "Attribute"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// SocketType is the value type carried by a socket.
type SocketType int

const (
	SocketFloat SocketType = iota
	SocketColor
	SocketVector
	SocketShader
)

// ColorSpace tells the host how to interpret the pixels of a TexImage node.
type ColorSpace int

const (
	// ColorSpaceSRGB marks perceptual color data.
	ColorSpaceSRGB ColorSpace = iota

	// ColorSpaceNonColor marks raw data such as normals, occlusion or packed metallic-roughness.
	ColorSpaceNonColor
)

// Socket is a named connection point of a node. Scalar values live in Value[0].
type Socket struct {
	Name string
	Type SocketType

	// Value is the constant of an input socket. Before HasValue is set it holds the
	// socket's default.
	Value mgl32.Vec4

	// HasValue is set once the builder assigns a constant to the socket.
	HasValue bool
}

// Float returns the scalar value of the socket.
func (s *Socket) Float() float32 {
	return s.Value[0]
}

// Node is one node of a NodeGraph.
type Node struct {
	// ID is the node's index in NodeGraph.Nodes.
	ID int

	Kind  NodeKind
	Label string

	// Position is the 2-D layout coordinate of the node.
	Position mgl32.Vec2

	Inputs  *ordmap.Map[string, *Socket]
	Outputs *ordmap.Map[string, *Socket]

	// Texture is the binding sampled by a TexImage node.
	Texture *texture.Binding

	// ColorSpace applies to TexImage nodes.
	ColorSpace ColorSpace

	// TexCoordSet is the UV set a UVMap node reads. An external UV binder maps it to a
	// concrete channel of the rendered primitive.
	TexCoordSet int

	// AttributeName is the vertex attribute an Attribute node reads.
	AttributeName string
}

func newNode(id int, kind NodeKind, label string, pos mgl32.Vec2) *Node {
	n := &Node{
		ID:       id,
		Kind:     kind,
		Label:    label,
		Position: pos,
		Inputs:   ordmap.New[string, *Socket](),
		Outputs:  ordmap.New[string, *Socket](),
	}
	for _, s := range inputTemplates[kind] {
		sock := s
		n.Inputs.Add(sock.Name, &sock)
	}
	for _, s := range outputTemplates[kind] {
		sock := s
		n.Outputs.Add(sock.Name, &sock)
	}
	return n
}

// Input returns the named input socket.
//
// Parameters:
//   - name: the socket name
//
// Returns:
//   - *Socket: the socket
//   - bool: false if the node has no such input
func (n *Node) Input(name string) (*Socket, bool) {
	return n.Inputs.ValueByKeyTry(name)
}

// Output returns the named output socket.
//
// Parameters:
//   - name: the socket name
//
// Returns:
//   - *Socket: the socket
//   - bool: false if the node has no such output
func (n *Node) Output(name string) (*Socket, bool) {
	return n.Outputs.ValueByKeyTry(name)
}

// SamplerDescriptor returns the webgpu sampler for a TexImage node, labeled after the node's image.
//
// Returns:
//   - *wgpu.SamplerDescriptor: the sampler descriptor, or nil for nodes without a texture
func (n *Node) SamplerDescriptor() *wgpu.SamplerDescriptor {
	if n.Texture == nil {
		return nil
	}
	label := n.Label
	if n.Texture.Image != nil {
		label = n.Texture.Image.Label() + "/" + n.Label
	}
	return n.Texture.SamplerDescriptor(label)
}

// setInput assigns a constant to an input socket. A missing socket is a broken node contract.
func (n *Node) setInput(name string, value mgl32.Vec4) {
	sock, ok := n.Input(name)
	if !ok {
		panic(fmt.Sprintf("shadergraph: %s node has no input %q", n.Kind, name))
	}
	sock.Value = value
	sock.HasValue = true
}

func (n *Node) setFloat(name string, v float32) {
	n.setInput(name, mgl32.Vec4{v, 0, 0, 0})
}

// Link connects an output socket of one node to an input socket of another.
type Link struct {
	FromNode   int
	FromSocket string
	ToNode     int
	ToSocket   string
}
