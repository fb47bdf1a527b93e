package shadergraph

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeGraph is the built shader graph: a DAG rooted at one output node. Nodes are indexed by ID.
type NodeGraph struct {
	Nodes []*Node
	Links []Link

	output int
	group  int
}

// Output returns the root output node.
func (g *NodeGraph) Output() *Node {
	return g.Nodes[g.output]
}

// Group returns the workflow group node.
func (g *NodeGraph) Group() *Node {
	return g.Nodes[g.group]
}

// Node returns the node with the given ID.
//
// Parameters:
//   - id: the node ID
//
// Returns:
//   - *Node: the node, or nil if the ID is out of range
func (g *NodeGraph) Node(id int) *Node {
	if id < 0 || id >= len(g.Nodes) {
		return nil
	}
	return g.Nodes[id]
}

// NodesOfKind returns the nodes of one kind in ID order.
//
// Parameters:
//   - kind: the node kind
//
// Returns:
//   - []*Node: the matching nodes
func (g *NodeGraph) NodesOfKind(kind NodeKind) []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// LinksTo returns the links feeding an input socket.
//
// Parameters:
//   - node: the target node ID
//   - socket: the target input name
//
// Returns:
//   - []Link: the links, in creation order
func (g *NodeGraph) LinksTo(node int, socket string) []Link {
	var out []Link
	for _, l := range g.Links {
		if l.ToNode == node && l.ToSocket == socket {
			out = append(out, l)
		}
	}
	return out
}

// InputLinked reports whether an input socket is fed by a link.
func (g *NodeGraph) InputLinked(node int, socket string) bool {
	return len(g.LinksTo(node, socket)) > 0
}

// UVSources returns the UVMap nodes. Each carries the TexCoordSet an external UV binder
// must map to a concrete UV channel of the primitive being rendered.
func (g *NodeGraph) UVSources() []*Node {
	return g.NodesOfKind(NodeUVMap)
}

func (g *NodeGraph) addNode(kind NodeKind, label string, pos mgl32.Vec2) *Node {
	n := newNode(len(g.Nodes), kind, label, pos)
	g.Nodes = append(g.Nodes, n)
	return n
}

// connect links from.fromSocket to to.toSocket. A missing socket is a broken node contract.
func (g *NodeGraph) connect(from *Node, fromSocket string, to *Node, toSocket string) {
	if _, ok := from.Output(fromSocket); !ok {
		panic(fmt.Sprintf("shadergraph: %s node has no output %q", from.Kind, fromSocket))
	}
	if _, ok := to.Input(toSocket); !ok {
		panic(fmt.Sprintf("shadergraph: %s node has no input %q", to.Kind, toSocket))
	}
	g.Links = append(g.Links, Link{
		FromNode:   from.ID,
		FromSocket: fromSocket,
		ToNode:     to.ID,
		ToSocket:   toSocket,
	})
}
