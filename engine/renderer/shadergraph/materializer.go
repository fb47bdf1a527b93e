package shadergraph

import "fmt"

// Materializer is implemented by a host renderer to turn a NodeGraph into native shader nodes.
type Materializer interface {
	// AddNode creates the native counterpart of n. Nodes arrive in ID order.
	//
	// Parameters:
	//   - n: the node
	//
	// Returns:
	//   - error: error if the host cannot create the node
	AddNode(n *Node) error

	// SetInput assigns the constant of an input socket of a node already added.
	//
	// Parameters:
	//   - n: the node
	//   - s: the input socket, with HasValue set
	//
	// Returns:
	//   - error: error if the host rejects the value
	SetInput(n *Node, s *Socket) error

	// Connect creates a link between two nodes already added.
	//
	// Parameters:
	//   - l: the link
	//
	// Returns:
	//   - error: error if the host cannot link the sockets
	Connect(l Link) error
}

// Materialize replays g into host: every node, then every assigned input constant, then every link.
// It stops at the first host error.
//
// Parameters:
//   - g: the built graph
//   - host: the host renderer
//
// Returns:
//   - error: the first host error, wrapped with the node or link it concerned
func Materialize(g *NodeGraph, host Materializer) error {
	for _, n := range g.Nodes {
		if err := host.AddNode(n); err != nil {
			return fmt.Errorf("add node %d (%s): %w", n.ID, n.Kind, err)
		}
	}

	for _, n := range g.Nodes {
		for _, kv := range n.Inputs.Order {
			if !kv.Value.HasValue {
				continue
			}
			if err := host.SetInput(n, kv.Value); err != nil {
				return fmt.Errorf("set input %q of node %d: %w", kv.Key, n.ID, err)
			}
		}
	}

	for _, l := range g.Links {
		if err := host.Connect(l); err != nil {
			return fmt.Errorf("connect %d.%s -> %d.%s: %w", l.FromNode, l.FromSocket, l.ToNode, l.ToSocket, err)
		}
	}
	return nil
}
