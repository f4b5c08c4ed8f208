package hooks

import (
	"context"
	"iter"

	"github.com/delaneyj/hookparty/pkg/node"
)

// H creates a node. Render functions become hooked components; any other
// source is passed to node.New unchanged.
func H(source any, options node.Options, children ...any) *node.Node {
	switch fn := source.(type) {
	case RenderFunc:
		return node.New(New(fn), options, children...)
	case func(*Hooks, node.Options, any) any:
		return node.New(New(fn), options, children...)
	}
	return node.New(source, options, children...)
}

// Children runs n. A node whose source is a Component yields each render of
// a fresh instantiation, with the node's children as input. Any other node
// yields its children once.
func Children(ctx context.Context, n *node.Node) iter.Seq2[any, error] {
	if c, ok := n.Source.(*Component); ok {
		return c.Run(ctx, n.Options, n.Children)
	}
	return func(yield func(any, error) bool) {
		yield(n.Children, nil)
	}
}
