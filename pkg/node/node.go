// Package node builds the opaque element nodes a render function returns.
//
// A Node is only a description: a source (a tag name, a component, anything
// the embedding renderer understands), its options and its children. Turning
// nodes into a live tree is the renderer's job; this package only creates
// them, exposes their parts and prints them as markup for inspection.
package node

import (
	"fmt"
	"reflect"
	"sort"
)

// Options are the properties passed to a node's source.
type Options map[string]any

// Node is an element description.
type Node struct {
	Source   any
	Options  Options
	Children []any
}

// Named is implemented by sources that know their own display name.
type Named interface {
	Name() string
}

// New creates a Node. A nil options map is replaced by an empty one.
func New(source any, options Options, children ...any) *Node {
	if options == nil {
		options = Options{}
	}
	return &Node{
		Source:   source,
		Options:  options,
		Children: children,
	}
}

// Name returns the display name of n's source.
func Name(n *Node) string {
	switch s := n.Source.(type) {
	case string:
		return s
	case Named:
		return s.Name()
	case fmt.Stringer:
		return s.String()
	case nil:
		return "fragment"
	}
	return reflect.TypeOf(n.Source).String()
}

// Properties returns n's options.
func Properties(n *Node) Options {
	return n.Options
}

// Children returns n's children.
func Children(n *Node) []any {
	return n.Children
}

type property struct {
	Key   string
	Value string
}

func sortedProperties(n *Node) []property {
	props := make([]property, 0, len(n.Options))
	for k, v := range n.Options {
		props = append(props, property{Key: k, Value: propertyValue(v)})
	}
	sort.Slice(props, func(i, j int) bool {
		return props[i].Key < props[j].Key
	})
	return props
}

func propertyValue(v any) string {
	if v == nil {
		return ""
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return "[func]"
	}
	return fmt.Sprint(v)
}
