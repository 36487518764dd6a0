// Package tree renders plan trees as indented text.
package tree

// Property is a key-value pair attached to a [Node]. A single-value property
// prints as `key=value`, a multi-value property as `key=(value1, value2)`.
type Property struct {
	Key          string
	Values       []any
	IsMultiValue bool
}

// NewProperty creates a new Property. multi marks the property as a
// multi-value property.
func NewProperty(key string, multi bool, values ...any) Property {
	return Property{
		Key:          key,
		Values:       values,
		IsMultiValue: multi,
	}
}

// Node is a printable tree node.
type Node struct {
	// Name is the display name of the node.
	Name string
	// Properties are printed on the same line as the name.
	Properties []Property
	// Children are child nodes of the node.
	Children []*Node
	// Comments are printed before the children and indented one level deeper.
	// They hold tree-shaped attributes of a node, such as the expressions of
	// a projection.
	Comments []*Node
}

// NewNode creates a new node with the given name and properties.
func NewNode(name string, properties ...Property) *Node {
	return &Node{
		Name:       name,
		Properties: properties,
	}
}

// AddChild appends child to the children of n.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AddComment creates a new comment node with the given name and properties.
func (n *Node) AddComment(name string, properties ...Property) *Node {
	node := NewNode(name, properties...)
	n.Comments = append(n.Comments, node)
	return node
}
