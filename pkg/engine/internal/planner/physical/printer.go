package physical

import (
	"fmt"
	"io"
	"strings"

	"github.com/strata-db/strata/pkg/engine/internal/planner/internal/tree"
)

// BuildTree converts a plan node and its children into a tree structure that
// can be used for visualization and debugging purposes.
func BuildTree(n ExecutionPlan) *tree.Node {
	root := toTreeNode(n)
	for _, child := range n.Children() {
		root.AddChild(BuildTree(child))
	}
	return root
}

func toTreeNode(n ExecutionPlan) *tree.Node {
	switch node := n.(type) {
	case *Projection:
		treeNode := tree.NewNode("Projection")
		for _, expr := range node.Expressions() {
			treeNode.AddComment("Expression",
				tree.NewProperty("name", false, expr.Name),
				tree.NewProperty("value", false, expr.Expr.String()),
			)
		}
		return treeNode
	case *MockInput:
		return tree.NewNode("MockInput", tree.NewProperty("name", false, node.Name))
	case *Limit:
		return tree.NewNode("Limit",
			tree.NewProperty("offset", false, node.Skip()),
			tree.NewProperty("limit", false, node.Fetch()),
		)
	default:
		return tree.NewNode(fmt.Sprintf("%T", n))
	}
}

// WriteTree writes a human-readable tree representation of the plan rooted at
// n to w.
func WriteTree(w io.Writer, n ExecutionPlan) error {
	return tree.NewPrinter(w).Print(BuildTree(n))
}

// PrintAsTree returns a human-readable tree representation of the plan rooted
// at n.
func PrintAsTree(n ExecutionPlan) string {
	var sb strings.Builder
	_ = WriteTree(&sb, n)
	return sb.String()
}
