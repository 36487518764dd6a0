package tree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	root := NewNode("Limit", NewProperty("offset", false, 0), NewProperty("limit", false, 10))
	projection := root.AddChild(NewNode("Projection"))
	projection.AddComment("Expression", NewProperty("name", false, "id"))
	projection.AddComment("Expression", NewProperty("names", true, "a", "b"))
	projection.AddChild(NewNode("MockInput", NewProperty("name", false, "t")))
	root.AddChild(NewNode("MockInput", NewProperty("name", false, "u")))

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).Print(root))

	expect := `Limit offset=0 limit=10
├── Projection
│   │   ├── Expression name=id
│   │   └── Expression names=(a, b)
│   └── MockInput name=t
└── MockInput name=u
`
	require.Equal(t, expect, buf.String())
}

func TestPrinter_CommentsWithoutChildren(t *testing.T) {
	root := NewNode("Projection")
	root.AddComment("Expression", NewProperty("name", false, "x"))

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf).Print(root))
	require.Equal(t, "Projection\n    └── Expression name=x\n", buf.String())
}
