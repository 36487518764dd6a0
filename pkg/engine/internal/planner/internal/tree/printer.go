package tree

import (
	"fmt"
	"io"
	"strings"
)

const (
	connBranch = "├── "
	connLast   = "└── "
	indentPipe = "│   "
	indentNone = "    "
)

// Printer writes [Node] trees to an io.Writer.
type Printer struct {
	w   io.Writer
	err error
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the tree rooted at n. It returns the first write error.
func (p *Printer) Print(n *Node) error {
	p.writeLine("", n)
	p.printBody(n, "")
	return p.err
}

func (p *Printer) printBody(n *Node, prefix string) {
	commentPrefix := prefix + indentNone
	if len(n.Children) > 0 {
		commentPrefix = prefix + indentPipe
	}
	for i, c := range n.Comments {
		last := i == len(n.Comments)-1
		p.writeLine(commentPrefix+connector(last), c)
		p.printBody(c, commentPrefix+indent(last))
	}

	for i, c := range n.Children {
		last := i == len(n.Children)-1
		p.writeLine(prefix+connector(last), c)
		p.printBody(c, prefix+indent(last))
	}
}

func (p *Printer) writeLine(prefix string, n *Node) {
	if p.err != nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(n.Name)
	for _, prop := range n.Properties {
		sb.WriteString(" ")
		sb.WriteString(prop.Key)
		sb.WriteString("=")
		sb.WriteString(formatValues(prop))
	}
	sb.WriteString("\n")

	_, p.err = io.WriteString(p.w, sb.String())
}

func formatValues(prop Property) string {
	if !prop.IsMultiValue {
		if len(prop.Values) == 0 {
			return ""
		}
		return fmt.Sprint(prop.Values[0])
	}

	values := make([]string, len(prop.Values))
	for i, v := range prop.Values {
		values[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(values, ", ") + ")"
}

func connector(last bool) string {
	if last {
		return connLast
	}
	return connBranch
}

func indent(last bool) string {
	if last {
		return indentNone
	}
	return indentPipe
}
