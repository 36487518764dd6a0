// Package physicalpb contains the wire representation of physical plan trees
// and the conversion between physical plans and their wire messages. The
// message types mirror physical.proto.
package physicalpb

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/strata-db/strata/pkg/engine/internal/proto/expressionpb"
	"github.com/strata-db/strata/pkg/engine/internal/proto/wireutil"
)

// Node is a node of a physical plan tree. Exactly one of the Kind wrappers is
// set for a valid node.
type Node struct {
	Kind isNode_Kind

	// unknownKind is the field number of an unrecognized node kind read from
	// the wire.
	unknownKind protowire.Number
}

type isNode_Kind interface {
	isNode_Kind()
}

type Node_Projection struct {
	Projection *ProjectionNode
}

type Node_Mock struct {
	Mock *MockInputNode
}

type Node_Limit struct {
	Limit *LimitNode
}

func (*Node_Projection) isNode_Kind() {}
func (*Node_Mock) isNode_Kind()       {}
func (*Node_Limit) isNode_Kind()      {}

// GetKind returns the kind of the node, or nil.
func (m *Node) GetKind() isNode_Kind {
	if m != nil {
		return m.Kind
	}
	return nil
}

// GetProjection returns the projection, or nil if another kind is set.
func (m *Node) GetProjection() *ProjectionNode {
	if x, ok := m.GetKind().(*Node_Projection); ok {
		return x.Projection
	}
	return nil
}

// GetMock returns the mock input, or nil if another kind is set.
func (m *Node) GetMock() *MockInputNode {
	if x, ok := m.GetKind().(*Node_Mock); ok {
		return x.Mock
	}
	return nil
}

// GetLimit returns the limit, or nil if another kind is set.
func (m *Node) GetLimit() *LimitNode {
	if x, ok := m.GetKind().(*Node_Limit); ok {
		return x.Limit
	}
	return nil
}

// ProjectionNode evaluates Expr against the rows of Input. ExprName[i] names
// the output column of Expr[i].
type ProjectionNode struct {
	Input    *Node
	Expr     []*expressionpb.Expression
	ExprName []string
}

// MockInputNode is a placeholder scan with fixed data.
type MockInputNode struct {
	Name string
}

// LimitNode skips and limits the rows of Input.
type LimitNode struct {
	Input *Node
	Skip  uint64
	Fetch uint64
}

// PlanFrame is a plan fragment sent over a stream.
type PlanFrame struct {
	FragmentId []byte
	Plan       *Node
}

const (
	fieldNodeProjection protowire.Number = 1
	fieldNodeMock       protowire.Number = 2
	fieldNodeLimit      protowire.Number = 3

	fieldProjectionInput    protowire.Number = 1
	fieldProjectionExpr     protowire.Number = 2
	fieldProjectionExprName protowire.Number = 3

	fieldMockName protowire.Number = 1

	fieldLimitInput protowire.Number = 1
	fieldLimitSkip  protowire.Number = 2
	fieldLimitFetch protowire.Number = 3

	fieldFrameFragmentID protowire.Number = 1
	fieldFramePlan       protowire.Number = 2
)

func (m *Node) Reset()      { *m = Node{} }
func (*Node) ProtoMessage() {}

// String returns a compact text form of the node and its subtree.
func (m *Node) String() string {
	switch k := m.GetKind().(type) {
	case *Node_Projection:
		return "projection:<" + k.Projection.String() + ">"
	case *Node_Mock:
		return "mock:<" + k.Mock.String() + ">"
	case *Node_Limit:
		return "limit:<" + k.Limit.String() + ">"
	}
	if m != nil && m.unknownKind != 0 {
		return fmt.Sprintf("%d:<>", m.unknownKind)
	}
	return ""
}

// Marshal encodes the node in protobuf wire format.
func (m *Node) Marshal() ([]byte, error) {
	var b []byte
	switch k := m.Kind.(type) {
	case *Node_Projection:
		if k.Projection != nil {
			return wireutil.AppendMessage(b, fieldNodeProjection, k.Projection)
		}
	case *Node_Mock:
		if k.Mock != nil {
			return wireutil.AppendMessage(b, fieldNodeMock, k.Mock)
		}
	case *Node_Limit:
		if k.Limit != nil {
			return wireutil.AppendMessage(b, fieldNodeLimit, k.Limit)
		}
	}
	return b, nil
}

// Unmarshal decodes the node from protobuf wire format.
func (m *Node) Unmarshal(b []byte) error {
	m.Reset()
	return wireutil.RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		var (
			msg  interface{ Unmarshal([]byte) error }
			kind isNode_Kind
		)
		switch num {
		case fieldNodeProjection:
			projection := new(ProjectionNode)
			msg, kind = projection, &Node_Projection{Projection: projection}
		case fieldNodeMock:
			mock := new(MockInputNode)
			msg, kind = mock, &Node_Mock{Mock: mock}
		case fieldNodeLimit:
			limit := new(LimitNode)
			msg, kind = limit, &Node_Limit{Limit: limit}
		default:
			m.Kind = nil
			m.unknownKind = num
			return wireutil.SkipField(num, typ, b)
		}

		v, n, err := wireutil.ConsumeBytes(num, typ, b)
		if err != nil {
			return 0, err
		}
		if err := msg.Unmarshal(v); err != nil {
			return 0, err
		}
		m.Kind = kind
		m.unknownKind = 0
		return n, nil
	})
}

func (m *ProjectionNode) Reset()      { *m = ProjectionNode{} }
func (*ProjectionNode) ProtoMessage() {}

func (m *ProjectionNode) String() string {
	if m == nil {
		return ""
	}
	parts := make([]string, 0, 1+len(m.Expr)+len(m.ExprName))
	if m.Input != nil {
		parts = append(parts, "input:<"+m.Input.String()+">")
	}
	for _, expr := range m.Expr {
		parts = append(parts, "expr:<"+expr.String()+">")
	}
	for _, name := range m.ExprName {
		parts = append(parts, fmt.Sprintf("expr_name:%q", name))
	}
	return strings.Join(parts, " ")
}

// Marshal encodes the projection in protobuf wire format.
func (m *ProjectionNode) Marshal() ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if m.Input != nil {
		if b, err = wireutil.AppendMessage(b, fieldProjectionInput, m.Input); err != nil {
			return nil, err
		}
	}
	for _, expr := range m.Expr {
		if expr == nil {
			expr = &expressionpb.Expression{}
		}
		if b, err = wireutil.AppendMessage(b, fieldProjectionExpr, expr); err != nil {
			return nil, err
		}
	}
	for _, name := range m.ExprName {
		b = wireutil.AppendString(b, fieldProjectionExprName, name)
	}
	return b, nil
}

// Unmarshal decodes the projection from protobuf wire format.
func (m *ProjectionNode) Unmarshal(b []byte) error {
	m.Reset()
	return wireutil.RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldProjectionInput:
			v, n, err := wireutil.ConsumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			input := new(Node)
			if err := input.Unmarshal(v); err != nil {
				return 0, err
			}
			m.Input = input
			return n, nil

		case fieldProjectionExpr:
			v, n, err := wireutil.ConsumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			expr := new(expressionpb.Expression)
			if err := expr.Unmarshal(v); err != nil {
				return 0, err
			}
			m.Expr = append(m.Expr, expr)
			return n, nil

		case fieldProjectionExprName:
			v, n, err := wireutil.ConsumeString(num, typ, b)
			if err != nil {
				return 0, err
			}
			m.ExprName = append(m.ExprName, v)
			return n, nil
		}
		return wireutil.SkipField(num, typ, b)
	})
}

func (m *MockInputNode) Reset()      { *m = MockInputNode{} }
func (*MockInputNode) ProtoMessage() {}

func (m *MockInputNode) String() string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("name:%q", m.Name)
}

// Marshal encodes the mock input in protobuf wire format.
func (m *MockInputNode) Marshal() ([]byte, error) {
	var b []byte
	if m.Name != "" {
		b = wireutil.AppendString(b, fieldMockName, m.Name)
	}
	return b, nil
}

// Unmarshal decodes the mock input from protobuf wire format.
func (m *MockInputNode) Unmarshal(b []byte) error {
	m.Reset()
	return wireutil.RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == fieldMockName {
			v, n, err := wireutil.ConsumeString(num, typ, b)
			m.Name = v
			return n, err
		}
		return wireutil.SkipField(num, typ, b)
	})
}

func (m *LimitNode) Reset()      { *m = LimitNode{} }
func (*LimitNode) ProtoMessage() {}

func (m *LimitNode) String() string {
	if m == nil {
		return ""
	}
	var parts []string
	if m.Input != nil {
		parts = append(parts, "input:<"+m.Input.String()+">")
	}
	parts = append(parts, fmt.Sprintf("skip:%d fetch:%d", m.Skip, m.Fetch))
	return strings.Join(parts, " ")
}

// Marshal encodes the limit in protobuf wire format.
func (m *LimitNode) Marshal() ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if m.Input != nil {
		if b, err = wireutil.AppendMessage(b, fieldLimitInput, m.Input); err != nil {
			return nil, err
		}
	}
	if m.Skip != 0 {
		b = wireutil.AppendVarint(b, fieldLimitSkip, m.Skip)
	}
	if m.Fetch != 0 {
		b = wireutil.AppendVarint(b, fieldLimitFetch, m.Fetch)
	}
	return b, nil
}

// Unmarshal decodes the limit from protobuf wire format.
func (m *LimitNode) Unmarshal(b []byte) error {
	m.Reset()
	return wireutil.RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldLimitInput:
			v, n, err := wireutil.ConsumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			input := new(Node)
			if err := input.Unmarshal(v); err != nil {
				return 0, err
			}
			m.Input = input
			return n, nil
		case fieldLimitSkip:
			v, n, err := wireutil.ConsumeVarint(num, typ, b)
			m.Skip = v
			return n, err
		case fieldLimitFetch:
			v, n, err := wireutil.ConsumeVarint(num, typ, b)
			m.Fetch = v
			return n, err
		}
		return wireutil.SkipField(num, typ, b)
	})
}

func (m *PlanFrame) Reset()      { *m = PlanFrame{} }
func (*PlanFrame) ProtoMessage() {}

func (m *PlanFrame) String() string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("fragment_id:%x plan:<%s>", m.FragmentId, m.Plan.String())
}

// Marshal encodes the frame in protobuf wire format.
func (m *PlanFrame) Marshal() ([]byte, error) {
	var b []byte
	if len(m.FragmentId) > 0 {
		b = wireutil.AppendBytes(b, fieldFrameFragmentID, m.FragmentId)
	}
	if m.Plan != nil {
		return wireutil.AppendMessage(b, fieldFramePlan, m.Plan)
	}
	return b, nil
}

// Unmarshal decodes the frame from protobuf wire format.
func (m *PlanFrame) Unmarshal(b []byte) error {
	m.Reset()
	return wireutil.RangeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldFrameFragmentID:
			v, n, err := wireutil.ConsumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			m.FragmentId = append([]byte(nil), v...)
			return n, nil
		case fieldFramePlan:
			v, n, err := wireutil.ConsumeBytes(num, typ, b)
			if err != nil {
				return 0, err
			}
			plan := new(Node)
			if err := plan.Unmarshal(v); err != nil {
				return 0, err
			}
			m.Plan = plan
			return n, nil
		}
		return wireutil.SkipField(num, typ, b)
	})
}
