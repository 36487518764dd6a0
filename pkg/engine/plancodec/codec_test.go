package plancodec

import (
	"context"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/grafana/dskit/flagext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/strata-db/strata/pkg/engine/internal/planner/physical"
	"github.com/strata-db/strata/pkg/engine/internal/proto/expressionpb"
	"github.com/strata-db/strata/pkg/engine/internal/proto/physicalpb"
	"github.com/strata-db/strata/pkg/util/arrowtest"
)

func projectIDAndName(t *testing.T) Plan {
	t.Helper()

	p, err := physical.NewProjection([]physical.NamedExpression{
		{Expr: physical.NewColumn("id", 0), Name: "id"},
		{Expr: physical.NewColumn("name", 1), Name: "name"},
	}, physical.NewMockInput("mock_input"))
	require.NoError(t, err)
	return p
}

func executeRows(t *testing.T, plan Plan) arrowtest.Rows {
	t.Helper()

	records, err := Execute(context.Background(), plan, 0)
	require.NoError(t, err)

	var out arrowtest.Rows
	for _, rec := range records {
		rows, err := arrowtest.RecordRows(rec)
		rec.Release()
		require.NoError(t, err)
		out = append(out, rows...)
	}
	return out
}

func TestPlanToBytes_RoundTrip(t *testing.T) {
	plan := projectIDAndName(t)

	data, err := PlanToBytes(plan)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	actual, err := BytesToPlan(data)
	require.NoError(t, err)

	require.IsType(t, &physical.Projection{}, actual)
	require.True(t, plan.Schema().Equal(actual.Schema()))
	require.Equal(t, physical.PrintAsTree(plan), physical.PrintAsTree(actual))

	input := actual.Children()[0]
	require.IsType(t, &physical.MockInput{}, input)
	require.Equal(t, "mock_input", input.(*physical.MockInput).Name)

	expect := arrowtest.Rows{
		{"id": uint32(1), "name": "zhangsan"},
		{"id": uint32(2), "name": "lisi"},
		{"id": uint32(3), "name": "wangwu"},
		{"id": uint32(4), "name": "Tony"},
		{"id": uint32(5), "name": "Mike"},
	}
	require.Equal(t, expect, executeRows(t, actual))
	require.Equal(t, executeRows(t, plan), executeRows(t, actual))
}

func TestPlanToBytes_Deterministic(t *testing.T) {
	plan, err := SamplePlan("mock_input", 3)
	require.NoError(t, err)

	first, err := PlanToBytes(plan)
	require.NoError(t, err)
	second, err := PlanToBytes(plan)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBytesToPlan_RoundTripBytes(t *testing.T) {
	node := &physicalpb.Node{Kind: &physicalpb.Node_Projection{Projection: &physicalpb.ProjectionNode{
		Input: &physicalpb.Node{Kind: &physicalpb.Node_Mock{Mock: &physicalpb.MockInputNode{Name: "t"}}},
		Expr: []*expressionpb.Expression{{Kind: &expressionpb.Expression_Column{
			Column: &expressionpb.ColumnExpression{Name: "age", Index: 2},
		}}},
		ExprName: []string{"age"},
	}}}
	data, err := proto.Marshal(node)
	require.NoError(t, err)

	plan, err := BytesToPlan(data)
	require.NoError(t, err)

	actual, err := PlanToBytes(plan)
	require.NoError(t, err)
	require.Equal(t, data, actual)
}

func TestPlanToBytes_Unsupported(t *testing.T) {
	_, err := PlanToBytes(nil)
	require.ErrorIs(t, err, ErrUnsupportedPlanType)
}

func TestBytesToPlan_Errors(t *testing.T) {
	valid, err := PlanToBytes(projectIDAndName(t))
	require.NoError(t, err)

	hugeSkip, err := proto.Marshal(&physicalpb.Node{Kind: &physicalpb.Node_Limit{Limit: &physicalpb.LimitNode{
		Input: &physicalpb.Node{Kind: &physicalpb.Node_Mock{Mock: &physicalpb.MockInputNode{Name: "t"}}},
		Skip:  1 << 63,
	}}})
	require.NoError(t, err)

	tests := map[string]struct {
		data   []byte
		expect error
	}{
		"empty": {
			data:   nil,
			expect: ErrEmptyPlan,
		},
		"truncated": {
			data:   valid[:len(valid)-1],
			expect: ErrWireDecoding,
		},
		"garbage": {
			data:   []byte{0xff, 0xff, 0xff},
			expect: ErrWireDecoding,
		},
		"wrong wire type for projection": {
			data:   []byte{1<<3 | 0, 1},
			expect: ErrWireDecoding,
		},
		"projection without input": {
			data:   []byte{1<<3 | 2, 0},
			expect: ErrMissingField,
		},
		"unknown node kind": {
			data:   []byte{9<<3 | 2, 0},
			expect: ErrUnsupportedPlanType,
		},
		"limit skip out of range": {
			data:   hugeSkip,
			expect: ErrLimitConstruction,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			plan, err := BytesToPlan(tc.data)
			require.ErrorIs(t, err, tc.expect)
			require.Nil(t, plan)
		})
	}
}

func TestBytesToPlan_MissingFieldName(t *testing.T) {
	_, err := BytesToPlan([]byte{1<<3 | 2, 0})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "input", missing.Field)
}

func newTestCodec(t *testing.T, maxSize int) (*Codec, *prometheus.Registry) {
	t.Helper()

	var cfg Config
	flagext.DefaultValues(&cfg)
	cfg.MaxPlanSizeBytes = maxSize

	reg := prometheus.NewRegistry()
	c, err := New(cfg, nil, reg)
	require.NoError(t, err)
	return c, reg
}

func TestCodec(t *testing.T) {
	c, _ := newTestCodec(t, DefaultMaxPlanSizeBytes)
	ctx := context.Background()

	plan := projectIDAndName(t)
	data, err := c.Encode(ctx, plan)
	require.NoError(t, err)

	actual, err := c.Decode(ctx, data)
	require.NoError(t, err)
	require.Equal(t, physical.PrintAsTree(plan), physical.PrintAsTree(actual))

	_, err = c.Decode(ctx, data[:3])
	require.ErrorIs(t, err, ErrWireDecoding)

	require.Equal(t, 1.0, testutil.ToFloat64(c.metrics.plansTotal.WithLabelValues(opEncode, resultSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.metrics.plansTotal.WithLabelValues(opDecode, resultSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(c.metrics.plansTotal.WithLabelValues(opDecode, resultFailure)))
}

func TestCodec_SizeLimit(t *testing.T) {
	plan := projectIDAndName(t)
	data, err := PlanToBytes(plan)
	require.NoError(t, err)

	c, _ := newTestCodec(t, len(data)-1)
	ctx := context.Background()

	_, err = c.Encode(ctx, plan)
	require.ErrorIs(t, err, ErrWireEncoding)

	_, err = c.Decode(ctx, data)
	require.ErrorIs(t, err, ErrWireDecoding)
	require.ErrorContains(t, err, "exceeds maximum")

	unlimited, _ := newTestCodec(t, 0)
	_, err = unlimited.Decode(ctx, data)
	require.NoError(t, err)
}

func TestCodec_RegistersMetrics(t *testing.T) {
	c, reg := newTestCodec(t, 0)

	_, err := c.Encode(context.Background(), physical.NewMockInput("t"))
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "strata_engine_plancodec_plans_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	c.Unregister(reg)
	count, err = testutil.GatherAndCount(reg, "strata_engine_plancodec_plans_total")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestCodec_InvalidConfig(t *testing.T) {
	_, err := New(Config{MaxPlanSizeBytes: -1}, nil, nil)
	require.Error(t, err)
}

func TestCodec_Concurrent(t *testing.T) {
	c, _ := newTestCodec(t, DefaultMaxPlanSizeBytes)
	plan := projectIDAndName(t)
	expect := physical.PrintAsTree(plan)

	g, ctx := errgroup.WithContext(context.Background())
	for range 16 {
		g.Go(func() error {
			for range 50 {
				data, err := c.Encode(ctx, plan)
				if err != nil {
					return err
				}
				actual, err := c.Decode(ctx, data)
				if err != nil {
					return err
				}
				if got := physical.PrintAsTree(actual); got != expect {
					t.Errorf("unexpected plan:\n%s", got)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 800.0, testutil.ToFloat64(c.metrics.plansTotal.WithLabelValues(opDecode, resultSuccess)))
}
