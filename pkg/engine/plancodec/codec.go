// Package plancodec converts physical plans to and from the bytes exchanged
// between query coordinators and execution nodes.
//
// [PlanToBytes] and [BytesToPlan] are stateless and safe for concurrent use.
// A [Codec] adds size limits, logging, metrics and tracing around them.
package plancodec

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gogo/protobuf/proto"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	engineerrors "github.com/strata-db/strata/pkg/engine/internal/errors"
	"github.com/strata-db/strata/pkg/engine/internal/planner/physical"
	"github.com/strata-db/strata/pkg/engine/internal/proto/physicalpb"
)

var tracer = otel.Tracer("pkg/engine/plancodec")

// Plan is the root of an executable physical plan tree.
type Plan = physical.ExecutionPlan

// Errors returned by the codec. Use [errors.Is] to match them.
var (
	ErrEmptyPlan              = engineerrors.ErrEmptyPlan
	ErrMissingField           = engineerrors.ErrMissingField
	ErrUnsupportedPlanType    = engineerrors.ErrUnsupportedPlanType
	ErrUnsupportedExpression  = engineerrors.ErrUnsupportedExpression
	ErrProjectionConstruction = engineerrors.ErrProjectionConstruction
	ErrLimitConstruction      = engineerrors.ErrLimitConstruction
	ErrWireDecoding           = engineerrors.ErrWireDecoding
	ErrWireEncoding           = engineerrors.ErrWireEncoding
)

// MissingFieldError names the required wire field that was not set.
type MissingFieldError = engineerrors.MissingFieldError

// PlanToBytes encodes plan into its wire representation. Errors converting
// the plan are returned unchanged; a failure to serialize the converted plan
// is reported as [ErrWireEncoding].
func PlanToBytes(plan Plan) ([]byte, error) {
	node := new(physicalpb.Node)
	if err := node.UnmarshalPhysical(plan); err != nil {
		return nil, err
	}

	data, err := proto.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWireEncoding, err)
	}
	return data, nil
}

// BytesToPlan decodes a plan from its wire representation. Malformed input is
// reported as [ErrWireDecoding]; errors converting the decoded message into a
// plan are returned unchanged.
func BytesToPlan(data []byte) (Plan, error) {
	node := new(physicalpb.Node)
	if err := proto.Unmarshal(data, node); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWireDecoding, err)
	}
	return node.MarshalPhysical()
}

// Codec encodes and decodes plans, rejecting plans larger than the configured
// maximum.
type Codec struct {
	cfg     Config
	logger  log.Logger
	metrics *metrics
}

// New creates a new Codec. Metrics are registered to reg if it is non-nil.
func New(cfg Config, logger log.Logger, reg prometheus.Registerer) (*Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if cfg.LogLevel.Option != nil {
		logger = level.NewFilter(logger, cfg.LogLevel.Option)
	}

	c := &Codec{
		cfg:     cfg,
		logger:  log.With(logger, "component", "plancodec"),
		metrics: newMetrics(),
	}
	if reg != nil {
		if err := c.metrics.Register(reg); err != nil {
			return nil, fmt.Errorf("registering plan codec metrics: %w", err)
		}
	}
	return c, nil
}

// Unregister removes the metrics of c from reg.
func (c *Codec) Unregister(reg prometheus.Registerer) { c.metrics.Unregister(reg) }

// Encode encodes plan. It returns [ErrWireEncoding] if the encoded plan is
// larger than the configured maximum.
func (c *Codec) Encode(ctx context.Context, plan Plan) ([]byte, error) {
	_, span := tracer.Start(ctx, "plancodec.Encode")
	defer span.End()

	start := time.Now()
	data, err := PlanToBytes(plan)
	if err == nil && c.exceedsLimit(len(data)) {
		err = fmt.Errorf("%w: plan size %d exceeds maximum %d", ErrWireEncoding, len(data), c.cfg.MaxPlanSizeBytes)
		data = nil
	}
	c.finish(span, opEncode, len(data), start, err)
	return data, err
}

// Decode decodes a plan from data. It returns [ErrWireDecoding] without
// parsing data if data is larger than the configured maximum.
func (c *Codec) Decode(ctx context.Context, data []byte) (Plan, error) {
	_, span := tracer.Start(ctx, "plancodec.Decode")
	defer span.End()

	start := time.Now()
	if c.exceedsLimit(len(data)) {
		err := fmt.Errorf("%w: plan size %d exceeds maximum %d", ErrWireDecoding, len(data), c.cfg.MaxPlanSizeBytes)
		c.finish(span, opDecode, len(data), start, err)
		return nil, err
	}

	plan, err := BytesToPlan(data)
	c.finish(span, opDecode, len(data), start, err)
	return plan, err
}

func (c *Codec) exceedsLimit(size int) bool {
	return c.cfg.MaxPlanSizeBytes > 0 && size > c.cfg.MaxPlanSizeBytes
}

func (c *Codec) finish(span trace.Span, op string, size int, start time.Time, err error) {
	took := time.Since(start)
	c.metrics.observe(op, size, took, err)

	span.SetAttributes(attribute.Int("plan.bytes", size))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		level.Warn(c.logger).Log("msg", "plan "+op+" failed", "bytes", size, "err", err)
		return
	}
	span.SetStatus(codes.Ok, "")
	level.Debug(c.logger).Log("msg", "plan "+op+" succeeded", "bytes", size, "duration", took)
}
