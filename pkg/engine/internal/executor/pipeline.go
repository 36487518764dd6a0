package executor

import (
	"context"
	"errors"

	"github.com/apache/arrow-go/v18/arrow"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("pkg/engine/internal/executor")

// Pipeline represents a lazy sequence of Arrow records produced by executing
// a plan node.
type Pipeline interface {
	// Read collects the next value ([arrow.Record]) from the pipeline and
	// returns it to the caller, which becomes responsible for releasing it.
	// Read returns [EOF] once the pipeline is exhausted.
	Read(context.Context) (arrow.Record, error)
	// Close closes the resources of the pipeline.
	// The implementation must close all the of the pipeline's inputs.
	Close()
}

var EOF = errors.New("pipeline exhausted") //nolint:revive,staticcheck

// ReadFunc produces the next record of a [GenericPipeline] from its inputs.
type ReadFunc func(context.Context, []Pipeline) (arrow.Record, error)

// GenericPipeline is a [Pipeline] whose records are produced by a [ReadFunc].
type GenericPipeline struct {
	inputs []Pipeline
	read   ReadFunc
}

// NewGenericPipeline returns a pipeline calling read for every record. Closing
// the pipeline closes all inputs.
func NewGenericPipeline(read ReadFunc, inputs ...Pipeline) *GenericPipeline {
	return &GenericPipeline{
		read:   read,
		inputs: inputs,
	}
}

var _ Pipeline = (*GenericPipeline)(nil)

// Read implements Pipeline.
func (p *GenericPipeline) Read(ctx context.Context) (arrow.Record, error) {
	if p.read == nil {
		return nil, EOF
	}
	return p.read(ctx, p.inputs)
}

// Close implements Pipeline.
func (p *GenericPipeline) Close() {
	for _, inp := range p.inputs {
		inp.Close()
	}
}

type tracedPipeline struct {
	name  string
	inner Pipeline
}

var _ Pipeline = (*tracedPipeline)(nil)

// TracePipeline wraps a [Pipeline] to record each call to Read with a span.
func TracePipeline(name string, pipeline Pipeline) Pipeline {
	return &tracedPipeline{
		name:  name,
		inner: pipeline,
	}
}

func (p *tracedPipeline) Read(ctx context.Context) (arrow.Record, error) {
	ctx, span := tracer.Start(ctx, p.name+".Read")
	defer span.End()

	res, err := p.inner.Read(ctx)
	if err != nil && !errors.Is(err, EOF) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return res, err
}

func (p *tracedPipeline) Close() { p.inner.Close() }

// Collect reads p until [EOF] and returns every record read. The caller owns
// the returned records. On error, records read so far are released.
func Collect(ctx context.Context, p Pipeline) ([]arrow.Record, error) {
	var out []arrow.Record
	for {
		rec, err := p.Read(ctx)
		if errors.Is(err, EOF) {
			return out, nil
		} else if err != nil {
			for _, r := range out {
				r.Release()
			}
			return nil, err
		}
		out = append(out, rec)
	}
}
