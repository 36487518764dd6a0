package executor

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
)

// BufferedPipeline is a pipeline implementation that reads from a fixed set of
// Arrow records. It serves as the source of in-memory plan nodes.
type BufferedPipeline struct {
	records []arrow.Record
	current int
}

var _ Pipeline = (*BufferedPipeline)(nil)

// NewBufferedPipeline creates a new BufferedPipeline from a set of Arrow
// records. The pipeline will return these records in sequence.
func NewBufferedPipeline(records ...arrow.Record) *BufferedPipeline {
	for _, rec := range records {
		if rec != nil {
			rec.Retain()
		}
	}

	return &BufferedPipeline{records: records}
}

// Read implements Pipeline. It returns EOF when all records have been read.
func (p *BufferedPipeline) Read(_ context.Context) (arrow.Record, error) {
	if p.current >= len(p.records) {
		return nil, EOF
	}

	rec := p.records[p.current]
	p.current++
	rec.Retain()
	return rec, nil
}

// Close implements Pipeline. It releases all records being held.
func (p *BufferedPipeline) Close() {
	for _, rec := range p.records {
		if rec != nil {
			rec.Release()
		}
	}
	p.records = nil
}
