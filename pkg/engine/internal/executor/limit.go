package executor

import (
	"context"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
)

// NewLimitPipeline skips the first skip rows of input and stops after fetch
// rows. A fetch of zero does not limit the number of rows. Counts above
// [math.MaxInt64] are treated as [math.MaxInt64].
func NewLimitPipeline(input Pipeline, skip, fetch uint64) *GenericPipeline {
	// We gradually reduce offsetRemaining and limitRemaining as we process more records, as the
	// offsetRemaining and limitRemaining may cross record boundaries.
	var (
		offsetRemaining = int64(min(skip, math.MaxInt64))
		limitRemaining  = int64(min(fetch, math.MaxInt64))
		unlimited       = fetch == 0
	)

	return NewGenericPipeline(func(ctx context.Context, inputs []Pipeline) (arrow.Record, error) {
		for {
			// Stop once we reached the limit
			if !unlimited && limitRemaining <= 0 {
				return nil, EOF
			}

			batch, err := inputs[0].Read(ctx)
			if err != nil {
				return nil, err
			}

			// Constrain start and end to the bounds of the record.
			start := min(offsetRemaining, batch.NumRows())
			end := batch.NumRows()
			if !unlimited {
				end = start + min(limitRemaining, batch.NumRows()-start)
			}
			length := end - start

			offsetRemaining -= start
			limitRemaining -= length

			// Zero-length slices are skipped while the offset is consumed.
			if length == 0 {
				batch.Release()
				continue
			}

			out := batch.NewSlice(start, end)
			batch.Release()
			return out, nil
		}
	}, input)
}
