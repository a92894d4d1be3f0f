package conformity

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchItem pairs one sample set with its verdict. Err is set instead of
// Result when the set could not be assessed (bad declared class, empty
// values); one bad set never aborts the batch.
type BatchItem struct {
	Set    SampleSet `json:"set"`
	Result *Result   `json:"result,omitempty"`
	Err    error     `json:"-"`
}

// AssessBatch evaluates every set concurrently and returns items in input
// order. It only fails when ctx is cancelled before all sets were assessed.
func AssessBatch(ctx context.Context, sets []SampleSet) ([]BatchItem, error) {
	items := make([]BatchItem, len(sets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, set := range sets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items[i].Set = set
			res, err := Assess(set)
			if err != nil {
				items[i].Err = err
				return nil
			}
			items[i].Result = &res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// AllPassed reports whether every item was assessed and passed.
func AllPassed(items []BatchItem) bool {
	for _, it := range items {
		if it.Err != nil || it.Result == nil || !it.Result.Passed {
			return false
		}
	}
	return true
}
