package store

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/aweris/gitodb/internal/object"
)

// Problem describes an object that failed verification.
type Problem struct {
	ID  object.ID
	Err error
}

// VerifyReport is the outcome of Verify.
type VerifyReport struct {
	Checked  int
	Problems []Problem
}

// OK reports whether every checked object was intact.
func (r *VerifyReport) OK() bool {
	return len(r.Problems) == 0
}

// Verify reads every stored object from disk, bypassing the cache, and
// checks that it decompresses, hashes back to its name and has a valid
// header. Broken objects are reported, not removed. The returned error is
// only set when enumeration itself fails or ctx is done.
func (s *LocalStore) Verify(ctx context.Context) (*VerifyReport, error) {
	var (
		mu     sync.Mutex
		report = &VerifyReport{}
	)

	p := pool.New().WithMaxGoroutines(s.concurrency).WithContext(ctx)
	var listErr error
	for id, err := range s.Objects(ctx) {
		if err != nil {
			listErr = err
			break
		}
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := s.readObject(id)

			mu.Lock()
			defer mu.Unlock()
			report.Checked++
			if err != nil {
				s.log.Warn("object failed verification", zap.Stringer("id", id), zap.Error(err))
				report.Problems = append(report.Problems, Problem{ID: id, Err: err})
			}
			return nil
		})
	}
	if err := errors.Join(p.Wait(), listErr); err != nil {
		return nil, err
	}

	slices.SortFunc(report.Problems, func(a, b Problem) int {
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return report, nil
}
