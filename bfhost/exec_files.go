package bfhost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/reusee/bf/bfconfigs"
	"github.com/reusee/bf/syncs"
)

// ExecFiles runs source files concurrently, each on its own machine and
// with its own copy of input. Outputs are written in argument order.
type ExecFiles func(ctx context.Context, paths []string, input []byte, output io.Writer) error

func (Module) ExecFiles(
	exec Exec,
	jobs bfconfigs.Jobs,
) ExecFiles {
	return func(ctx context.Context, paths []string, input []byte, output io.Writer) error {
		sem := syncs.NewSemaphore(int(jobs))
		outputs := make([]bytes.Buffer, len(paths))
		errs := make([]error, len(paths))

		var wg sync.WaitGroup
		for i, path := range paths {
			wg.Go(func() {
				if err := sem.Acquire(ctx); err != nil {
					errs[i] = fmt.Errorf("%s: %w", path, err)
					return
				}
				defer sem.Release()
				source, err := os.ReadFile(path)
				if err != nil {
					errs[i] = err
					return
				}
				if _, err := exec(ctx, path, string(source), bytes.NewReader(input), &outputs[i]); err != nil {
					errs[i] = fmt.Errorf("%s: %w", path, err)
				}
			})
		}
		wg.Wait()

		for i := range outputs {
			if _, err := outputs[i].WriteTo(output); err != nil {
				return err
			}
		}
		return errors.Join(errs...)
	}
}
