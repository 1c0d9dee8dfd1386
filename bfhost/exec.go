package bfhost

import (
	"context"
	"io"

	"github.com/reusee/bf/bf"
	"github.com/reusee/bf/logs"
)

// Exec compiles and runs one source unit under its own span.
type Exec func(ctx context.Context, name string, source string, input io.Reader, output io.Writer) (*bf.RunResult, error)

func (Module) Exec(
	compile Compile,
	execute Execute,
	newSpan logs.NewSpan,
	logger logs.Logger,
) Exec {
	return func(ctx context.Context, name string, source string, input io.Reader, output io.Writer) (*bf.RunResult, error) {
		ctx, _ = newSpan(ctx, "")
		logger.DebugContext(ctx, "exec", "name", name, "bytes", len(source))
		program, err := compile(ctx, source)
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}
		result, err := execute(ctx, program, input, output)
		if err != nil {
			return result, logs.WrapSpan(ctx, err)
		}
		return result, nil
	}
}
