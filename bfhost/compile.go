package bfhost

import (
	"context"
	"fmt"

	"github.com/reusee/bf/bf"
	"github.com/reusee/bf/bfconfigs"
	"github.com/reusee/bf/logs"
	"github.com/reusee/bf/modes"
)

type Compile func(ctx context.Context, source string) (*bf.Program, error)

func (Module) Compile(
	coalesce bfconfigs.Coalesce,
	mode modes.Mode,
	logger logs.Logger,
) Compile {
	return func(ctx context.Context, source string) (*bf.Program, error) {
		program, err := bf.Compile(source, bool(coalesce))
		if err != nil {
			logger.InfoContext(ctx, "compile failed", "error", err)
			return nil, err
		}
		if mode == modes.ModeDevelopment {
			if err := program.Verify(); err != nil {
				panic(fmt.Errorf("resolved program is inconsistent: %w", err))
			}
		}
		logger.DebugContext(ctx, "compiled",
			"opcodes", len(program.Ops),
			"coalesce", bool(coalesce),
		)
		return program, nil
	}
}
