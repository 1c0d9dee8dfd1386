package bfhost

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/reusee/bf/bf"
	"github.com/reusee/bf/bfconfigs"
	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/debugs"
	"github.com/reusee/bf/logs"
)

var ErrStepLimit = errors.New("step limit exceeded")

// Debug opens a debugs.Tap on the machine after a failed or stopped run.
type Debug bool

var debugFlag = cmds.Switch("-debug", "inspect the machine in a starlark REPL when a run fails")

func (Module) Debug() Debug {
	return Debug(*debugFlag)
}

// taps read the process stdin, so concurrent runs open them one at a time
var tapMu sync.Mutex

// deadline checks are amortized over this many steps
const checkInterval = 4096

// Execute runs a program on a fresh machine.
// The core has no notion of budgets; they are enforced here by stopping the
// machine's iterator. A machine blocked reading input is not interrupted.
type Execute func(ctx context.Context, program *bf.Program, input io.Reader, output io.Writer) (*bf.RunResult, error)

func (Module) Execute(
	tapeSize bfconfigs.TapeSize,
	stepLimit bfconfigs.StepLimit,
	timeout bfconfigs.Timeout,
	debug Debug,
	tap debugs.Tap,
	logger logs.Logger,
) Execute {
	return func(ctx context.Context, program *bf.Program, input io.Reader, output io.Writer) (*bf.RunResult, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout))
			defer cancel()
		}

		m := bf.NewMachine(program, int(tapeSize), input, output)
		start := time.Now()
		err := ctx.Err()
		if err == nil {
			for _, runErr := range m.Run {
				if runErr != nil {
					err = runErr
					break
				}
				if stepLimit > 0 && m.Steps >= int(stepLimit) && !m.Halted() {
					err = ErrStepLimit
					break
				}
				if m.Steps%checkInterval == 0 {
					if err = ctx.Err(); err != nil {
						break
					}
				}
			}
		}

		result := m.Result()
		if err != nil {
			logger.InfoContext(ctx, "run stopped",
				"error", err,
				"ip", m.IP,
				"dp", m.DP,
				"steps", m.Steps,
			)
			if debug {
				tapMu.Lock()
				tap(ctx, "run stopped", machineGlobals(m, err))
				tapMu.Unlock()
			}
			return result, err
		}
		logger.DebugContext(ctx, "run done",
			"steps", m.Steps,
			"dp", m.DP,
			"duration", time.Since(start),
		)
		return result, nil
	}
}

func machineGlobals(m *bf.Machine, err error) map[string]any {
	globals := map[string]any{
		"error":   err,
		"ip":      m.IP,
		"dp":      m.DP,
		"steps":   m.Steps,
		"tape":    m.Tape,
		"program": m.Program.String(),
		"cells": func(from, to int) []byte {
			from = min(max(from, 0), len(m.Tape))
			to = min(max(to, from), len(m.Tape))
			return m.Tape[from:to]
		},
	}
	if !m.Halted() {
		globals["op"] = m.Program.Ops[m.IP].String()
	}
	return globals
}
