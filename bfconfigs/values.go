package bfconfigs

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/reusee/bf/bf"
	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/configs"
	"github.com/reusee/bf/vars"
)

type (
	TapeSize    int
	Coalesce    bool
	StepLimit   int
	Timeout     time.Duration
	DumpCells   int
	Jobs        int
	HistoryFile string
)

var (
	tapeSizeFlag   = cmds.Var[int]("-tape-size", "number of tape cells")
	noCoalesceFlag = cmds.Switch("-no-coalesce", "do not merge repeated > < + -")
	stepLimitFlag  = cmds.Var[int]("-step-limit", "stop a run after this many opcodes")
	timeoutFlag    = cmds.Var[time.Duration]("-timeout", "stop a run after this duration")
	dumpFlag       = cmds.Var[int]("-dump", "tape cells to print after a REPL run")
	jobsFlag       = cmds.Var[int]("-jobs", "files to run concurrently")
)

const defaultDumpCells = 5

func (Module) TapeSize(
	loader configs.Loader,
) TapeSize {
	return TapeSize(vars.FirstNonZero(
		*tapeSizeFlag,
		configs.First[int](loader, "tape_size"),
		bf.DefaultTapeSize,
	))
}

func (Module) Coalesce(
	loader configs.Loader,
) Coalesce {
	if *noCoalesceFlag {
		return false
	}
	return Coalesce(vars.DerefOr(configs.First[*bool](loader, "coalesce"), true))
}

func (Module) StepLimit(
	loader configs.Loader,
) StepLimit {
	return StepLimit(vars.FirstNonZero(
		*stepLimitFlag,
		configs.First[int](loader, "step_limit"),
	))
}

func (Module) Timeout(
	loader configs.Loader,
) Timeout {
	if *timeoutFlag != 0 {
		return Timeout(*timeoutFlag)
	}
	str := configs.First[string](loader, "timeout")
	if str == "" {
		return 0
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		panic(fmt.Errorf("config timeout: %w", err))
	}
	return Timeout(d)
}

func (Module) DumpCells(
	loader configs.Loader,
) DumpCells {
	if *dumpFlag != 0 {
		return DumpCells(max(*dumpFlag, 0))
	}
	if n := configs.First[*int](loader, "dump_cells"); n != nil {
		return DumpCells(*n)
	}
	return defaultDumpCells
}

func (Module) Jobs(
	loader configs.Loader,
) Jobs {
	return Jobs(vars.FirstNonZero(
		max(*jobsFlag, 0),
		configs.First[int](loader, "jobs"),
		runtime.NumCPU(),
	))
}

func (Module) HistoryFile(
	loader configs.Loader,
) HistoryFile {
	if path := configs.First[string](loader, "history_file"); path != "" {
		return HistoryFile(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return HistoryFile(filepath.Join(home, ".bf_history"))
}
