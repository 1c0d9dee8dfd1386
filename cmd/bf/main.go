package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/reusee/bf/bfhost"
	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/logs"
	"github.com/reusee/bf/modes"
	"github.com/reusee/dscope"
	"golang.org/x/term"
)

var (
	files     = cmds.Collect[string]("-file", "run a source file; may be repeated")
	evalFlag  = cmds.Var[string]("-eval", "run source given on the command line")
	inputFlag = cmds.Var[*string]("-input", "input bytes for -file and -eval runs, instead of stdin")
	printFlag = cmds.Switch("-print", "print the compiled program instead of running it")
)

func main() {
	cmds.Execute(os.Args[1:])

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	if len(*files) == 0 && *evalFlag == "" && !*printFlag && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := runREPL(scope); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case *printFlag:
		err = printPrograms(ctx, scope)
	case len(*files) > 0:
		err = runFiles(ctx, scope)
	case *evalFlag != "":
		err = runEval(ctx, scope)
	default:
		err = runStdin(ctx, scope)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func inputBytes() ([]byte, error) {
	if *inputFlag != nil {
		return []byte(**inputFlag), nil
	}
	return io.ReadAll(os.Stdin)
}

func runFiles(ctx context.Context, scope dscope.Scope) (err error) {
	// file runs take all of stdin as program input, leaving nothing for the tap
	scope.Call(func(debug bfhost.Debug) {
		if debug && *inputFlag == nil {
			err = errors.New("-debug with -file needs -input")
		}
	})
	if err != nil {
		return err
	}
	input, err := inputBytes()
	if err != nil {
		return err
	}
	scope.Call(func(
		execFiles bfhost.ExecFiles,
	) {
		err = execFiles(ctx, *files, input, os.Stdout)
	})
	return
}

func runEval(ctx context.Context, scope dscope.Scope) (err error) {
	var input io.Reader = os.Stdin
	if *inputFlag != nil {
		input = strings.NewReader(**inputFlag)
	}
	scope.Call(func(
		exec bfhost.Exec,
	) {
		_, err = exec(ctx, "-eval", *evalFlag, input, os.Stdout)
	})
	return
}

// runStdin treats all of stdin as one source unit with no program input.
func runStdin(ctx context.Context, scope dscope.Scope) (err error) {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	var input io.Reader
	if *inputFlag != nil {
		input = strings.NewReader(**inputFlag)
	}
	scope.Call(func(
		exec bfhost.Exec,
	) {
		_, err = exec(ctx, "stdin", string(source), input, os.Stdout)
	})
	return
}

func printPrograms(ctx context.Context, scope dscope.Scope) (err error) {
	sources := []string{*evalFlag}
	for _, path := range *files {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sources = append(sources, string(content))
	}
	scope.Call(func(
		compile bfhost.Compile,
		logger logs.Logger,
	) {
		for _, source := range sources {
			if source == "" {
				continue
			}
			program, e := compile(ctx, source)
			if e != nil {
				err = e
				return
			}
			logger.Debug("print", "opcodes", len(program.Ops))
			fmt.Println(program)
		}
	})
	return
}
