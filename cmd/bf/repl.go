package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/bf/bfconfigs"
	"github.com/reusee/bf/bfhost"
	"github.com/reusee/dscope"
)

const banner = "Tape interpreter. Type quit and ENTER to exit."

func runREPL(scope dscope.Scope) (err error) {
	scope.Call(func(
		exec bfhost.Exec,
		historyFile bfconfigs.HistoryFile,
		dump bfconfigs.DumpCells,
	) {
		var rl *readline.Instance
		rl, err = readline.NewEx(&readline.Config{
			Prompt:      ">> ",
			HistoryFile: string(historyFile),
		})
		if err != nil {
			return
		}
		defer rl.Close()

		fmt.Fprintln(rl.Stdout(), banner)
		for {
			line, e := rl.Readline()
			if errors.Is(e, readline.ErrInterrupt) {
				continue
			}
			if e != nil { // EOF
				return
			}
			if strings.TrimSpace(line) == "quit" {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			// Ctrl-C stops the running line only
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			out := &lineOutput{w: rl.Stdout()}
			res, e := exec(ctx, "repl", line, &lineInput{rl: rl, out: out}, out)
			stop()
			out.endLine()
			if e != nil {
				fmt.Fprintf(rl.Stderr(), "error: %v\n", e)
				continue
			}
			if dump > 0 {
				n := min(int(dump), len(res.Tape))
				fmt.Fprintf(rl.Stdout(), "cells: %v\n", res.Tape[:n])
			}
		}
	})
	return
}

// lineOutput writes program output as it is produced and remembers whether
// the cursor is left mid-line.
type lineOutput struct {
	w       io.Writer
	midLine bool
}

func (l *lineOutput) Write(p []byte) (int, error) {
	n, err := l.w.Write(p)
	if n > 0 {
		l.midLine = p[n-1] != '\n'
	}
	return n, err
}

func (l *lineOutput) endLine() {
	if l.midLine {
		_, _ = l.Write([]byte{'\n'})
	}
}

type lineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

// lineInput feeds a run from lines typed at an input prompt.
// Each line is delivered with its newline; EOF at the prompt ends the input.
type lineInput struct {
	rl  lineReader
	out *lineOutput
	buf []byte
	eof bool
}

var _ io.ByteReader = new(lineInput)

func (l *lineInput) ReadByte() (byte, error) {
	for len(l.buf) == 0 {
		if l.eof {
			return 0, io.EOF
		}
		if l.out != nil {
			l.out.endLine()
		}
		l.rl.SetPrompt("input> ")
		line, err := l.rl.Readline()
		l.rl.SetPrompt(">> ")
		if err != nil {
			l.eof = true
			continue
		}
		l.buf = append([]byte(line), '\n')
	}
	b := l.buf[0]
	l.buf = l.buf[1:]
	return b, nil
}

func (l *lineInput) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := l.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = b
	return 1, nil
}
