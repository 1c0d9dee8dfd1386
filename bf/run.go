package bf

import "io"

// RunResult is the final state of a finished run.
type RunResult struct {
	Steps int
	DP    int
	Tape  []byte
}

func (m *Machine) Result() *RunResult {
	return &RunResult{
		Steps: m.Steps,
		DP:    m.DP,
		Tape:  m.Tape,
	}
}

// Run executes until the program halts or fails.
// Every executed opcode is yielded with a nil error; a failure is yielded
// once as (nil, err) and ends the iteration. Returning false from yield
// stops the machine between two opcodes, leaving it resumable.
func (m *Machine) Run(yield func(*Opcode, error) bool) {
	for {
		if m.err != nil {
			yield(nil, m.err)
			return
		}
		if m.Halted() {
			return
		}
		op := &m.Program.Ops[m.IP]
		if err := m.Step(); err != nil {
			yield(nil, err)
			return
		}
		if !yield(op, nil) {
			return
		}
	}
}

// Run executes program on a fresh tape of tapeSize cells.
func Run(program *Program, input io.Reader, output io.Writer, tapeSize int) (*RunResult, error) {
	m := NewMachine(program, tapeSize, input, output)
	for _, err := range m.Run {
		if err != nil {
			return m.Result(), err
		}
	}
	return m.Result(), nil
}
