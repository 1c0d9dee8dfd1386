package bf

import (
	"errors"
	"io"
)

const DefaultTapeSize = 1000

// Machine is the state of one run: a tape, the two pointers and the byte
// streams. It belongs to a single goroutine.
type Machine struct {
	Program *Program
	Tape    []byte
	IP      int
	DP      int
	Steps   int

	input  io.Reader
	output io.Writer
	buf    [1]byte
	err    error
}

// NewMachine allocates a zeroed tape of tapeSize cells.
// A non-positive tapeSize selects DefaultTapeSize.
// A nil input behaves as an empty stream, a nil output discards.
func NewMachine(program *Program, tapeSize int, input io.Reader, output io.Writer) *Machine {
	if tapeSize <= 0 {
		tapeSize = DefaultTapeSize
	}
	if output == nil {
		output = io.Discard
	}
	return &Machine{
		Program: program,
		Tape:    make([]byte, tapeSize),
		input:   input,
		output:  output,
	}
}

func (m *Machine) Halted() bool {
	return m.IP >= len(m.Program.Ops)
}

// Err returns the error that stopped the machine, if any.
func (m *Machine) Err() error {
	return m.err
}

// Step executes the opcode at IP.
// It returns ErrHalted once the program has finished. After a *RuntimeError
// the machine does not move again and Step keeps returning that error.
func (m *Machine) Step() error {
	if m.err != nil {
		return m.err
	}
	if m.Halted() {
		return ErrHalted
	}

	op := &m.Program.Ops[m.IP]
	switch op.Kind {

	case MovePointer:
		dp := m.DP + op.Delta
		if dp < 0 || dp >= len(m.Tape) {
			return m.fail(ErrPointerOutOfRange, nil)
		}
		m.DP = dp

	case MutateCell:
		v := int(m.Tape[m.DP]) + op.Delta
		m.Tape[m.DP] = byte(min(max(v, 0), 255))

	case Output:
		m.buf[0] = m.Tape[m.DP]
		if _, err := m.output.Write(m.buf[:]); err != nil {
			return m.fail(ErrOutputFailed, err)
		}

	case Input:
		b, err := m.readByte()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				err = nil
			}
			return m.fail(ErrInputExhausted, err)
		}
		m.Tape[m.DP] = b

	case LoopOpen:
		if m.Tape[m.DP] == 0 {
			m.IP = m.Program.Jumps[m.IP]
		}

	case LoopClose:
		if m.Tape[m.DP] != 0 {
			m.IP = m.Program.Jumps[m.IP]
		}

	}

	m.IP++
	m.Steps++
	return nil
}

func (m *Machine) readByte() (byte, error) {
	if m.input == nil {
		return 0, io.EOF
	}
	if r, ok := m.input.(io.ByteReader); ok {
		return r.ReadByte()
	}
	// one byte at a time, so nothing past the consumed byte is taken from a shared stream
	if _, err := io.ReadFull(m.input, m.buf[:]); err != nil {
		return 0, err
	}
	return m.buf[0], nil
}

func (m *Machine) fail(err error, cause error) error {
	m.err = &RuntimeError{
		Err:   err,
		IP:    m.IP,
		DP:    m.DP,
		Cause: cause,
	}
	return m.err
}
