package bf

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func mustCompile(t testing.TB, src string) *Program {
	t.Helper()
	p, err := Compile(src, true)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestOutput(t *testing.T) {
	out := new(bytes.Buffer)
	res, err := Run(mustCompile(t, "+++."), nil, out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), []byte{3}) {
		t.Fatalf("got %v", out.Bytes())
	}
	if res.Tape[0] != 3 {
		t.Fatalf("got %d", res.Tape[0])
	}
	if len(res.Tape) != DefaultTapeSize {
		t.Fatalf("got %d", len(res.Tape))
	}
}

func TestLoopOnce(t *testing.T) {
	m := NewMachine(mustCompile(t, "+[-]"), 0, nil, nil)
	var executed []string
	for op, err := range m.Run {
		if err != nil {
			t.Fatal(err)
		}
		executed = append(executed, op.String())
	}
	if m.Tape[0] != 0 {
		t.Fatalf("got %d", m.Tape[0])
	}
	if str := strings.Join(executed, " "); str != "mutate(+1) loopopen mutate(-1) loopclose" {
		t.Fatalf("got %s", str)
	}
	if !m.Halted() {
		t.Fatal()
	}
}

func TestLoopSkipped(t *testing.T) {
	out := new(bytes.Buffer)
	res, err := Run(mustCompile(t, "[.+++.]++."), nil, out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), []byte{2}) {
		t.Fatalf("got %v", out.Bytes())
	}
	if res.Steps != 3 {
		t.Fatalf("got %d", res.Steps)
	}
}

func TestNestedLoops(t *testing.T) {
	// 4 * 3 into cell 2
	out := new(bytes.Buffer)
	res, err := Run(mustCompile(t, "++++[>+++[>+<-]<-]>>."), nil, out, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), []byte{12}) {
		t.Fatalf("got %v", out.Bytes())
	}
	if res.DP != 2 {
		t.Fatalf("got %d", res.DP)
	}
}

func TestHelloWorld(t *testing.T) {
	src := `
	++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]
	>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.
	`
	out := new(bytes.Buffer)
	if _, err := Run(mustCompile(t, src), nil, out, 0); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Hello World!\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestSaturation(t *testing.T) {
	m := NewMachine(mustCompile(t, "+"), 1, nil, nil)
	m.Tape[0] = 255
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if m.Tape[0] != 255 {
		t.Fatalf("got %d", m.Tape[0])
	}

	m = NewMachine(mustCompile(t, "-"), 1, nil, nil)
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if m.Tape[0] != 0 {
		t.Fatalf("got %d", m.Tape[0])
	}

	res, err := Run(mustCompile(t, strings.Repeat("+", 300)), nil, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Tape[0] != 255 {
		t.Fatalf("got %d", res.Tape[0])
	}

	res, err = Run(mustCompile(t, "+++++-------"), nil, nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Tape[0] != 0 {
		t.Fatalf("got %d", res.Tape[0])
	}
}

func TestPointerOutOfRange(t *testing.T) {
	_, err := Run(mustCompile(t, "<"), nil, nil, 10)
	if !errors.Is(err, ErrPointerOutOfRange) {
		t.Fatalf("got %v", err)
	}

	res, err := Run(mustCompile(t, strings.Repeat(">", 10)), nil, nil, 10)
	if !errors.Is(err, ErrPointerOutOfRange) {
		t.Fatalf("got %v", err)
	}
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("got %T", err)
	}
	if runtimeErr.IP != 0 || runtimeErr.DP != 0 {
		t.Fatalf("got %+v", runtimeErr)
	}
	if res.DP != 0 {
		t.Fatalf("got %d", res.DP)
	}

	// last cell is reachable
	res, err = Run(mustCompile(t, strings.Repeat(">", 9)+"+"), nil, nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if res.DP != 9 || res.Tape[9] != 1 {
		t.Fatalf("got %d %d", res.DP, res.Tape[9])
	}

	// no coalescing: fails on the step that leaves the tape
	p, err := Compile(">><", false)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Run(p, nil, nil, 2)
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("got %v", err)
	}
	if runtimeErr.IP != 1 || runtimeErr.DP != 1 {
		t.Fatalf("got %+v", runtimeErr)
	}
}

func TestFailedMachineStays(t *testing.T) {
	m := NewMachine(mustCompile(t, "<+"), 0, nil, nil)
	err := m.Step()
	if !errors.Is(err, ErrPointerOutOfRange) {
		t.Fatalf("got %v", err)
	}
	if err2 := m.Step(); err2 != err {
		t.Fatalf("got %v", err2)
	}
	if m.Err() != err {
		t.Fatal()
	}
	if m.IP != 0 {
		t.Fatalf("got %d", m.IP)
	}
}

func TestInput(t *testing.T) {
	p := mustCompile(t, ",.")

	out := new(bytes.Buffer)
	if _, err := Run(p, strings.NewReader("A"), out, 0); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), []byte{65}) {
		t.Fatalf("got %v", out.Bytes())
	}

	out.Reset()
	_, err := Run(p, strings.NewReader(""), out, 0)
	if !errors.Is(err, ErrInputExhausted) {
		t.Fatalf("got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("got %v", out.Bytes())
	}

	_, err = Run(p, nil, out, 0)
	if !errors.Is(err, ErrInputExhausted) {
		t.Fatalf("got %v", err)
	}
}

type oneByteReader struct {
	data []byte
	read int
}

func (o *oneByteReader) Read(buf []byte) (int, error) {
	if len(o.data) == 0 {
		return 0, io.EOF
	}
	n := copy(buf, o.data)
	o.data = o.data[n:]
	o.read += n
	return n, nil
}

func TestInputConsumesOneByte(t *testing.T) {
	r := &oneByteReader{data: []byte("xyz")}
	out := new(bytes.Buffer)
	if _, err := Run(mustCompile(t, ",."), r, out, 0); err != nil {
		t.Fatal(err)
	}
	if out.String() != "x" {
		t.Fatalf("got %q", out.String())
	}
	if r.read != 1 {
		t.Fatalf("got %d", r.read)
	}
}

type failingReader struct{}

var errBroken = errors.New("broken")

func (failingReader) Read([]byte) (int, error) {
	return 0, errBroken
}

func TestInputError(t *testing.T) {
	_, err := Run(mustCompile(t, ","), failingReader{}, nil, 0)
	if !errors.Is(err, ErrInputExhausted) {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, errBroken) {
		t.Fatalf("got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errBroken
}

func TestOutputError(t *testing.T) {
	_, err := Run(mustCompile(t, "+."), nil, failingWriter{}, 0)
	if !errors.Is(err, ErrOutputFailed) {
		t.Fatalf("got %v", err)
	}
	if !errors.Is(err, errBroken) {
		t.Fatalf("got %v", err)
	}
}

func TestStep(t *testing.T) {
	m := NewMachine(mustCompile(t, "+>+"), 0, nil, nil)
	for i := range 3 {
		if err := m.Step(); err != nil {
			t.Fatal(err)
		}
		if m.IP != i+1 {
			t.Fatalf("got %d", m.IP)
		}
	}
	if err := m.Step(); !errors.Is(err, ErrHalted) {
		t.Fatalf("got %v", err)
	}
	if m.Tape[0] != 1 || m.Tape[1] != 1 || m.DP != 1 {
		t.Fatalf("got %v %d", m.Tape[:2], m.DP)
	}
}

func TestRunStopAndResume(t *testing.T) {
	m := NewMachine(mustCompile(t, "+[]"), 0, nil, nil)
	n := 0
	for _, err := range m.Run {
		if err != nil {
			t.Fatal(err)
		}
		n++
		if n == 100 {
			break
		}
	}
	if m.Steps != 100 {
		t.Fatalf("got %d", m.Steps)
	}
	for _, err := range m.Run {
		if err != nil {
			t.Fatal(err)
		}
		n++
		if n == 150 {
			break
		}
	}
	if m.Steps != 150 {
		t.Fatalf("got %d", m.Steps)
	}
}

func TestEmptyProgram(t *testing.T) {
	res, err := Run(mustCompile(t, "no instructions here"), nil, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Steps != 0 {
		t.Fatalf("got %d", res.Steps)
	}
}

func TestSharedProgram(t *testing.T) {
	p := mustCompile(t, ",+.")
	done := make(chan []byte)
	for i := range 8 {
		go func() {
			out := new(bytes.Buffer)
			if _, err := Run(p, bytes.NewReader([]byte{byte(i)}), out, 0); err != nil {
				panic(err)
			}
			done <- out.Bytes()
		}()
	}
	seen := make(map[byte]bool)
	for range 8 {
		seen[(<-done)[0]] = true
	}
	for i := range 8 {
		if !seen[byte(i+1)] {
			t.Fatalf("missing %d", i+1)
		}
	}
}
