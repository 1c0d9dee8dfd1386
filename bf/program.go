package bf

// Program is a resolved opcode sequence.
// Jumps[i] is the matching bracket index for loop opcodes and -1 otherwise.
// A Program is never mutated after Resolve and may be shared between machines.
type Program struct {
	Ops   []Opcode
	Jumps []int
}

func (p *Program) String() string {
	return Format(p.Ops)
}
