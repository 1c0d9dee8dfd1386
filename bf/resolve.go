package bf

import "fmt"

// Resolve computes the jump table of ops in one pass.
// Unbalanced brackets fail with a *CompileError.
func Resolve(ops []Opcode) (*Program, error) {
	jumps := make([]int, len(ops))
	var pending []int
	for i, op := range ops {
		jumps[i] = -1
		switch op.Kind {
		case LoopOpen:
			pending = append(pending, i)
		case LoopClose:
			if len(pending) == 0 {
				return nil, &CompileError{
					Err:   ErrUnmatchedLoopClose,
					Index: i,
					Pos:   op.Pos,
				}
			}
			open := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			jumps[open] = i
			jumps[i] = open
		}
	}
	if len(pending) > 0 {
		return nil, &CompileError{
			Err:     ErrUnmatchedLoopOpen,
			Index:   pending[0],
			Indices: pending,
			Pos:     ops[pending[0]].Pos,
		}
	}
	return &Program{
		Ops:   ops,
		Jumps: jumps,
	}, nil
}

// Compile tokenizes and resolves source.
func Compile(source string, coalesce bool) (*Program, error) {
	ops := Tokenize(source)
	if coalesce {
		ops = Coalesce(ops)
	}
	return Resolve(ops)
}

// Verify checks the jump table against the opcodes.
func (p *Program) Verify() error {
	if len(p.Jumps) != len(p.Ops) {
		return fmt.Errorf("jump table size %d, opcodes %d", len(p.Jumps), len(p.Ops))
	}
	for i, op := range p.Ops {
		j := p.Jumps[i]
		switch op.Kind {
		case LoopOpen, LoopClose:
			if j < 0 || j >= len(p.Ops) || p.Jumps[j] != i {
				return fmt.Errorf("bad jump at %d: %d", i, j)
			}
			if op.Kind == LoopOpen && (j <= i || p.Ops[j].Kind != LoopClose) {
				return fmt.Errorf("loop open at %d not matched by a later loop close", i)
			}
		default:
			if j != -1 {
				return fmt.Errorf("jump from non-loop opcode %d", i)
			}
		}
	}
	return nil
}
