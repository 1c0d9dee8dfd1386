package bf

// Tokenize scans source into opcodes, one per instruction symbol.
// Every other byte is skipped.
func Tokenize(source string) []Opcode {
	ops := make([]Opcode, 0, len(source))
	for i := 0; i < len(source); i++ {
		var op Opcode
		switch source[i] {
		case '>':
			op = Opcode{Kind: MovePointer, Delta: 1}
		case '<':
			op = Opcode{Kind: MovePointer, Delta: -1}
		case '+':
			op = Opcode{Kind: MutateCell, Delta: 1}
		case '-':
			op = Opcode{Kind: MutateCell, Delta: -1}
		case '.':
			op = Opcode{Kind: Output}
		case ',':
			op = Opcode{Kind: Input}
		case '[':
			op = Opcode{Kind: LoopOpen}
		case ']':
			op = Opcode{Kind: LoopClose}
		default:
			continue
		}
		op.Pos = i
		ops = append(ops, op)
	}
	return ops
}

// Coalesce merges runs of adjacent MovePointer or MutateCell opcodes going in
// the same direction into one opcode carrying the summed delta.
// Opposite directions never merge: with saturating cells and checked pointer
// motion, "+-" and "<>" are not no-ops.
func Coalesce(ops []Opcode) []Opcode {
	ret := make([]Opcode, 0, len(ops))
	for _, op := range ops {
		if n := len(ret); n > 0 && mergeable(ret[n-1], op) {
			ret[n-1].Delta += op.Delta
			continue
		}
		ret = append(ret, op)
	}
	return ret
}

func mergeable(a, b Opcode) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != MovePointer && a.Kind != MutateCell {
		return false
	}
	return (a.Delta < 0) == (b.Delta < 0)
}
