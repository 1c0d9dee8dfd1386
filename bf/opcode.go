// Package bf implements the execution core of the eight-instruction tape
// language: tokenizing, loop resolution and a bounded byte-tape machine.
package bf

import (
	"fmt"
	"strings"
)

// Kind is the instruction kind of an Opcode.
type Kind uint8

const (
	Illegal     Kind = iota
	MovePointer      // > <
	MutateCell       // + -
	Output           // .
	Input            // ,
	LoopOpen         // [
	LoopClose        // ]
)

func (k Kind) String() string {
	switch k {
	case MovePointer:
		return "move"
	case MutateCell:
		return "mutate"
	case Output:
		return "output"
	case Input:
		return "input"
	case LoopOpen:
		return "loopopen"
	case LoopClose:
		return "loopclose"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Opcode is one resolved instruction unit.
// Delta is only meaningful for MovePointer and MutateCell.
// Pos is the byte offset of the first source symbol the opcode came from.
type Opcode struct {
	Kind  Kind
	Delta int
	Pos   int
}

func (o Opcode) String() string {
	switch o.Kind {
	case MovePointer, MutateCell:
		return fmt.Sprintf("%s(%+d)", o.Kind, o.Delta)
	}
	return o.Kind.String()
}

// StringBF formats the opcode as source symbols, expanding its delta.
func (o Opcode) StringBF() string {
	switch o.Kind {
	case MovePointer:
		if o.Delta < 0 {
			return strings.Repeat("<", -o.Delta)
		}
		return strings.Repeat(">", o.Delta)
	case MutateCell:
		if o.Delta < 0 {
			return strings.Repeat("-", -o.Delta)
		}
		return strings.Repeat("+", o.Delta)
	case Output:
		return "."
	case Input:
		return ","
	case LoopOpen:
		return "["
	case LoopClose:
		return "]"
	}
	return ""
}

// Format renders opcodes back to canonical source.
func Format(ops []Opcode) string {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op.StringBF())
	}
	return b.String()
}
