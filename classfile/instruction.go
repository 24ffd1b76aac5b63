package classfile

import (
	stderrors "errors"
	"fmt"

	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/errors"
)

// Opcode is a one-byte bytecode operation. Mnemonic constants are in
// opcodes_table.go.
type Opcode uint8

type operandShape uint8

const (
	shapeNone operandShape = iota
	shapeImplicitLocal
	shapeLocal
	shapeIinc
	shapePushByte
	shapePushShort
	shapeConstNarrow
	shapeConst
	shapeBranch
	shapeBranchWide
	shapeTableSwitch
	shapeLookupSwitch
	shapeInvokeInterface
	shapeInvokeDynamic
	shapeNewArray
	shapeMultiANewArray
	shapeWide
)

type opcodeInfo struct {
	name  string
	shape operandShape
	slot  uint16
}

// String returns the opcode mnemonic.
func (op Opcode) String() string {
	if name := opcodeTable[op].name; name != "" {
		return name
	}
	return fmt.Sprintf("opcode(0x%02x)", uint8(op))
}

// Known reports whether op is in the instruction catalog.
func (op Opcode) Known() bool {
	return opcodeTable[op].name != ""
}

// Instruction represents one decoded bytecode operation. Imm holds one of
// the *Imm types below, or nil for zero-operand forms.
type Instruction struct {
	Imm    interface{}
	PC     int // offset within the code array
	Offset int // absolute offset in the class file
	Length int
	Opcode Opcode
}

// ImplicitLocalImm is the operand of the fixed-slot forms such as
// istore_1. The slot belongs to the opcode and cannot be changed.
type ImplicitLocalImm struct {
	slot uint16
}

// Index returns the local variable slot encoded by the opcode.
func (i ImplicitLocalImm) Index() uint16 { return i.slot }

// LocalImm holds the one-byte local index of load, store and ret.
type LocalImm struct {
	Index uint8
}

// IincImm holds the operands of iinc.
type IincImm struct {
	Index uint8
	Const int8
}

// PushImm holds the signed value of bipush and sipush.
type PushImm struct {
	Value int16
}

// ConstImm holds a constant pool index. Narrow is set for ldc, which
// encodes the index in one byte.
type ConstImm struct {
	Index  uint16
	Narrow bool
}

// BranchImm holds a signed branch offset relative to the instruction.
type BranchImm struct {
	Offset int32
	Wide   bool
}

// Target returns the absolute code offset of the branch from pc.
func (b BranchImm) Target(pc int) int {
	return pc + int(b.Offset)
}

// TableSwitchImm holds the tableswitch jump table. Offsets has
// High-Low+1 entries.
type TableSwitchImm struct {
	Offsets []int32
	Padding int
	Default int32
	Low     int32
	High    int32
}

// MatchPair is one lookupswitch row.
type MatchPair struct {
	Match  int32
	Offset int32
}

// LookupSwitchImm holds the lookupswitch match table.
type LookupSwitchImm struct {
	Pairs   []MatchPair
	Padding int
	Default int32
}

// InvokeInterfaceImm holds the operands of invokeinterface.
type InvokeInterfaceImm struct {
	Index    uint16
	Count    uint8
	Reserved uint8
}

// InvokeDynamicImm holds the operands of invokedynamic.
type InvokeDynamicImm struct {
	Index    uint16
	Reserved uint16
}

// NewArrayImm holds the primitive array type code of newarray.
type NewArrayImm struct {
	AType uint8
}

// MultiANewArrayImm holds the operands of multianewarray.
type MultiANewArrayImm struct {
	Index      uint16
	Dimensions uint8
}

// WideImm holds a wide-prefixed local access. Const is only meaningful
// when Opcode is iinc.
type WideImm struct {
	Opcode Opcode
	Index  uint16
	Const  int16
}

// switchPadding returns the number of alignment bytes after a switch
// opcode at pc so that the header starts on a multiple of four.
func switchPadding(pc int) int {
	return (4 - (pc+1)%4) % 4
}

// LocalIndex returns the local variable slot the instruction reads or
// writes. It fails for instructions with no local operand.
func (i Instruction) LocalIndex() (uint16, error) {
	switch imm := i.Imm.(type) {
	case ImplicitLocalImm:
		return imm.slot, nil
	case LocalImm:
		return uint16(imm.Index), nil
	case IincImm:
		return uint16(imm.Index), nil
	case WideImm:
		return imm.Index, nil
	}
	return 0, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
		Detail("%s has no local variable operand", i.Opcode).
		Build()
}

// WithLocalIndex returns a copy of the instruction addressing slot index.
// Fixed-slot forms fail with ErrFixedOperand.
func (i Instruction) WithLocalIndex(index uint16) (Instruction, error) {
	out := i
	switch imm := i.Imm.(type) {
	case ImplicitLocalImm:
		return Instruction{}, errors.New(errors.PhaseResolve, errors.KindFixedOperand).
			Value(index).
			Detail("%s always addresses local %d", i.Opcode, imm.slot).
			Build()
	case LocalImm:
		if index > 0xFF {
			return Instruction{}, errors.InvalidInput(errors.PhaseResolve,
				fmt.Sprintf("local %d does not fit %s without a wide prefix", index, i.Opcode))
		}
		imm.Index = uint8(index)
		out.Imm = imm
	case IincImm:
		if index > 0xFF {
			return Instruction{}, errors.InvalidInput(errors.PhaseResolve,
				fmt.Sprintf("local %d does not fit iinc without a wide prefix", index))
		}
		imm.Index = uint8(index)
		out.Imm = imm
	case WideImm:
		imm.Index = index
		out.Imm = imm
	default:
		_, err := i.LocalIndex()
		return Instruction{}, err
	}
	return out, nil
}

// DecodeInstructions decodes a code array. base is the absolute offset of
// code[0] in the class file; it fills Instruction.Offset and the offset of
// any returned error.
func DecodeInstructions(code []byte, base int) ([]Instruction, error) {
	c := binary.NewCursor(code)
	instrs := make([]Instruction, 0, len(code)/2)

	for c.Remaining() > 0 {
		pc := c.Position()
		in, err := decodeInstruction(c)
		if err != nil {
			return nil, instructionError(err, base, pc)
		}
		in.Offset = base + in.PC
		instrs = append(instrs, in)
	}
	return instrs, nil
}

// instructionError places err at the absolute offset of the instruction
// starting at pc. A truncated instruction becomes invalid data with no
// cursor underrun left in its chain.
func instructionError(err error, base, pc int) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		if underrunOnly(err) {
			e = errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Value(e.Value).
				Detail("instruction at pc %d runs past end of code: %s", pc, e.Detail).
				Build()
		}
		e.Offset = base + pc
		err = e
	}
	return fmt.Errorf("code[%d]: %w", pc, err)
}

func decodeInstruction(c *binary.Cursor) (Instruction, error) {
	pc := c.Position()
	b, err := c.U1()
	if err != nil {
		return Instruction{}, err
	}
	op := Opcode(b)
	info := opcodeTable[op]
	if info.name == "" {
		return Instruction{}, errors.UnknownDiscriminant(errors.KindUnknownOpcode, pc, fmt.Sprintf("0x%02x", b), "opcode")
	}

	in := Instruction{PC: pc, Opcode: op}

	switch info.shape {
	case shapeNone:

	case shapeImplicitLocal:
		in.Imm = ImplicitLocalImm{slot: info.slot}

	case shapeLocal:
		idx, err := c.U1()
		if err != nil {
			return in, err
		}
		in.Imm = LocalImm{Index: idx}

	case shapeIinc:
		idx, err := c.U1()
		if err != nil {
			return in, err
		}
		v, err := c.S1()
		if err != nil {
			return in, err
		}
		in.Imm = IincImm{Index: idx, Const: v}

	case shapePushByte:
		v, err := c.S1()
		if err != nil {
			return in, err
		}
		in.Imm = PushImm{Value: int16(v)}

	case shapePushShort:
		v, err := c.S2()
		if err != nil {
			return in, err
		}
		in.Imm = PushImm{Value: v}

	case shapeConstNarrow:
		idx, err := c.U1()
		if err != nil {
			return in, err
		}
		in.Imm = ConstImm{Index: uint16(idx), Narrow: true}

	case shapeConst:
		idx, err := c.U2()
		if err != nil {
			return in, err
		}
		in.Imm = ConstImm{Index: idx}

	case shapeBranch:
		off, err := c.S2()
		if err != nil {
			return in, err
		}
		in.Imm = BranchImm{Offset: int32(off)}

	case shapeBranchWide:
		off, err := c.S4()
		if err != nil {
			return in, err
		}
		in.Imm = BranchImm{Offset: off, Wide: true}

	case shapeTableSwitch:
		imm, err := decodeTableSwitch(c, pc)
		if err != nil {
			return in, err
		}
		in.Imm = imm

	case shapeLookupSwitch:
		imm, err := decodeLookupSwitch(c, pc)
		if err != nil {
			return in, err
		}
		in.Imm = imm

	case shapeInvokeInterface:
		idx, err := c.U2()
		if err != nil {
			return in, err
		}
		count, err := c.U1()
		if err != nil {
			return in, err
		}
		reserved, err := c.U1()
		if err != nil {
			return in, err
		}
		in.Imm = InvokeInterfaceImm{Index: idx, Count: count, Reserved: reserved}

	case shapeInvokeDynamic:
		idx, err := c.U2()
		if err != nil {
			return in, err
		}
		reserved, err := c.U2()
		if err != nil {
			return in, err
		}
		in.Imm = InvokeDynamicImm{Index: idx, Reserved: reserved}

	case shapeNewArray:
		atype, err := c.U1()
		if err != nil {
			return in, err
		}
		in.Imm = NewArrayImm{AType: atype}

	case shapeMultiANewArray:
		idx, err := c.U2()
		if err != nil {
			return in, err
		}
		dims, err := c.U1()
		if err != nil {
			return in, err
		}
		in.Imm = MultiANewArrayImm{Index: idx, Dimensions: dims}

	case shapeWide:
		imm, err := decodeWide(c, pc)
		if err != nil {
			return in, err
		}
		in.Imm = imm
	}

	in.Length = c.Position() - pc
	return in, nil
}

func decodeTableSwitch(c *binary.Cursor, pc int) (TableSwitchImm, error) {
	imm := TableSwitchImm{Padding: switchPadding(pc)}
	if _, err := c.NextN(imm.Padding); err != nil {
		return imm, err
	}
	var err error
	if imm.Default, err = c.S4(); err != nil {
		return imm, err
	}
	if imm.Low, err = c.S4(); err != nil {
		return imm, err
	}
	if imm.High, err = c.S4(); err != nil {
		return imm, err
	}
	if imm.Low > imm.High {
		return imm, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Offset(pc).
			Detail("tableswitch low %d > high %d", imm.Low, imm.High).
			Build()
	}
	n := int64(imm.High) - int64(imm.Low) + 1
	if n*4 > int64(c.Remaining()) {
		return imm, errors.BufferUnderrun(c.Position(), int(n*4), c.Remaining())
	}
	imm.Offsets = make([]int32, n)
	for i := range imm.Offsets {
		if imm.Offsets[i], err = c.S4(); err != nil {
			return imm, err
		}
	}
	return imm, nil
}

func decodeLookupSwitch(c *binary.Cursor, pc int) (LookupSwitchImm, error) {
	imm := LookupSwitchImm{Padding: switchPadding(pc)}
	if _, err := c.NextN(imm.Padding); err != nil {
		return imm, err
	}
	var err error
	if imm.Default, err = c.S4(); err != nil {
		return imm, err
	}
	npairs, err := c.S4()
	if err != nil {
		return imm, err
	}
	if npairs < 0 {
		return imm, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Offset(pc).
			Detail("lookupswitch npairs %d is negative", npairs).
			Build()
	}
	if int64(npairs)*8 > int64(c.Remaining()) {
		return imm, errors.BufferUnderrun(c.Position(), int(npairs)*8, c.Remaining())
	}
	imm.Pairs = make([]MatchPair, npairs)
	for i := range imm.Pairs {
		if imm.Pairs[i].Match, err = c.S4(); err != nil {
			return imm, err
		}
		if imm.Pairs[i].Offset, err = c.S4(); err != nil {
			return imm, err
		}
	}
	return imm, nil
}

func decodeWide(c *binary.Cursor, pc int) (WideImm, error) {
	b, err := c.U1()
	if err != nil {
		return WideImm{}, err
	}
	imm := WideImm{Opcode: Opcode(b)}
	if !wideable(imm.Opcode) {
		return imm, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Offset(pc).
			Value(b).
			Detail("wide cannot modify %s", imm.Opcode).
			Build()
	}
	if imm.Index, err = c.U2(); err != nil {
		return imm, err
	}
	if imm.Opcode == OpIinc {
		if imm.Const, err = c.S2(); err != nil {
			return imm, err
		}
	}
	return imm, nil
}

func wideable(op Opcode) bool {
	switch op {
	case OpIload, OpLload, OpFload, OpDload, OpAload,
		OpIstore, OpLstore, OpFstore, OpDstore, OpAstore,
		OpRet, OpIinc:
		return true
	}
	return false
}

// Accept dispatches to the visitor method for the instruction's operand shape.
func (i *Instruction) Accept(v InstructionVisitor, depth int) {
	switch imm := i.Imm.(type) {
	case nil:
		v.VisitZeroOperand(i, depth)
	case ImplicitLocalImm:
		v.VisitImplicitLocal(i, imm, depth)
	case LocalImm:
		v.VisitLocal(i, imm, depth)
	case IincImm:
		v.VisitIinc(i, imm, depth)
	case PushImm:
		v.VisitPush(i, imm, depth)
	case ConstImm:
		v.VisitConst(i, imm, depth)
	case BranchImm:
		v.VisitBranch(i, imm, depth)
	case TableSwitchImm:
		v.VisitTableSwitch(i, imm, depth)
	case LookupSwitchImm:
		v.VisitLookupSwitch(i, imm, depth)
	case InvokeInterfaceImm:
		v.VisitInvokeInterface(i, imm, depth)
	case InvokeDynamicImm:
		v.VisitInvokeDynamicCall(i, imm, depth)
	case NewArrayImm:
		v.VisitNewArray(i, imm, depth)
	case MultiANewArrayImm:
		v.VisitMultiANewArray(i, imm, depth)
	case WideImm:
		v.VisitWide(i, imm, depth)
	}
}
