package classfile

import (
	"github.com/wippyai/jclass/classfile/binary"
)

// EncodeInstructionTo appends a single instruction to w. Switch padding
// is recomputed from the writer's length, so w must hold exactly the
// code array written so far.
func EncodeInstructionTo(w *binary.Writer, in *Instruction) {
	pc := w.Len()
	w.U1(uint8(in.Opcode))

	switch imm := in.Imm.(type) {
	case LocalImm:
		w.U1(imm.Index)
	case IincImm:
		w.U1(imm.Index)
		w.U1(uint8(imm.Const))
	case PushImm:
		if in.Opcode == OpSipush {
			w.U2(uint16(imm.Value))
		} else {
			w.U1(uint8(imm.Value))
		}
	case ConstImm:
		if imm.Narrow {
			w.U1(uint8(imm.Index))
		} else {
			w.U2(imm.Index)
		}
	case BranchImm:
		if imm.Wide {
			w.U4(uint32(imm.Offset))
		} else {
			w.U2(uint16(imm.Offset))
		}
	case TableSwitchImm:
		w.WriteBytes(make([]byte, switchPadding(pc)))
		w.U4(uint32(imm.Default))
		w.U4(uint32(imm.Low))
		w.U4(uint32(imm.High))
		for _, off := range imm.Offsets {
			w.U4(uint32(off))
		}
	case LookupSwitchImm:
		w.WriteBytes(make([]byte, switchPadding(pc)))
		w.U4(uint32(imm.Default))
		w.U4(uint32(len(imm.Pairs)))
		for _, p := range imm.Pairs {
			w.U4(uint32(p.Match))
			w.U4(uint32(p.Offset))
		}
	case InvokeInterfaceImm:
		w.U2(imm.Index)
		w.U1(imm.Count)
		w.U1(imm.Reserved)
	case InvokeDynamicImm:
		w.U2(imm.Index)
		w.U2(imm.Reserved)
	case NewArrayImm:
		w.U1(imm.AType)
	case MultiANewArrayImm:
		w.U2(imm.Index)
		w.U1(imm.Dimensions)
	case WideImm:
		w.U1(uint8(imm.Opcode))
		w.U2(imm.Index)
		if imm.Opcode == OpIinc {
			w.U2(uint16(imm.Const))
		}
	}
}

// EncodeInstructions encodes instructions into a code array.
func EncodeInstructions(instrs []Instruction) []byte {
	w := binary.NewWriter()
	for i := range instrs {
		EncodeInstructionTo(w, &instrs[i])
	}
	return w.Bytes()
}
