package dump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/jclass/classfile"
)

// insn prints one instruction as pc: 'HEX' mnemonic operands // comment,
// consuming n bytes.
func (p *Printer) insn(depth int, in *classfile.Instruction, n int, operands, comment string) {
	b := p.read(n)
	h := "??"
	if b != nil {
		h = hexString(b)
	}
	var sb strings.Builder
	sb.WriteString(p.st.paint(p.st.offset, strconv.Itoa(in.PC)+":"))
	sb.WriteString(" '")
	sb.WriteString(p.st.paint(p.st.hex, h))
	sb.WriteString("' ")
	sb.WriteString(p.st.paint(p.st.name, in.Opcode.String()))
	if operands != "" {
		sb.WriteByte(' ')
		sb.WriteString(operands)
	}
	if comment != "" {
		sb.WriteString(p.st.paint(p.st.comment, " // "+comment))
	}
	p.line(depth, sb.String())
}

func (p *Printer) VisitZeroOperand(in *classfile.Instruction, depth int) {
	p.insn(depth, in, in.Length, "", "")
}

func (p *Printer) VisitImplicitLocal(in *classfile.Instruction, imm classfile.ImplicitLocalImm, depth int) {
	p.insn(depth, in, in.Length, "", "local "+strconv.Itoa(int(imm.Index())))
}

func (p *Printer) VisitLocal(in *classfile.Instruction, imm classfile.LocalImm, depth int) {
	p.insn(depth, in, in.Length, strconv.Itoa(int(imm.Index)), "")
}

func (p *Printer) VisitIinc(in *classfile.Instruction, imm classfile.IincImm, depth int) {
	p.insn(depth, in, in.Length, fmt.Sprintf("%d %d", imm.Index, imm.Const), "")
}

func (p *Printer) VisitPush(in *classfile.Instruction, imm classfile.PushImm, depth int) {
	p.insn(depth, in, in.Length, strconv.Itoa(int(imm.Value)), "")
}

func (p *Printer) VisitConst(in *classfile.Instruction, imm classfile.ConstImm, depth int) {
	p.insn(depth, in, in.Length, "#"+strconv.Itoa(int(imm.Index)), p.pool.Describe(imm.Index))
}

func (p *Printer) VisitBranch(in *classfile.Instruction, imm classfile.BranchImm, depth int) {
	p.insn(depth, in, in.Length, strconv.Itoa(imm.Target(in.PC)), fmt.Sprintf("%+d", imm.Offset))
}

func (p *Printer) VisitTableSwitch(in *classfile.Instruction, imm classfile.TableSwitchImm, depth int) {
	header := 1 + imm.Padding + 12
	p.insn(depth, in, header,
		fmt.Sprintf("%d..%d default %d", imm.Low, imm.High, in.PC+int(imm.Default)),
		fmt.Sprintf("padding %d", imm.Padding))
	for i, off := range imm.Offsets {
		p.field(depth+1, strconv.Itoa(int(imm.Low)+i), 4, in.PC+int(off))
	}
}

func (p *Printer) VisitLookupSwitch(in *classfile.Instruction, imm classfile.LookupSwitchImm, depth int) {
	header := 1 + imm.Padding + 8
	p.insn(depth, in, header,
		fmt.Sprintf("%d pairs default %d", len(imm.Pairs), in.PC+int(imm.Default)),
		fmt.Sprintf("padding %d", imm.Padding))
	for _, pair := range imm.Pairs {
		p.field(depth+1, strconv.Itoa(int(pair.Match)), 8, in.PC+int(pair.Offset))
	}
}

func (p *Printer) VisitInvokeInterface(in *classfile.Instruction, imm classfile.InvokeInterfaceImm, depth int) {
	p.insn(depth, in, in.Length, fmt.Sprintf("#%d, %d", imm.Index, imm.Count), p.pool.Describe(imm.Index))
}

func (p *Printer) VisitInvokeDynamicCall(in *classfile.Instruction, imm classfile.InvokeDynamicImm, depth int) {
	p.insn(depth, in, in.Length, fmt.Sprintf("#%d, %d", imm.Index, imm.Reserved), p.pool.Describe(imm.Index))
}

func (p *Printer) VisitNewArray(in *classfile.Instruction, imm classfile.NewArrayImm, depth int) {
	p.insn(depth, in, in.Length, classfile.ArrayTypeName(imm.AType), "")
}

func (p *Printer) VisitMultiANewArray(in *classfile.Instruction, imm classfile.MultiANewArrayImm, depth int) {
	p.insn(depth, in, in.Length, fmt.Sprintf("#%d, %d", imm.Index, imm.Dimensions), p.pool.Describe(imm.Index))
}

func (p *Printer) VisitWide(in *classfile.Instruction, imm classfile.WideImm, depth int) {
	operands := imm.Opcode.String() + " " + strconv.Itoa(int(imm.Index))
	if imm.Opcode == classfile.OpIinc {
		operands += " " + strconv.Itoa(int(imm.Const))
	}
	p.insn(depth, in, in.Length, operands, "")
}
