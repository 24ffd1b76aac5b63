package dump

import (
	"strconv"

	"github.com/wippyai/jclass/classfile"
)

func (p *Printer) frameHeader(depth int, label string, f classfile.StackMapFrame, delta bool) {
	p.open(depth, "%s", label)
	p.field(depth+1, "frame_type", 1, f.FrameType())
	if delta {
		p.field(depth+1, "offset_delta", 2, f.OffsetDelta())
	}
}

func (p *Printer) verificationTypes(depth int, label string, types []classfile.VerificationType) {
	for i, vt := range types {
		p.open(depth, "%s[%d] %s", label, i, vt)
		p.seek(vt.Offset)
		p.field(depth+1, "tag", 1, vt.Tag)
		switch vt.Tag {
		case classfile.ItemObject:
			p.field(depth+1, "cpool_index", 2, p.ref(vt.Index))
		case classfile.ItemUninitialized:
			p.field(depth+1, "offset", 2, vt.Index)
		}
		p.close(depth)
	}
}

func (p *Printer) VisitSameFrame(f *classfile.SameFrame, depth int) {
	p.frameHeader(depth, "same_frame", f, false)
	p.close(depth)
}

func (p *Printer) VisitSameLocals1StackItemFrame(f *classfile.SameLocals1StackItemFrame, depth int) {
	p.frameHeader(depth, "same_locals_1_stack_item_frame", f, false)
	p.verificationTypes(depth+1, "stack", []classfile.VerificationType{f.Stack})
	p.close(depth)
}

func (p *Printer) VisitSameLocals1StackItemFrameExtended(f *classfile.SameLocals1StackItemFrameExtended, depth int) {
	p.frameHeader(depth, "same_locals_1_stack_item_frame_extended", f, true)
	p.verificationTypes(depth+1, "stack", []classfile.VerificationType{f.Stack})
	p.close(depth)
}

func (p *Printer) VisitChopFrame(f *classfile.ChopFrame, depth int) {
	p.frameHeader(depth, "chop_frame", f, true)
	p.line(depth+1, "// chops "+strconv.Itoa(f.Chopped())+" locals")
	p.close(depth)
}

func (p *Printer) VisitSameFrameExtended(f *classfile.SameFrameExtended, depth int) {
	p.frameHeader(depth, "same_frame_extended", f, true)
	p.close(depth)
}

func (p *Printer) VisitAppendFrame(f *classfile.AppendFrame, depth int) {
	p.frameHeader(depth, "append_frame", f, true)
	p.verificationTypes(depth+1, "local", f.Locals)
	p.close(depth)
}

func (p *Printer) VisitFullFrame(f *classfile.FullFrame, depth int) {
	p.frameHeader(depth, "full_frame", f, true)
	p.field(depth+1, "number_of_locals", 2, len(f.Locals))
	p.verificationTypes(depth+1, "local", f.Locals)
	p.field(depth+1, "number_of_stack_items", 2, len(f.Stack))
	p.verificationTypes(depth+1, "stack", f.Stack)
	p.close(depth)
}
