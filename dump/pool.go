package dump

import (
	"strconv"

	"github.com/wippyai/jclass/classfile"
)

func (p *Printer) constantPool(depth int) {
	p.open(depth, "constant_pool")
	for _, c := range p.pool.Entries() {
		p.seek(c.Offset())
		c.Accept(p, depth+1)
	}
	p.close(depth)
}

// entry opens the block of one pool entry and prints its tag byte.
func (p *Printer) entry(c classfile.Constant, depth int) {
	p.open(depth, "#%d = %s %s", c.Index(), c.Tag(), p.pool.Describe(c.Index()))
	p.field(depth+1, "tag", 1, int(c.Tag()))
}

func (p *Printer) VisitUtf8(c *classfile.ConstantUtf8, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "length", 2, len(c.Bytes))
	meaning := strconv.Quote(c.Value)
	if !c.Valid {
		meaning = "malformed " + meaning
	}
	p.field(depth+1, "bytes", len(c.Bytes), meaning)
	p.close(depth)
}

func (p *Printer) VisitInteger(c *classfile.ConstantInteger, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "bytes", 4, c.Value)
	p.close(depth)
}

func (p *Printer) VisitFloat(c *classfile.ConstantFloat, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "bytes", 4, strconv.FormatFloat(float64(c.Value), 'g', -1, 32))
	p.close(depth)
}

func (p *Printer) VisitLong(c *classfile.ConstantLong, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "high_bytes", 4, "")
	p.field(depth+1, "low_bytes", 4, c.Value)
	p.close(depth)
}

func (p *Printer) VisitDouble(c *classfile.ConstantDouble, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "high_bytes", 4, "")
	p.field(depth+1, "low_bytes", 4, strconv.FormatFloat(c.Value, 'g', -1, 64))
	p.close(depth)
}

func (p *Printer) VisitClass(c *classfile.ConstantClass, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "name_index", 2, p.ref(c.NameIndex))
	p.close(depth)
}

func (p *Printer) VisitString(c *classfile.ConstantString, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "string_index", 2, p.ref(c.StringIndex))
	p.close(depth)
}

func (p *Printer) memberRef(c classfile.Constant, classIndex, natIndex uint16, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "class_index", 2, p.ref(classIndex))
	p.field(depth+1, "name_and_type_index", 2, p.ref(natIndex))
	p.close(depth)
}

func (p *Printer) VisitFieldref(c *classfile.ConstantFieldref, depth int) {
	p.memberRef(c, c.ClassIndex, c.NameAndTypeIndex, depth)
}

func (p *Printer) VisitMethodref(c *classfile.ConstantMethodref, depth int) {
	p.memberRef(c, c.ClassIndex, c.NameAndTypeIndex, depth)
}

func (p *Printer) VisitInterfaceMethodref(c *classfile.ConstantInterfaceMethodref, depth int) {
	p.memberRef(c, c.ClassIndex, c.NameAndTypeIndex, depth)
}

func (p *Printer) VisitNameAndType(c *classfile.ConstantNameAndType, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "name_index", 2, p.ref(c.NameIndex))
	p.field(depth+1, "descriptor_index", 2, p.ref(c.DescriptorIndex))
	p.close(depth)
}

func (p *Printer) VisitMethodHandle(c *classfile.ConstantMethodHandle, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "reference_kind", 1, classfile.ReferenceKindName(c.ReferenceKind))
	p.field(depth+1, "reference_index", 2, p.ref(c.ReferenceIndex))
	p.close(depth)
}

func (p *Printer) VisitMethodType(c *classfile.ConstantMethodType, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "descriptor_index", 2, p.ref(c.DescriptorIndex))
	p.close(depth)
}

func (p *Printer) VisitDynamic(c *classfile.ConstantDynamic, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "bootstrap_method_attr_index", 2, c.BootstrapMethodAttrIndex)
	p.field(depth+1, "name_and_type_index", 2, p.ref(c.NameAndTypeIndex))
	p.close(depth)
}

func (p *Printer) VisitInvokeDynamic(c *classfile.ConstantInvokeDynamic, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "bootstrap_method_attr_index", 2, c.BootstrapMethodAttrIndex)
	p.field(depth+1, "name_and_type_index", 2, p.ref(c.NameAndTypeIndex))
	p.close(depth)
}

func (p *Printer) VisitModule(c *classfile.ConstantModule, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "name_index", 2, p.ref(c.NameIndex))
	p.close(depth)
}

func (p *Printer) VisitPackage(c *classfile.ConstantPackage, depth int) {
	p.entry(c, depth)
	p.field(depth+1, "name_index", 2, p.ref(c.NameIndex))
	p.close(depth)
}
