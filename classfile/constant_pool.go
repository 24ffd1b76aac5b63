package classfile

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/errors"
)

// Constant is implemented by every constant pool entry type.
type Constant interface {
	Tag() ConstantTag
	// Index is the entry's 1-based slot in the pool.
	Index() uint16
	// Offset is the absolute offset of the tag byte in the input.
	Offset() int
	// Raw returns the entry's encoded bytes, tag included.
	Raw() []byte
	Accept(v ConstantVisitor, depth int)
}

type constantBase struct {
	index  uint16
	offset int
	raw    []byte
}

func (c *constantBase) Index() uint16 { return c.index }
func (c *constantBase) Offset() int   { return c.offset }
func (c *constantBase) Raw() []byte   { return c.raw }

// ConstantUtf8 holds modified UTF-8 text. Valid is false when Bytes is
// not well formed; Value is then a lossy conversion.
type ConstantUtf8 struct {
	constantBase
	Value string
	Bytes []byte
	Valid bool
}

func (c *ConstantUtf8) Tag() ConstantTag { return TagUtf8 }

type ConstantInteger struct {
	constantBase
	Value int32
}

func (c *ConstantInteger) Tag() ConstantTag { return TagInteger }

type ConstantFloat struct {
	constantBase
	Value float32
}

func (c *ConstantFloat) Tag() ConstantTag { return TagFloat }

// ConstantLong occupies its slot and the following one.
type ConstantLong struct {
	constantBase
	Value int64
}

func (c *ConstantLong) Tag() ConstantTag { return TagLong }

// ConstantDouble occupies its slot and the following one.
type ConstantDouble struct {
	constantBase
	Value float64
}

func (c *ConstantDouble) Tag() ConstantTag { return TagDouble }

type ConstantClass struct {
	constantBase
	NameIndex uint16
}

func (c *ConstantClass) Tag() ConstantTag { return TagClass }

type ConstantString struct {
	constantBase
	StringIndex uint16
}

func (c *ConstantString) Tag() ConstantTag { return TagString }

// ConstantFieldref, ConstantMethodref and ConstantInterfaceMethodref share
// the member reference layout.
type ConstantFieldref struct {
	constantBase
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldref) Tag() ConstantTag { return TagFieldref }

type ConstantMethodref struct {
	constantBase
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodref) Tag() ConstantTag { return TagMethodref }

type ConstantInterfaceMethodref struct {
	constantBase
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantInterfaceMethodref) Tag() ConstantTag { return TagInterfaceMethodref }

type ConstantNameAndType struct {
	constantBase
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndType) Tag() ConstantTag { return TagNameAndType }

type ConstantMethodHandle struct {
	constantBase
	ReferenceKind  uint8
	ReferenceIndex uint16
}

func (c *ConstantMethodHandle) Tag() ConstantTag { return TagMethodHandle }

type ConstantMethodType struct {
	constantBase
	DescriptorIndex uint16
}

func (c *ConstantMethodType) Tag() ConstantTag { return TagMethodType }

type ConstantDynamic struct {
	constantBase
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantDynamic) Tag() ConstantTag { return TagDynamic }

type ConstantInvokeDynamic struct {
	constantBase
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (c *ConstantInvokeDynamic) Tag() ConstantTag { return TagInvokeDynamic }

type ConstantModule struct {
	constantBase
	NameIndex uint16
}

func (c *ConstantModule) Tag() ConstantTag { return TagModule }

type ConstantPackage struct {
	constantBase
	NameIndex uint16
}

func (c *ConstantPackage) Tag() ConstantTag { return TagPackage }

// ConstantPool is the 1-based, array-backed constant table. Slot 0 and
// the slot following each Long or Double are unusable.
type ConstantPool struct {
	slots  []Constant
	count  uint16
	offset int
	end    int
}

// Count returns constant_pool_count as declared in the file, which is one
// more than the highest usable index.
func (p *ConstantPool) Count() uint16 { return p.count }

// Offset returns the absolute offset of the constant_pool_count field.
func (p *ConstantPool) Offset() int { return p.offset }

// End returns the absolute offset just past the last entry, where
// access_flags starts.
func (p *ConstantPool) End() int { return p.end }

// IsPadding reports whether index is the unusable slot after a Long or Double.
func (p *ConstantPool) IsPadding(index uint16) bool {
	i := int(index)
	if i < 2 || i >= len(p.slots) || p.slots[i] != nil {
		return false
	}
	prev := p.slots[i-1]
	return prev != nil && prev.Tag().Wide()
}

// Entries returns the usable entries in index order.
func (p *ConstantPool) Entries() []Constant {
	out := make([]Constant, 0, len(p.slots))
	for _, c := range p.slots {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Entry returns the entry at index regardless of its tag.
func (p *ConstantPool) Entry(index uint16) (Constant, error) {
	i := int(index)
	if i == 0 || i >= len(p.slots) {
		return nil, errors.BadIndex(i, int(p.count), "")
	}
	c := p.slots[i]
	if c == nil {
		return nil, errors.BadIndex(i, int(p.count), "padding slot after a Long or Double")
	}
	return c, nil
}

// Resolve returns the entry at index and checks it carries the expected tag.
func (p *ConstantPool) Resolve(index uint16, expected ConstantTag) (Constant, error) {
	c, err := p.Entry(index)
	if err != nil {
		return nil, err
	}
	if c.Tag() != expected {
		return nil, errors.TagMismatch(int(index), expected.String(), c.Tag().String())
	}
	return c, nil
}

// ResolveOneOf is Resolve for use sites that accept several tags, such as
// ldc or ConstantValue.
func (p *ConstantPool) ResolveOneOf(index uint16, tags ...ConstantTag) (Constant, error) {
	c, err := p.Entry(index)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		if c.Tag() == t {
			return c, nil
		}
	}
	want := ""
	for i, t := range tags {
		if i > 0 {
			want += "|"
		}
		want += t.String()
	}
	return nil, errors.TagMismatch(int(index), want, c.Tag().String())
}

// Utf8 returns the text of the Utf8 entry at index.
func (p *ConstantPool) Utf8(index uint16) (string, error) {
	c, err := p.Resolve(index, TagUtf8)
	if err != nil {
		return "", err
	}
	return c.(*ConstantUtf8).Value, nil
}

// ClassName returns the internal name referenced by a Class entry.
func (p *ConstantPool) ClassName(index uint16) (string, error) {
	c, err := p.Resolve(index, TagClass)
	if err != nil {
		return "", err
	}
	return p.Utf8(c.(*ConstantClass).NameIndex)
}

// NameAndType returns the name and descriptor of a NameAndType entry.
func (p *ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	c, err := p.Resolve(index, TagNameAndType)
	if err != nil {
		return "", "", err
	}
	nat := c.(*ConstantNameAndType)
	if name, err = p.Utf8(nat.NameIndex); err != nil {
		return "", "", fmt.Errorf("resolving name: %w", err)
	}
	if descriptor, err = p.Utf8(nat.DescriptorIndex); err != nil {
		return "", "", fmt.Errorf("resolving descriptor: %w", err)
	}
	return name, descriptor, nil
}

// MemberRefInfo holds a resolved field or method reference.
type MemberRefInfo struct {
	Tag        ConstantTag
	ClassName  string
	Name       string
	Descriptor string
}

// MemberRef resolves a Fieldref, Methodref or InterfaceMethodref entry.
func (p *ConstantPool) MemberRef(index uint16) (*MemberRefInfo, error) {
	c, err := p.ResolveOneOf(index, TagFieldref, TagMethodref, TagInterfaceMethodref)
	if err != nil {
		return nil, err
	}
	var classIndex, natIndex uint16
	switch ref := c.(type) {
	case *ConstantFieldref:
		classIndex, natIndex = ref.ClassIndex, ref.NameAndTypeIndex
	case *ConstantMethodref:
		classIndex, natIndex = ref.ClassIndex, ref.NameAndTypeIndex
	case *ConstantInterfaceMethodref:
		classIndex, natIndex = ref.ClassIndex, ref.NameAndTypeIndex
	}
	className, err := p.ClassName(classIndex)
	if err != nil {
		return nil, fmt.Errorf("resolving %s class: %w", c.Tag(), err)
	}
	name, desc, err := p.NameAndType(natIndex)
	if err != nil {
		return nil, fmt.Errorf("resolving %s name and type: %w", c.Tag(), err)
	}
	return &MemberRefInfo{Tag: c.Tag(), ClassName: className, Name: name, Descriptor: desc}, nil
}

// Describe renders the entry at index as a one-line string for comments
// in dumps, following references to their text. Resolution problems are
// rendered inline instead of failing.
func (p *ConstantPool) Describe(index uint16) string {
	c, err := p.Entry(index)
	if err != nil {
		return "<invalid #" + strconv.Itoa(int(index)) + ">"
	}
	return p.describe(c, 0)
}

func (p *ConstantPool) describe(c Constant, depth int) string {
	if depth > 4 {
		return "..."
	}
	ref := func(i uint16) string {
		e, err := p.Entry(i)
		if err != nil {
			return "<invalid #" + strconv.Itoa(int(i)) + ">"
		}
		return p.describe(e, depth+1)
	}
	switch c := c.(type) {
	case *ConstantUtf8:
		return c.Value
	case *ConstantInteger:
		return strconv.FormatInt(int64(c.Value), 10)
	case *ConstantFloat:
		return strconv.FormatFloat(float64(c.Value), 'g', -1, 32) + "f"
	case *ConstantLong:
		return strconv.FormatInt(c.Value, 10) + "l"
	case *ConstantDouble:
		return strconv.FormatFloat(c.Value, 'g', -1, 64) + "d"
	case *ConstantClass:
		return ref(c.NameIndex)
	case *ConstantString:
		return strconv.Quote(ref(c.StringIndex))
	case *ConstantFieldref:
		return ref(c.ClassIndex) + "." + ref(c.NameAndTypeIndex)
	case *ConstantMethodref:
		return ref(c.ClassIndex) + "." + ref(c.NameAndTypeIndex)
	case *ConstantInterfaceMethodref:
		return ref(c.ClassIndex) + "." + ref(c.NameAndTypeIndex)
	case *ConstantNameAndType:
		return ref(c.NameIndex) + ":" + ref(c.DescriptorIndex)
	case *ConstantMethodHandle:
		return ReferenceKindName(c.ReferenceKind) + " " + ref(c.ReferenceIndex)
	case *ConstantMethodType:
		return ref(c.DescriptorIndex)
	case *ConstantDynamic:
		return "#" + strconv.Itoa(int(c.BootstrapMethodAttrIndex)) + ":" + ref(c.NameAndTypeIndex)
	case *ConstantInvokeDynamic:
		return "#" + strconv.Itoa(int(c.BootstrapMethodAttrIndex)) + ":" + ref(c.NameAndTypeIndex)
	case *ConstantModule:
		return ref(c.NameIndex)
	case *ConstantPackage:
		return ref(c.NameIndex)
	}
	return c.Tag().String()
}

// decodeConstantPool reads constant_pool_count and count-1 slots.
func decodeConstantPool(c *binary.Cursor) (*ConstantPool, error) {
	offset := c.Position()
	count, err := c.U2()
	if err != nil {
		return nil, fmt.Errorf("reading constant pool count: %w", err)
	}
	pool := &ConstantPool{count: count, offset: offset, end: c.Position()}
	if count == 0 {
		return pool, nil
	}
	pool.slots = make([]Constant, count)

	for i := uint16(1); i < count; i++ {
		entry, err := decodeConstant(c, i)
		if err != nil {
			return nil, fmt.Errorf("constant pool entry #%d: %w", i, err)
		}
		pool.slots[i] = entry
		if entry.Tag().Wide() {
			if i+1 >= count {
				return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
					Offset(entry.Offset()).
					Detail("%s at #%d needs two slots but the pool has %d", entry.Tag(), i, count).
					Build()
			}
			i++
		}
	}
	pool.end = c.Position()
	return pool, nil
}

func decodeConstant(c *binary.Cursor, index uint16) (Constant, error) {
	start := c.Position()
	tag, err := c.U1()
	if err != nil {
		return nil, err
	}
	base := func() constantBase {
		return constantBase{index: index, offset: start, raw: c.Span(start)}
	}

	switch ConstantTag(tag) {
	case TagUtf8:
		length, err := c.U2()
		if err != nil {
			return nil, err
		}
		b, err := c.NextN(int(length))
		if err != nil {
			return nil, err
		}
		s, ok := decodeModifiedUTF8(b)
		if !ok {
			Logger().Debug("malformed modified UTF-8 in constant pool",
				zapIndex(index), zapOffset(start))
		}
		return &ConstantUtf8{constantBase: base(), Value: s, Bytes: b, Valid: ok}, nil

	case TagInteger:
		v, err := c.S4()
		if err != nil {
			return nil, err
		}
		return &ConstantInteger{constantBase: base(), Value: v}, nil

	case TagFloat:
		v, err := c.U4()
		if err != nil {
			return nil, err
		}
		return &ConstantFloat{constantBase: base(), Value: math.Float32frombits(v)}, nil

	case TagLong:
		v, err := c.U8()
		if err != nil {
			return nil, err
		}
		return &ConstantLong{constantBase: base(), Value: int64(v)}, nil

	case TagDouble:
		v, err := c.U8()
		if err != nil {
			return nil, err
		}
		return &ConstantDouble{constantBase: base(), Value: math.Float64frombits(v)}, nil

	case TagClass, TagString, TagMethodType, TagModule, TagPackage:
		idx, err := c.U2()
		if err != nil {
			return nil, err
		}
		b := base()
		switch ConstantTag(tag) {
		case TagClass:
			return &ConstantClass{constantBase: b, NameIndex: idx}, nil
		case TagString:
			return &ConstantString{constantBase: b, StringIndex: idx}, nil
		case TagMethodType:
			return &ConstantMethodType{constantBase: b, DescriptorIndex: idx}, nil
		case TagModule:
			return &ConstantModule{constantBase: b, NameIndex: idx}, nil
		default:
			return &ConstantPackage{constantBase: b, NameIndex: idx}, nil
		}

	case TagFieldref, TagMethodref, TagInterfaceMethodref, TagNameAndType, TagDynamic, TagInvokeDynamic:
		first, err := c.U2()
		if err != nil {
			return nil, err
		}
		second, err := c.U2()
		if err != nil {
			return nil, err
		}
		b := base()
		switch ConstantTag(tag) {
		case TagFieldref:
			return &ConstantFieldref{constantBase: b, ClassIndex: first, NameAndTypeIndex: second}, nil
		case TagMethodref:
			return &ConstantMethodref{constantBase: b, ClassIndex: first, NameAndTypeIndex: second}, nil
		case TagInterfaceMethodref:
			return &ConstantInterfaceMethodref{constantBase: b, ClassIndex: first, NameAndTypeIndex: second}, nil
		case TagNameAndType:
			return &ConstantNameAndType{constantBase: b, NameIndex: first, DescriptorIndex: second}, nil
		case TagDynamic:
			return &ConstantDynamic{constantBase: b, BootstrapMethodAttrIndex: first, NameAndTypeIndex: second}, nil
		default:
			return &ConstantInvokeDynamic{constantBase: b, BootstrapMethodAttrIndex: first, NameAndTypeIndex: second}, nil
		}

	case TagMethodHandle:
		kind, err := c.U1()
		if err != nil {
			return nil, err
		}
		idx, err := c.U2()
		if err != nil {
			return nil, err
		}
		return &ConstantMethodHandle{constantBase: base(), ReferenceKind: kind, ReferenceIndex: idx}, nil
	}

	return nil, errors.UnknownDiscriminant(errors.KindUnknownConstantTag, start, tag, "constant pool tag")
}

func (c *ConstantUtf8) Accept(v ConstantVisitor, depth int) { v.VisitUtf8(c, depth) }
func (c *ConstantInteger) Accept(v ConstantVisitor, depth int) { v.VisitInteger(c, depth) }
func (c *ConstantFloat) Accept(v ConstantVisitor, depth int) { v.VisitFloat(c, depth) }
func (c *ConstantLong) Accept(v ConstantVisitor, depth int) { v.VisitLong(c, depth) }
func (c *ConstantDouble) Accept(v ConstantVisitor, depth int) { v.VisitDouble(c, depth) }
func (c *ConstantClass) Accept(v ConstantVisitor, depth int) { v.VisitClass(c, depth) }
func (c *ConstantString) Accept(v ConstantVisitor, depth int) { v.VisitString(c, depth) }
func (c *ConstantFieldref) Accept(v ConstantVisitor, depth int) { v.VisitFieldref(c, depth) }
func (c *ConstantMethodref) Accept(v ConstantVisitor, depth int) { v.VisitMethodref(c, depth) }
func (c *ConstantInterfaceMethodref) Accept(v ConstantVisitor, depth int) { v.VisitInterfaceMethodref(c, depth) }
func (c *ConstantNameAndType) Accept(v ConstantVisitor, depth int) { v.VisitNameAndType(c, depth) }
func (c *ConstantMethodHandle) Accept(v ConstantVisitor, depth int) { v.VisitMethodHandle(c, depth) }
func (c *ConstantMethodType) Accept(v ConstantVisitor, depth int) { v.VisitMethodType(c, depth) }
func (c *ConstantDynamic) Accept(v ConstantVisitor, depth int) { v.VisitDynamic(c, depth) }
func (c *ConstantInvokeDynamic) Accept(v ConstantVisitor, depth int) { v.VisitInvokeDynamic(c, depth) }
func (c *ConstantModule) Accept(v ConstantVisitor, depth int) { v.VisitModule(c, depth) }
func (c *ConstantPackage) Accept(v ConstantVisitor, depth int) { v.VisitPackage(c, depth) }
