package classfile

import (
	stderrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/errors"
)

// AttributeHeader is the common prefix of every attribute.
type AttributeHeader struct {
	Name      string // empty when NameIndex does not resolve to a Utf8 entry
	Offset    int    // absolute offset of attribute_name_index
	Length    uint32
	NameIndex uint16
}

// Header returns the attribute header.
func (h AttributeHeader) Header() AttributeHeader { return h }

// PayloadOffset returns the absolute offset of the first payload byte.
func (h AttributeHeader) PayloadOffset() int { return h.Offset + 6 }

// Attribute is implemented by every attribute type.
type Attribute interface {
	Header() AttributeHeader
	Accept(v AttributeVisitor, depth int)
}

// ConstantValueAttribute is the ConstantValue attribute of a field.
type ConstantValueAttribute struct {
	AttributeHeader
	ValueIndex uint16
}

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	Offset    int
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16 // 0 for finally handlers
}

// CodeAttribute holds a method body.
type CodeAttribute struct {
	AttributeHeader
	Code           []byte
	Instructions   []Instruction
	ExceptionTable []ExceptionTableEntry
	Attributes     []Attribute
	CodeOffset     int // absolute offset of code[0]
	CodeLength     uint32
	MaxStack       uint16
	MaxLocals      uint16
}

// StackMapTableAttribute holds the verification frames of a Code attribute.
type StackMapTableAttribute struct {
	AttributeHeader
	Frames []StackMapFrame
}

// Offsets returns the absolute bytecode offset of each frame.
func (a *StackMapTableAttribute) Offsets() []int {
	deltas := make([]uint16, len(a.Frames))
	for i, f := range a.Frames {
		deltas[i] = f.OffsetDelta()
	}
	return FrameOffsets(deltas)
}

type ExceptionsAttribute struct {
	AttributeHeader
	ExceptionIndexes []uint16
}

// InnerClassEntry is one row of an InnerClasses attribute.
type InnerClassEntry struct {
	Offset                int
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags uint16
}

type InnerClassesAttribute struct {
	AttributeHeader
	Classes []InnerClassEntry
}

type EnclosingMethodAttribute struct {
	AttributeHeader
	ClassIndex  uint16
	MethodIndex uint16
}

type SyntheticAttribute struct {
	AttributeHeader
}

type SignatureAttribute struct {
	AttributeHeader
	SignatureIndex uint16
}

type SourceFileAttribute struct {
	AttributeHeader
	SourceFileIndex uint16
}

type SourceDebugExtensionAttribute struct {
	AttributeHeader
	DebugExtension []byte
}

type LineNumberEntry struct {
	Offset     int
	StartPC    uint16
	LineNumber uint16
}

type LineNumberTableAttribute struct {
	AttributeHeader
	Lines []LineNumberEntry
}

type LocalVariableEntry struct {
	Offset          int
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type LocalVariableTableAttribute struct {
	AttributeHeader
	Variables []LocalVariableEntry
}

type LocalVariableTypeEntry struct {
	Offset         int
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

type LocalVariableTypeTableAttribute struct {
	AttributeHeader
	Variables []LocalVariableTypeEntry
}

type DeprecatedAttribute struct {
	AttributeHeader
}

type RuntimeVisibleAnnotationsAttribute struct {
	AttributeHeader
	Annotations []*Annotation
}

type RuntimeInvisibleAnnotationsAttribute struct {
	AttributeHeader
	Annotations []*Annotation
}

// ParameterAnnotations holds the annotations of one method parameter.
type ParameterAnnotations struct {
	Annotations []*Annotation
	Offset      int
}

type RuntimeVisibleParameterAnnotationsAttribute struct {
	AttributeHeader
	Parameters []ParameterAnnotations
}

type RuntimeInvisibleParameterAnnotationsAttribute struct {
	AttributeHeader
	Parameters []ParameterAnnotations
}

type RuntimeVisibleTypeAnnotationsAttribute struct {
	AttributeHeader
	Annotations []*TypeAnnotation
}

type RuntimeInvisibleTypeAnnotationsAttribute struct {
	AttributeHeader
	Annotations []*TypeAnnotation
}

type AnnotationDefaultAttribute struct {
	AttributeHeader
	Value ElementValue
}

// BootstrapMethod is one row of a BootstrapMethods attribute.
type BootstrapMethod struct {
	Arguments      []uint16
	Offset         int
	MethodRefIndex uint16
}

type BootstrapMethodsAttribute struct {
	AttributeHeader
	Methods []BootstrapMethod
}

// MethodParameter is one row of a MethodParameters attribute.
type MethodParameter struct {
	Offset      int
	NameIndex   uint16 // 0 when the parameter is unnamed
	AccessFlags uint16
}

type MethodParametersAttribute struct {
	AttributeHeader
	Parameters []MethodParameter
}

type NestHostAttribute struct {
	AttributeHeader
	HostClassIndex uint16
}

type NestMembersAttribute struct {
	AttributeHeader
	Classes []uint16
}

type PermittedSubclassesAttribute struct {
	AttributeHeader
	Classes []uint16
}

// RecordComponent describes one component of a record class.
type RecordComponent struct {
	Attributes      []Attribute
	Offset          int
	NameIndex       uint16
	DescriptorIndex uint16
}

type RecordAttribute struct {
	AttributeHeader
	Components []*RecordComponent
}

// UnknownAttribute keeps the payload of an attribute whose name is not
// recognized. In lenient mode it also stands in for an attribute whose
// declared length did not match its contents; Err then holds the
// mismatch.
type UnknownAttribute struct {
	AttributeHeader
	Err  error
	Info []byte
}

func (a *ConstantValueAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitConstantValue(a, depth)
}
func (a *CodeAttribute) Accept(v AttributeVisitor, depth int) { v.VisitCode(a, depth) }
func (a *StackMapTableAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitStackMapTable(a, depth)
}
func (a *ExceptionsAttribute) Accept(v AttributeVisitor, depth int) { v.VisitExceptions(a, depth) }
func (a *InnerClassesAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitInnerClasses(a, depth)
}
func (a *EnclosingMethodAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitEnclosingMethod(a, depth)
}
func (a *SyntheticAttribute) Accept(v AttributeVisitor, depth int)  { v.VisitSynthetic(a, depth) }
func (a *SignatureAttribute) Accept(v AttributeVisitor, depth int)  { v.VisitSignature(a, depth) }
func (a *SourceFileAttribute) Accept(v AttributeVisitor, depth int) { v.VisitSourceFile(a, depth) }
func (a *SourceDebugExtensionAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitSourceDebugExtension(a, depth)
}
func (a *LineNumberTableAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitLineNumberTable(a, depth)
}
func (a *LocalVariableTableAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitLocalVariableTable(a, depth)
}
func (a *LocalVariableTypeTableAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitLocalVariableTypeTable(a, depth)
}
func (a *DeprecatedAttribute) Accept(v AttributeVisitor, depth int) { v.VisitDeprecated(a, depth) }
func (a *RuntimeVisibleAnnotationsAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitRuntimeVisibleAnnotations(a, depth)
}
func (a *RuntimeInvisibleAnnotationsAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitRuntimeInvisibleAnnotations(a, depth)
}
func (a *RuntimeVisibleParameterAnnotationsAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitRuntimeVisibleParameterAnnotations(a, depth)
}
func (a *RuntimeInvisibleParameterAnnotationsAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitRuntimeInvisibleParameterAnnotations(a, depth)
}
func (a *RuntimeVisibleTypeAnnotationsAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitRuntimeVisibleTypeAnnotations(a, depth)
}
func (a *RuntimeInvisibleTypeAnnotationsAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitRuntimeInvisibleTypeAnnotations(a, depth)
}
func (a *AnnotationDefaultAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitAnnotationDefault(a, depth)
}
func (a *BootstrapMethodsAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitBootstrapMethods(a, depth)
}
func (a *MethodParametersAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitMethodParameters(a, depth)
}
func (a *NestHostAttribute) Accept(v AttributeVisitor, depth int)    { v.VisitNestHost(a, depth) }
func (a *NestMembersAttribute) Accept(v AttributeVisitor, depth int) { v.VisitNestMembers(a, depth) }
func (a *PermittedSubclassesAttribute) Accept(v AttributeVisitor, depth int) {
	v.VisitPermittedSubclasses(a, depth)
}
func (a *RecordAttribute) Accept(v AttributeVisitor, depth int)  { v.VisitRecord(a, depth) }
func (a *UnknownAttribute) Accept(v AttributeVisitor, depth int) { v.VisitUnknown(a, depth) }

// FindAttribute returns the first attribute named name, or nil.
func FindAttribute(attrs []Attribute, name string) Attribute {
	for _, a := range attrs {
		if a.Header().Name == name {
			return a
		}
	}
	return nil
}

// decoder carries the state shared by the attribute sub-decoders of one
// class file.
type decoder struct {
	pool    *ConstantPool
	log     *zap.Logger
	lenient bool
}

func (d *decoder) attributes(c *binary.Cursor) ([]Attribute, error) {
	count, err := c.U2()
	if err != nil {
		return nil, fmt.Errorf("reading attributes_count: %w", err)
	}
	attrs := make([]Attribute, 0, count)
	for i := 0; i < int(count); i++ {
		a, err := d.attribute(c)
		if err != nil {
			return nil, fmt.Errorf("attributes[%d]: %w", i, err)
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func (d *decoder) attribute(c *binary.Cursor) (Attribute, error) {
	h := AttributeHeader{Offset: c.Position()}
	var err error
	if h.NameIndex, err = c.U2(); err != nil {
		return nil, err
	}
	if h.Length, err = c.U4(); err != nil {
		return nil, err
	}
	if uint64(h.Length) > uint64(c.Remaining()) {
		return nil, errors.BufferUnderrun(c.Position(), int(min(uint64(h.Length), uint64(1)<<31)), c.Remaining())
	}

	start := c.Position()
	sub, err := c.Sub(int(h.Length))
	if err != nil {
		return nil, err
	}
	payload := c.Span(start)

	name, nameErr := d.pool.Utf8(h.NameIndex)
	if nameErr != nil {
		d.log.Debug("attribute name does not resolve, keeping payload",
			zap.Uint16("name_index", h.NameIndex),
			zap.Int("offset", h.Offset),
			zap.Error(nameErr))
		return &UnknownAttribute{AttributeHeader: h, Info: payload}, nil
	}
	h.Name = name

	attr, err := d.attributeBody(sub, h, payload)
	switch {
	case err == nil && sub.Remaining() != 0:
		err = errors.LengthMismatch(name, h.Offset, int(h.Length), sub.Position()-start, nil)
	case err != nil && underrunOnly(err):
		err = errors.LengthMismatch(name, h.Offset, int(h.Length), sub.Position()-start, err)
	}
	if err != nil {
		if d.lenient && stderrors.Is(err, ErrAttributeLengthMismatch) {
			d.log.Warn("attribute length mismatch, keeping payload",
				zap.String("name", name),
				zap.Int("offset", h.Offset),
				zap.Error(err))
			return &UnknownAttribute{AttributeHeader: h, Info: payload, Err: err}, nil
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return attr, nil
}

func (d *decoder) attributeBody(c *binary.Cursor, h AttributeHeader, payload []byte) (Attribute, error) {
	switch h.Name {
	case AttrConstantValue:
		idx, err := c.U2()
		return &ConstantValueAttribute{AttributeHeader: h, ValueIndex: idx}, err
	case AttrCode:
		return d.code(c, h)
	case AttrStackMapTable:
		frames, err := decodeFrames(c)
		return &StackMapTableAttribute{AttributeHeader: h, Frames: frames}, err
	case AttrExceptions:
		idx, err := readIndexTable(c)
		return &ExceptionsAttribute{AttributeHeader: h, ExceptionIndexes: idx}, err
	case AttrInnerClasses:
		return d.innerClasses(c, h)
	case AttrEnclosingMethod:
		a := &EnclosingMethodAttribute{AttributeHeader: h}
		var err error
		if a.ClassIndex, err = c.U2(); err != nil {
			return nil, err
		}
		a.MethodIndex, err = c.U2()
		return a, err
	case AttrSynthetic:
		return &SyntheticAttribute{AttributeHeader: h}, nil
	case AttrDeprecated:
		return &DeprecatedAttribute{AttributeHeader: h}, nil
	case AttrSignature:
		idx, err := c.U2()
		return &SignatureAttribute{AttributeHeader: h, SignatureIndex: idx}, err
	case AttrSourceFile:
		idx, err := c.U2()
		return &SourceFileAttribute{AttributeHeader: h, SourceFileIndex: idx}, err
	case AttrSourceDebugExtension:
		b, err := c.NextN(c.Remaining())
		return &SourceDebugExtensionAttribute{AttributeHeader: h, DebugExtension: b}, err
	case AttrLineNumberTable:
		return lineNumbers(c, h)
	case AttrLocalVariableTable:
		return localVariables(c, h)
	case AttrLocalVariableTypeTable:
		return localVariableTypes(c, h)
	case AttrRuntimeVisibleAnnotations:
		anns, err := d.annotations(c)
		return &RuntimeVisibleAnnotationsAttribute{AttributeHeader: h, Annotations: anns}, err
	case AttrRuntimeInvisibleAnnotations:
		anns, err := d.annotations(c)
		return &RuntimeInvisibleAnnotationsAttribute{AttributeHeader: h, Annotations: anns}, err
	case AttrRuntimeVisibleParameterAnnotations:
		params, err := d.parameterAnnotations(c)
		return &RuntimeVisibleParameterAnnotationsAttribute{AttributeHeader: h, Parameters: params}, err
	case AttrRuntimeInvisibleParameterAnnotations:
		params, err := d.parameterAnnotations(c)
		return &RuntimeInvisibleParameterAnnotationsAttribute{AttributeHeader: h, Parameters: params}, err
	case AttrRuntimeVisibleTypeAnnotations:
		anns, err := d.typeAnnotations(c)
		return &RuntimeVisibleTypeAnnotationsAttribute{AttributeHeader: h, Annotations: anns}, err
	case AttrRuntimeInvisibleTypeAnnotations:
		anns, err := d.typeAnnotations(c)
		return &RuntimeInvisibleTypeAnnotationsAttribute{AttributeHeader: h, Annotations: anns}, err
	case AttrAnnotationDefault:
		v, err := d.elementValue(c)
		return &AnnotationDefaultAttribute{AttributeHeader: h, Value: v}, err
	case AttrBootstrapMethods:
		return bootstrapMethods(c, h)
	case AttrMethodParameters:
		return methodParameters(c, h)
	case AttrNestHost:
		idx, err := c.U2()
		return &NestHostAttribute{AttributeHeader: h, HostClassIndex: idx}, err
	case AttrNestMembers:
		idx, err := readIndexTable(c)
		return &NestMembersAttribute{AttributeHeader: h, Classes: idx}, err
	case AttrPermittedSubclasses:
		idx, err := readIndexTable(c)
		return &PermittedSubclassesAttribute{AttributeHeader: h, Classes: idx}, err
	case AttrRecord:
		return d.record(c, h)
	}

	d.log.Debug("unknown attribute",
		zap.String("name", h.Name),
		zap.Uint32("length", h.Length),
		zap.Int("offset", h.Offset))
	if _, err := c.NextN(c.Remaining()); err != nil {
		return nil, err
	}
	return &UnknownAttribute{AttributeHeader: h, Info: payload}, nil
}

func (d *decoder) code(c *binary.Cursor, h AttributeHeader) (*CodeAttribute, error) {
	a := &CodeAttribute{AttributeHeader: h}
	var err error
	if a.MaxStack, err = c.U2(); err != nil {
		return nil, err
	}
	if a.MaxLocals, err = c.U2(); err != nil {
		return nil, err
	}
	if a.CodeLength, err = c.U4(); err != nil {
		return nil, err
	}
	if uint64(a.CodeLength) > uint64(c.Remaining()) {
		return nil, errors.BufferUnderrun(c.Position(), int(min(uint64(a.CodeLength), uint64(1)<<31)), c.Remaining())
	}
	a.CodeOffset = c.Position()
	if a.Code, err = c.NextN(int(a.CodeLength)); err != nil {
		return nil, err
	}
	if a.Instructions, err = DecodeInstructions(a.Code, a.CodeOffset); err != nil {
		return nil, err
	}

	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	a.ExceptionTable = make([]ExceptionTableEntry, n)
	for i := range a.ExceptionTable {
		e := &a.ExceptionTable[i]
		e.Offset = c.Position()
		if e.StartPC, err = c.U2(); err != nil {
			return nil, err
		}
		if e.EndPC, err = c.U2(); err != nil {
			return nil, err
		}
		if e.HandlerPC, err = c.U2(); err != nil {
			return nil, err
		}
		if e.CatchType, err = c.U2(); err != nil {
			return nil, err
		}
	}

	if a.Attributes, err = d.attributes(c); err != nil {
		return nil, err
	}
	return a, nil
}

func (d *decoder) innerClasses(c *binary.Cursor, h AttributeHeader) (*InnerClassesAttribute, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	a := &InnerClassesAttribute{AttributeHeader: h, Classes: make([]InnerClassEntry, n)}
	for i := range a.Classes {
		e := &a.Classes[i]
		e.Offset = c.Position()
		if e.InnerClassInfoIndex, err = c.U2(); err != nil {
			return nil, err
		}
		if e.OuterClassInfoIndex, err = c.U2(); err != nil {
			return nil, err
		}
		if e.InnerNameIndex, err = c.U2(); err != nil {
			return nil, err
		}
		if e.InnerClassAccessFlags, err = c.U2(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func lineNumbers(c *binary.Cursor, h AttributeHeader) (*LineNumberTableAttribute, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	a := &LineNumberTableAttribute{AttributeHeader: h, Lines: make([]LineNumberEntry, n)}
	for i := range a.Lines {
		e := &a.Lines[i]
		e.Offset = c.Position()
		if e.StartPC, err = c.U2(); err != nil {
			return nil, err
		}
		if e.LineNumber, err = c.U2(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// readLocalRow reads the five u2 fields shared by LocalVariableTable and
// LocalVariableTypeTable rows.
func readLocalRow(c *binary.Cursor) (row [5]uint16, err error) {
	for i := range row {
		if row[i], err = c.U2(); err != nil {
			return row, err
		}
	}
	return row, nil
}

func localVariables(c *binary.Cursor, h AttributeHeader) (*LocalVariableTableAttribute, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	a := &LocalVariableTableAttribute{AttributeHeader: h, Variables: make([]LocalVariableEntry, n)}
	for i := range a.Variables {
		off := c.Position()
		row, err := readLocalRow(c)
		if err != nil {
			return nil, err
		}
		a.Variables[i] = LocalVariableEntry{
			Offset: off, StartPC: row[0], Length: row[1],
			NameIndex: row[2], DescriptorIndex: row[3], Index: row[4],
		}
	}
	return a, nil
}

func localVariableTypes(c *binary.Cursor, h AttributeHeader) (*LocalVariableTypeTableAttribute, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	a := &LocalVariableTypeTableAttribute{AttributeHeader: h, Variables: make([]LocalVariableTypeEntry, n)}
	for i := range a.Variables {
		off := c.Position()
		row, err := readLocalRow(c)
		if err != nil {
			return nil, err
		}
		a.Variables[i] = LocalVariableTypeEntry{
			Offset: off, StartPC: row[0], Length: row[1],
			NameIndex: row[2], SignatureIndex: row[3], Index: row[4],
		}
	}
	return a, nil
}

func bootstrapMethods(c *binary.Cursor, h AttributeHeader) (*BootstrapMethodsAttribute, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	a := &BootstrapMethodsAttribute{AttributeHeader: h, Methods: make([]BootstrapMethod, n)}
	for i := range a.Methods {
		m := &a.Methods[i]
		m.Offset = c.Position()
		if m.MethodRefIndex, err = c.U2(); err != nil {
			return nil, err
		}
		if m.Arguments, err = readIndexTable(c); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func methodParameters(c *binary.Cursor, h AttributeHeader) (*MethodParametersAttribute, error) {
	n, err := c.U1()
	if err != nil {
		return nil, err
	}
	a := &MethodParametersAttribute{AttributeHeader: h, Parameters: make([]MethodParameter, n)}
	for i := range a.Parameters {
		p := &a.Parameters[i]
		p.Offset = c.Position()
		if p.NameIndex, err = c.U2(); err != nil {
			return nil, err
		}
		if p.AccessFlags, err = c.U2(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (d *decoder) record(c *binary.Cursor, h AttributeHeader) (*RecordAttribute, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	a := &RecordAttribute{AttributeHeader: h, Components: make([]*RecordComponent, n)}
	for i := range a.Components {
		rc := &RecordComponent{Offset: c.Position()}
		if rc.NameIndex, err = c.U2(); err != nil {
			return nil, err
		}
		if rc.DescriptorIndex, err = c.U2(); err != nil {
			return nil, err
		}
		if rc.Attributes, err = d.attributes(c); err != nil {
			return nil, fmt.Errorf("components[%d]: %w", i, err)
		}
		a.Components[i] = rc
	}
	return a, nil
}

// readIndexTable reads a u2 count followed by that many u2 values.
func readIndexTable(c *binary.Cursor) ([]uint16, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		if out[i], err = c.U2(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
