package classfile

import (
	"fmt"

	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/errors"
)

// Type annotation target types.
const (
	TargetClassTypeParameter           uint8 = 0x00
	TargetMethodTypeParameter          uint8 = 0x01
	TargetClassExtends                 uint8 = 0x10
	TargetClassTypeParameterBound      uint8 = 0x11
	TargetMethodTypeParameterBound     uint8 = 0x12
	TargetField                        uint8 = 0x13
	TargetMethodReturn                 uint8 = 0x14
	TargetMethodReceiver               uint8 = 0x15
	TargetMethodFormalParameter        uint8 = 0x16
	TargetThrows                       uint8 = 0x17
	TargetLocalVariable                uint8 = 0x40
	TargetResourceVariable             uint8 = 0x41
	TargetExceptionParameter           uint8 = 0x42
	TargetInstanceOf                   uint8 = 0x43
	TargetNew                          uint8 = 0x44
	TargetConstructorReference         uint8 = 0x45
	TargetMethodReference              uint8 = 0x46
	TargetCast                         uint8 = 0x47
	TargetConstructorInvocationTypeArg uint8 = 0x48
	TargetMethodInvocationTypeArg      uint8 = 0x49
	TargetConstructorReferenceTypeArg  uint8 = 0x4A
	TargetMethodReferenceTypeArg       uint8 = 0x4B
)

// TypeAnnotation is one entry of a Runtime*TypeAnnotations attribute.
type TypeAnnotation struct {
	Target     TargetInfo
	Path       TypePath
	Pairs      []ElementValuePair
	Offset     int
	TypeIndex  uint16
	TargetType uint8
}

// TargetInfo is implemented by the target_info shapes.
type TargetInfo interface {
	Accept(v TargetVisitor, depth int)
}

// TypeParameterTarget is used by target types 0x00 and 0x01.
type TypeParameterTarget struct {
	TypeParameterIndex uint8
}

// SupertypeTarget is used by 0x10. Index 65535 denotes the superclass.
type SupertypeTarget struct {
	SupertypeIndex uint16
}

// TypeParameterBoundTarget is used by 0x11 and 0x12.
type TypeParameterBoundTarget struct {
	TypeParameterIndex uint8
	BoundIndex         uint8
}

// EmptyTarget is used by 0x13-0x15.
type EmptyTarget struct{}

// FormalParameterTarget is used by 0x16.
type FormalParameterTarget struct {
	FormalParameterIndex uint8
}

// ThrowsTarget is used by 0x17.
type ThrowsTarget struct {
	ThrowsTypeIndex uint16
}

// LocalVarTargetEntry is one live range of an annotated local variable.
type LocalVarTargetEntry struct {
	Offset  int
	StartPC uint16
	Length  uint16
	Index   uint16
}

// LocalVarTarget is used by 0x40 and 0x41.
type LocalVarTarget struct {
	Table []LocalVarTargetEntry
}

// CatchTarget is used by 0x42.
type CatchTarget struct {
	ExceptionTableIndex uint16
}

// OffsetTarget is used by 0x43-0x46.
type OffsetTarget struct {
	BytecodeOffset uint16
}

// TypeArgumentTarget is used by 0x47-0x4B.
type TypeArgumentTarget struct {
	BytecodeOffset    uint16
	TypeArgumentIndex uint8
}

func (t *TypeParameterTarget) Accept(v TargetVisitor, depth int) {
	v.VisitTypeParameterTarget(t, depth)
}
func (t *SupertypeTarget) Accept(v TargetVisitor, depth int) { v.VisitSupertypeTarget(t, depth) }
func (t *TypeParameterBoundTarget) Accept(v TargetVisitor, depth int) {
	v.VisitTypeParameterBoundTarget(t, depth)
}
func (t *EmptyTarget) Accept(v TargetVisitor, depth int) { v.VisitEmptyTarget(t, depth) }
func (t *FormalParameterTarget) Accept(v TargetVisitor, depth int) {
	v.VisitFormalParameterTarget(t, depth)
}
func (t *ThrowsTarget) Accept(v TargetVisitor, depth int)         { v.VisitThrowsTarget(t, depth) }
func (t *LocalVarTarget) Accept(v TargetVisitor, depth int)       { v.VisitLocalVarTarget(t, depth) }
func (t *CatchTarget) Accept(v TargetVisitor, depth int)          { v.VisitCatchTarget(t, depth) }
func (t *OffsetTarget) Accept(v TargetVisitor, depth int)         { v.VisitOffsetTarget(t, depth) }
func (t *TypeArgumentTarget) Accept(v TargetVisitor, depth int)   { v.VisitTypeArgumentTarget(t, depth) }

// Type path step kinds.
const (
	PathArray         uint8 = 0
	PathNested        uint8 = 1
	PathWildcardBound uint8 = 2
	PathTypeArgument  uint8 = 3
)

// TypePathEntry is one step of a type path.
type TypePathEntry struct {
	Kind          uint8
	ArgumentIndex uint8
}

// TypePath locates the annotated type within the target's type.
type TypePath struct {
	Entries []TypePathEntry
	Offset  int
}

func (d *decoder) typeAnnotations(c *binary.Cursor) ([]*TypeAnnotation, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	out := make([]*TypeAnnotation, n)
	for i := range out {
		if out[i], err = d.typeAnnotation(c); err != nil {
			return nil, fmt.Errorf("annotations[%d]: %w", i, err)
		}
	}
	return out, nil
}

func (d *decoder) typeAnnotation(c *binary.Cursor) (*TypeAnnotation, error) {
	ta := &TypeAnnotation{Offset: c.Position()}
	var err error
	if ta.TargetType, err = c.U1(); err != nil {
		return nil, err
	}
	if ta.Target, err = decodeTarget(c, ta.TargetType, ta.Offset); err != nil {
		return nil, err
	}
	if ta.Path, err = decodeTypePath(c); err != nil {
		return nil, err
	}
	if ta.TypeIndex, err = c.U2(); err != nil {
		return nil, err
	}
	if ta.Pairs, err = d.elementValuePairs(c); err != nil {
		return nil, err
	}
	return ta, nil
}

func decodeTarget(c *binary.Cursor, targetType uint8, offset int) (TargetInfo, error) {
	switch targetType {
	case TargetClassTypeParameter, TargetMethodTypeParameter:
		i, err := c.U1()
		return &TypeParameterTarget{TypeParameterIndex: i}, err

	case TargetClassExtends:
		i, err := c.U2()
		return &SupertypeTarget{SupertypeIndex: i}, err

	case TargetClassTypeParameterBound, TargetMethodTypeParameterBound:
		t := &TypeParameterBoundTarget{}
		var err error
		if t.TypeParameterIndex, err = c.U1(); err != nil {
			return nil, err
		}
		t.BoundIndex, err = c.U1()
		return t, err

	case TargetField, TargetMethodReturn, TargetMethodReceiver:
		return &EmptyTarget{}, nil

	case TargetMethodFormalParameter:
		i, err := c.U1()
		return &FormalParameterTarget{FormalParameterIndex: i}, err

	case TargetThrows:
		i, err := c.U2()
		return &ThrowsTarget{ThrowsTypeIndex: i}, err

	case TargetLocalVariable, TargetResourceVariable:
		n, err := c.U2()
		if err != nil {
			return nil, err
		}
		t := &LocalVarTarget{Table: make([]LocalVarTargetEntry, n)}
		for j := range t.Table {
			row := &t.Table[j]
			row.Offset = c.Position()
			if row.StartPC, err = c.U2(); err != nil {
				return nil, err
			}
			if row.Length, err = c.U2(); err != nil {
				return nil, err
			}
			if row.Index, err = c.U2(); err != nil {
				return nil, err
			}
		}
		return t, nil

	case TargetExceptionParameter:
		i, err := c.U2()
		return &CatchTarget{ExceptionTableIndex: i}, err

	case TargetInstanceOf, TargetNew, TargetConstructorReference, TargetMethodReference:
		off, err := c.U2()
		return &OffsetTarget{BytecodeOffset: off}, err

	case TargetCast, TargetConstructorInvocationTypeArg, TargetMethodInvocationTypeArg,
		TargetConstructorReferenceTypeArg, TargetMethodReferenceTypeArg:
		t := &TypeArgumentTarget{}
		var err error
		if t.BytecodeOffset, err = c.U2(); err != nil {
			return nil, err
		}
		t.TypeArgumentIndex, err = c.U1()
		return t, err
	}

	return nil, errors.UnknownDiscriminant(errors.KindInvalidTargetType, offset, fmt.Sprintf("0x%02x", targetType), "type annotation target type")
}

func decodeTypePath(c *binary.Cursor) (TypePath, error) {
	p := TypePath{Offset: c.Position()}
	n, err := c.U1()
	if err != nil {
		return p, err
	}
	p.Entries = make([]TypePathEntry, n)
	for i := range p.Entries {
		if p.Entries[i].Kind, err = c.U1(); err != nil {
			return p, err
		}
		if p.Entries[i].ArgumentIndex, err = c.U1(); err != nil {
			return p, err
		}
	}
	return p, nil
}
