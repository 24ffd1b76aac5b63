package classfile

import (
	"fmt"

	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/errors"
)

// Annotation is one annotation record.
type Annotation struct {
	Pairs     []ElementValuePair
	Offset    int
	TypeIndex uint16
}

// Depth returns the nesting depth of the annotation: 1 for an annotation
// whose values contain no annotations, plus one per level of nested
// annotation. Arrays do not add a level.
func (a *Annotation) Depth() int {
	deepest := 0
	for _, p := range a.Pairs {
		deepest = max(deepest, valueDepth(p.Value))
	}
	return deepest + 1
}

func valueDepth(v ElementValue) int {
	switch v := v.(type) {
	case *AnnotationElementValue:
		return v.Annotation.Depth()
	case *ArrayElementValue:
		deepest := 0
		for _, e := range v.Values {
			deepest = max(deepest, valueDepth(e))
		}
		return deepest
	}
	return 0
}

// ElementValuePair is one name=value entry of an annotation.
type ElementValuePair struct {
	Value     ElementValue
	Offset    int
	NameIndex uint16
}

// ElementValue is implemented by the five element value kinds.
type ElementValue interface {
	Tag() byte
	// Offset is the absolute offset of the tag byte.
	Offset() int
	Accept(v ElementValueVisitor, depth int)
}

type valueBase struct {
	offset int
	tag    byte
}

func (v *valueBase) Tag() byte   { return v.tag }
func (v *valueBase) Offset() int { return v.offset }

// ConstElementValue is a primitive or String constant, tags B C D F I J S
// Z and s. Value holds the resolved constant (int32, int64, float32,
// float64, bool or string depending on the tag), or nil when the index
// does not resolve to a suitable entry.
type ConstElementValue struct {
	valueBase
	Value           any
	ConstValueIndex uint16
}

// EnumElementValue is an enum constant, tag e.
type EnumElementValue struct {
	valueBase
	TypeNameIndex  uint16
	ConstNameIndex uint16
}

// ClassElementValue is a class literal, tag c.
type ClassElementValue struct {
	valueBase
	ClassInfoIndex uint16
}

// AnnotationElementValue is a nested annotation, tag @.
type AnnotationElementValue struct {
	valueBase
	Annotation *Annotation
}

// ArrayElementValue is an array of values, tag [.
type ArrayElementValue struct {
	valueBase
	Values []ElementValue
}

func (v *ConstElementValue) Accept(vis ElementValueVisitor, depth int) {
	vis.VisitConstValue(v, depth)
}
func (v *EnumElementValue) Accept(vis ElementValueVisitor, depth int) {
	vis.VisitEnumValue(v, depth)
}
func (v *ClassElementValue) Accept(vis ElementValueVisitor, depth int) {
	vis.VisitClassValue(v, depth)
}
func (v *AnnotationElementValue) Accept(vis ElementValueVisitor, depth int) {
	vis.VisitAnnotationValue(v, depth)
}
func (v *ArrayElementValue) Accept(vis ElementValueVisitor, depth int) {
	vis.VisitArrayValue(v, depth)
}

func (d *decoder) annotations(c *binary.Cursor) ([]*Annotation, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	out := make([]*Annotation, n)
	for i := range out {
		if out[i], err = d.annotation(c); err != nil {
			return nil, fmt.Errorf("annotations[%d]: %w", i, err)
		}
	}
	return out, nil
}

func (d *decoder) parameterAnnotations(c *binary.Cursor) ([]ParameterAnnotations, error) {
	n, err := c.U1()
	if err != nil {
		return nil, err
	}
	out := make([]ParameterAnnotations, n)
	for i := range out {
		out[i].Offset = c.Position()
		if out[i].Annotations, err = d.annotations(c); err != nil {
			return nil, fmt.Errorf("parameter_annotations[%d]: %w", i, err)
		}
	}
	return out, nil
}

func (d *decoder) annotation(c *binary.Cursor) (*Annotation, error) {
	a := &Annotation{Offset: c.Position()}
	var err error
	if a.TypeIndex, err = c.U2(); err != nil {
		return nil, err
	}
	if a.Pairs, err = d.elementValuePairs(c); err != nil {
		return nil, err
	}
	return a, nil
}

func (d *decoder) elementValuePairs(c *binary.Cursor) ([]ElementValuePair, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	pairs := make([]ElementValuePair, n)
	for i := range pairs {
		p := &pairs[i]
		p.Offset = c.Position()
		if p.NameIndex, err = c.U2(); err != nil {
			return nil, err
		}
		if p.Value, err = d.elementValue(c); err != nil {
			return nil, fmt.Errorf("element_value_pairs[%d]: %w", i, err)
		}
	}
	return pairs, nil
}

func (d *decoder) elementValue(c *binary.Cursor) (ElementValue, error) {
	start := c.Position()
	tag, err := c.U1()
	if err != nil {
		return nil, err
	}
	base := valueBase{offset: start, tag: tag}

	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		idx, err := c.U2()
		if err != nil {
			return nil, err
		}
		return &ConstElementValue{valueBase: base, ConstValueIndex: idx, Value: d.constValue(tag, idx)}, nil

	case 'e':
		v := &EnumElementValue{valueBase: base}
		if v.TypeNameIndex, err = c.U2(); err != nil {
			return nil, err
		}
		if v.ConstNameIndex, err = c.U2(); err != nil {
			return nil, err
		}
		return v, nil

	case 'c':
		idx, err := c.U2()
		if err != nil {
			return nil, err
		}
		return &ClassElementValue{valueBase: base, ClassInfoIndex: idx}, nil

	case '@':
		a, err := d.annotation(c)
		if err != nil {
			return nil, err
		}
		return &AnnotationElementValue{valueBase: base, Annotation: a}, nil

	case '[':
		n, err := c.U2()
		if err != nil {
			return nil, err
		}
		v := &ArrayElementValue{valueBase: base, Values: make([]ElementValue, n)}
		for i := range v.Values {
			if v.Values[i], err = d.elementValue(c); err != nil {
				return nil, fmt.Errorf("values[%d]: %w", i, err)
			}
		}
		return v, nil
	}

	return nil, errors.UnknownDiscriminant(errors.KindInvalidElementTag, start, fmt.Sprintf("%q", rune(tag)), "element value tag")
}

// constValue resolves the constant behind a const element value. Lookup
// failures are deferred to the consumer, which sees a nil Value.
func (d *decoder) constValue(tag byte, idx uint16) any {
	var want ConstantTag
	switch tag {
	case 'B', 'C', 'I', 'S', 'Z':
		want = TagInteger
	case 'D':
		want = TagDouble
	case 'F':
		want = TagFloat
	case 'J':
		want = TagLong
	case 's':
		want = TagUtf8
	}
	entry, err := d.pool.Resolve(idx, want)
	if err != nil {
		return nil
	}
	switch e := entry.(type) {
	case *ConstantInteger:
		if tag == 'Z' {
			return e.Value != 0
		}
		return e.Value
	case *ConstantDouble:
		return e.Value
	case *ConstantFloat:
		return e.Value
	case *ConstantLong:
		return e.Value
	case *ConstantUtf8:
		return e.Value
	}
	return nil
}
