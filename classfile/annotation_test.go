package classfile_test

import (
	"errors"
	"testing"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/classfile/classfiletest"
)

func annotatedClass(name string, payload []byte) *classfiletest.Builder {
	b := classfiletest.New("pkg/Annotated")
	b.ClassAttr(b.Attr(name, payload))
	return b
}

func TestNestedAnnotationArray(t *testing.T) {
	b := classfiletest.New("pkg/Annotated")
	outer := b.Utf8("Lpkg/Outer;")
	inner := b.Utf8("Lpkg/Inner;")
	value := b.Utf8("value")
	x, y := b.Utf8("x"), b.Utf8("y")
	num := b.Integer(7)
	text := b.Utf8("seven")

	payload := classfiletest.Payload(func(w *binary.Writer) {
		w.U2(1) // one annotation
		w.U2(outer)
		w.U2(1) // one pair
		w.U2(value)
		w.U1('[')
		w.U2(3)
		for i := 0; i < 3; i++ {
			w.U1('@')
			w.U2(inner)
			w.U2(2)
			w.U2(x)
			w.U1('I')
			w.U2(num)
			w.U2(y)
			w.U1('s')
			w.U2(text)
		}
	})
	b.ClassAttr(b.Attr(classfile.AttrRuntimeVisibleAnnotations, payload))
	cf := parse(t, b)

	attr := cf.Attributes[0].(*classfile.RuntimeVisibleAnnotationsAttribute)
	if len(attr.Annotations) != 1 {
		t.Fatalf("got %d annotations", len(attr.Annotations))
	}
	top := attr.Annotations[0]
	if top.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", top.Depth())
	}
	if len(top.Pairs) != 1 || top.Pairs[0].NameIndex != value {
		t.Fatalf("top pairs = %+v", top.Pairs)
	}
	arr, ok := top.Pairs[0].Value.(*classfile.ArrayElementValue)
	if !ok {
		t.Fatalf("value is %T", top.Pairs[0].Value)
	}
	if arr.Tag() != '[' || len(arr.Values) != 3 {
		t.Fatalf("array tag %q with %d values", arr.Tag(), len(arr.Values))
	}
	for i, v := range arr.Values {
		nested, ok := v.(*classfile.AnnotationElementValue)
		if !ok {
			t.Fatalf("values[%d] is %T", i, v)
		}
		a := nested.Annotation
		if a.TypeIndex != inner || len(a.Pairs) != 2 || a.Depth() != 1 {
			t.Errorf("values[%d] = type %d, %d pairs, depth %d", i, a.TypeIndex, len(a.Pairs), a.Depth())
			continue
		}
		c := a.Pairs[0].Value.(*classfile.ConstElementValue)
		if c.ConstValueIndex != num || c.Value != int32(7) {
			t.Errorf("values[%d].x = %d (%v)", i, c.ConstValueIndex, c.Value)
		}
		s := a.Pairs[1].Value.(*classfile.ConstElementValue)
		if s.Value != "seven" {
			t.Errorf("values[%d].y = %v", i, s.Value)
		}
	}
}

func TestElementValueKinds(t *testing.T) {
	b := classfiletest.New("pkg/Annotated")
	typ := b.Utf8("Lpkg/A;")
	name := b.Utf8("v")
	idxInt := b.Integer(1)
	idxLong := b.Long(-5)
	idxFloat := b.Float(0.5)
	idxDouble := b.Double(1.25)
	enumType := b.Utf8("Lpkg/Color;")
	enumConst := b.Utf8("RED")
	classInfo := b.Utf8("Ljava/lang/String;")

	consts := []struct {
		tag   byte
		index uint16
		want  any
	}{
		{'B', idxInt, int32(1)},
		{'C', idxInt, int32(1)},
		{'S', idxInt, int32(1)},
		{'I', idxInt, int32(1)},
		{'Z', idxInt, true},
		{'J', idxLong, int64(-5)},
		{'F', idxFloat, float32(0.5)},
		{'D', idxDouble, 1.25},
		{'s', name, "v"},
		{'I', name, nil}, // wrong entry kind resolves to nil
	}

	payload := classfiletest.Payload(func(w *binary.Writer) {
		w.U2(1)
		w.U2(typ)
		w.U2(uint16(len(consts) + 2))
		for _, c := range consts {
			w.U2(name)
			w.U1(c.tag)
			w.U2(c.index)
		}
		w.U2(name)
		w.U1('e')
		w.U2(enumType)
		w.U2(enumConst)
		w.U2(name)
		w.U1('c')
		w.U2(classInfo)
	})
	b.ClassAttr(b.Attr(classfile.AttrRuntimeInvisibleAnnotations, payload))
	cf := parse(t, b)

	a := cf.Attributes[0].(*classfile.RuntimeInvisibleAnnotationsAttribute).Annotations[0]
	for i, c := range consts {
		v, ok := a.Pairs[i].Value.(*classfile.ConstElementValue)
		if !ok {
			t.Fatalf("pairs[%d] is %T", i, a.Pairs[i].Value)
		}
		if v.Tag() != c.tag || v.ConstValueIndex != c.index {
			t.Errorf("pairs[%d] = %q #%d", i, v.Tag(), v.ConstValueIndex)
		}
		if v.Value != c.want {
			t.Errorf("pairs[%d] value = %#v, want %#v", i, v.Value, c.want)
		}
	}

	enum, ok := a.Pairs[len(consts)].Value.(*classfile.EnumElementValue)
	if !ok || enum.TypeNameIndex != enumType || enum.ConstNameIndex != enumConst {
		t.Errorf("enum = %#v", a.Pairs[len(consts)].Value)
	}
	class, ok := a.Pairs[len(consts)+1].Value.(*classfile.ClassElementValue)
	if !ok || class.ClassInfoIndex != classInfo {
		t.Errorf("class = %#v", a.Pairs[len(consts)+1].Value)
	}
	if a.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", a.Depth())
	}
}

func TestInvalidElementTag(t *testing.T) {
	payload := []byte{0, 1, 0, 1, 0, 1, 0, 1, 'X', 0, 0}
	for _, lenient := range []bool{false, true} {
		_, err := classfile.Parse(annotatedClass(classfile.AttrRuntimeVisibleAnnotations, payload).Bytes(),
			classfile.WithLenient(lenient))
		if !errors.Is(err, classfile.ErrInvalidElementTag) {
			t.Errorf("lenient=%v: error = %v, want ErrInvalidElementTag", lenient, err)
		}
	}
}

func TestParameterAnnotations(t *testing.T) {
	b := classfiletest.New("pkg/Params")
	typ := b.Utf8("Lpkg/NotNull;")
	payload := classfiletest.Payload(func(w *binary.Writer) {
		w.U1(2)
		w.U2(0) // first parameter unannotated
		w.U2(2)
		w.U2(typ)
		w.U2(0)
		w.U2(typ)
		w.U2(0)
	})
	b.Method(classfile.AccPublic, "m", "(II)V", b.Attr(classfile.AttrRuntimeVisibleParameterAnnotations, payload))
	cf := parse(t, b)

	attr := cf.Methods[0].Attributes[0].(*classfile.RuntimeVisibleParameterAnnotationsAttribute)
	if len(attr.Parameters) != 2 {
		t.Fatalf("got %d parameters", len(attr.Parameters))
	}
	if len(attr.Parameters[0].Annotations) != 0 || len(attr.Parameters[1].Annotations) != 2 {
		t.Errorf("annotation counts %d, %d", len(attr.Parameters[0].Annotations), len(attr.Parameters[1].Annotations))
	}
	if attr.Parameters[1].Offset != attr.Parameters[0].Offset+2 {
		t.Errorf("parameter offsets %d, %d", attr.Parameters[0].Offset, attr.Parameters[1].Offset)
	}
}

func TestTypeAnnotationLocalVarTable(t *testing.T) {
	b := classfiletest.New("pkg/Locals")
	typ := b.Utf8("Lpkg/Local;")
	rows := [][3]uint16{{0, 10, 1}, {12, 4, 2}, {20, 6, 3}}
	payload := classfiletest.Payload(func(w *binary.Writer) {
		w.U2(2) // two annotations, each with a multi-row table
		for a := 0; a < 2; a++ {
			w.U1(classfile.TargetLocalVariable)
			w.U2(uint16(len(rows)))
			for _, r := range rows {
				w.U2(r[0] + uint16(a))
				w.U2(r[1])
				w.U2(r[2])
			}
			w.U1(1) // path with one step
			w.U1(classfile.PathTypeArgument)
			w.U1(0)
			w.U2(typ)
			w.U2(0)
		}
	})
	b.Method(classfile.AccStatic, "m", "()V",
		b.Code(1, 4, []byte{0xb1}, nil, b.Attr(classfile.AttrRuntimeVisibleTypeAnnotations, payload)))
	cf := parse(t, b)

	code := cf.Methods[0].Code()
	attr := code.Attributes[0].(*classfile.RuntimeVisibleTypeAnnotationsAttribute)
	if len(attr.Annotations) != 2 {
		t.Fatalf("got %d annotations", len(attr.Annotations))
	}
	for a, ta := range attr.Annotations {
		target, ok := ta.Target.(*classfile.LocalVarTarget)
		if !ok {
			t.Fatalf("annotations[%d] target is %T", a, ta.Target)
		}
		if len(target.Table) != len(rows) {
			t.Fatalf("annotations[%d] has %d rows", a, len(target.Table))
		}
		for j, r := range rows {
			got := target.Table[j]
			if got.StartPC != r[0]+uint16(a) || got.Length != r[1] || got.Index != r[2] {
				t.Errorf("annotations[%d].table[%d] = %+v, want %v", a, j, got, r)
			}
			if j > 0 && got.Offset != target.Table[j-1].Offset+6 {
				t.Errorf("annotations[%d].table[%d] offset %d", a, j, got.Offset)
			}
		}
		if len(ta.Path.Entries) != 1 || ta.Path.Entries[0].Kind != classfile.PathTypeArgument {
			t.Errorf("annotations[%d] path = %+v", a, ta.Path)
		}
		if ta.TypeIndex != typ {
			t.Errorf("annotations[%d] type index %d", a, ta.TypeIndex)
		}
	}
}

func TestTypeAnnotationTargets(t *testing.T) {
	tests := []struct {
		name       string
		targetType uint8
		info       []byte
		check      func(classfile.TargetInfo) bool
	}{
		{"class type parameter", classfile.TargetClassTypeParameter, []byte{2}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.TypeParameterTarget)
			return ok && tt.TypeParameterIndex == 2
		}},
		{"supertype", classfile.TargetClassExtends, []byte{0, 1}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.SupertypeTarget)
			return ok && tt.SupertypeIndex == 1
		}},
		{"bound", classfile.TargetMethodTypeParameterBound, []byte{1, 2}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.TypeParameterBoundTarget)
			return ok && tt.TypeParameterIndex == 1 && tt.BoundIndex == 2
		}},
		{"field", classfile.TargetField, nil, func(ti classfile.TargetInfo) bool {
			_, ok := ti.(*classfile.EmptyTarget)
			return ok
		}},
		{"receiver", classfile.TargetMethodReceiver, nil, func(ti classfile.TargetInfo) bool {
			_, ok := ti.(*classfile.EmptyTarget)
			return ok
		}},
		{"formal parameter", classfile.TargetMethodFormalParameter, []byte{3}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.FormalParameterTarget)
			return ok && tt.FormalParameterIndex == 3
		}},
		{"throws", classfile.TargetThrows, []byte{0, 4}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.ThrowsTarget)
			return ok && tt.ThrowsTypeIndex == 4
		}},
		{"resource variable", classfile.TargetResourceVariable, []byte{0, 1, 0, 0, 0, 5, 0, 1}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.LocalVarTarget)
			return ok && len(tt.Table) == 1 && tt.Table[0].Length == 5
		}},
		{"catch", classfile.TargetExceptionParameter, []byte{0, 6}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.CatchTarget)
			return ok && tt.ExceptionTableIndex == 6
		}},
		{"instanceof", classfile.TargetInstanceOf, []byte{0, 7}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.OffsetTarget)
			return ok && tt.BytecodeOffset == 7
		}},
		{"method reference", classfile.TargetMethodReference, []byte{0, 8}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.OffsetTarget)
			return ok && tt.BytecodeOffset == 8
		}},
		{"cast", classfile.TargetCast, []byte{0, 9, 1}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.TypeArgumentTarget)
			return ok && tt.BytecodeOffset == 9 && tt.TypeArgumentIndex == 1
		}},
		{"method reference type argument", classfile.TargetMethodReferenceTypeArg, []byte{0, 10, 0}, func(ti classfile.TargetInfo) bool {
			tt, ok := ti.(*classfile.TypeArgumentTarget)
			return ok && tt.BytecodeOffset == 10
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := classfiletest.New("pkg/Targets")
			typ := b.Utf8("Lpkg/T;")
			payload := classfiletest.Payload(func(w *binary.Writer) {
				w.U2(1)
				w.U1(tt.targetType)
				w.WriteBytes(tt.info)
				w.U1(0)
				w.U2(typ)
				w.U2(0)
			})
			b.ClassAttr(b.Attr(classfile.AttrRuntimeInvisibleTypeAnnotations, payload))
			cf := parse(t, b)

			ta := cf.Attributes[0].(*classfile.RuntimeInvisibleTypeAnnotationsAttribute).Annotations[0]
			if ta.TargetType != tt.targetType {
				t.Errorf("target type = %#x", ta.TargetType)
			}
			if !tt.check(ta.Target) {
				t.Errorf("target = %#v", ta.Target)
			}
		})
	}
}

func TestInvalidTargetType(t *testing.T) {
	payload := []byte{0, 1, 0x20, 0, 0, 1, 0, 0}
	_, err := classfile.Parse(annotatedClass(classfile.AttrRuntimeVisibleTypeAnnotations, payload).Bytes(),
		classfile.WithLenient(true))
	if !errors.Is(err, classfile.ErrInvalidTargetType) {
		t.Fatalf("error = %v, want ErrInvalidTargetType", err)
	}
}
