package classfile_test

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/classfile/classfiletest"
)

// richClass builds a class carrying every attribute kind the decoder knows.
func richClass() *classfiletest.Builder {
	b := classfiletest.New("pkg/Rich")
	p := classfiletest.Payload
	u2 := func(v uint16) []byte { return p(func(w *binary.Writer) { w.U2(v) }) }

	ten := b.Integer(10)
	ann := b.Utf8("Lpkg/Marker;")
	object := b.Class("java/lang/Object")
	ioe := b.Class("java/io/IOException")
	inner := b.Class("pkg/Rich$Inner")
	target := b.Methodref("pkg/Rich", "make", "()Ljava/lang/Object;")
	handle := b.MethodHandle(classfile.RefInvokeStatic, target)
	strArg := b.StringConst("arg")
	enclosing := b.NameAndType("outer", "()V")

	marker := p(func(w *binary.Writer) {
		w.U2(1)
		w.U2(ann)
		w.U2(0)
	})

	b.Field(classfile.AccPublic|classfile.AccStatic|classfile.AccFinal, "MAX", "I",
		b.Attr(classfile.AttrConstantValue, u2(ten)),
		b.Attr(classfile.AttrSignature, u2(b.Utf8("I"))),
		b.Attr(classfile.AttrDeprecated, nil),
		b.Attr(classfile.AttrSynthetic, nil),
		b.Attr(classfile.AttrRuntimeVisibleAnnotations, marker),
	)

	code := []byte{
		0x03,             // iconst_0
		0x3c,             // istore_1
		0x1b,             // iload_1
		0x99, 0x00, 0x04, // ifeq +4
		0x00,             // nop
		0xb1,             // return
	}
	lines := b.Attr(classfile.AttrLineNumberTable, p(func(w *binary.Writer) {
		w.U2(2)
		w.U2(0)
		w.U2(10)
		w.U2(2)
		w.U2(11)
	}))
	locals := b.Attr(classfile.AttrLocalVariableTable, p(func(w *binary.Writer) {
		w.U2(1)
		w.U2(0)
		w.U2(8)
		w.U2(b.Utf8("x"))
		w.U2(b.Utf8("I"))
		w.U2(1)
	}))
	localTypes := b.Attr(classfile.AttrLocalVariableTypeTable, p(func(w *binary.Writer) {
		w.U2(1)
		w.U2(0)
		w.U2(8)
		w.U2(b.Utf8("list"))
		w.U2(b.Utf8("Ljava/util/List<TT;>;"))
		w.U2(2)
	}))
	frames := b.Attr(classfile.AttrStackMapTable, p(func(w *binary.Writer) {
		w.U2(2)
		w.U1(252) // append one local
		w.U2(3)
		w.U1(classfile.ItemInteger)
		w.U1(0) // same, delta 0
	}))
	typeAnns := b.Attr(classfile.AttrRuntimeVisibleTypeAnnotations, p(func(w *binary.Writer) {
		w.U2(1)
		w.U1(classfile.TargetMethodReturn)
		w.U1(0) // empty path
		w.U2(ann)
		w.U2(0)
	}))

	b.Method(classfile.AccPublic, "run", "(I)V",
		b.Code(2, 3, code, []classfiletest.Handler{{StartPC: 0, EndPC: 7, HandlerPC: 7, CatchType: ioe}},
			lines, locals, localTypes, frames),
		b.Attr(classfile.AttrExceptions, p(func(w *binary.Writer) {
			w.U2(1)
			w.U2(ioe)
		})),
		b.Attr(classfile.AttrMethodParameters, p(func(w *binary.Writer) {
			w.U1(1)
			w.U2(b.Utf8("count"))
			w.U2(classfile.AccFinal)
		})),
		b.Attr(classfile.AttrRuntimeInvisibleParameterAnnotations, p(func(w *binary.Writer) {
			w.U1(1)
			w.WriteBytes(marker)
		})),
		typeAnns,
	)

	b.Method(classfile.AccPublic|classfile.AccAbstract, "value", "()I",
		b.Attr(classfile.AttrAnnotationDefault, p(func(w *binary.Writer) {
			w.U1('I')
			w.U2(ten)
		})),
		b.Attr(classfile.AttrRuntimeVisibleParameterAnnotations, p(func(w *binary.Writer) { w.U1(0) })),
	)

	b.ClassAttr(
		b.Attr(classfile.AttrSourceFile, u2(b.Utf8("Rich.java"))),
		b.Attr(classfile.AttrSourceDebugExtension, []byte("SMAP")),
		b.Attr(classfile.AttrInnerClasses, p(func(w *binary.Writer) {
			w.U2(1)
			w.U2(inner)
			w.U2(b.This)
			w.U2(b.Utf8("Inner"))
			w.U2(classfile.AccPublic | classfile.AccStatic)
		})),
		b.Attr(classfile.AttrEnclosingMethod, p(func(w *binary.Writer) {
			w.U2(object)
			w.U2(enclosing)
		})),
		b.Attr(classfile.AttrBootstrapMethods, p(func(w *binary.Writer) {
			w.U2(1)
			w.U2(handle)
			w.U2(1)
			w.U2(strArg)
		})),
		b.Attr(classfile.AttrNestHost, u2(object)),
		b.Attr(classfile.AttrNestMembers, p(func(w *binary.Writer) {
			w.U2(1)
			w.U2(inner)
		})),
		b.Attr(classfile.AttrPermittedSubclasses, p(func(w *binary.Writer) {
			w.U2(1)
			w.U2(inner)
		})),
		b.Attr(classfile.AttrRecord, p(func(w *binary.Writer) {
			w.U2(1)
			w.U2(b.Utf8("count"))
			w.U2(b.Utf8("I"))
			w.U2(1)
			w.WriteBytes(b.Attr(classfile.AttrSignature, u2(b.Utf8("I"))))
		})),
		b.Attr(classfile.AttrRuntimeInvisibleAnnotations, marker),
		b.Attr(classfile.AttrRuntimeInvisibleTypeAnnotations, p(func(w *binary.Writer) {
			w.U2(1)
			w.U1(classfile.TargetClassExtends)
			w.U2(0xFFFF)
			w.U1(0)
			w.U2(ann)
			w.U2(0)
		})),
		b.Attr(classfile.AttrSignature, u2(b.Utf8("<T:Ljava/lang/Object;>Ljava/lang/Object;"))),
	)
	return b
}

func TestParseEveryAttributeKind(t *testing.T) {
	cf := parse(t, richClass())

	var kinds []string
	collect := func(attrs []classfile.Attribute) {
		for _, a := range attrs {
			kinds = append(kinds, reflect.TypeOf(a).Elem().Name())
		}
	}
	for _, f := range cf.Fields {
		collect(f.Attributes)
	}
	for _, m := range cf.Methods {
		collect(m.Attributes)
		if code := m.Code(); code != nil {
			collect(code.Attributes)
		}
	}
	collect(cf.Attributes)
	rec := classfile.FindAttribute(cf.Attributes, classfile.AttrRecord).(*classfile.RecordAttribute)
	collect(rec.Components[0].Attributes)

	want := []string{
		"ConstantValueAttribute", "SignatureAttribute", "DeprecatedAttribute", "SyntheticAttribute",
		"RuntimeVisibleAnnotationsAttribute",
		"CodeAttribute", "ExceptionsAttribute", "MethodParametersAttribute",
		"RuntimeInvisibleParameterAnnotationsAttribute", "RuntimeVisibleTypeAnnotationsAttribute",
		"LineNumberTableAttribute", "LocalVariableTableAttribute", "LocalVariableTypeTableAttribute",
		"StackMapTableAttribute",
		"AnnotationDefaultAttribute", "RuntimeVisibleParameterAnnotationsAttribute",
		"SourceFileAttribute", "SourceDebugExtensionAttribute", "InnerClassesAttribute",
		"EnclosingMethodAttribute", "BootstrapMethodsAttribute", "NestHostAttribute",
		"NestMembersAttribute", "PermittedSubclassesAttribute", "RecordAttribute",
		"RuntimeInvisibleAnnotationsAttribute", "RuntimeInvisibleTypeAnnotationsAttribute",
		"SignatureAttribute",
		"SignatureAttribute",
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("attribute kinds:\n got %v\nwant %v", kinds, want)
	}
}

func TestAttributeLengthsMatchConsumption(t *testing.T) {
	cf := parse(t, richClass())
	data := cf.Bytes()

	var check func(attrs []classfile.Attribute)
	check = func(attrs []classfile.Attribute) {
		for _, a := range attrs {
			h := a.Header()
			c := binary.NewCursorAt(data, h.Offset)
			nameIndex, _ := c.U2()
			length, _ := c.U4()
			if nameIndex != h.NameIndex || length != h.Length {
				t.Errorf("%s: header at %d reads %d/%d, model has %d/%d",
					h.Name, h.Offset, nameIndex, length, h.NameIndex, h.Length)
			}
			if _, ok := a.(*classfile.UnknownAttribute); ok {
				t.Errorf("%s decoded as unknown", h.Name)
			}
			if code, ok := a.(*classfile.CodeAttribute); ok {
				check(code.Attributes)
			}
		}
	}
	for _, m := range append(append([]*classfile.Member{}, cf.Fields...), cf.Methods...) {
		check(m.Attributes)
	}
	check(cf.Attributes)
}

func TestCodeAttribute(t *testing.T) {
	cf := parse(t, richClass())
	run, err := cf.FindMethod("run", "(I)V")
	if err != nil {
		t.Fatalf("FindMethod: %v", err)
	}
	code := run.Code()
	if code == nil {
		t.Fatal("no Code attribute")
	}
	if code.MaxStack != 2 || code.MaxLocals != 3 || code.CodeLength != 8 {
		t.Errorf("header = %d/%d/%d", code.MaxStack, code.MaxLocals, code.CodeLength)
	}
	if code.CodeOffset != code.PayloadOffset()+8 {
		t.Errorf("CodeOffset = %d, payload at %d", code.CodeOffset, code.PayloadOffset())
	}
	if !bytes.Equal(cf.Bytes()[code.CodeOffset:code.CodeOffset+8], code.Code) {
		t.Error("Code does not alias the input at CodeOffset")
	}

	wantOps := []classfile.Opcode{
		classfile.OpIconst0, classfile.OpIstore1, classfile.OpIload1,
		classfile.OpIfeq, classfile.OpNop, classfile.OpReturn,
	}
	if len(code.Instructions) != len(wantOps) {
		t.Fatalf("got %d instructions", len(code.Instructions))
	}
	for i, in := range code.Instructions {
		if in.Opcode != wantOps[i] {
			t.Errorf("instr %d = %s, want %s", i, in.Opcode, wantOps[i])
		}
		if in.Offset != code.CodeOffset+in.PC {
			t.Errorf("instr %d offset %d, want %d", i, in.Offset, code.CodeOffset+in.PC)
		}
	}

	if len(code.ExceptionTable) != 1 || code.ExceptionTable[0].HandlerPC != 7 {
		t.Errorf("exception table = %+v", code.ExceptionTable)
	}
	name, err := cf.ConstantPool.ClassName(code.ExceptionTable[0].CatchType)
	if err != nil || name != "java/io/IOException" {
		t.Errorf("catch type = %q, %v", name, err)
	}

	lines := classfile.FindAttribute(code.Attributes, classfile.AttrLineNumberTable).(*classfile.LineNumberTableAttribute)
	if len(lines.Lines) != 2 || lines.Lines[1].LineNumber != 11 {
		t.Errorf("lines = %+v", lines.Lines)
	}
	if lines.Lines[1].Offset != lines.Lines[0].Offset+4 {
		t.Errorf("row offsets %d, %d", lines.Lines[0].Offset, lines.Lines[1].Offset)
	}

	smt := classfile.FindAttribute(code.Attributes, classfile.AttrStackMapTable).(*classfile.StackMapTableAttribute)
	if got := smt.Offsets(); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("frame offsets = %v, want [3 4]", got)
	}
}

func TestUnknownAttributeResilience(t *testing.T) {
	b := classfiletest.New("pkg/Unknown")
	payload := []byte{1, 2, 3, 4, 5}
	b.ClassAttr(
		b.Attr("com.example.Custom", payload),
		classfiletest.RawAttr(0, 5, payload),      // index 0 never resolves
		classfiletest.RawAttr(b.This, 5, payload), // not a Utf8 entry
		b.Attr(classfile.AttrSourceFile, classfiletest.Payload(func(w *binary.Writer) {
			w.U2(b.Utf8("Unknown.java"))
		})),
	)

	cf := parse(t, b)
	if len(cf.Attributes) != 4 {
		t.Fatalf("got %d attributes, want 4", len(cf.Attributes))
	}
	for i := 0; i < 3; i++ {
		u, ok := cf.Attributes[i].(*classfile.UnknownAttribute)
		if !ok {
			t.Fatalf("attributes[%d] is %T", i, cf.Attributes[i])
		}
		if !bytes.Equal(u.Info, payload) || u.Length != 5 {
			t.Errorf("attributes[%d] payload = % x (length %d)", i, u.Info, u.Length)
		}
		if u.Err != nil {
			t.Errorf("attributes[%d] carries error %v", i, u.Err)
		}
	}
	if cf.Attributes[0].Header().Name != "com.example.Custom" {
		t.Errorf("name = %q", cf.Attributes[0].Header().Name)
	}
	if cf.Attributes[1].Header().Name != "" {
		t.Errorf("unresolved name = %q", cf.Attributes[1].Header().Name)
	}
	if _, ok := cf.Attributes[3].(*classfile.SourceFileAttribute); !ok {
		t.Errorf("sibling after unknown attributes is %T", cf.Attributes[3])
	}
}

func lengthMismatchClass() *classfiletest.Builder {
	b := classfiletest.New("pkg/Mismatch")
	ioe := b.Class("java/io/IOException")
	over := classfiletest.Payload(func(w *binary.Writer) {
		w.U2(1)
		w.U2(ioe)
		w.U2(0xBEEF) // not covered by the count
	})
	under := classfiletest.Payload(func(w *binary.Writer) {
		w.U2(2)
		w.U2(ioe) // count says two entries
	})
	b.Method(classfile.AccPublic, "a", "()V", b.Attr(classfile.AttrExceptions, over))
	b.Method(classfile.AccPublic, "b", "()V",
		b.Attr(classfile.AttrExceptions, under),
		b.Attr(classfile.AttrDeprecated, nil))
	return b
}

func TestAttributeLengthMismatch(t *testing.T) {
	_, err := classfile.Parse(lengthMismatchClass().Bytes())
	if !errors.Is(err, classfile.ErrAttributeLengthMismatch) {
		t.Fatalf("error = %v, want ErrAttributeLengthMismatch", err)
	}
	if classfile.IsFatal(err) {
		t.Error("length mismatch must be recoverable")
	}
}

func TestAttributeLengthMismatchLenient(t *testing.T) {
	cf := parse(t, lengthMismatchClass(), classfile.WithLenient(true))

	for i, m := range cf.Methods {
		u, ok := m.Attributes[0].(*classfile.UnknownAttribute)
		if !ok {
			t.Fatalf("methods[%d] attribute is %T", i, m.Attributes[0])
		}
		if !errors.Is(u.Err, classfile.ErrAttributeLengthMismatch) {
			t.Errorf("methods[%d] Err = %v", i, u.Err)
		}
		if u.Header().Name != classfile.AttrExceptions || len(u.Info) != int(u.Length) {
			t.Errorf("methods[%d] header = %+v, %d payload bytes", i, u.Header(), len(u.Info))
		}
	}
	if _, ok := cf.Methods[1].Attributes[1].(*classfile.DeprecatedAttribute); !ok {
		t.Errorf("sibling after recovered attribute is %T", cf.Methods[1].Attributes[1])
	}
}

func TestAttributeLongerThanInput(t *testing.T) {
	b := classfiletest.New("pkg/Long")
	b.ClassAttr(classfiletest.RawAttr(b.Utf8("X"), 1000, []byte{1, 2}))
	_, err := classfile.Parse(b.Bytes(), classfile.WithLenient(true))
	if !errors.Is(err, classfile.ErrBufferUnderrun) {
		t.Fatalf("error = %v, want ErrBufferUnderrun", err)
	}
}
