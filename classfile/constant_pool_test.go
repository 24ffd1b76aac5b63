package classfile_test

import (
	"errors"
	"testing"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/classfile/classfiletest"
)

func parse(t *testing.T, b *classfiletest.Builder, opts ...classfile.Option) *classfile.ClassFile {
	t.Helper()
	cf, err := classfile.Parse(b.Bytes(), opts...)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cf
}

func TestConstantPoolAllTags(t *testing.T) {
	b := classfiletest.New("pkg/All")
	iInt := b.Integer(-7)
	iFloat := b.Float(1.5)
	iLong := b.Long(1 << 40)
	iDouble := b.Double(2.25)
	iString := b.StringConst("hello")
	iField := b.Fieldref("pkg/All", "count", "I")
	iMethod := b.Methodref("pkg/All", "run", "()V")
	iIface := b.InterfaceMethodref("java/lang/Runnable", "run", "()V")
	iHandle := b.MethodHandle(classfile.RefInvokeStatic, iMethod)
	iMType := b.MethodType("()V")
	iIndy := b.InvokeDynamic(0, "apply", "()Ljava/lang/Runnable;")
	iDyn := b.Dynamic(0, "value", "I")
	iModule := b.Module("app")
	iPackage := b.Package("pkg")

	cf := parse(t, b)
	pool := cf.ConstantPool

	if pool.Count() != b.PoolCount() {
		t.Fatalf("Count() = %d, want %d", pool.Count(), b.PoolCount())
	}

	tests := []struct {
		index uint16
		tag   classfile.ConstantTag
	}{
		{iInt, classfile.TagInteger},
		{iFloat, classfile.TagFloat},
		{iLong, classfile.TagLong},
		{iDouble, classfile.TagDouble},
		{iString, classfile.TagString},
		{iField, classfile.TagFieldref},
		{iMethod, classfile.TagMethodref},
		{iIface, classfile.TagInterfaceMethodref},
		{iHandle, classfile.TagMethodHandle},
		{iMType, classfile.TagMethodType},
		{iIndy, classfile.TagInvokeDynamic},
		{iDyn, classfile.TagDynamic},
		{iModule, classfile.TagModule},
		{iPackage, classfile.TagPackage},
	}
	for _, tt := range tests {
		c, err := pool.Resolve(tt.index, tt.tag)
		if err != nil {
			t.Errorf("Resolve(%d, %s): %v", tt.index, tt.tag, err)
			continue
		}
		if c.Index() != tt.index {
			t.Errorf("entry %d reports index %d", tt.index, c.Index())
		}
		if len(c.Raw()) == 0 || classfile.ConstantTag(c.Raw()[0]) != tt.tag {
			t.Errorf("entry %d raw bytes % x do not start with tag %d", tt.index, c.Raw(), tt.tag)
		}
	}

	if v := mustResolve(t, pool, iInt, classfile.TagInteger).(*classfile.ConstantInteger).Value; v != -7 {
		t.Errorf("Integer = %d", v)
	}
	if v := mustResolve(t, pool, iFloat, classfile.TagFloat).(*classfile.ConstantFloat).Value; v != 1.5 {
		t.Errorf("Float = %v", v)
	}
	if v := mustResolve(t, pool, iLong, classfile.TagLong).(*classfile.ConstantLong).Value; v != 1<<40 {
		t.Errorf("Long = %d", v)
	}
	if v := mustResolve(t, pool, iDouble, classfile.TagDouble).(*classfile.ConstantDouble).Value; v != 2.25 {
		t.Errorf("Double = %v", v)
	}
	mh := mustResolve(t, pool, iHandle, classfile.TagMethodHandle).(*classfile.ConstantMethodHandle)
	if mh.ReferenceKind != classfile.RefInvokeStatic || mh.ReferenceIndex != iMethod {
		t.Errorf("MethodHandle = %+v", mh)
	}

	ref, err := pool.MemberRef(iIface)
	if err != nil {
		t.Fatalf("MemberRef: %v", err)
	}
	if ref.ClassName != "java/lang/Runnable" || ref.Name != "run" || ref.Descriptor != "()V" {
		t.Errorf("MemberRef = %+v", ref)
	}

	if got := pool.Describe(iField); got != "pkg/All.count:I" {
		t.Errorf("Describe(field) = %q", got)
	}
	if got := pool.Describe(iString); got != `"hello"` {
		t.Errorf("Describe(string) = %q", got)
	}
	if got := pool.Describe(0); got != "<invalid #0>" {
		t.Errorf("Describe(0) = %q", got)
	}
}

func mustResolve(t *testing.T, pool *classfile.ConstantPool, index uint16, tag classfile.ConstantTag) classfile.Constant {
	t.Helper()
	c, err := pool.Resolve(index, tag)
	if err != nil {
		t.Fatalf("Resolve(%d, %s): %v", index, tag, err)
	}
	return c
}

func TestConstantPoolWideSlots(t *testing.T) {
	b := classfiletest.New("pkg/Wide")
	before := b.Utf8("before")
	long := b.Long(42)
	double := b.Double(3.5)
	after := b.Utf8("after")

	cf := parse(t, b)
	pool := cf.ConstantPool

	if double != long+2 || after != double+2 {
		t.Fatalf("builder indices %d %d %d", long, double, after)
	}

	for _, wide := range []uint16{long, double} {
		if !pool.IsPadding(wide + 1) {
			t.Errorf("index %d not flagged as padding", wide+1)
		}
		if _, err := pool.Entry(wide + 1); !errors.Is(err, classfile.ErrBadIndex) {
			t.Errorf("Entry(%d) error = %v, want ErrBadIndex", wide+1, err)
		}
		if _, err := pool.Resolve(wide+1, classfile.TagUtf8); !errors.Is(err, classfile.ErrBadIndex) {
			t.Errorf("Resolve(%d) error = %v, want ErrBadIndex", wide+1, err)
		}
	}

	for i := uint16(1); i < pool.Count(); i++ {
		if pool.IsPadding(i) {
			continue
		}
		if _, err := pool.Entry(i); err != nil {
			t.Errorf("Entry(%d): %v", i, err)
		}
	}

	if s, err := pool.Utf8(before); err != nil || s != "before" {
		t.Errorf("Utf8(before) = %q, %v", s, err)
	}
	if s, err := pool.Utf8(after); err != nil || s != "after" {
		t.Errorf("Utf8(after) = %q, %v", s, err)
	}
	if len(pool.Entries()) != int(pool.Count())-1-2 {
		t.Errorf("Entries() = %d, want %d", len(pool.Entries()), int(pool.Count())-3)
	}
}

func TestConstantPoolLookupErrors(t *testing.T) {
	b := classfiletest.New("pkg/Lookup")
	utf := b.Utf8("text")
	cf := parse(t, b)
	pool := cf.ConstantPool

	tests := []struct {
		name  string
		index uint16
		tag   classfile.ConstantTag
		want  error
	}{
		{"zero", 0, classfile.TagUtf8, classfile.ErrBadIndex},
		{"past end", pool.Count(), classfile.TagUtf8, classfile.ErrBadIndex},
		{"wrong tag", utf, classfile.TagClass, classfile.ErrTagMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pool.Resolve(tt.index, tt.tag)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := pool.ClassName(utf); !errors.Is(err, classfile.ErrTagMismatch) {
		t.Errorf("ClassName on Utf8 error = %v", err)
	}
}

func TestConstantPoolUnknownTag(t *testing.T) {
	b := classfiletest.New("pkg/Bad")
	b.RawConstant(2, []byte{0x00, 0x00})
	_, err := classfile.Parse(b.Bytes())
	if !errors.Is(err, classfile.ErrUnknownConstantTag) {
		t.Fatalf("error = %v, want ErrUnknownConstantTag", err)
	}
	if !classfile.IsFatal(err) {
		t.Error("unknown tag must be fatal")
	}
}

func TestConstantPoolModifiedUTF8(t *testing.T) {
	b := classfiletest.New("pkg/Text")
	nul := b.Utf8("a\x00b")
	emoji := b.Utf8("x\U0001F600y")
	accented := b.Utf8("café")
	cf := parse(t, b)

	tests := []struct {
		index uint16
		want  string
		size  int
	}{
		{nul, "a\x00b", 4},
		{emoji, "x\U0001F600y", 8},
		{accented, "café", 5},
	}
	for _, tt := range tests {
		c := mustResolve(t, cf.ConstantPool, tt.index, classfile.TagUtf8).(*classfile.ConstantUtf8)
		if c.Value != tt.want || !c.Valid {
			t.Errorf("Utf8 %d = %q (valid %v), want %q", tt.index, c.Value, c.Valid, tt.want)
		}
		if len(c.Bytes) != tt.size {
			t.Errorf("Utf8 %d encoded in %d bytes, want %d", tt.index, len(c.Bytes), tt.size)
		}
	}
}

func TestConstantPoolMalformedUTF8(t *testing.T) {
	b := classfiletest.New("pkg/Broken")
	idx := b.RawConstant(uint8(classfile.TagUtf8), []byte{0x00, 0x02, 0xe0, 0x41})
	cf := parse(t, b)

	c := mustResolve(t, cf.ConstantPool, idx, classfile.TagUtf8).(*classfile.ConstantUtf8)
	if c.Valid {
		t.Error("malformed text reported valid")
	}
	if len(c.Bytes) != 2 {
		t.Errorf("raw bytes = % x", c.Bytes)
	}
}

func TestConstantPoolTrailingWideEntry(t *testing.T) {
	b := classfiletest.New("pkg/Trunc")
	b.Long(1)
	data := b.Bytes()
	// Declare one slot fewer so the Long lands in the last slot.
	data[8], data[9] = 0, byte(b.PoolCount()-1)

	_, err := classfile.Parse(data)
	if !errors.Is(err, classfile.ErrInvalidData) {
		t.Fatalf("error = %v, want ErrInvalidData", err)
	}
}
