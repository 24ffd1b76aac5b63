// Package classfiletest assembles class-file images in memory for tests.
package classfiletest

import (
	"math"
	"unicode/utf16"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/classfile/binary"
)

// Builder accumulates a constant pool, members and attributes and
// serializes them with Bytes. Pool helpers deduplicate Utf8 and Class
// entries so tests can refer to names freely.
type Builder struct {
	pool       *binary.Writer
	utf8       map[string]uint16
	classes    map[string]uint16
	fields     [][]byte
	methods    [][]byte
	attrs      [][]byte
	interfaces []uint16
	next       uint16

	Major       uint16
	Minor       uint16
	AccessFlags uint16
	This        uint16
	Super       uint16
}

// New returns a Builder for a public class named name extending
// java/lang/Object, version 52.0.
func New(name string) *Builder {
	b := &Builder{
		pool:        binary.NewWriter(),
		utf8:        make(map[string]uint16),
		classes:     make(map[string]uint16),
		next:        1,
		Major:       52,
		AccessFlags: classfile.AccPublic | classfile.AccSuper,
	}
	b.This = b.Class(name)
	b.Super = b.Class("java/lang/Object")
	return b
}

// PoolCount returns the constant_pool_count the image will declare.
func (b *Builder) PoolCount() uint16 { return b.next }

func (b *Builder) add(tag classfile.ConstantTag, body func(w *binary.Writer)) uint16 {
	idx := b.next
	b.pool.U1(uint8(tag))
	body(b.pool)
	b.next++
	if tag.Wide() {
		b.next++
	}
	return idx
}

// RawConstant appends an entry with an arbitrary tag byte and body.
func (b *Builder) RawConstant(tag uint8, body []byte) uint16 {
	idx := b.next
	b.pool.U1(tag)
	b.pool.WriteBytes(body)
	b.next++
	return idx
}

// Utf8 returns the index of a Utf8 entry holding s.
func (b *Builder) Utf8(s string) uint16 {
	if idx, ok := b.utf8[s]; ok {
		return idx
	}
	enc := EncodeModifiedUTF8(s)
	idx := b.add(classfile.TagUtf8, func(w *binary.Writer) {
		w.U2(uint16(len(enc)))
		w.WriteBytes(enc)
	})
	b.utf8[s] = idx
	return idx
}

func (b *Builder) Integer(v int32) uint16 {
	return b.add(classfile.TagInteger, func(w *binary.Writer) { w.U4(uint32(v)) })
}

func (b *Builder) Float(v float32) uint16 {
	return b.add(classfile.TagFloat, func(w *binary.Writer) { w.U4(math.Float32bits(v)) })
}

func (b *Builder) Long(v int64) uint16 {
	return b.add(classfile.TagLong, func(w *binary.Writer) { w.U8(uint64(v)) })
}

func (b *Builder) Double(v float64) uint16 {
	return b.add(classfile.TagDouble, func(w *binary.Writer) { w.U8(math.Float64bits(v)) })
}

// Class returns the index of a Class entry for the internal name.
func (b *Builder) Class(name string) uint16 {
	if idx, ok := b.classes[name]; ok {
		return idx
	}
	n := b.Utf8(name)
	idx := b.add(classfile.TagClass, func(w *binary.Writer) { w.U2(n) })
	b.classes[name] = idx
	return idx
}

// StringConst returns the index of a new String entry.
func (b *Builder) StringConst(s string) uint16 {
	n := b.Utf8(s)
	return b.add(classfile.TagString, func(w *binary.Writer) { w.U2(n) })
}

func (b *Builder) NameAndType(name, descriptor string) uint16 {
	n, d := b.Utf8(name), b.Utf8(descriptor)
	return b.add(classfile.TagNameAndType, func(w *binary.Writer) {
		w.U2(n)
		w.U2(d)
	})
}

func (b *Builder) memberRef(tag classfile.ConstantTag, class, name, descriptor string) uint16 {
	c, nt := b.Class(class), b.NameAndType(name, descriptor)
	return b.add(tag, func(w *binary.Writer) {
		w.U2(c)
		w.U2(nt)
	})
}

func (b *Builder) Fieldref(class, name, descriptor string) uint16 {
	return b.memberRef(classfile.TagFieldref, class, name, descriptor)
}

func (b *Builder) Methodref(class, name, descriptor string) uint16 {
	return b.memberRef(classfile.TagMethodref, class, name, descriptor)
}

func (b *Builder) InterfaceMethodref(class, name, descriptor string) uint16 {
	return b.memberRef(classfile.TagInterfaceMethodref, class, name, descriptor)
}

func (b *Builder) MethodHandle(kind uint8, ref uint16) uint16 {
	return b.add(classfile.TagMethodHandle, func(w *binary.Writer) {
		w.U1(kind)
		w.U2(ref)
	})
}

func (b *Builder) MethodType(descriptor string) uint16 {
	d := b.Utf8(descriptor)
	return b.add(classfile.TagMethodType, func(w *binary.Writer) { w.U2(d) })
}

func (b *Builder) InvokeDynamic(bootstrap uint16, name, descriptor string) uint16 {
	nt := b.NameAndType(name, descriptor)
	return b.add(classfile.TagInvokeDynamic, func(w *binary.Writer) {
		w.U2(bootstrap)
		w.U2(nt)
	})
}

func (b *Builder) Dynamic(bootstrap uint16, name, descriptor string) uint16 {
	nt := b.NameAndType(name, descriptor)
	return b.add(classfile.TagDynamic, func(w *binary.Writer) {
		w.U2(bootstrap)
		w.U2(nt)
	})
}

func (b *Builder) Module(name string) uint16 {
	n := b.Utf8(name)
	return b.add(classfile.TagModule, func(w *binary.Writer) { w.U2(n) })
}

func (b *Builder) Package(name string) uint16 {
	n := b.Utf8(name)
	return b.add(classfile.TagPackage, func(w *binary.Writer) { w.U2(n) })
}

// Interface adds an implemented interface.
func (b *Builder) Interface(name string) {
	b.interfaces = append(b.interfaces, b.Class(name))
}

// Attr encodes an attribute with a resolved name and a length matching
// payload.
func (b *Builder) Attr(name string, payload []byte) []byte {
	return RawAttr(b.Utf8(name), uint32(len(payload)), payload)
}

// RawAttr encodes an attribute with an arbitrary name index and declared
// length.
func RawAttr(nameIndex uint16, length uint32, payload []byte) []byte {
	w := binary.NewWriter()
	w.U2(nameIndex)
	w.U4(length)
	w.WriteBytes(payload)
	return w.Bytes()
}

// Payload runs fn against a fresh writer and returns what it wrote.
func Payload(fn func(w *binary.Writer)) []byte {
	w := binary.NewWriter()
	fn(w)
	return w.Bytes()
}

// Handler is an exception table row for Code.
type Handler struct {
	StartPC, EndPC, HandlerPC, CatchType uint16
}

// Code encodes a Code attribute.
func (b *Builder) Code(maxStack, maxLocals uint16, code []byte, handlers []Handler, attrs ...[]byte) []byte {
	return b.Attr(classfile.AttrCode, Payload(func(w *binary.Writer) {
		w.U2(maxStack)
		w.U2(maxLocals)
		w.U4(uint32(len(code)))
		w.WriteBytes(code)
		w.U2(uint16(len(handlers)))
		for _, h := range handlers {
			w.U2(h.StartPC)
			w.U2(h.EndPC)
			w.U2(h.HandlerPC)
			w.U2(h.CatchType)
		}
		writeAttrs(w, attrs)
	}))
}

func writeAttrs(w *binary.Writer, attrs [][]byte) {
	w.U2(uint16(len(attrs)))
	for _, a := range attrs {
		w.WriteBytes(a)
	}
}

// Field adds a field.
func (b *Builder) Field(flags uint16, name, descriptor string, attrs ...[]byte) {
	b.fields = append(b.fields, b.member(flags, name, descriptor, attrs))
}

// Method adds a method.
func (b *Builder) Method(flags uint16, name, descriptor string, attrs ...[]byte) {
	b.methods = append(b.methods, b.member(flags, name, descriptor, attrs))
}

func (b *Builder) member(flags uint16, name, descriptor string, attrs [][]byte) []byte {
	n, d := b.Utf8(name), b.Utf8(descriptor)
	return Payload(func(w *binary.Writer) {
		w.U2(flags)
		w.U2(n)
		w.U2(d)
		writeAttrs(w, attrs)
	})
}

// ClassAttr adds class-level attributes.
func (b *Builder) ClassAttr(attrs ...[]byte) {
	b.attrs = append(b.attrs, attrs...)
}

// Bytes serializes the class file.
func (b *Builder) Bytes() []byte {
	w := binary.NewWriter()
	w.U4(classfile.Magic)
	w.U2(b.Minor)
	w.U2(b.Major)
	w.U2(b.next)
	w.WriteBytes(b.pool.Bytes())
	w.U2(b.AccessFlags)
	w.U2(b.This)
	w.U2(b.Super)
	w.U2(uint16(len(b.interfaces)))
	for _, i := range b.interfaces {
		w.U2(i)
	}
	for _, group := range [][][]byte{b.fields, b.methods} {
		w.U2(uint16(len(group)))
		for _, m := range group {
			w.WriteBytes(m)
		}
	}
	writeAttrs(w, b.attrs)
	return w.Bytes()
}

// EncodeModifiedUTF8 encodes s the way class files store strings.
func EncodeModifiedUTF8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u != 0 && u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
		default:
			out = append(out, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
		}
	}
	return out
}
