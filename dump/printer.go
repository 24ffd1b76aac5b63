package dump

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/errors"
)

var (
	_ classfile.ConstantVisitor     = (*Printer)(nil)
	_ classfile.AttributeVisitor    = (*Printer)(nil)
	_ classfile.InstructionVisitor  = (*Printer)(nil)
	_ classfile.FrameVisitor        = (*Printer)(nil)
	_ classfile.ElementValueVisitor = (*Printer)(nil)
	_ classfile.TargetVisitor       = (*Printer)(nil)
)

// Printer renders one class file. It is not safe for concurrent use;
// create one Printer per goroutine. The ClassFile itself may be shared.
type Printer struct {
	b    strings.Builder
	cf   *classfile.ClassFile
	pool *classfile.ConstantPool
	cur  *binary.Cursor
	err  error
	st   styles
	opts Options
}

// NewPrinter returns a Printer for cf.
func NewPrinter(cf *classfile.ClassFile, opts Options) *Printer {
	if opts.Indent < 0 {
		opts.Indent = 0
	}
	return &Printer{
		cf:   cf,
		pool: cf.ConstantPool,
		cur:  binary.NewCursor(cf.Bytes()),
		st:   newStyles(opts.Color),
		opts: opts,
	}
}

// Render returns the dump of cf as a string. On a render error the
// partial output is returned along with it.
func Render(cf *classfile.ClassFile, opts Options) (string, error) {
	var sb strings.Builder
	err := NewPrinter(cf, opts).Fprint(&sb)
	return sb.String(), err
}

// Fprint writes the dump to w. Fields whose bytes cannot be read are
// printed as '??'; the first such failure is returned once the whole
// dump has been written.
func (p *Printer) Fprint(w io.Writer) error {
	p.b.Reset()
	p.err = nil
	p.classFile()
	if _, err := io.WriteString(w, p.b.String()); err != nil {
		return errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "write dump")
	}
	return p.err
}

func (p *Printer) classFile() {
	cf := p.cf
	p.seek(0)
	p.field(0, "magic", 4, fmt.Sprintf("0x%08X", cf.Magic))
	p.field(0, "minor_version", 2, cf.MinorVersion)
	p.field(0, "major_version", 2, cf.MajorVersion)
	p.field(0, "constant_pool_count", 2, p.pool.Count())
	if p.opts.Pool {
		p.constantPool(0)
	}

	p.seek(p.pool.End())
	p.field(0, "access_flags", 2, flagString(classfile.FlagsClass, cf.AccessFlags))
	p.field(0, "this_class", 2, p.ref(cf.ThisClass))
	p.field(0, "super_class", 2, p.ref(cf.SuperClass))
	p.field(0, "interfaces_count", 2, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		p.field(0, fmt.Sprintf("interfaces[%d]", i), 2, p.ref(idx))
	}
	p.members(0, "fields", classfile.FlagsField, cf.Fields)
	p.members(0, "methods", classfile.FlagsMethod, cf.Methods)
	p.attributes(0, cf.Attributes)
}

func (p *Printer) members(depth int, label string, ctx classfile.FlagContext, ms []*classfile.Member) {
	p.field(depth, label+"_count", 2, len(ms))
	for i, m := range ms {
		p.open(depth, "%s[%d]", label, i)
		p.seek(m.Offset)
		p.field(depth+1, "access_flags", 2, flagString(ctx, m.AccessFlags))
		p.field(depth+1, "name_index", 2, p.ref(m.NameIndex))
		p.field(depth+1, "descriptor_index", 2, p.ref(m.DescriptorIndex))
		p.attributes(depth+1, m.Attributes)
		p.close(depth)
	}
}

// attributes prints attributes_count and one block per attribute. The
// cursor must be positioned at attributes_count; it is left just past the
// last attribute.
func (p *Printer) attributes(depth int, attrs []classfile.Attribute) {
	p.field(depth, "attributes_count", 2, len(attrs))
	for i, a := range attrs {
		h := a.Header()
		name := h.Name
		if name == "" {
			name = "?"
		}
		p.open(depth, "attributes[%d] %s", i, name)
		p.seek(h.Offset)
		p.field(depth+1, "attribute_name_index", 2, p.ref(h.NameIndex))
		p.field(depth+1, "attribute_length", 4, h.Length)
		a.Accept(p, depth+1)
		p.close(depth)
		p.seek(h.PayloadOffset() + int(h.Length))
	}
}

func (p *Printer) seek(offset int) {
	p.cur = binary.NewCursorAt(p.cf.Bytes(), offset)
}

func (p *Printer) read(n int) []byte {
	b, err := p.cur.NextN(n)
	if err != nil {
		p.fail(err)
		return nil
	}
	return b
}

func (p *Printer) fail(err error) {
	if p.err != nil {
		return
	}
	p.err = errors.New(errors.PhaseRender, errors.KindBufferUnderrun).
		Offset(p.cur.Position()).
		Cause(err).
		Detail("field bytes not available").
		Build()
}

func (p *Printer) indent(depth int) {
	p.b.WriteString(strings.Repeat(" ", depth*p.opts.Indent))
}

// field prints name='HEX' (meaning), consuming n bytes.
func (p *Printer) field(depth int, name string, n int, meaning any) {
	p.fieldBytes(depth, name, p.read(n), n, meaning)
}

func (p *Printer) fieldBytes(depth int, name string, b []byte, n int, meaning any) {
	h := "??"
	if b != nil || n == 0 {
		h = hexString(b)
	}
	p.indent(depth)
	p.b.WriteString(p.st.paint(p.st.name, name))
	p.b.WriteString("='")
	p.b.WriteString(p.st.paint(p.st.hex, h))
	p.b.WriteString("'")
	if s := fmt.Sprint(meaning); s != "" {
		p.b.WriteString(" (")
		p.b.WriteString(p.st.paint(p.st.meaning, s))
		p.b.WriteString(")")
	}
	p.b.WriteByte('\n')
}

func (p *Printer) open(depth int, format string, args ...any) {
	p.indent(depth)
	p.b.WriteString(p.st.paint(p.st.label, fmt.Sprintf(format, args...)))
	p.b.WriteString(" {\n")
}

func (p *Printer) close(depth int) {
	p.indent(depth)
	p.b.WriteString("}\n")
}

func (p *Printer) line(depth int, text string) {
	p.indent(depth)
	p.b.WriteString(text)
	p.b.WriteByte('\n')
}

// ref renders a constant pool index with the text it resolves to.
func (p *Printer) ref(index uint16) string {
	if index == 0 {
		return "#0"
	}
	return fmt.Sprintf("#%d: %s", index, p.pool.Describe(index))
}

func hexString(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

func flagString(ctx classfile.FlagContext, flags uint16) string {
	return strings.Join(classfile.FlagNames(ctx, flags), ",")
}
