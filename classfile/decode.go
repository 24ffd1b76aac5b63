package classfile

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/errors"
)

// ClassFile is the decoded form of one class-file image. It is built in
// a single pass by Parse and is not modified afterwards.
type ClassFile struct {
	ConstantPool *ConstantPool
	Interfaces   []uint16
	Fields       []*Member
	Methods      []*Member
	Attributes   []Attribute
	data         []byte
	Magic        uint32
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16 // 0 for java/lang/Object
}

// Member is a field or a method.
type Member struct {
	Attributes      []Attribute
	Offset          int
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
}

// Options controls decoding.
type Options struct {
	// Lenient keeps decoding after an attribute whose declared length does
	// not match its contents, replacing it with an UnknownAttribute.
	Lenient bool
}

// Option configures Options.
type Option func(*Options)

// WithLenient sets Options.Lenient.
func WithLenient(lenient bool) Option {
	return func(o *Options) { o.Lenient = lenient }
}

// Parse decodes a complete class-file image. The returned model keeps
// references into data, which must not be modified afterwards.
func Parse(data []byte, opts ...Option) (*ClassFile, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	c := binary.NewCursor(data)
	cf := &ClassFile{data: data}

	var err error
	if cf.Magic, err = c.U4(); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if cf.Magic != Magic {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidMagic).
			Offset(0).
			Value(cf.Magic).
			Detail("magic 0x%08X, want 0x%08X", cf.Magic, Magic).
			Build()
	}
	if cf.MinorVersion, err = c.U2(); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if cf.MajorVersion, err = c.U2(); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	if cf.ConstantPool, err = decodeConstantPool(c); err != nil {
		return nil, err
	}

	d := &decoder{pool: cf.ConstantPool, lenient: o.Lenient, log: Logger()}

	if cf.AccessFlags, err = c.U2(); err != nil {
		return nil, fmt.Errorf("access_flags: %w", err)
	}
	if cf.ThisClass, err = c.U2(); err != nil {
		return nil, fmt.Errorf("this_class: %w", err)
	}
	if cf.SuperClass, err = c.U2(); err != nil {
		return nil, fmt.Errorf("super_class: %w", err)
	}
	if cf.Interfaces, err = readIndexTable(c); err != nil {
		return nil, fmt.Errorf("interfaces: %w", err)
	}
	if cf.Fields, err = d.members(c, "fields"); err != nil {
		return nil, err
	}
	if cf.Methods, err = d.members(c, "methods"); err != nil {
		return nil, err
	}
	if cf.Attributes, err = d.attributes(c); err != nil {
		return nil, fmt.Errorf("class: %w", err)
	}

	if c.Remaining() != 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Offset(c.Position()).
			Detail("%d trailing bytes after class attributes", c.Remaining()).
			Build()
	}

	d.log.Debug("decoded class file",
		zap.Uint16("major", cf.MajorVersion),
		zap.Uint16("minor", cf.MinorVersion),
		zap.Uint16("pool_count", cf.ConstantPool.Count()),
		zap.Int("fields", len(cf.Fields)),
		zap.Int("methods", len(cf.Methods)))
	return cf, nil
}

func (d *decoder) members(c *binary.Cursor, what string) ([]*Member, error) {
	n, err := c.U2()
	if err != nil {
		return nil, fmt.Errorf("%s_count: %w", what, err)
	}
	out := make([]*Member, n)
	for i := range out {
		m := &Member{Offset: c.Position()}
		if m.AccessFlags, err = c.U2(); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", what, i, err)
		}
		if m.NameIndex, err = c.U2(); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", what, i, err)
		}
		if m.DescriptorIndex, err = c.U2(); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", what, i, err)
		}
		if m.Attributes, err = d.attributes(c); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", what, i, err)
		}
		out[i] = m
	}
	return out, nil
}

// Bytes returns the image the class file was decoded from.
func (cf *ClassFile) Bytes() []byte {
	return cf.data
}

// Version returns the class-file version as major.minor.
func (cf *ClassFile) Version() string {
	return fmt.Sprintf("%d.%d", cf.MajorVersion, cf.MinorVersion)
}

// ClassName returns the internal name of this class.
func (cf *ClassFile) ClassName() (string, error) {
	return cf.ConstantPool.ClassName(cf.ThisClass)
}

// SuperClassName returns the internal name of the superclass, or "" for
// java/lang/Object.
func (cf *ClassFile) SuperClassName() (string, error) {
	if cf.SuperClass == 0 {
		return "", nil
	}
	return cf.ConstantPool.ClassName(cf.SuperClass)
}

// FindMethod returns the method with the given name and descriptor. An
// empty descriptor matches the first method with that name.
func (cf *ClassFile) FindMethod(name, descriptor string) (*Member, error) {
	for _, m := range cf.Methods {
		n, err := cf.ConstantPool.Utf8(m.NameIndex)
		if err != nil || n != name {
			continue
		}
		if descriptor == "" {
			return m, nil
		}
		if desc, err := cf.ConstantPool.Utf8(m.DescriptorIndex); err == nil && desc == descriptor {
			return m, nil
		}
	}
	return nil, errors.NotFound(errors.PhaseResolve, "method", name+descriptor)
}

// Name resolves the member name.
func (m *Member) Name(pool *ConstantPool) (string, error) {
	return pool.Utf8(m.NameIndex)
}

// Descriptor resolves the member descriptor.
func (m *Member) Descriptor(pool *ConstantPool) (string, error) {
	return pool.Utf8(m.DescriptorIndex)
}

// Code returns the member's Code attribute, or nil.
func (m *Member) Code() *CodeAttribute {
	if a, ok := FindAttribute(m.Attributes, AttrCode).(*CodeAttribute); ok {
		return a
	}
	return nil
}
