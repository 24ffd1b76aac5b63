// Package export serializes a decoded class file summary as canonical CBOR.
package export

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/errors"
)

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("export: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Summary is the exported view of one class.
type Summary struct {
	Name        string   `cbor:"1,keyasint"`
	Super       string   `cbor:"2,keyasint,omitempty"`
	Version     string   `cbor:"3,keyasint"`
	AccessFlags uint16   `cbor:"4,keyasint"`
	Interfaces  []string `cbor:"5,keyasint,omitempty"`
	Fields      []Member `cbor:"6,keyasint,omitempty"`
	Methods     []Member `cbor:"7,keyasint,omitempty"`
	Attributes  []string `cbor:"8,keyasint,omitempty"`
	PoolCount   uint16   `cbor:"9,keyasint"`
}

// Member is a field or method.
type Member struct {
	Name        string   `cbor:"1,keyasint"`
	Descriptor  string   `cbor:"2,keyasint"`
	AccessFlags uint16   `cbor:"3,keyasint"`
	Attributes  []string `cbor:"4,keyasint,omitempty"`
	CodeLength  int      `cbor:"5,keyasint,omitempty"`
}

// Summarize resolves the names a Summary carries.
func Summarize(cf *classfile.ClassFile) (*Summary, error) {
	pool := cf.ConstantPool
	name, err := cf.ClassName()
	if err != nil {
		return nil, err
	}
	super, err := cf.SuperClassName()
	if err != nil {
		return nil, err
	}
	s := &Summary{
		Name:        name,
		Super:       super,
		Version:     cf.Version(),
		AccessFlags: cf.AccessFlags,
		Attributes:  attributeNames(cf.Attributes),
		PoolCount:   pool.Count(),
	}
	for _, idx := range cf.Interfaces {
		iface, err := pool.ClassName(idx)
		if err != nil {
			return nil, err
		}
		s.Interfaces = append(s.Interfaces, iface)
	}
	if s.Fields, err = members(pool, cf.Fields); err != nil {
		return nil, err
	}
	if s.Methods, err = members(pool, cf.Methods); err != nil {
		return nil, err
	}
	return s, nil
}

func members(pool *classfile.ConstantPool, ms []*classfile.Member) ([]Member, error) {
	out := make([]Member, 0, len(ms))
	for _, m := range ms {
		name, err := m.Name(pool)
		if err != nil {
			return nil, err
		}
		desc, err := m.Descriptor(pool)
		if err != nil {
			return nil, err
		}
		em := Member{
			Name:        name,
			Descriptor:  desc,
			AccessFlags: m.AccessFlags,
			Attributes:  attributeNames(m.Attributes),
		}
		if code := m.Code(); code != nil {
			em.CodeLength = len(code.Code)
		}
		out = append(out, em)
	}
	return out, nil
}

func attributeNames(attrs []classfile.Attribute) []string {
	if len(attrs) == 0 {
		return nil
	}
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Header().Name
	}
	return names
}

// Marshal encodes s canonically; equal summaries produce equal bytes.
func Marshal(s *Summary) ([]byte, error) {
	data, err := encMode.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "encode summary")
	}
	return data, nil
}

// MarshalAll encodes summaries as one canonical CBOR array.
func MarshalAll(ss []*Summary) ([]byte, error) {
	data, err := encMode.Marshal(ss)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "encode summaries")
	}
	return data, nil
}

// Unmarshal decodes bytes produced by Marshal.
func Unmarshal(data []byte) (*Summary, error) {
	var s Summary
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "decode summary")
	}
	return &s, nil
}

// Encode summarizes cf and marshals the result.
func Encode(cf *classfile.ClassFile) ([]byte, error) {
	s, err := Summarize(cf)
	if err != nil {
		return nil, err
	}
	return Marshal(s)
}
