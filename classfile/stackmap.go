package classfile

import (
	"fmt"

	"github.com/wippyai/jclass/classfile/binary"
	"github.com/wippyai/jclass/errors"
)

// Verification type tags.
const (
	ItemTop               uint8 = 0
	ItemInteger           uint8 = 1
	ItemFloat             uint8 = 2
	ItemDouble            uint8 = 3
	ItemLong              uint8 = 4
	ItemNull              uint8 = 5
	ItemUninitializedThis uint8 = 6
	ItemObject            uint8 = 7
	ItemUninitialized     uint8 = 8
)

var itemNames = [...]string{
	ItemTop:               "top",
	ItemInteger:           "integer",
	ItemFloat:             "float",
	ItemDouble:            "double",
	ItemLong:              "long",
	ItemNull:              "null",
	ItemUninitializedThis: "uninitialized_this",
	ItemObject:            "object",
	ItemUninitialized:     "uninitialized",
}

// VerificationType is one local or stack entry of a frame. Index is the
// Class entry of an object item or the code offset of the new
// instruction of an uninitialized item; it is zero otherwise.
type VerificationType struct {
	Offset int
	Index  uint16
	Tag    uint8
}

func (v VerificationType) String() string {
	if int(v.Tag) < len(itemNames) {
		return itemNames[v.Tag]
	}
	return fmt.Sprintf("item(%d)", v.Tag)
}

// Size returns the number of encoded bytes.
func (v VerificationType) Size() int {
	if v.Tag == ItemObject || v.Tag == ItemUninitialized {
		return 3
	}
	return 1
}

// StackMapFrame is implemented by the seven frame types.
type StackMapFrame interface {
	FrameType() uint8
	// Offset is the absolute offset of the frame_type byte.
	Offset() int
	OffsetDelta() uint16
	Accept(v FrameVisitor, depth int)
}

type frameBase struct {
	offset    int
	delta     uint16
	frameType uint8
}

func (f *frameBase) FrameType() uint8    { return f.frameType }
func (f *frameBase) Offset() int         { return f.offset }
func (f *frameBase) OffsetDelta() uint16 { return f.delta }

// SameFrame has frame_type 0-63, which is also its offset delta.
type SameFrame struct{ frameBase }

// SameLocals1StackItemFrame has frame_type 64-127; the delta is type-64.
type SameLocals1StackItemFrame struct {
	frameBase
	Stack VerificationType
}

// SameLocals1StackItemFrameExtended has frame_type 247.
type SameLocals1StackItemFrameExtended struct {
	frameBase
	Stack VerificationType
}

// ChopFrame has frame_type 248-250 and removes 251-type locals.
type ChopFrame struct{ frameBase }

// Chopped returns how many trailing locals the frame removes.
func (f *ChopFrame) Chopped() int { return 251 - int(f.frameType) }

// SameFrameExtended has frame_type 251.
type SameFrameExtended struct{ frameBase }

// AppendFrame has frame_type 252-254 and adds type-251 locals.
type AppendFrame struct {
	frameBase
	Locals []VerificationType
}

// FullFrame has frame_type 255.
type FullFrame struct {
	frameBase
	Locals []VerificationType
	Stack  []VerificationType
}

func (f *SameFrame) Accept(v FrameVisitor, depth int) { v.VisitSameFrame(f, depth) }
func (f *SameLocals1StackItemFrame) Accept(v FrameVisitor, depth int) {
	v.VisitSameLocals1StackItemFrame(f, depth)
}
func (f *SameLocals1StackItemFrameExtended) Accept(v FrameVisitor, depth int) {
	v.VisitSameLocals1StackItemFrameExtended(f, depth)
}
func (f *ChopFrame) Accept(v FrameVisitor, depth int)         { v.VisitChopFrame(f, depth) }
func (f *SameFrameExtended) Accept(v FrameVisitor, depth int) { v.VisitSameFrameExtended(f, depth) }
func (f *AppendFrame) Accept(v FrameVisitor, depth int)       { v.VisitAppendFrame(f, depth) }
func (f *FullFrame) Accept(v FrameVisitor, depth int)         { v.VisitFullFrame(f, depth) }

// FrameOffsets turns a sequence of offset deltas into absolute bytecode
// offsets. The first frame applies to delta, every later one to
// previous + delta + 1.
func FrameOffsets(deltas []uint16) []int {
	out := make([]int, len(deltas))
	prev := -1
	for i, d := range deltas {
		prev = prev + int(d) + 1
		out[i] = prev
	}
	return out
}

func decodeFrames(c *binary.Cursor) ([]StackMapFrame, error) {
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	frames := make([]StackMapFrame, 0, n)
	for i := 0; i < int(n); i++ {
		f, err := decodeFrame(c)
		if err != nil {
			return nil, fmt.Errorf("stack_map_frame[%d]: %w", i, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func decodeFrame(c *binary.Cursor) (StackMapFrame, error) {
	start := c.Position()
	ft, err := c.U1()
	if err != nil {
		return nil, err
	}
	base := frameBase{offset: start, frameType: ft}

	switch {
	case ft <= 63:
		base.delta = uint16(ft)
		return &SameFrame{base}, nil

	case ft <= 127:
		base.delta = uint16(ft - 64)
		vt, err := decodeVerificationType(c)
		if err != nil {
			return nil, err
		}
		return &SameLocals1StackItemFrame{frameBase: base, Stack: vt}, nil

	case ft <= 246:
		return nil, errors.UnknownDiscriminant(errors.KindInvalidFrameType, start, ft, "stack map frame type")
	}

	if base.delta, err = c.U2(); err != nil {
		return nil, err
	}

	switch {
	case ft == 247:
		vt, err := decodeVerificationType(c)
		if err != nil {
			return nil, err
		}
		return &SameLocals1StackItemFrameExtended{frameBase: base, Stack: vt}, nil

	case ft <= 250:
		return &ChopFrame{base}, nil

	case ft == 251:
		return &SameFrameExtended{base}, nil

	case ft <= 254:
		locals, err := decodeVerificationTypes(c, int(ft)-251)
		if err != nil {
			return nil, err
		}
		return &AppendFrame{frameBase: base, Locals: locals}, nil
	}

	f := &FullFrame{frameBase: base}
	n, err := c.U2()
	if err != nil {
		return nil, err
	}
	if f.Locals, err = decodeVerificationTypes(c, int(n)); err != nil {
		return nil, err
	}
	if n, err = c.U2(); err != nil {
		return nil, err
	}
	if f.Stack, err = decodeVerificationTypes(c, int(n)); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeVerificationTypes(c *binary.Cursor, n int) ([]VerificationType, error) {
	out := make([]VerificationType, n)
	for i := range out {
		vt, err := decodeVerificationType(c)
		if err != nil {
			return nil, err
		}
		out[i] = vt
	}
	return out, nil
}

func decodeVerificationType(c *binary.Cursor) (VerificationType, error) {
	vt := VerificationType{Offset: c.Position()}
	var err error
	if vt.Tag, err = c.U1(); err != nil {
		return vt, err
	}
	switch {
	case vt.Tag == ItemObject || vt.Tag == ItemUninitialized:
		vt.Index, err = c.U2()
		return vt, err
	case vt.Tag > ItemUninitialized:
		return vt, errors.UnknownDiscriminant(errors.KindInvalidVerificationType, vt.Offset, vt.Tag, "verification type tag")
	}
	return vt, nil
}
