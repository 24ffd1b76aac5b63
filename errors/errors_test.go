package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindUnknownOpcode,
				Path:   []string{"methods[0]", "Code"},
				Offset: 17,
				Detail: "unknown opcode 0xcb",
			},
			contains: []string{"[decode]", "unknown_opcode", "methods[0].Code", "offset 17", "0xcb"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindBadIndex,
				Offset: -1,
			},
			contains: []string{"[resolve]", "bad_index"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindAttributeLengthMismatch,
				Offset: -1,
				Detail: "declared length 4",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[decode]", "attribute_length_mismatch", "declared length 4", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_OffsetOmittedWhenUnknown(t *testing.T) {
	err := New(PhaseResolve, KindTagMismatch).Build()
	if strings.Contains(err.Error(), "offset") {
		t.Errorf("unexpected offset in %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := BufferUnderrun(10, 4, 2)

	if !errors.Is(err, Sentinel(PhaseDecode, KindBufferUnderrun)) {
		t.Error("Is should match same phase and kind")
	}
	if errors.Is(err, Sentinel(PhaseResolve, KindBufferUnderrun)) {
		t.Error("Is should not match different phase")
	}
	if errors.Is(err, Sentinel(PhaseDecode, KindUnknownOpcode)) {
		t.Error("Is should not match different kind")
	}

	wrapped := LengthMismatch("Code", 3, 10, 12, err)
	if !errors.Is(wrapped, Sentinel(PhaseDecode, KindBufferUnderrun)) {
		t.Error("errors.Is should see the cause through a length mismatch")
	}
	if !errors.Is(wrapped, Sentinel(PhaseDecode, KindAttributeLengthMismatch)) {
		t.Error("errors.Is should match the outer kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindInvalidFrameType).
		Path("StackMapTable", "entries[3]").
		Offset(99).
		Value(200).
		Cause(cause).
		Detail("frame type %d is reserved", 200).
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindInvalidFrameType {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidFrameType)
	}
	if len(err.Path) != 2 || err.Path[1] != "entries[3]" {
		t.Errorf("Path = %v", err.Path)
	}
	if err.Offset != 99 {
		t.Errorf("Offset = %d, want 99", err.Offset)
	}
	if err.Value != 200 {
		t.Errorf("Value = %v, want 200", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "frame type 200 is reserved" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("BufferUnderrun", func(t *testing.T) {
		err := BufferUnderrun(5, 4, 1)
		if err.Kind != KindBufferUnderrun || err.Offset != 5 {
			t.Errorf("got %+v", err)
		}
		if !strings.Contains(err.Detail, "need 4 bytes, 1 remaining") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("UnknownDiscriminant", func(t *testing.T) {
		err := UnknownDiscriminant(KindUnknownConstantTag, 10, 2, "constant tag")
		if err.Kind != KindUnknownConstantTag || err.Value != 2 {
			t.Errorf("got %+v", err)
		}
	})

	t.Run("BadIndex", func(t *testing.T) {
		err := BadIndex(9, 5, "")
		if err.Phase != PhaseResolve || err.Kind != KindBadIndex {
			t.Errorf("got %+v", err)
		}
		if !strings.Contains(err.Detail, "count 5") {
			t.Errorf("Detail = %q", err.Detail)
		}
		err = BadIndex(4, 5, "padding slot")
		if !strings.Contains(err.Detail, "padding slot") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("TagMismatch", func(t *testing.T) {
		err := TagMismatch(3, "Utf8", "Class")
		if err.Kind != KindTagMismatch {
			t.Errorf("Kind = %v", err.Kind)
		}
		if err.Detail != "index 3 is Class, want Utf8" {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Config", func(t *testing.T) {
		err := Config("bad color", nil)
		if err.Phase != PhaseConfig {
			t.Errorf("Phase = %v", err.Phase)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseLoad, "file", "A.class")
		if err.Kind != KindNotFound || !strings.Contains(err.Detail, "A.class") {
			t.Errorf("got %+v", err)
		}
	})
}
