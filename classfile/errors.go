package classfile

import (
	stderrors "errors"

	"github.com/wippyai/jclass/errors"
)

// Decoding errors. Match with errors.Is; the concrete values returned by
// the decoder are *errors.Error carrying offset, path and detail.
var (
	ErrBufferUnderrun          = errors.Sentinel(errors.PhaseDecode, errors.KindBufferUnderrun)
	ErrUnknownConstantTag      = errors.Sentinel(errors.PhaseDecode, errors.KindUnknownConstantTag)
	ErrUnknownOpcode           = errors.Sentinel(errors.PhaseDecode, errors.KindUnknownOpcode)
	ErrInvalidFrameType        = errors.Sentinel(errors.PhaseDecode, errors.KindInvalidFrameType)
	ErrInvalidVerificationType = errors.Sentinel(errors.PhaseDecode, errors.KindInvalidVerificationType)
	ErrInvalidElementTag       = errors.Sentinel(errors.PhaseDecode, errors.KindInvalidElementTag)
	ErrInvalidTargetType       = errors.Sentinel(errors.PhaseDecode, errors.KindInvalidTargetType)
	ErrAttributeLengthMismatch = errors.Sentinel(errors.PhaseDecode, errors.KindAttributeLengthMismatch)
	ErrInvalidMagic            = errors.Sentinel(errors.PhaseDecode, errors.KindInvalidMagic)
	ErrInvalidData             = errors.Sentinel(errors.PhaseDecode, errors.KindInvalidData)
)

// Lookup errors returned by ConstantPool resolution.
var (
	ErrBadIndex       = errors.Sentinel(errors.PhaseResolve, errors.KindBadIndex)
	ErrTagMismatch    = errors.Sentinel(errors.PhaseResolve, errors.KindTagMismatch)
	ErrFixedOperand   = errors.Sentinel(errors.PhaseResolve, errors.KindFixedOperand)
	ErrNoLocalOperand = errors.Sentinel(errors.PhaseResolve, errors.KindInvalidInput)
	ErrNotFound       = errors.Sentinel(errors.PhaseResolve, errors.KindNotFound)
)

// IsFatal reports whether err leaves the byte stream unaligned. Only
// attribute length mismatches are recoverable: the enclosing cursor has
// already moved to the declared boundary.
func IsFatal(err error) bool {
	return err != nil && !stderrors.Is(err, ErrAttributeLengthMismatch)
}

// underrunOnly reports whether err is a cursor underrun that has not yet
// been attributed to an attribute boundary.
func underrunOnly(err error) bool {
	return stderrors.Is(err, ErrBufferUnderrun) && !stderrors.Is(err, ErrAttributeLengthMismatch)
}
