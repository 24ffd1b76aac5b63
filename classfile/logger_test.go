package classfile_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/classfile/classfiletest"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	classfile.SetLogger(zap.New(core))
	t.Cleanup(func() { classfile.SetLogger(zap.NewNop()) })
	return logs
}

func TestLenientRecoveryLogsWarning(t *testing.T) {
	logs := observe(t)
	parse(t, lengthMismatchClass(), classfile.WithLenient(true))

	warned := logs.FilterLevelExact(zapcore.WarnLevel).FilterMessage("attribute length mismatch, keeping payload")
	if warned.Len() != 2 {
		t.Errorf("got %d warnings, want one per recovered attribute", warned.Len())
	}
}

func TestUnknownAttributeLogsDebug(t *testing.T) {
	logs := observe(t)
	b := classfiletest.New("pkg/Vendor")
	b.ClassAttr(b.Attr("VendorData", []byte{1, 2, 3}))
	parse(t, b)

	if logs.FilterMessage("unknown attribute").Len() != 1 {
		t.Errorf("unknown attribute not logged: %v", logs.All())
	}
}
