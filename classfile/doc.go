// Package classfile decodes the JVM class-file binary format.
//
// Parse turns one class-file image into a typed, read-only model: the
// constant pool, fields and methods, and the attribute tree including
// decoded bytecode, stack map frames, annotations and type annotations.
// Every record keeps the absolute offset it was decoded from so that
// renderers can re-walk the exact bytes with a binary.Cursor.
//
// # Parsing
//
//	data, _ := os.ReadFile("Foo.class")
//	cf, err := classfile.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name, _ := cf.ClassName()
//
// Attributes whose declared length does not match their contents fail
// the decode unless WithLenient(true) is given, in which case they are
// kept as UnknownAttribute with Err set:
//
//	cf, err := classfile.Parse(data, classfile.WithLenient(true))
//
// # Constant pool
//
// Pool entries are referenced by index throughout the model. Resolve
// checks both the index and the expected tag:
//
//	c, err := cf.ConstantPool.Resolve(idx, classfile.TagClass)
//	if errors.Is(err, classfile.ErrTagMismatch) { ... }
//
// # Visitors
//
// ConstantVisitor, AttributeVisitor, InstructionVisitor, FrameVisitor,
// ElementValueVisitor and TargetVisitor have one method per concrete
// record shape. Records dispatch to them through Accept, passing an
// explicit nesting depth.
//
// # Errors
//
// Errors are *errors.Error values from github.com/wippyai/jclass/errors
// and match the Err* sentinels with errors.Is. Only
// ErrAttributeLengthMismatch is recoverable; see IsFatal.
package classfile
