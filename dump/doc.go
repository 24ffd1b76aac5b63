// Package dump renders a decoded class file as an annotated hex dump.
//
// Every field is printed as a name='HEX' (meaning) line, where HEX is
// the exact encoding read back from the class-file bytes and meaning is
// the decoded value, resolved through the constant pool where that
// helps. Structured records open a label[i] { ... } block indented by
// depth.
//
// # Usage
//
//	cf, err := classfile.Parse(data)
//	if err != nil {
//	    return err
//	}
//	out, err := dump.Render(cf, dump.DefaultOptions())
//
// The Printer implements every visitor interface of the classfile
// package. Each visited record carries its absolute offset; the printer
// positions a cursor there and consumes the record's bytes in lockstep
// with the printed fields, so a field whose bytes cannot be read is
// reported as a render error rather than silently skipped.
package dump
