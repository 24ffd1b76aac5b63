// Package jclass decodes JVM class files and renders them as annotated
// hex dumps.
//
// # Architecture Overview
//
//	jclass/              Root package with batch decoding
//	├── classfile/       Class-file model, decoder and visitors
//	│   ├── binary/      Big-endian cursor and writer
//	│   └── classfiletest/ Builder for synthetic class images
//	├── dump/            Annotated hex dump printer
//	├── export/          Canonical CBOR summaries
//	├── config/          classdump.toml loading
//	├── errors/          Structured error types for debugging
//	└── cmd/classdump/   Command-line and interactive viewer
//
// # Quick Start
//
// Decode one class and print it:
//
//	cf, err := classfile.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := dump.Render(cf, dump.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(out)
//
// Decode many images concurrently:
//
//	classes, err := jclass.DecodeAll(ctx, images)
package jclass
