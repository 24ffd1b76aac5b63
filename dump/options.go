package dump

// Options controls rendering.
type Options struct {
	// Indent is the number of spaces per nesting level.
	Indent int
	// Color enables ANSI styling of names, bytes and comments.
	Color bool
	// Code prints an instruction listing for Code attributes instead of
	// a single hex field.
	Code bool
	// Pool prints the constant pool entries.
	Pool bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Indent: 4,
		Code:   true,
		Pool:   true,
	}
}
