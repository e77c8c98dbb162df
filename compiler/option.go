package compiler

// Option configures a Compile call.
type Option func(*parser)

// WithEscape overrides the pattern's escape byte. The engine defaults to
// '\\', but an embedding application working with a format that already
// uses backslash for something else can pick a different byte (e.g. '%').
func WithEscape(b byte) Option {
	return func(p *parser) { p.escape = b }
}
