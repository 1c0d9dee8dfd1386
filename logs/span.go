package logs

// Span identifies one unit of host work: a REPL line or a source file run.
type Span string

type spanKey struct{}

var SpanKey = spanKey{}
