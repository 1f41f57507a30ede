package gandalf

import "fmt"

// The three language-level error categories. Every error a program can
// provoke is one of these; anything else escaping the interpreter is a defect
// in the interpreter itself and is reported as an internal error.

// A LexError reports a malformed token: a bad character, an unterminated
// string, or a malformed number. Line and Col are 1-based.
type LexError struct {
	Line, Col int
	Msg       string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("The spell backfires: %s (line %d, col %d)", e.Msg, e.Line, e.Col)
}

func lexErrorf(line, col int, format string, args ...interface{}) *LexError {
	return &LexError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// A ParseError reports an unexpected token or end of input. Line and Col are
// 1-based and locate the offending token.
type ParseError struct {
	Line, Col int
	Msg       string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("The rune is unclear: %s (line %d, col %d)", e.Msg, e.Line, e.Col)
}

func parseErrorf(line, col int, format string, args ...interface{}) *ParseError {
	return &ParseError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// A RuntimeError reports a failure during evaluation: an unknown name or
// function, an arity or type mismatch, division by zero, an index out of
// range, a forbidden capability, or an artifact or persona rule violation.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return "The spell backfires: " + e.Msg
}

func runtimeErrorf(format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// IsLanguageError reports whether err belongs to one of the language-level
// categories, as opposed to an internal failure of the interpreter.
func IsLanguageError(err error) bool {
	switch err.(type) {
	case *LexError, *ParseError, *RuntimeError:
		return true
	}
	return false
}

// internalError wraps a recovered panic so that a host defect surfaces as an
// ordinary error instead of crashing the embedding process.
type internalError struct {
	value interface{}
}

func (e *internalError) Error() string {
	return fmt.Sprintf("internal error: %v", e.value)
}
