// Package diagnostic defines xmk's fatal-error taxonomy and the plumbing
// used to report it: every kind is fatal (the process exits 1 on the
// first one raised), but each carries enough context to produce a good
// one-line message plus, under -vv, the Go call site that raised it.
package diagnostic

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a fatal error. It is a taxonomy, not a set of recoverable
// states: every Kind terminates the process.
type Kind int

const (
	IO Kind = iota
	Lexical
	Parse
	Semantic
	ChildFailure
	PostBuildMissing
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io error"
	case Lexical:
		return "lexical error"
	case Parse:
		return "parse error"
	case Semantic:
		return "semantic error"
	case ChildFailure:
		return "child failure"
	case PostBuildMissing:
		return "post-build missing"
	default:
		return "error"
	}
}

// Error is the single fatal-error type xmk raises. Line is the build-file
// line number (1-based; 0 when not applicable, e.g. IO errors before any
// byte has been scanned). It is always wrapped with github.com/pkg/errors
// at the point it's constructed so that under -vv the implementation call
// site (file:line of the Go source) can be printed alongside the build-file
// line, resolving spec's line-number ambiguity by reporting both rather
// than guessing which one was intended.
type Error struct {
	Kind Kind
	Line int
	Msg  string
	Code int // exit/child code, meaningful only for ChildFailure
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[error] %s:%d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("[error] %s: %s", e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause so errors.Is/As keep working through
// github.com/pkg/errors' stack-capturing wrapper.
func (e *Error) Unwrap() error { return e.Err }

// Verbose renders the Go call-site chain captured by pkg/errors, for -vv.
func (e *Error) Verbose() string {
	if e.Err == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s\n%+v", e.Error(), e.Err)
}

func newf(kind Kind, line int, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{
		Kind: kind,
		Line: line,
		Msg:  msg,
		Err:  errors.WithStack(fmt.Errorf("%s", msg)),
	}
}

func IOErrorf(format string, args ...any) *Error {
	return newf(IO, 0, format, args...)
}

func LexicalErrorf(line int, format string, args ...any) *Error {
	return newf(Lexical, line, format, args...)
}

func ParseErrorf(line int, format string, args ...any) *Error {
	return newf(Parse, line, format, args...)
}

func SemanticErrorf(line int, format string, args ...any) *Error {
	return newf(Semantic, line, format, args...)
}

// ChildFailuref reports a nonzero (or unspawnable) child process. code is
// surfaced to the caller so main() can propagate it if desired; xmk itself
// always exits 1 on any fatal error per spec.
func ChildFailuref(code int, format string, args ...any) *Error {
	e := newf(ChildFailure, 0, format, args...)
	e.Code = code
	return e
}

func PostBuildMissingf(format string, args ...any) *Error {
	return newf(PostBuildMissing, 0, format, args...)
}

// Wrap annotates an arbitrary lower-level error (typically os.* I/O
// failures) as a fatal IO diagnostic, mirroring the errors.Wrap(err, "...")
// idiom used for file-path failures elsewhere in the corpus this tool is
// modeled on.
func Wrap(err error, context string) *Error {
	return &Error{
		Kind: IO,
		Msg:  context + ": " + err.Error(),
		Err:  errors.Wrap(err, context),
	}
}
