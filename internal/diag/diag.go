// Package diag defines the error taxonomy shared by every stage of the
// CPL-to-SAT pipeline: tokenizer, parser, macro expander, AST lowerer,
// normal-form transforms, and the CDCL engine. Each category corresponds
// to a failure mode a caller may want to distinguish with errors.As;
// all of them wrap their cause with a stack trace via pkg/errors so a
// panic-free caller still gets a useful trace at the point of failure.
package diag

import (
	"fmt"

	"github.com/pkg/errors"
)

// Position is a source line/column, 1-indexed, used for tokenizer and
// parser diagnostics. A zero Position means "no source location".
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	if p.Line == 0 && p.Col == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// LexicalError reports a tokenizer failure: an empty name or an
// unterminated construct.
type LexicalError struct {
	Pos Position
	Msg string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %s: %s", e.Pos, e.Msg)
}

// NewLexicalError builds a stack-annotated LexicalError.
func NewLexicalError(pos Position, format string, args ...interface{}) error {
	return errors.WithStack(&LexicalError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// ParseError reports a parser failure: an empty tuple, unbalanced
// parentheses, or an unexpected top-level atom.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Msg)
}

// NewParseError builds a stack-annotated ParseError.
func NewParseError(pos Position, format string, args ...interface{}) error {
	return errors.WithStack(&ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// MacroError reports a failure in macro definition or expansion:
// duplicate definitions, arity mismatches, references to unknown
// macros, or substituting a tuple into a compound name.
type MacroError struct {
	Macro string
	Msg   string
}

func (e *MacroError) Error() string {
	if e.Macro == "" {
		return fmt.Sprintf("macro error: %s", e.Msg)
	}
	return fmt.Sprintf("macro error in %q: %s", e.Macro, e.Msg)
}

// NewMacroError builds a stack-annotated MacroError.
func NewMacroError(macro, format string, args ...interface{}) error {
	return errors.WithStack(&MacroError{Macro: macro, Msg: fmt.Sprintf(format, args...)})
}

// ShapeError reports a failure lowering or evaluating an expression:
// operator arity mismatches, a number used where a Boolean is
// required, or an unresolved (? v) assignment lookup.
type ShapeError struct {
	Msg string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape error: %s", e.Msg)
}

// NewShapeError builds a stack-annotated ShapeError.
func NewShapeError(format string, args ...interface{}) error {
	return errors.WithStack(&ShapeError{Msg: fmt.Sprintf(format, args...)})
}

// DomainError reports an attempt to build a CDCL input from a clause
// list that is not a 3-CNF (a clause with zero, or more than three,
// literals).
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s", e.Msg)
}

// NewDomainError builds a stack-annotated DomainError.
func NewDomainError(format string, args ...interface{}) error {
	return errors.WithStack(&DomainError{Msg: fmt.Sprintf(format, args...)})
}

// SolverInvariantError reports an assertion failure inside the CDCL
// engine: a failed trail-integrity check (run only when an Engine is
// constructed with checks enabled), or conflict analysis finding no
// decision to backjump to (checked on every run).
type SolverInvariantError struct {
	Msg string
}

func (e *SolverInvariantError) Error() string {
	return fmt.Sprintf("solver invariant violated: %s", e.Msg)
}

// NewSolverInvariantError builds a stack-annotated SolverInvariantError.
func NewSolverInvariantError(format string, args ...interface{}) error {
	return errors.WithStack(&SolverInvariantError{Msg: fmt.Sprintf(format, args...)})
}
