package gymlog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Error kinds reported by ErrorKind.
const (
	ErrKindSyntax = "syntax"
	ErrKindDate   = "date"
	ErrKindNumber = "number"
	ErrKindField  = "field"
)

// Field names a record field checked by the translator.
type Field string

const (
	FieldFile         Field = "file"
	FieldDate         Field = "date"
	FieldExerciseName Field = "exercise_name"
	FieldTarget       Field = "target"
	FieldSetGroup     Field = "set_group"
)

// Labels for what a syntax error expected, keyed by grammar symbol.
const (
	expDate    = "date (DD.MM.YYYY)"
	expName    = "exercise name"
	expTarget  = "target (SETS x MIN-MAX)"
	expInteger = "integer"
	expNewline = "newline"
	expEnd     = "end of input"
	expUTF8    = "UTF-8 text"
)

var expectedLabels = map[string]string{
	"Date":         expDate,
	"<date>":       expDate,
	"ExerciseName": expName,
	"Name":         expName,
	"<name>":       expName,
	"Target":       expTarget,
	"Integer":      expInteger,
	"Int":          expInteger,
	"<int>":        expInteger,
	"Newline":      expNewline,
	"<newline>":    expNewline,
	"Record":       expDate,
}

// SyntaxError means the input does not match the log grammar.
type SyntaxError struct {
	Line     int
	Column   int
	Expected []string
	Found    string
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("syntax error at line %d, column %d: unexpected %s", e.Line, e.Column, e.Found)
	}
	return fmt.Sprintf("syntax error at line %d, column %d: expected %s, found %s",
		e.Line, e.Column, joinExpected(e.Expected), e.Found)
}

// newSyntaxError converts a participle parse or lexer error.
func newSyntaxError(err error) error {
	var perr participle.Error
	if !errors.As(err, &perr) {
		return err
	}
	pos := perr.Position()
	se := &SyntaxError{Line: pos.Line, Column: pos.Column, Found: perr.Message()}

	var unexpected *participle.UnexpectedTokenError
	if errors.As(err, &unexpected) {
		se.Found = describeToken(unexpected.Unexpected)
	}
	if _, exp, ok := strings.Cut(perr.Message(), "(expected "); ok {
		exp = strings.TrimSuffix(exp, ")")
		if label, ok := expectedLabels[exp]; ok {
			exp = label
		}
		se.Expected = []string{exp}
	}
	return se
}

func describeToken(tok lexer.Token) string {
	switch {
	case tok.EOF():
		return expEnd
	case strings.HasPrefix(tok.Value, "\n"):
		return expNewline
	}
	return strconv.Quote(tok.Value)
}

// DateError means a date has the DD.MM.YYYY shape but is not a real
// calendar date.
type DateError struct {
	Text   string
	Line   int
	Column int
	Err    error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q at line %d, column %d: %v", e.Text, e.Line, e.Column, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

// NumberError means a digit sequence does not fit an unsigned 32-bit integer.
type NumberError struct {
	Text   string
	Line   int
	Column int
	Err    error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("invalid number %q at line %d, column %d: %v", e.Text, e.Line, e.Column, e.Err)
}

func (e *NumberError) Unwrap() error { return e.Err }

// FieldError means a required record field is absent or empty after the
// tree walk.
type FieldError struct {
	Field  Field
	Line   int
	Column int
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("missing or malformed %s at line %d, column %d", e.Field, e.Line, e.Column)
}

// ErrorKind classifies err as one of the ErrKind constants. It returns ""
// for errors that did not come from parsing.
func ErrorKind(err error) string {
	var (
		syntaxErr *SyntaxError
		dateErr   *DateError
		numErr    *NumberError
		fieldErr  *FieldError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return ErrKindSyntax
	case errors.As(err, &dateErr):
		return ErrKindDate
	case errors.As(err, &numErr):
		return ErrKindNumber
	case errors.As(err, &fieldErr):
		return ErrKindField
	}
	return ""
}

// Position returns the source position carried by a parse error.
func Position(err error) (line, column int, ok bool) {
	var (
		syntaxErr *SyntaxError
		dateErr   *DateError
		numErr    *NumberError
		fieldErr  *FieldError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return syntaxErr.Line, syntaxErr.Column, true
	case errors.As(err, &dateErr):
		return dateErr.Line, dateErr.Column, true
	case errors.As(err, &numErr):
		return numErr.Line, numErr.Column, true
	case errors.As(err, &fieldErr):
		return fieldErr.Line, fieldErr.Column, true
	}
	return 0, 0, false
}

func joinExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return "nothing"
	case 1:
		return expected[0]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}
