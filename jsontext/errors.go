// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"strconv"
	"strings"
)

const errorPrefix = "jsontext: "

// Error matches errors returned by this package according to errors.Is.
const Error = jsonError("jsontext error")

type jsonError string

func (e jsonError) Error() string        { return string(e) }
func (e jsonError) Is(target error) bool { return e == target || target == Error }

type stringError struct {
	str string
}

func (e *stringError) Error() string        { return errorPrefix + e.str }
func (e *stringError) Is(target error) bool { return e == target || target == Error }

// Writer misuse.
var (
	ErrMissingKey       error = &stringError{"missing key for object member"}
	ErrMissingValue     error = &stringError{"missing value after object key"}
	ErrKeyOutsideObject error = &stringError{"key written outside of an object"}
	ErrMismatchScope    error = &stringError{"mismatching end token for object or array"}
	ErrRootClosed       error = &stringError{"root value already complete"}
	ErrEmptyLiteral     error = &stringError{"literal value is empty"}
)

// ErrDepthExceeded reports input nested deeper than the validator permits.
var ErrDepthExceeded error = &stringError{"exceeded max depth"}

// FormattingError reports a Writer call that is illegal in the current state.
// Nothing is written when a FormattingError is returned.
type FormattingError struct {
	// Op is the Writer method that was called.
	Op string
	// Depth is the number of open objects and arrays at the time of the call.
	Depth int

	Err error
}

func (e *FormattingError) Error() string {
	return errorPrefix + e.Op + " at depth " + strconv.Itoa(e.Depth) + ": " + strings.TrimPrefix(e.Err.Error(), errorPrefix)
}
func (e *FormattingError) Unwrap() error        { return e.Err }
func (e *FormattingError) Is(target error) bool { return e == target || target == Error }

// SyntaxError is a description of a JSON syntax error
// reported by ValidationResult.Error.
type SyntaxError struct {
	// Offset is the number of bytes consumed before the offending character.
	Offset int64
	// Line and Column locate the offending character, both one-indexed.
	Line, Column int

	Expected Type
	Actual   Type

	// Message describes the error without its position.
	Message string
}

func (e *SyntaxError) Error() string {
	return errorPrefix + "line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column) + ": " + e.Message
}
func (e *SyntaxError) Is(target error) bool { return e == target || target == Error }

func escapeCharacter(c byte) string {
	switch c {
	case '\'':
		return `'\''`
	case '"':
		return `'"'`
	default:
		return "'" + strings.TrimPrefix(strings.TrimSuffix(strconv.Quote(string([]byte{c})), `"`), `"`) + "'"
	}
}
