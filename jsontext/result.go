// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the grammar a Validator enforces.
type Mode uint8

const (
	// ModeNone performs no validation; every input is accepted.
	ModeNone Mode = iota
	// ModeSimple accepts the simplified dialect: opaque unquoted scalars,
	// optional commas, '=' separators, and an implicit root object.
	ModeSimple
	// ModeStandard validates JSON with the extensions of bare NaN, Infinity,
	// and -Infinity literals (any case) and '=' as a member separator.
	ModeStandard
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeSimple:
		return "simple"
	case ModeStandard:
		return "standard"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode parses the name of a mode as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "none":
		return ModeNone, nil
	case "simple":
		return ModeSimple, nil
	case "standard", "":
		return ModeStandard, nil
	}
	return 0, &stringError{"unknown validation mode " + strconv.Quote(s)}
}

// ValidationResult describes where a validation pass stopped and why.
//
// A pass that consumed its entire input reports Actual == EOF.
// Whether that is a success depends on whether EOF was expected:
// a complete document expects nothing but EOF,
// while a document cut mid-structure is Incomplete.
type ValidationResult struct {
	Mode Mode

	// Expected is the set of tokens that were acceptable at the stop position.
	Expected Type
	// Actual is the category of the token found at the stop position.
	Actual Type
	// Char is the offending character, or 0 at the end of input.
	Char byte

	Line   int   // one-indexed
	Column int   // one-indexed, in bytes
	Offset int64 // bytes consumed across all chunks before the stop position

	// Err is set for failures that are not a token mismatch,
	// such as ErrDepthExceeded.
	Err error
}

// IsValid reports whether the actual token was among the expected ones.
func (r ValidationResult) IsValid() bool {
	return r.Err == nil && r.Expected.IsExpected(r.Actual)
}

// Incomplete reports whether the input ended before the document did.
// More data may turn an incomplete result into a valid one.
func (r ValidationResult) Incomplete() bool {
	return r.Err == nil && r.Actual == EOF && !r.IsValid()
}

// Error returns nil for a valid result and
// a *SyntaxError describing the failure otherwise.
func (r ValidationResult) Error() error {
	if r.IsValid() {
		return nil
	}
	e := &SyntaxError{
		Offset:   r.Offset,
		Line:     r.Line,
		Column:   r.Column,
		Expected: r.Expected,
		Actual:   r.Actual,
	}
	switch {
	case r.Err != nil:
		e.Message = strings.TrimPrefix(r.Err.Error(), errorPrefix)
	case r.Actual == EOF:
		e.Message = "unexpected end of input, expected " + r.Expected.String()
	case r.Actual == Undefined:
		e.Message = "invalid character " + escapeCharacter(r.Char) + ", expected " + r.Expected.String()
	default:
		e.Message = "unexpected " + r.Actual.String() + " " + escapeCharacter(r.Char) + ", expected " + r.Expected.String()
	}
	return e
}

func (r ValidationResult) String() string {
	state := "invalid"
	switch {
	case r.IsValid():
		state = "valid"
	case r.Incomplete():
		state = "incomplete"
	}
	return fmt.Sprintf("%s %s at %d:%d (offset %d): expected %v, actual %v",
		r.Mode, state, r.Line, r.Column, r.Offset, r.Expected, r.Actual)
}
