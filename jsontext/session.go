// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import "github.com/go-json-experiment/jsonstream/internal/jsonwire"

// DefaultMaxDepth is the default limit on nested objects and arrays.
const DefaultMaxDepth = 10000

// implicitObject marks the braceless root object of the simplified dialect,
// which is closed by the end of input rather than by '}'.
const implicitObject = BeginObject | EOF

// Session is the resumable state of a validation pass over one stream.
//
// Scan may be called repeatedly with consecutive chunks of the stream;
// a token cut by a chunk boundary is recorded as a partial token
// and resumed by the next call, so the outcome is independent of
// how the stream is split.
//
// A Session must not be scanned by multiple goroutines at once.
type Session struct {
	mode     Mode
	stack    TypeStack
	depth    int // open objects and arrays
	maxDepth int // zero means unlimited

	expected Type
	actual   Type

	offset    int64 // bytes consumed by previous calls
	line      int
	lineStart int64 // offset of the first byte of the current line

	// partial and partialState record a token left open at the end of
	// the previous chunk; partial is Undefined between tokens.
	partial      Type
	partialState uint32

	failed  bool
	failure ValidationResult
}

// NewSession returns a session validating the given mode.
func NewSession(mode Mode, opts ...ValidatorOption) *Session {
	s := new(Session)
	s.init(mode, opts...)
	return s
}

func (s *Session) init(mode Mode, opts ...ValidatorOption) {
	if mode > ModeStandard {
		panic("jsontext: invalid validation mode " + mode.String())
	}
	cfg := validatorConfig{maxDepth: DefaultMaxDepth, capacity: DefaultStackCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cap(s.stack.items) < cfg.capacity {
		s.stack = *NewTypeStack(cfg.capacity)
	}
	s.mode = mode
	s.maxDepth = cfg.maxDepth
	s.Reset()
}

// Mode reports the grammar the session validates.
func (s *Session) Mode() Mode { return s.mode }

// Depth reports the number of currently open objects and arrays.
func (s *Session) Depth() int { return s.depth }

// Reset discards all progress, including any partial token or failure,
// so that the session may validate a new stream.
func (s *Session) Reset() {
	s.stack.Reset()
	s.depth = 0
	s.expected = Value
	s.actual = Undefined
	s.offset = 0
	s.line = 1
	s.lineStart = 0
	s.partial = Undefined
	s.partialState = 0
	s.failed = false
	s.failure = ValidationResult{}
}

type step uint8

const (
	stepMore step = iota // the input ended within the token
	stepDone             // the token is complete
	stepNext             // the token continues as a different kind
	stepFail             // the character at the returned index cannot continue the token
)

// Scan validates b as the continuation of everything scanned so far.
// It never panics on malformed input; the returned result reports
// where scanning stopped and which tokens were acceptable there.
func (s *Session) Scan(b []byte) ValidationResult {
	switch {
	case s.failed:
		return s.failure
	case s.mode == ModeNone:
		s.offset += int64(len(b))
		return ValidationResult{Mode: ModeNone, Expected: EOF, Actual: EOF, Line: 1, Column: int(s.offset) + 1, Offset: s.offset}
	}

	var i int
	for {
		for s.partial != Undefined {
			var st step
			switch s.partial {
			case String:
				i, st = s.scanString(b, i)
			case Number:
				i, st = s.scanNumber(b, i)
			default:
				i, st = s.scanLiteral(b, i)
			}
			switch st {
			case stepMore:
				return s.endOfInput(b)
			case stepFail:
				return s.fail(b, i, Undefined, s.expectedPartial())
			case stepDone:
				t := s.partial
				s.partial, s.partialState = Undefined, 0
				if t == String {
					s.endString()
				} else {
					s.endValue()
				}
			}
		}

		for i < len(b) && jsonwire.IsSpace(b[i]) {
			if b[i] == '\n' {
				s.newline(i)
			}
			i++
		}
		if i >= len(b) {
			return s.endOfInput(b)
		}

		c := b[i]
		t := Classify(c)
		if s.mode == ModeSimple {
			t = classifySimple(c)
		}
		if !s.expected.IsExpected(t) {
			return s.fail(b, i, t, s.expected)
		}
		s.actual = t

		switch t {
		case BeginObject, BeginArray:
			if s.maxDepth > 0 && s.depth >= s.maxDepth {
				r := s.fail(b, i, t, s.expected)
				r.Err = ErrDepthExceeded
				s.failure = r
				return r
			}
			s.depth++
			s.stack.Push(t)
			if t == BeginObject {
				s.expected = String | EndObject
			} else {
				s.expected = Value | EndArray
			}
			i++
		case EndObject, EndArray:
			open := BeginObject
			if t == EndArray {
				open = BeginArray
			}
			if s.stack.Peek() != open {
				return s.fail(b, i, t, s.expected&^t)
			}
			s.stack.Pop()
			s.depth--
			s.endValue()
			i++
		case MemberSeparator:
			if s.stack.Len() == 0 {
				// A key at the root opens the implicit object of the simplified dialect.
				s.stack.Push(implicitObject)
				s.stack.Push(String)
			}
			s.expected = Value
			i++
		case ValueSeparator:
			if isObject(s.stack.Peek()) {
				s.expected = String
			} else {
				s.expected = Value
			}
			i++
		case String:
			s.partial = String
			if c == '"' {
				s.partialState = strPlain
				i++
			} else {
				s.partialState = strBare
			}
		case Number, Negative:
			s.partial, s.partialState = Number, numStart
		default:
			s.partial = t
			s.partialState = uint32(literalSet(t)) << 8
		}
	}
}

func isObject(t Type) bool {
	return t == BeginObject || t == implicitObject
}

// endString updates the expected set after a string-like token,
// which is an object key when it appears directly within an object.
func (s *Session) endString() {
	switch top := s.stack.Peek(); {
	case isObject(top):
		s.stack.Push(String)
		s.expected = MemberSeparator
	case top == Undefined && s.mode == ModeSimple:
		// Either a root scalar or the first key of the implicit object.
		s.expected = EOF | MemberSeparator
	default:
		s.endValue()
	}
}

// endValue updates the expected set after a complete value,
// closing the object member it belonged to, if any.
func (s *Session) endValue() {
	if s.stack.Peek() == String {
		s.stack.Pop()
	}
	s.expected = s.afterValue(s.stack.Peek())
}

// afterValue is the expected set after a value within the given scope.
func (s *Session) afterValue(top Type) Type {
	simple := s.mode == ModeSimple
	switch top {
	case BeginObject:
		if simple {
			return ValueSeparator | EndObject | String
		}
		return ValueSeparator | EndObject
	case BeginArray:
		if simple {
			return ValueSeparator | EndArray | Value
		}
		return ValueSeparator | EndArray
	case implicitObject:
		return ValueSeparator | String | EOF
	default:
		return EOF
	}
}

// expectedPartial is the expected set while a token is open.
// A token that may legally end where it stands also admits
// whatever may follow it.
func (s *Session) expectedPartial() Type {
	switch s.partial {
	case String:
		if s.partialState != strBare {
			return String
		}
		switch top := s.stack.Peek(); {
		case isObject(top):
			return String | MemberSeparator
		case top == Undefined:
			return String | EOF | MemberSeparator
		}
	case Number:
		if !numTerminal(s.partialState) {
			return Number
		}
	default:
		return s.partial
	}
	top := s.stack.Peek()
	if top == String {
		top = s.stack.At(s.stack.Len() - 2)
	}
	return s.partial | s.afterValue(top)
}

func (s *Session) newline(i int) {
	s.line++
	s.lineStart = s.offset + int64(i) + 1
}

func (s *Session) endOfInput(b []byte) ValidationResult {
	expected := s.expected
	if s.partial != Undefined {
		expected = s.expectedPartial()
	}
	s.offset += int64(len(b))
	return ValidationResult{
		Mode:     s.mode,
		Expected: expected,
		Actual:   EOF,
		Line:     s.line,
		Column:   int(s.offset-s.lineStart) + 1,
		Offset:   s.offset,
	}
}

// fail records a sticky failure at b[i].
func (s *Session) fail(b []byte, i int, actual, expected Type) ValidationResult {
	pos := s.offset + int64(i)
	s.actual = actual
	s.failed = true
	s.failure = ValidationResult{
		Mode:     s.mode,
		Expected: expected,
		Actual:   actual,
		Char:     b[i],
		Line:     s.line,
		Column:   int(pos-s.lineStart) + 1,
		Offset:   pos,
	}
	return s.failure
}
