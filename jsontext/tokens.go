// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import "github.com/go-json-experiment/jsonstream/internal/jsonwire"

// String sub-states.
const (
	strPlain  = iota // within the string body
	strEscape        // after a reverse solidus
	strHex4          // after \u, expecting four more hex digits
	strHex3
	strHex2
	strHex1
	strBare // an unquoted scalar of the simplified dialect
)

// scanString consumes the body of a string token starting at b[i].
// The opening quote has already been consumed.
func (s *Session) scanString(b []byte, i int) (int, step) {
	st := s.partialState
	if st == strBare {
		for i < len(b) && !jsonwire.IsDelimiter(b[i]) {
			i++
		}
		if i < len(b) {
			return i, stepDone
		}
		return i, stepMore
	}

	strict := s.mode == ModeStandard
	for ; i < len(b); i++ {
		c := b[i]
		switch st {
		case strPlain:
			switch {
			case c == '"':
				return i + 1, stepDone
			case c == '\\':
				st = strEscape
			case c < ' ':
				if strict {
					s.partialState = st
					return i, stepFail
				}
				if c == '\n' {
					s.newline(i)
				}
			}
		case strEscape:
			st = strPlain
			if !strict {
				if c == '\n' {
					s.newline(i)
				}
				continue
			}
			switch c {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', '0':
			case 'u':
				st = strHex4
			default:
				s.partialState = strEscape
				return i, stepFail
			}
		default:
			if !jsonwire.IsHex(c) {
				s.partialState = st
				return i, stepFail
			}
			if st == strHex1 {
				st = strPlain
			} else {
				st++
			}
		}
	}
	s.partialState = st
	return i, stepMore
}

// Number sub-states.
const (
	numStart     = iota // nothing consumed
	numSign             // after '-'
	numZero             // after a leading '0'
	numInt              // within integer digits
	numDot              // after '.'
	numFrac             // within fraction digits
	numExp              // after 'e' or 'E'
	numExpSign          // after the exponent sign
	numExpDigits        // within exponent digits
)

// numTerminal reports whether a number may end in state st.
func numTerminal(st uint32) bool {
	return st == numZero || st == numInt || st == numFrac || st == numExpDigits
}

// scanNumber consumes a number token starting at b[i].
// The number ends at the first character that cannot continue it,
// which is left unconsumed.
func (s *Session) scanNumber(b []byte, i int) (int, step) {
	st := s.partialState
	for ; i < len(b); i++ {
		c := b[i]
		switch st {
		case numStart:
			switch c {
			case '-':
				st = numSign
			case '0':
				st = numZero
			default:
				st = numInt
			}
			continue
		case numSign:
			switch {
			case c == '0':
				st = numZero
			case '1' <= c && c <= '9':
				st = numInt
			case c == 'i' || c == 'I':
				s.partial = Infinity
				s.partialState = uint32(jsonwire.LiteralInfinity) << 8
				return i, stepNext
			default:
				s.partialState = st
				return i, stepFail
			}
			continue
		case numInt, numFrac, numExpDigits:
			if jsonwire.IsDigit(c) {
				continue
			}
		case numDot:
			if !jsonwire.IsDigit(c) {
				s.partialState = st
				return i, stepFail
			}
			st = numFrac
			continue
		case numExp:
			switch {
			case c == '+' || c == '-':
				st = numExpSign
			case jsonwire.IsDigit(c):
				st = numExpDigits
			default:
				s.partialState = st
				return i, stepFail
			}
			continue
		case numExpSign:
			if !jsonwire.IsDigit(c) {
				s.partialState = st
				return i, stepFail
			}
			st = numExpDigits
			continue
		}

		// A terminal state followed by a character that is not a digit.
		switch {
		case c == '.' && (st == numZero || st == numInt):
			st = numDot
		case (c == 'e' || c == 'E') && st != numExpDigits:
			st = numExp
		default:
			return i, stepDone
		}
	}
	s.partialState = st
	return i, stepMore
}

// Literal state packs the index of the next character in the low byte
// and the remaining jsonwire.LiteralSet candidates above it.

// scanLiteral consumes a bare literal starting at b[i],
// matching all candidate spellings at once so that
// a chunk boundary never requires rewinding.
func (s *Session) scanLiteral(b []byte, i int) (int, step) {
	idx := int(s.partialState & 0xff)
	cands := jsonwire.LiteralSet(s.partialState >> 8)
	for ; i < len(b); i++ {
		next, done := jsonwire.MatchLiteral(cands, idx, b[i])
		if next == 0 {
			return i, stepFail
		}
		cands, idx = next, idx+1
		s.partial = literalTypes(cands)
		if done {
			return i + 1, stepDone
		}
	}
	s.partialState = uint32(idx) | uint32(cands)<<8
	return i, stepMore
}

func literalSet(t Type) (set jsonwire.LiteralSet) {
	if t&True != 0 {
		set |= jsonwire.LiteralTrue
	}
	if t&False != 0 {
		set |= jsonwire.LiteralFalse
	}
	if t&Null != 0 {
		set |= jsonwire.LiteralNull
	}
	if t&NaN != 0 {
		set |= jsonwire.LiteralNaN
	}
	if t&Infinity != 0 {
		set |= jsonwire.LiteralInfinity
	}
	return set
}

func literalTypes(set jsonwire.LiteralSet) (t Type) {
	if set&jsonwire.LiteralTrue != 0 {
		t |= True
	}
	if set&jsonwire.LiteralFalse != 0 {
		t |= False
	}
	if set&jsonwire.LiteralNull != 0 {
		t |= Null
	}
	if set&jsonwire.LiteralNaN != 0 {
		t |= NaN
	}
	if set&jsonwire.LiteralInfinity != 0 {
		t |= Infinity
	}
	return t
}
