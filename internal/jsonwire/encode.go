// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import (
	"math"
	"slices"
	"strconv"
	"unicode/utf8"
)

// Literal spellings of the JSON keywords and of the non-finite numbers.
const (
	NaNLiteral     = "nan"
	PosInfLiteral  = "infinity"
	NegInfLiteral  = "-infinity"
	NullLiteral    = "null"
	TrueLiteral    = "true"
	FalseLiteral   = "false"
	replacementStr = "�"
)

const lowerHex = "0123456789abcdef"

// AppendQuote appends src to dst as a double-quoted JSON string.
//
// Quotation marks, reverse solidus, and the common control characters
// (\b, \f, \n, \r, \t) use their short escape sequences.
// All other control characters, including NUL, use \u00XX.
// Invalid UTF-8 bytes are replaced with the Unicode replacement character.
func AppendQuote[Bytes ~[]byte | ~string](dst []byte, src Bytes) []byte {
	dst = slices.Grow(dst, len(src)+2)
	dst = append(dst, '"')
	flushed := 0 // src[:flushed] is already in dst
	for pos := 0; pos < len(src); {
		c := src[pos]
		if c >= utf8.RuneSelf {
			if size := runeLen(src[pos:]); size > 0 {
				pos += size
				continue
			}
			dst = append(dst, src[flushed:pos]...)
			dst = append(dst, replacementStr...)
			pos++
			flushed = pos
			continue
		}

		esc := escapeASCII[c]
		pos++
		if esc == 0 {
			continue
		}
		dst = append(dst, src[flushed:pos-1]...)
		flushed = pos
		if esc == 'u' {
			dst = append(dst, '\\', 'u', '0', '0', lowerHex[c>>4], lowerHex[c&0xf])
		} else {
			dst = append(dst, '\\', esc)
		}
	}
	dst = append(dst, src[flushed:]...)
	return append(dst, '"')
}

// runeLen reports the length of the valid multi-byte rune that b begins with,
// or zero if b begins with an invalid encoding.
func runeLen[Bytes ~[]byte | ~string](b Bytes) int {
	// Decoding at most utf8.UTFMax bytes as a string
	// serves both []byte and string inputs without copying much.
	r, size := utf8.DecodeRuneInString(string(b[:min(len(b), utf8.UTFMax)]))
	if r == utf8.RuneError && size <= 1 {
		return 0
	}
	return size
}

// AppendFloat appends src to dst in the shortest decimal form that
// parses back to the same value at the given bit size (32 or 64).
// Like the ES6 number-to-string conversion, it uses exponent notation
// only for magnitudes below 1e-6 or at least 1e21, and it never
// depends on the locale.
//
// NaN and the infinities have no JSON number form and are written
// as the bare literals nan, infinity, and -infinity.
func AppendFloat(dst []byte, src float64, bits int) []byte {
	if bits == 32 {
		src = float64(float32(src))
	}
	switch {
	case math.IsNaN(src):
		return append(dst, NaNLiteral...)
	case math.IsInf(src, 0):
		if src > 0 {
			return append(dst, PosInfLiteral...)
		}
		return append(dst, NegInfLiteral...)
	}

	format := byte('f')
	if abs := math.Abs(src); abs != 0 && !inPlainRange(abs, bits) {
		format = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, src, format, -1, bits)
	if format == 'e' {
		// strconv pads the exponent to two digits; ES6 does not.
		num := dst[start:]
		if i := len(num) - 2; i >= 2 && num[i] == '0' && (num[i-1] == '-' || num[i-1] == '+') {
			num[i] = num[i+1]
			dst = dst[:len(dst)-1]
		}
	}
	return dst
}

// inPlainRange reports whether abs lies within [1e-6, 1e21)
// at the precision of the given bit size.
func inPlainRange(abs float64, bits int) bool {
	if bits == 32 {
		return 1e-6 <= float32(abs) && float32(abs) < 1e21
	}
	return 1e-6 <= abs && abs < 1e21
}
