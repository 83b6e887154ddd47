// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import (
	"strconv"
	"unicode/utf8"
)

// Validity of these checked in TestCharacterTables.
var (
	// escapeASCII holds the escape of each ASCII character within a string:
	// 0 if it is written as is, 'u' if it is written as \u00XX,
	// and otherwise the letter following the reverse solidus.
	escapeASCII = [utf8.RuneSelf]byte{
		0x00: 'u', 0x01: 'u', 0x02: 'u', 0x03: 'u', 0x04: 'u', 0x05: 'u', 0x06: 'u', 0x07: 'u',
		0x08: 'b', 0x09: 't', 0x0a: 'n', 0x0b: 'u', 0x0c: 'f', 0x0d: 'r', 0x0e: 'u', 0x0f: 'u',
		0x10: 'u', 0x11: 'u', 0x12: 'u', 0x13: 'u', 0x14: 'u', 0x15: 'u', 0x16: 'u', 0x17: 'u',
		0x18: 'u', 0x19: 'u', 0x1a: 'u', 0x1b: 'u', 0x1c: 'u', 0x1d: 'u', 0x1e: 'u', 0x1f: 'u',
		'"': '"', '\\': '\\',
	}

	// delimiters are the characters that terminate an unquoted token
	// in the simplified dialect.
	delimiters = [256]bool{
		' ': true, '\t': true, '\r': true, '\n': true,
		',': true, ':': true, '=': true, '"': true,
		'[': true, ']': true, '{': true, '}': true,
	}
)

func makeEscapeASCII() (t [utf8.RuneSelf]byte) {
	for i := 0; i < ' '; i++ {
		t[i] = 'u'
	}
	for _, c := range "\b\f\n\r\t\"\\" {
		t[c] = strconv.Quote(string(c))[2]
	}
	return t
}

func makeDelimiters() (t [256]bool) {
	for _, c := range " \t\r\n,:=\"[]{}" {
		t[c] = true
	}
	return t
}

// IsSpace reports whether c is JSON whitespace.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// IsDelimiter reports whether c ends an unquoted token in the simplified dialect.
func IsDelimiter(c byte) bool {
	return delimiters[c]
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// IsHex reports whether c is an ASCII hexadecimal digit.
func IsHex(c byte) bool {
	return IsDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// ToLower folds an ASCII letter to lower case and returns any other byte as is.
func ToLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c | 0x20
	}
	return c
}

// NeedsQuote reports whether a simplified-dialect key must be quoted.
// Keys are written bare only when they are non-empty, valid UTF-8,
// and free of delimiters, control characters, and escapes.
func NeedsQuote(key string) bool {
	if key == "" {
		return true
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c < ' ' || c == '\\' || delimiters[c] || c == 0x7f {
			return true
		}
	}
	return !utf8.ValidString(key)
}
