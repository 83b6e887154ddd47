// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"math/bits"
	"strconv"
	"strings"
)

// Type is a set of lexical JSON token categories.
//
// A single character classifies to one or more categories,
// while the validator combines categories with bitwise OR
// to describe the set of tokens acceptable next.
type Type uint16

const (
	Undefined Type = 0

	BeginObject     Type = 1 << 0  // {
	EndObject       Type = 1 << 1  // }
	BeginArray      Type = 1 << 2  // [
	EndArray        Type = 1 << 3  // ]
	MemberSeparator Type = 1 << 4  // : or =
	ValueSeparator  Type = 1 << 5  // ,
	String          Type = 1 << 6  // "
	Number          Type = 1 << 7  // 0-9
	Negative        Type = 1 << 8  // -
	NaN             Type = 1 << 9  // nan
	Infinity        Type = 1 << 10 // infinity
	True            Type = 1 << 11 // true
	False           Type = 1 << 12 // false
	Null            Type = 1 << 13 // null
	EOF             Type = 1 << 14 // end of input

	// Value is the set of tokens that may begin a JSON value.
	Value = BeginObject | BeginArray | String | Number | Negative | NaN | Infinity | True | False | Null
)

var typeNames = [...]string{
	"BeginObject",
	"EndObject",
	"BeginArray",
	"EndArray",
	"MemberSeparator",
	"ValueSeparator",
	"String",
	"Number",
	"Negative",
	"NaN",
	"Infinity",
	"True",
	"False",
	"Null",
	"EOF",
}

// IsExpected reports whether every category in x is a member of t.
// The empty set is never expected.
func (t Type) IsExpected(x Type) bool {
	return x != Undefined && x&t == x
}

// String prints the set as its category names joined by '|'.
func (t Type) String() string {
	if t == Undefined {
		return "Undefined"
	}
	if t&Value == Value {
		s := "Value"
		if rest := t &^ Value; rest != 0 {
			s += "|" + rest.String()
		}
		return s
	}
	var sb strings.Builder
	for v := uint16(t); v != 0; v &= v - 1 {
		i := bits.TrailingZeros16(v)
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		if i < len(typeNames) {
			sb.WriteString(typeNames[i])
		} else {
			sb.WriteString("Type(1<<" + strconv.Itoa(i) + ")")
		}
	}
	return sb.String()
}

// Classify returns the categories a token starting with c may belong to
// in the standard grammar. An 'n' may begin either null or nan.
// It returns Undefined for characters that begin no token.
func Classify(c byte) Type {
	return classTable[c]
}

var classTable = [256]Type{
	'{': BeginObject,
	'}': EndObject,
	'[': BeginArray,
	']': EndArray,
	':': MemberSeparator,
	'=': MemberSeparator,
	',': ValueSeparator,
	'"': String,
	'-': Negative,
	'0': Number, '1': Number, '2': Number, '3': Number, '4': Number,
	'5': Number, '6': Number, '7': Number, '8': Number, '9': Number,
	't': True, 'T': True,
	'f': False, 'F': False,
	'n': Null | NaN, 'N': Null | NaN,
	'i': Infinity, 'I': Infinity,
}

// classifySimple classifies c for the simplified dialect,
// where every run of non-delimiter characters is an opaque scalar
// treated like a string.
func classifySimple(c byte) Type {
	switch t := classTable[c]; t {
	case BeginObject, EndObject, BeginArray, EndArray, MemberSeparator, ValueSeparator, String:
		return t
	}
	return String
}
