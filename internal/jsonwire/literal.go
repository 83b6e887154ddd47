// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

// LiteralSet is a set of bare literal candidates still consistent
// with the prefix consumed so far.
type LiteralSet uint8

const (
	LiteralTrue LiteralSet = 1 << iota
	LiteralFalse
	LiteralNull
	LiteralNaN
	LiteralInfinity
)

var literalTemplates = [...]struct {
	set  LiteralSet
	text string
}{
	{LiteralTrue, TrueLiteral},
	{LiteralFalse, FalseLiteral},
	{LiteralNull, NullLiteral},
	{LiteralNaN, NaNLiteral},
	{LiteralInfinity, PosInfLiteral},
}

// MatchLiteral narrows the candidate set by the case-insensitive character c
// appearing at index i of the literal.
// It reports the remaining candidates and whether one of them
// is now fully spelled out.
// No template is a prefix of another, so a complete match is unambiguous.
func MatchLiteral(cands LiteralSet, i int, c byte) (LiteralSet, bool) {
	c = ToLower(c)
	var next LiteralSet
	var done bool
	for _, t := range literalTemplates {
		if cands&t.set == 0 || i >= len(t.text) || t.text[i] != c {
			continue
		}
		next |= t.set
		done = done || i+1 == len(t.text)
	}
	return next, done
}
