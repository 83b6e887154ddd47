// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type validatorTestdataEntry struct {
	name string
	mode Mode
	in   string
	want ValidationResult
}

// valid is the result of a whole document that ends at the given position.
func valid(mode Mode, line, column int, offset int64) ValidationResult {
	return ValidationResult{Mode: mode, Expected: EOF, Actual: EOF, Line: line, Column: column, Offset: offset}
}

var validatorTestdata = []validatorTestdataEntry{{
	name: "EmptyObject",
	mode: ModeStandard,
	in:   `{}`,
	want: valid(ModeStandard, 1, 3, 2),
}, {
	name: "Nested",
	mode: ModeStandard,
	in:   `{"a":1,"b":[1,2,3]}`,
	want: valid(ModeStandard, 1, 20, 19),
}, {
	name: "Whitespace",
	mode: ModeStandard,
	in:   " {\n\t\"a\" : [ true , false ,null ] ,\r\n \"b\" = {} \n}\n",
	want: valid(ModeStandard, 5, 1, 49),
}, {
	name: "Literals",
	mode: ModeStandard,
	in:   `[true,FALSE,Null,nan,NaN,Infinity,-infinity,-INFINITY]`,
	want: valid(ModeStandard, 1, 55, 54),
}, {
	name: "Numbers",
	mode: ModeStandard,
	in:   `[0,-0,1,-12,0.5,1.25e10,1E+2,3e-07,-0.0e0]`,
	want: valid(ModeStandard, 1, 43, 42),
}, {
	name: "RootNumber",
	mode: ModeStandard,
	in:   `123`,
	want: ValidationResult{Mode: ModeStandard, Expected: Number | EOF, Actual: EOF, Line: 1, Column: 4, Offset: 3},
}, {
	name: "RootString",
	mode: ModeStandard,
	in:   `"a\"\\\/\b\f\n\r\t\0\u00e9"`,
	want: valid(ModeStandard, 1, 28, 27),
}, {
	name: "MissingValue",
	mode: ModeStandard,
	in:   `{"a": 1, "b": }`,
	want: ValidationResult{Mode: ModeStandard, Expected: Value, Actual: EndObject, Char: '}', Line: 1, Column: 15, Offset: 14},
}, {
	name: "MissingSeparator",
	mode: ModeStandard,
	in:   `{"a" 1}`,
	want: ValidationResult{Mode: ModeStandard, Expected: MemberSeparator, Actual: Number, Char: '1', Line: 1, Column: 6, Offset: 5},
}, {
	name: "TrailingComma",
	mode: ModeStandard,
	in:   `[1,]`,
	want: ValidationResult{Mode: ModeStandard, Expected: Value, Actual: EndArray, Char: ']', Line: 1, Column: 4, Offset: 3},
}, {
	name: "MismatchedEnd",
	mode: ModeStandard,
	in:   "[\n1}",
	want: ValidationResult{Mode: ModeStandard, Expected: ValueSeparator | EndArray, Actual: EndObject, Char: '}', Line: 2, Column: 2, Offset: 3},
}, {
	name: "NonKeyInObject",
	mode: ModeStandard,
	in:   `{1:2}`,
	want: ValidationResult{Mode: ModeStandard, Expected: String | EndObject, Actual: Number, Char: '1', Line: 1, Column: 2, Offset: 1},
}, {
	name: "TwoRootValues",
	mode: ModeStandard,
	in:   `{} []`,
	want: ValidationResult{Mode: ModeStandard, Expected: EOF, Actual: BeginArray, Char: '[', Line: 1, Column: 4, Offset: 3},
}, {
	name: "InvalidCharacter",
	mode: ModeStandard,
	in:   `[x]`,
	want: ValidationResult{Mode: ModeStandard, Expected: Value | EndArray, Actual: Undefined, Char: 'x', Line: 1, Column: 2, Offset: 1},
}, {
	name: "BadLiteral",
	mode: ModeStandard,
	in:   `[nul1]`,
	want: ValidationResult{Mode: ModeStandard, Expected: Null, Actual: Undefined, Char: '1', Line: 1, Column: 5, Offset: 4},
}, {
	name: "LeadingZero",
	mode: ModeStandard,
	in:   `[01]`,
	want: ValidationResult{Mode: ModeStandard, Expected: ValueSeparator | EndArray, Actual: Number, Char: '1', Line: 1, Column: 3, Offset: 2},
}, {
	name: "MissingFraction",
	mode: ModeStandard,
	in:   `[1.]`,
	want: ValidationResult{Mode: ModeStandard, Expected: Number, Actual: Undefined, Char: ']', Line: 1, Column: 4, Offset: 3},
}, {
	name: "BadEscape",
	mode: ModeStandard,
	in:   `"\x"`,
	want: ValidationResult{Mode: ModeStandard, Expected: String, Actual: Undefined, Char: 'x', Line: 1, Column: 3, Offset: 2},
}, {
	name: "BadUnicodeEscape",
	mode: ModeStandard,
	in:   `"\u12g4"`,
	want: ValidationResult{Mode: ModeStandard, Expected: String, Actual: Undefined, Char: 'g', Line: 1, Column: 6, Offset: 5},
}, {
	name: "ControlCharacterInString",
	mode: ModeStandard,
	in:   "\"a\tb\"",
	want: ValidationResult{Mode: ModeStandard, Expected: String, Actual: Undefined, Char: '\t', Line: 1, Column: 3, Offset: 2},
}, {
	name: "UnterminatedString",
	mode: ModeStandard,
	in:   `{"a": "hello`,
	want: ValidationResult{Mode: ModeStandard, Expected: String, Actual: EOF, Line: 1, Column: 13, Offset: 12},
}, {
	name: "UnclosedObject",
	mode: ModeStandard,
	in:   `{"a": 1`,
	want: ValidationResult{Mode: ModeStandard, Expected: Number | ValueSeparator | EndObject, Actual: EOF, Line: 1, Column: 8, Offset: 7},
}, {
	name: "Empty",
	mode: ModeStandard,
	in:   ``,
	want: ValidationResult{Mode: ModeStandard, Expected: Value, Actual: EOF, Line: 1, Column: 1, Offset: 0},
}, {
	name: "SimpleImplicitRoot",
	mode: ModeSimple,
	in:   "name = server\nports = [80 443]\ntls = {cert = \"a.pem\", key = a.key}\n",
	want: ValidationResult{Mode: ModeSimple, Expected: ValueSeparator | String | EOF, Actual: EOF, Line: 4, Column: 1, Offset: 67},
}, {
	name: "SimpleMinified",
	mode: ModeSimple,
	in:   `a=1 b=[x 2] c={d="e f"}`,
	want: ValidationResult{Mode: ModeSimple, Expected: ValueSeparator | String | EOF, Actual: EOF, Line: 1, Column: 24, Offset: 23},
}, {
	name: "SimpleTrailingScalar",
	mode: ModeSimple,
	in:   `a=1`,
	want: ValidationResult{Mode: ModeSimple, Expected: String | ValueSeparator | EOF, Actual: EOF, Line: 1, Column: 4, Offset: 3},
}, {
	name: "SimpleRootScalar",
	mode: ModeSimple,
	in:   `hello`,
	want: ValidationResult{Mode: ModeSimple, Expected: String | EOF | MemberSeparator, Actual: EOF, Line: 1, Column: 6, Offset: 5},
}, {
	name: "SimpleArrayWithoutCommas",
	mode: ModeSimple,
	in:   `[a b, "c" {} []]`,
	want: valid(ModeSimple, 1, 17, 16),
}, {
	name: "SimpleAnyEscape",
	mode: ModeSimple,
	in:   "[\"\\q\ttab\n\"]",
	want: valid(ModeSimple, 2, 3, 11),
}, {
	name: "SimpleMissingValue",
	mode: ModeSimple,
	in:   `{a=}`,
	want: ValidationResult{Mode: ModeSimple, Expected: Value, Actual: EndObject, Char: '}', Line: 1, Column: 4, Offset: 3},
}, {
	name: "SimpleKeyWithoutValue",
	mode: ModeSimple,
	in:   `{a b}`,
	want: ValidationResult{Mode: ModeSimple, Expected: MemberSeparator, Actual: String, Char: 'b', Line: 1, Column: 4, Offset: 3},
}, {
	name: "NoneAcceptsAnything",
	mode: ModeNone,
	in:   `}{][`,
	want: valid(ModeNone, 1, 5, 4),
}}

var cmpResults = cmp.Options{cmpopts.EquateErrors()}

func TestValidator(t *testing.T) {
	for _, tt := range validatorTestdata {
		t.Run(tt.mode.String()+"/"+tt.name, func(t *testing.T) {
			v := NewValidator(tt.mode)
			defer v.Release()
			got := v.Validate([]byte(tt.in))
			if diff := cmp.Diff(tt.want, got, cmpResults); diff != "" {
				t.Errorf("Validate(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

// TestValidatorChunks checks that the result does not depend
// on where the input is split.
func TestValidatorChunks(t *testing.T) {
	for _, tt := range validatorTestdata {
		t.Run(tt.mode.String()+"/"+tt.name, func(t *testing.T) {
			in := []byte(tt.in)
			for i := 0; i <= len(in); i++ {
				got := ValidateChunks(tt.mode, in[:i], in[i:])
				if diff := cmp.Diff(tt.want, got, cmpResults); diff != "" {
					t.Errorf("split at %d: %q + %q mismatch (-want +got):\n%s", i, in[:i], in[i:], diff)
				}
			}

			// Feed one byte at a time.
			chunks := make([][]byte, len(in))
			for i := range in {
				chunks[i] = in[i : i+1]
			}
			got := ValidateChunks(tt.mode, chunks...)
			if diff := cmp.Diff(tt.want, got, cmpResults); diff != "" {
				t.Errorf("bytewise mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidatorResume(t *testing.T) {
	v := NewValidator(ModeStandard)
	defer v.Release()

	r := v.Validate([]byte(`tru`))
	if !r.Incomplete() || r.Expected != True {
		t.Fatalf("Validate(tru) = %v, want incomplete True", r)
	}
	r = v.Validate([]byte(`e`))
	if !r.IsValid() || r.Actual != EOF {
		t.Fatalf("Validate(e) = %v, want valid EOF", r)
	}

	// A failure is sticky until Reset.
	r = v.Validate([]byte(`]`))
	if r.IsValid() || r.Actual != EndArray {
		t.Fatalf("Validate(]) = %v, want invalid EndArray", r)
	}
	if again := v.Validate([]byte(`{}`)); again != r {
		t.Errorf("Validate after failure = %v, want %v", again, r)
	}
	v.Reset()
	if r := v.Validate([]byte(`{}`)); !r.IsValid() {
		t.Errorf("Validate after Reset = %v, want valid", r)
	}
}

func TestValidatorNullOrNaN(t *testing.T) {
	// The first letter cannot tell null from nan,
	// and a chunk boundary may fall right after it.
	for _, in := range []string{"null", "NULL", "nan", "NaN", "NAN"} {
		for i := 0; i <= len(in); i++ {
			if r := ValidateChunks(ModeStandard, []byte(in[:i]), []byte(in[i:])); !r.IsValid() {
				t.Errorf("ValidateChunks(%q, %q) = %v, want valid", in[:i], in[i:], r)
			}
		}
	}
	r := ValidateChunks(ModeStandard, []byte("n"))
	if r.Expected != Null|NaN {
		t.Errorf("ValidateChunks(n).Expected = %v, want %v", r.Expected, Null|NaN)
	}
}

func TestValidatorMaxDepth(t *testing.T) {
	v := NewValidator(ModeStandard, WithMaxDepth(3), WithStackCapacity(1))
	defer v.Release()
	if r := v.Validate([]byte(`[[[]]]`)); !r.IsValid() {
		t.Fatalf("depth 3: %v", r)
	}

	v.Reset()
	r := v.Validate([]byte(`[{"a":[[`))
	if !errors.Is(r.Err, ErrDepthExceeded) {
		t.Fatalf("depth 4: Err = %v, want %v", r.Err, ErrDepthExceeded)
	}
	if r.IsValid() || r.Incomplete() || r.Offset != 7 || r.Char != '[' {
		t.Errorf("depth 4: result = %v", r)
	}
	if err := r.Error(); !errors.Is(err, Error) || !strings.Contains(err.Error(), "exceeded max depth") {
		t.Errorf("depth 4: Error() = %v", err)
	}

	// The stack grows well past its initial capacity without a limit.
	deep := strings.Repeat("[", 5000) + strings.Repeat("]", 5000)
	v = NewValidator(ModeStandard, WithMaxDepth(0), WithStackCapacity(2))
	defer v.Release()
	if r := v.Validate([]byte(deep)); !r.IsValid() {
		t.Errorf("depth 5000 without limit: %v", r)
	}
	if r := ValidateChunks(ModeStandard, []byte(strings.Repeat("[", DefaultMaxDepth+1))); !errors.Is(r.Err, ErrDepthExceeded) {
		t.Errorf("default limit: Err = %v, want %v", r.Err, ErrDepthExceeded)
	}
}

func TestValidationResultError(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a": 1, "b": }`, `jsontext: line 1, column 15: unexpected EndObject '}', expected Value`},
		{`[x]`, `jsontext: line 1, column 2: invalid character 'x', expected Value|EndArray`},
		{"[\n1", `jsontext: line 2, column 2: unexpected end of input, expected EndArray|ValueSeparator|Number`},
	}
	for _, tt := range tests {
		err := ValidateChunks(ModeStandard, []byte(tt.in)).Error()
		if err == nil {
			t.Errorf("ValidateChunks(%q).Error() = nil, want %s", tt.in, tt.want)
			continue
		}
		if got := err.Error(); got != tt.want {
			t.Errorf("ValidateChunks(%q).Error():\ngot  %s\nwant %s", tt.in, got, tt.want)
		}
		var serr *SyntaxError
		if !errors.As(err, &serr) || serr.Line == 0 {
			t.Errorf("ValidateChunks(%q).Error() = %T, want *SyntaxError", tt.in, err)
		}
	}
	if err := ValidateChunks(ModeStandard, []byte(`{}`)).Error(); err != nil {
		t.Errorf("valid document: Error() = %v, want nil", err)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		mode Mode
		want bool
	}{
		{`{}`, ModeStandard, true},
		{`{`, ModeStandard, false},
		{`{a=1}`, ModeStandard, false},
		{`{a=1}`, ModeSimple, true},
		{`{a=1}`, ModeNone, true},
		{`-Infinity`, ModeStandard, true},
		{`-`, ModeStandard, false},
	}
	for _, tt := range tests {
		if got := Valid([]byte(tt.in), tt.mode); got != tt.want {
			t.Errorf("Valid(%q, %v) = %v, want %v", tt.in, tt.mode, got, tt.want)
		}
	}
}

func TestValidatorRelease(t *testing.T) {
	v := GetValidator(ModeSimple)
	if v.Mode() != ModeSimple {
		t.Errorf("Mode = %v, want %v", v.Mode(), ModeSimple)
	}
	PutValidator(v)
	defer func() {
		if recover() == nil {
			t.Errorf("use after release did not panic")
		}
	}()
	v.Validate(nil)
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeNone, ModeSimple, ModeStandard} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = (%v, %v), want (%v, nil)", m.String(), got, err, m)
		}
	}
	if _, err := ParseMode("strict"); !errors.Is(err, Error) {
		t.Errorf("ParseMode(strict) error = %v, want jsontext error", err)
	}
}
