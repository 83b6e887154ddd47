// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

// ValidatorOption configures a Validator or Session.
type ValidatorOption func(*validatorConfig)

type validatorConfig struct {
	maxDepth int
	capacity int
}

// WithMaxDepth limits the nesting of objects and arrays.
// Input nested deeper fails with ErrDepthExceeded.
// A limit of zero disables the check.
func WithMaxDepth(n int) ValidatorOption {
	return func(c *validatorConfig) {
		if n < 0 {
			n = 0
		}
		c.maxDepth = n
	}
}

// WithStackCapacity sets the initial capacity of the nesting stack.
func WithStackCapacity(n int) ValidatorOption {
	return func(c *validatorConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// Validator checks JSON text supplied in arbitrary chunks.
//
// Each call to Validate continues where the previous one stopped:
//
//	v := jsontext.NewValidator(jsontext.ModeStandard)
//	defer v.Release()
//	v.Validate([]byte(`{"name": "tr`))
//	r := v.Validate([]byte(`ue"}`))
//	r.IsValid() // true
//
// The zero value is not usable; call NewValidator or GetValidator.
type Validator struct {
	s        Session
	released bool
}

// NewValidator returns a validator for the given mode.
// It panics if mode is not a known Mode.
func NewValidator(mode Mode, opts ...ValidatorOption) *Validator {
	v := new(Validator)
	v.s.init(mode, opts...)
	return v
}

func (v *Validator) checkLive() {
	if v.released {
		panic("jsontext: use of released Validator")
	}
}

// Mode reports the grammar the validator enforces.
func (v *Validator) Mode() Mode { return v.s.mode }

// Reset discards all progress so that a new stream may be validated.
func (v *Validator) Reset() {
	v.checkLive()
	v.s.Reset()
}

// Validate scans b as the next chunk of the stream.
// A result with Actual == EOF means the whole chunk was consumed;
// check Incomplete to learn whether the document still needs more data.
func (v *Validator) Validate(b []byte) ValidationResult {
	v.checkLive()
	return v.s.Scan(b)
}

// Session exposes the underlying session for callers
// that schedule scans themselves.
func (v *Validator) Session() *Session {
	v.checkLive()
	return &v.s
}

// Release frees the validator's state.
// Any later use of the validator panics.
func (v *Validator) Release() {
	v.released = true
	v.s.stack = TypeStack{}
	v.s.Reset()
}

// Valid reports whether b is a single complete document in the given mode.
func Valid(b []byte, mode Mode) bool {
	v := GetValidator(mode)
	defer PutValidator(v)
	return v.Validate(b).IsValid()
}

// ValidateChunks validates the concatenation of chunks
// and returns the result of the final chunk,
// or of the first chunk found to be invalid.
func ValidateChunks(mode Mode, chunks ...[]byte) ValidationResult {
	v := GetValidator(mode)
	defer PutValidator(v)
	r := v.Validate(nil)
	for _, chunk := range chunks {
		if r = v.Validate(chunk); r.Actual != EOF || r.Err != nil {
			break
		}
	}
	return r
}
