// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"strconv"
	"unicode/utf8"

	"github.com/go-json-experiment/jsonstream/internal/bufpools"
	"github.com/go-json-experiment/jsonstream/internal/jsonwire"
)

// Options configure the output format of a Writer.
type Options struct {
	// Minified omits all optional whitespace.
	Minified bool

	// Simplified selects the simplified dialect:
	// commas are omitted, keys are written without quotes where possible,
	// and members are separated from values by '='.
	// A root that begins with a key is an implicit object
	// without braces; otherwise the root holds a single value.
	Simplified bool
}

// indentUnit is the whitespace written per nesting level in pretty output.
const indentUnit = "    "

// Writer incrementally produces JSON text in an in-memory buffer.
//
// Every Write method checks that the call keeps the output well-formed
// before writing anything. A call that would not returns a *FormattingError
// and leaves the buffer unchanged, so the writer remains usable.
//
// In the standard format, the root holds exactly one value.
// In the simplified format, the root may also be an implicit object
// if the first call writes a key:
//
//	w := jsontext.NewWriter(0, jsontext.Options{Minified: true, Simplified: true})
//	w.WriteKey("a")
//	w.WriteInt64(1)
//	w.String() // "a=1"
//
// The zero value is not usable; call NewWriter or GetWriter.
type Writer struct {
	buf    []byte
	scopes scopeStack
	opts   Options

	// scopeIDs identifies each open object and array, innermost last.
	// IDs are never reused by a writer, not even after Reset.
	scopeIDs []uint64
	lastID   uint64

	released bool
}

// NewWriter returns a writer whose buffer initially holds capacity bytes.
func NewWriter(capacity int, opts Options) *Writer {
	w := new(Writer)
	w.init(make([]byte, 0, max(capacity, 0)), opts)
	return w
}

func (w *Writer) init(buf []byte, opts Options) {
	w.buf = buf[:0]
	w.opts = opts
	w.released = false
	w.scopes.init(opts.Simplified)
	w.scopeIDs = w.scopeIDs[:0]
}

func (w *Writer) checkLive() {
	if w.released {
		panic("jsontext: use of released Writer")
	}
}

// Options reports the format the writer produces.
func (w *Writer) Options() Options { return w.opts }

// Bytes returns the text written so far.
// The slice is valid until the next mutating call.
func (w *Writer) Bytes() []byte {
	w.checkLive()
	return w.buf
}

// String returns a copy of the text written so far.
func (w *Writer) String() string {
	w.checkLive()
	return string(w.buf)
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int {
	w.checkLive()
	return len(w.buf)
}

// Depth reports the number of open objects and arrays.
// The implicit root object of the simplified format is not counted.
func (w *Writer) Depth() int {
	w.checkLive()
	return w.scopes.depth() - 1
}

// Complete reports whether the text written so far is a whole document,
// meaning every scope is closed and no key lacks its value.
// In the standard format, the root value must also have been written.
func (w *Writer) Complete() bool {
	w.checkLive()
	return w.scopes.complete()
}

// Reset discards all output while keeping the buffer's capacity.
func (w *Writer) Reset() {
	w.checkLive()
	w.init(w.buf, w.opts)
}

// Release returns the buffer to the shared pool.
// Any later use of the writer panics.
func (w *Writer) Release() {
	if w.released {
		return
	}
	bufpools.Put(w.buf)
	w.buf = nil
	w.scopes = w.scopes[:0]
	w.scopeIDs = w.scopeIDs[:0]
	w.released = true
}

func (w *Writer) misuse(op string, err error) error {
	return &FormattingError{Op: op, Depth: w.scopes.depth() - 1, Err: err}
}

// WriteBeginObject writes '{' as a value.
func (w *Writer) WriteBeginObject() error {
	return w.beginScope("WriteBeginObject", scopeTypeObject, '{')
}

// WriteBeginObjectKey writes a key followed by '{' as its value.
func (w *Writer) WriteBeginObjectKey(key string) error {
	return w.beginScopeKey("WriteBeginObjectKey", key, scopeTypeObject, '{')
}

// WriteEndObject closes the innermost object.
func (w *Writer) WriteEndObject() error {
	w.checkLive()
	if err := w.scopes.checkEndObject(); err != nil {
		return w.misuse("WriteEndObject", err)
	}
	w.endScope('}')
	return nil
}

// WriteBeginArray writes '[' as a value.
func (w *Writer) WriteBeginArray() error {
	return w.beginScope("WriteBeginArray", scopeTypeArray, '[')
}

// WriteBeginArrayKey writes a key followed by '[' as its value.
func (w *Writer) WriteBeginArrayKey(key string) error {
	return w.beginScopeKey("WriteBeginArrayKey", key, scopeTypeArray, '[')
}

// WriteEndArray closes the innermost array.
func (w *Writer) WriteEndArray() error {
	w.checkLive()
	if err := w.scopes.checkEndArray(); err != nil {
		return w.misuse("WriteEndArray", err)
	}
	w.endScope(']')
	return nil
}

func (w *Writer) beginScope(op string, kind scopeEntry, c byte) error {
	w.checkLive()
	if err := w.scopes.checkValue(); err != nil {
		return w.misuse(op, err)
	}
	w.beforeValue()
	w.pushScope(kind, c)
	return nil
}

func (w *Writer) beginScopeKey(op, key string, kind scopeEntry, c byte) error {
	w.checkLive()
	if err := w.scopes.checkKey(); err != nil {
		return w.misuse(op, err)
	}
	w.appendKey(key)
	w.beforeValue()
	w.pushScope(kind, c)
	return nil
}

func (w *Writer) pushScope(kind scopeEntry, c byte) {
	w.buf = append(w.buf, c)
	w.scopes.push(kind)
	w.lastID++
	w.scopeIDs = append(w.scopeIDs, w.lastID)
}

// innermostID identifies the innermost open object or array, or is 0 at the root.
func (w *Writer) innermostID() uint64 {
	if len(w.scopeIDs) == 0 {
		return 0
	}
	return w.scopeIDs[len(w.scopeIDs)-1]
}

func (w *Writer) endScope(c byte) {
	empty := w.scopes.last().length() == 0
	w.scopes.pop()
	w.scopeIDs = w.scopeIDs[:len(w.scopeIDs)-1]
	if !empty && !w.opts.Minified {
		w.appendIndent(w.scopes.depth() - 1)
	}
	w.buf = append(w.buf, c)
}

// WriteKey writes an object key and its member separator.
// The next call must write the member's value.
func (w *Writer) WriteKey(key string) error {
	w.checkLive()
	if err := w.scopes.checkKey(); err != nil {
		return w.misuse("WriteKey", err)
	}
	w.appendKey(key)
	return nil
}

// appendKey writes key as the next element of the innermost object.
// The caller must have checked that a key is legal.
func (w *Writer) appendKey(key string) {
	w.beforeElement()
	w.scopes.last().increment()
	switch {
	case !w.opts.Simplified:
		w.buf = jsonwire.AppendQuote(w.buf, key)
		w.buf = append(w.buf, ':')
		if !w.opts.Minified {
			w.buf = append(w.buf, ' ')
		}
	default:
		if jsonwire.NeedsQuote(key) {
			w.buf = jsonwire.AppendQuote(w.buf, key)
		} else {
			w.buf = append(w.buf, key...)
		}
		if w.opts.Minified {
			w.buf = append(w.buf, '=')
		} else {
			w.buf = append(w.buf, " = "...)
		}
	}
}

// beforeValue prepares for a value, which directly follows its key
// within an object and is a new element anywhere else.
func (w *Writer) beforeValue() {
	w.scopes.settleRoot()
	e := w.scopes.last()
	if !e.needValue() {
		w.beforeElement()
	}
	e.increment()
}

// beforeElement writes the separator and indentation
// preceding a new element of the innermost scope.
func (w *Writer) beforeElement() {
	e := w.scopes.last()
	first := e.length() == 0
	if !first && !w.opts.Simplified {
		w.buf = append(w.buf, ',')
	}
	switch {
	case !w.opts.Minified:
		// The root scope has no opening token to break the line after.
		if !first || w.scopes.depth() > 1 {
			w.appendIndent(w.scopes.depth() - 1)
		}
	case w.opts.Simplified && !first:
		w.buf = append(w.buf, ' ')
	}
}

func (w *Writer) appendIndent(n int) {
	w.buf = append(w.buf, '\n')
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, indentUnit...)
	}
}

// writeValue checks that a value is legal and prepares for it.
func (w *Writer) writeValue(op string) error {
	w.checkLive()
	if err := w.scopes.checkValue(); err != nil {
		return w.misuse(op, err)
	}
	w.beforeValue()
	return nil
}

// WriteInt32 writes v as a number.
func (w *Writer) WriteInt32(v int32) error {
	if err := w.writeValue("WriteInt32"); err != nil {
		return err
	}
	w.buf = strconv.AppendInt(w.buf, int64(v), 10)
	return nil
}

// WriteInt64 writes v as a number.
func (w *Writer) WriteInt64(v int64) error {
	if err := w.writeValue("WriteInt64"); err != nil {
		return err
	}
	w.buf = strconv.AppendInt(w.buf, v, 10)
	return nil
}

// WriteUint32 writes v as a number.
func (w *Writer) WriteUint32(v uint32) error {
	if err := w.writeValue("WriteUint32"); err != nil {
		return err
	}
	w.buf = strconv.AppendUint(w.buf, uint64(v), 10)
	return nil
}

// WriteUint64 writes v as a number.
func (w *Writer) WriteUint64(v uint64) error {
	if err := w.writeValue("WriteUint64"); err != nil {
		return err
	}
	w.buf = strconv.AppendUint(w.buf, v, 10)
	return nil
}

// WriteFloat32 writes v in the shortest form that parses back
// to the same float32. Non-finite values are written as
// the literals nan, infinity, and -infinity.
func (w *Writer) WriteFloat32(v float32) error {
	if err := w.writeValue("WriteFloat32"); err != nil {
		return err
	}
	w.buf = jsonwire.AppendFloat(w.buf, float64(v), 32)
	return nil
}

// WriteFloat64 is like WriteFloat32 for float64 values.
func (w *Writer) WriteFloat64(v float64) error {
	if err := w.writeValue("WriteFloat64"); err != nil {
		return err
	}
	w.buf = jsonwire.AppendFloat(w.buf, v, 64)
	return nil
}

// WriteBool writes the literal true or false.
func (w *Writer) WriteBool(v bool) error {
	if err := w.writeValue("WriteBool"); err != nil {
		return err
	}
	if v {
		w.buf = append(w.buf, jsonwire.TrueLiteral...)
	} else {
		w.buf = append(w.buf, jsonwire.FalseLiteral...)
	}
	return nil
}

// WriteBoolInt writes v as the number 1 or 0.
func (w *Writer) WriteBoolInt(v bool) error {
	if err := w.writeValue("WriteBoolInt"); err != nil {
		return err
	}
	if v {
		w.buf = append(w.buf, '1')
	} else {
		w.buf = append(w.buf, '0')
	}
	return nil
}

// WriteRune writes r as a single-character string.
// An invalid rune is written as U+FFFD.
func (w *Writer) WriteRune(r rune) error {
	if err := w.writeValue("WriteRune"); err != nil {
		return err
	}
	var b [utf8.UTFMax]byte
	n := utf8.EncodeRune(b[:], r)
	w.buf = jsonwire.AppendQuote(w.buf, b[:n])
	return nil
}

// WriteString writes s as a quoted string.
// Invalid UTF-8 is replaced with U+FFFD.
func (w *Writer) WriteString(s string) error {
	if err := w.writeValue("WriteString"); err != nil {
		return err
	}
	w.buf = jsonwire.AppendQuote(w.buf, s)
	return nil
}

// WriteNull writes the literal null.
func (w *Writer) WriteNull() error {
	if err := w.writeValue("WriteNull"); err != nil {
		return err
	}
	w.buf = append(w.buf, jsonwire.NullLiteral...)
	return nil
}

// WriteLiteral writes text verbatim as a value.
// The text is not validated; it must be a single token
// of the format being written.
func (w *Writer) WriteLiteral(text string) error {
	w.checkLive()
	if text == "" {
		return w.misuse("WriteLiteral", ErrEmptyLiteral)
	}
	if err := w.writeValue("WriteLiteral"); err != nil {
		return err
	}
	w.buf = append(w.buf, text...)
	return nil
}

// WriteKeyNull writes a member whose value is null.
func (w *Writer) WriteKeyNull(key string) error {
	if err := w.WriteKey(key); err != nil {
		return err
	}
	return w.WriteNull()
}

// WriteKeyLiteral writes a member whose value is text verbatim.
func (w *Writer) WriteKeyLiteral(key, text string) error {
	w.checkLive()
	if text == "" {
		return w.misuse("WriteKeyLiteral", ErrEmptyLiteral)
	}
	if err := w.WriteKey(key); err != nil {
		return err
	}
	return w.WriteLiteral(text)
}

// Scalar is the set of Go types with a direct JSON representation.
type Scalar interface {
	int | int32 | int64 | uint | uint32 | uint64 | float32 | float64 | bool | string
}

// WriteKeyValue writes a member whose value is v.
// Integers and floats are written as numbers,
// booleans as true or false, and strings quoted.
func WriteKeyValue[T Scalar](w *Writer, key string, v T) error {
	if err := w.WriteKey(key); err != nil {
		return err
	}
	// A value always follows a key legally.
	switch v := any(v).(type) {
	case int:
		return w.WriteInt64(int64(v))
	case int32:
		return w.WriteInt32(v)
	case int64:
		return w.WriteInt64(v)
	case uint:
		return w.WriteUint64(uint64(v))
	case uint32:
		return w.WriteUint32(v)
	case uint64:
		return w.WriteUint64(v)
	case float32:
		return w.WriteFloat32(v)
	case float64:
		return w.WriteFloat64(v)
	case bool:
		return w.WriteBool(v)
	default:
		return w.WriteString(v.(string))
	}
}
