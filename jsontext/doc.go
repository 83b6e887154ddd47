// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsontext implements syntactic processing of JSON text
// without building an in-memory representation of it.
//
// A [Writer] produces JSON incrementally into a buffer and refuses any
// call that would make the output malformed.
// A [Validator] checks JSON that arrives in chunks of arbitrary size,
// reporting for every chunk the set of tokens it expected and the token
// it found, along with the line and column of the stopping point.
//
// # Dialects
//
// Both the writer and the validator understand two dialects.
//
// The standard dialect is JSON as specified by RFC 8259 extended with
// the non-finite numbers NaN, Infinity, and -Infinity in any letter case,
// and with '=' accepted in place of ':' between a key and its value.
//
// The simplified dialect is a relaxed configuration syntax:
//
//	name = server
//	ports = [80 443]
//	tls = {cert = "a.pem", key = "a.key"}
//
// Any run of characters other than whitespace and the delimiters
// {}[],:=" is an opaque scalar, commas are optional,
// and the root may be an object without braces.
package jsontext
