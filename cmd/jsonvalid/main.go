// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Jsonvalid checks that files are well-formed JSON.
//
// Usage:
//
//	jsonvalid [flags] [file...]
//
// Each file is read in fixed-size chunks and validated as it is read.
// With no files, standard input is validated.
// Every invalid or truncated input is reported as
//
//	name:line:column: message
//
// and the exit status is non-zero if any input was not valid.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := NewCLI(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
