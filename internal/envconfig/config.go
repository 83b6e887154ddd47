// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package envconfig reads the settings of the jsonvalid tool
// from the environment.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-json-experiment/jsonstream/jsontext"
)

const (
	DefaultChunkSize = 4096
	DefaultMode      = "standard"
)

var (
	// Set via JSONVALID_MODE in the environment
	Mode string
	// Set via JSONVALID_CHUNK_SIZE in the environment
	ChunkSize int
	// Set via JSONVALID_MAX_DEPTH in the environment; zero disables the limit
	MaxDepth int
	// Set via JSONVALID_WORKERS in the environment
	Workers int
	// Set via JSONVALID_DEBUG in the environment
	Debug bool
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"JSONVALID_MODE":       {"JSONVALID_MODE", Mode, "Validation mode: none, simple or standard (default \"standard\")"},
		"JSONVALID_CHUNK_SIZE": {"JSONVALID_CHUNK_SIZE", ChunkSize, "Bytes read per validation step (default 4096)"},
		"JSONVALID_MAX_DEPTH":  {"JSONVALID_MAX_DEPTH", MaxDepth, "Maximum nesting of objects and arrays, 0 for no limit (default 10000)"},
		"JSONVALID_WORKERS":    {"JSONVALID_WORKERS", Workers, "Number of inputs validated concurrently (default GOMAXPROCS)"},
		"JSONVALID_DEBUG":      {"JSONVALID_DEBUG", Debug, "Show additional debug information (e.g. JSONVALID_DEBUG=1)"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

// LoadConfig resets every setting to its default
// and then applies the environment.
func LoadConfig() {
	Mode = DefaultMode
	ChunkSize = DefaultChunkSize
	MaxDepth = jsontext.DefaultMaxDepth
	Workers = 0
	Debug = false

	if debug := clean("JSONVALID_DEBUG"); debug != "" {
		d, err := strconv.ParseBool(debug)
		if err == nil {
			Debug = d
		} else {
			Debug = true
		}
	}

	if mode := clean("JSONVALID_MODE"); mode != "" {
		Mode = strings.ToLower(mode)
	}

	ChunkSize = positiveInt("JSONVALID_CHUNK_SIZE", ChunkSize)
	Workers = positiveInt("JSONVALID_WORKERS", Workers)

	if depth := clean("JSONVALID_MAX_DEPTH"); depth != "" {
		d, err := strconv.Atoi(depth)
		if err != nil || d < 0 {
			slog.Error("invalid setting, ignoring", "JSONVALID_MAX_DEPTH", depth, "error", err)
		} else {
			MaxDepth = d
		}
	}
}

// positiveInt parses key as a positive integer, keeping def otherwise.
func positiveInt(key string, def int) int {
	s := clean(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		slog.Error("invalid setting, ignoring", key, s, "error", err)
		return def
	}
	return n
}
