// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Setenv("JSONVALID_DEBUG", "")
	LoadConfig()
	require.False(t, Debug)
	t.Setenv("JSONVALID_DEBUG", "false")
	LoadConfig()
	require.False(t, Debug)
	t.Setenv("JSONVALID_DEBUG", "1")
	LoadConfig()
	require.True(t, Debug)
	t.Setenv("JSONVALID_DEBUG", "yes please")
	LoadConfig()
	require.True(t, Debug)
}

func TestDefaults(t *testing.T) {
	for _, k := range []string{"JSONVALID_MODE", "JSONVALID_CHUNK_SIZE", "JSONVALID_MAX_DEPTH", "JSONVALID_WORKERS", "JSONVALID_DEBUG"} {
		t.Setenv(k, "")
	}
	LoadConfig()
	assert.Equal(t, "standard", Mode)
	assert.Equal(t, DefaultChunkSize, ChunkSize)
	assert.Equal(t, 10000, MaxDepth)
	assert.Equal(t, 0, Workers)
	assert.False(t, Debug)
}

func TestNumbers(t *testing.T) {
	cases := map[string]struct {
		chunk, depth, workers string
		wantChunk             int
		wantDepth             int
		wantWorkers           int
	}{
		"valid":        {"512", "0", "8", 512, 0, 8},
		"extra quotes": {`"1024"`, "'32'", " 2 ", 1024, 32, 2},
		"negative":     {"-1", "-1", "-4", DefaultChunkSize, 10000, 0},
		"zero":         {"0", "0", "0", DefaultChunkSize, 0, 0},
		"garbage":      {"big", "deep", "many", DefaultChunkSize, 10000, 0},
	}
	for name, tt := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JSONVALID_CHUNK_SIZE", tt.chunk)
			t.Setenv("JSONVALID_MAX_DEPTH", tt.depth)
			t.Setenv("JSONVALID_WORKERS", tt.workers)
			LoadConfig()
			assert.Equal(t, tt.wantChunk, ChunkSize)
			assert.Equal(t, tt.wantDepth, MaxDepth)
			assert.Equal(t, tt.wantWorkers, Workers)
		})
	}
}

func TestMode(t *testing.T) {
	t.Setenv("JSONVALID_MODE", " Simple ")
	LoadConfig()
	assert.Equal(t, "simple", Mode)
}

func TestValues(t *testing.T) {
	t.Setenv("JSONVALID_CHUNK_SIZE", "100")
	LoadConfig()
	vals := Values()
	assert.Equal(t, "100", vals["JSONVALID_CHUNK_SIZE"])
	assert.Len(t, vals, len(AsMap()))
	for k, v := range AsMap() {
		assert.Equal(t, k, v.Name)
		assert.NotEmpty(t, v.Description, k)
	}
}
