// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonjob

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/go-json-experiment/jsonstream/jsontext"
)

// Job is a single scan of one chunk by one validator.
type Job struct {
	id    uuid.UUID
	v     *jsontext.Validator
	chunk []byte
	done  chan struct{}

	// Set before done is closed.
	result jsontext.ValidationResult
	err    error
}

func newJob(v *jsontext.Validator, chunk []byte) *Job {
	return &Job{id: uuid.New(), v: v, chunk: chunk, done: make(chan struct{})}
}

// ID uniquely identifies the job in logs.
func (j *Job) ID() uuid.UUID { return j.id }

// Done is closed once the scan has finished.
func (j *Job) Done() <-chan struct{} { return j.done }

// Wait blocks until the scan has finished or ctx is done.
// A non-nil error means the scan did not produce a result,
// either because ctx ended first or because the validator was unusable.
func (j *Job) Wait(ctx context.Context) (jsontext.ValidationResult, error) {
	select {
	case <-j.done:
		return j.result, j.err
	case <-ctx.Done():
		return jsontext.ValidationResult{}, ctx.Err()
	}
}

func (j *Job) run() {
	defer close(j.done)
	defer func() {
		if r := recover(); r != nil {
			j.err = fmt.Errorf("jsonjob: job %s: %v", j.id, r)
		}
	}()
	j.result = j.v.Validate(j.chunk)
	j.chunk = nil
}
