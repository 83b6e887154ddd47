// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonjob runs validation scans on a shared pool of goroutines.
//
// Scans scheduled on the same validator run one at a time in the order they
// were scheduled, so a stream may be fed chunk by chunk without waiting
// for each scan to finish. Scans of different validators run concurrently.
package jsonjob

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/go-json-experiment/jsonstream/internal/logutil"
	"github.com/go-json-experiment/jsonstream/jsontext"
)

// ErrReleased is returned when scheduling on a released Scheduler.
var ErrReleased = errors.New("jsonjob: scheduler released")

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithWorkers sets the number of goroutines running scans.
// A non-positive n selects runtime.GOMAXPROCS(0).
func WithWorkers(n int) SchedulerOption {
	return func(s *Scheduler) { s.workers = n }
}

// WithLogger sets the logger for job lifecycle events.
func WithLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// WithValidatorOptions sets the options of validators created by ValidateAll.
func WithValidatorOptions(opts ...jsontext.ValidatorOption) SchedulerOption {
	return func(s *Scheduler) { s.validatorOpts = opts }
}

// Scheduler runs scans on a fixed-size pool of goroutines.
type Scheduler struct {
	workers       int
	logger        *slog.Logger
	validatorOpts []jsontext.ValidatorOption
	pool          *ants.Pool

	mu       sync.Mutex
	lanes    map[*jsontext.Validator]*lane
	released bool
	wg       sync.WaitGroup // one per lane with a draining task
}

// lane is the queue of jobs waiting for one validator.
// At most one pool task drains a lane at a time.
type lane struct {
	pending []*Job
}

// NewScheduler starts a scheduler. Call Release to stop its goroutines.
func NewScheduler(opts ...SchedulerOption) (*Scheduler, error) {
	s := &Scheduler{lanes: make(map[*jsontext.Validator]*lane)}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.logger == nil {
		s.logger = logutil.Discard()
	}
	pool, err := ants.NewPool(s.workers,
		ants.WithLogger(antsLogger{s.logger}),
		ants.WithPanicHandler(func(r any) {
			s.logger.Error("scan task panicked", "panic", r)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("jsonjob: creating worker pool: %w", err)
	}
	s.pool = pool
	s.logger.Debug("scheduler started", "workers", s.workers)
	return s, nil
}

// Workers reports the number of goroutines running scans.
func (s *Scheduler) Workers() int { return s.workers }

// ScheduleValidation schedules v to scan chunk after every scan
// previously scheduled on v. The chunk must not be modified until
// the job is done, and v must not be used directly in the meantime.
func (s *Scheduler) ScheduleValidation(v *jsontext.Validator, chunk []byte) (*Job, error) {
	j := newJob(v, chunk)

	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return nil, ErrReleased
	}
	if l, ok := s.lanes[v]; ok {
		// A task is already draining this lane.
		l.pending = append(l.pending, j)
		n := len(l.pending)
		s.mu.Unlock()
		logutil.Trace(context.Background(), s.logger, "job queued", "id", j.id, "bytes", len(chunk), "pending", n)
		return j, nil
	}
	l := &lane{pending: []*Job{j}}
	s.lanes[v] = l
	s.wg.Add(1)
	s.mu.Unlock()

	// Submit blocks while every worker is busy, so it must not hold s.mu.
	if err := s.pool.Submit(func() { s.drain(v, l) }); err != nil {
		err = fmt.Errorf("jsonjob: submitting job %s: %w", j.id, err)
		s.mu.Lock()
		delete(s.lanes, v)
		queued := l.pending[1:]
		l.pending = nil
		s.mu.Unlock()
		for _, q := range queued {
			q.err = err
			close(q.done)
		}
		s.wg.Done()
		return nil, err
	}
	logutil.Trace(context.Background(), s.logger, "job scheduled", "id", j.id, "bytes", len(chunk))
	return j, nil
}

// drain runs the jobs of l in order until none are left.
func (s *Scheduler) drain(v *jsontext.Validator, l *lane) {
	defer s.wg.Done()
	for {
		s.mu.Lock()
		if len(l.pending) == 0 {
			delete(s.lanes, v)
			s.mu.Unlock()
			return
		}
		j := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		s.mu.Unlock()

		j.run()
		if j.err != nil {
			s.logger.Warn("job failed", "id", j.id, "error", j.err)
			continue
		}
		logutil.Trace(context.Background(), s.logger, "job finished", "id", j.id, "result", j.result)
	}
}

// ValidateAll validates each document with its own validator,
// running at most Workers scans at once.
// The results are in the order of docs.
// It stops early and returns ctx's error if ctx is done.
func (s *Scheduler) ValidateAll(ctx context.Context, mode jsontext.Mode, docs [][]byte) ([]jsontext.ValidationResult, error) {
	results := make([]jsontext.ValidationResult, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v := jsontext.GetValidator(mode, s.validatorOpts...)
			defer jsontext.PutValidator(v)
			j, err := s.ScheduleValidation(v, doc)
			if err != nil {
				return err
			}
			results[i], err = j.Wait(ctx)
			if err != nil {
				// The job may still be using v.
				<-j.Done()
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logger.Debug("batch validated", "documents", len(docs), "mode", mode)
	return results, nil
}

// Release stops accepting jobs and waits for scheduled ones to finish.
func (s *Scheduler) Release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	s.mu.Unlock()

	s.wg.Wait()
	s.pool.Release()
	s.logger.Debug("scheduler released")
}

// antsLogger routes the pool's own messages to slog.
type antsLogger struct {
	logger *slog.Logger
}

func (l antsLogger) Printf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}
