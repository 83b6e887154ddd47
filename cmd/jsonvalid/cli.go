// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-json-experiment/jsonstream/internal/bufpools"
	"github.com/go-json-experiment/jsonstream/internal/envconfig"
	"github.com/go-json-experiment/jsonstream/internal/logutil"
	"github.com/go-json-experiment/jsonstream/jsonjob"
	"github.com/go-json-experiment/jsonstream/jsontext"
)

// errInvalid reports that at least one input failed validation.
// The failures themselves have already been printed.
var errInvalid = errors.New("invalid input")

// stdinName names standard input in reports.
const stdinName = "<stdin>"

type options struct {
	mode      string
	chunkSize int
	maxDepth  int
	workers   int
	quiet     bool
}

// NewCLI returns the root command reading from stdin
// and reporting to stdout and stderr.
func NewCLI(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	envconfig.LoadConfig()
	var opts options

	cmd := &cobra.Command{
		Use:   "jsonvalid [flags] [file...]",
		Short: "Validate JSON files in a streaming fashion",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logutil.NewLogger(stderr, logutil.Level(envconfig.Debug))
			logger.Debug("configuration", "env", envconfig.Values())
			return run(cmd.Context(), logger, opts, args, stdin, stdout)
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.mode, "mode", envconfig.Mode, "validation mode: none, simple or standard")
	flags.IntVar(&opts.chunkSize, "chunk-size", envconfig.ChunkSize, "bytes read per validation step")
	flags.IntVar(&opts.maxDepth, "max-depth", envconfig.MaxDepth, "maximum nesting of objects and arrays, 0 for no limit")
	flags.IntVarP(&opts.workers, "workers", "j", envconfig.Workers, "inputs validated concurrently, 0 for GOMAXPROCS")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "print nothing; report through the exit status only")

	appendEnvDocs(cmd)
	return cmd
}

func appendEnvDocs(cmd *cobra.Command) {
	vars := envconfig.AsMap()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	sb.WriteString("\nEnvironment Variables:\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "      %-22s %s\n", name, vars[name].Description)
	}
	cmd.SetUsageTemplate(cmd.UsageTemplate() + sb.String())
}

// report is the outcome of validating one input.
type report struct {
	name   string
	result jsontext.ValidationResult
}

func run(ctx context.Context, logger *slog.Logger, opts options, args []string, stdin io.Reader, stdout io.Writer) error {
	mode, err := jsontext.ParseMode(strings.ToLower(opts.mode))
	if err != nil {
		return err
	}
	if opts.chunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", opts.chunkSize)
	}
	if opts.maxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", opts.maxDepth)
	}

	s, err := jsonjob.NewScheduler(jsonjob.WithWorkers(opts.workers), jsonjob.WithLogger(logger))
	if err != nil {
		return err
	}
	defer s.Release()

	if len(args) == 0 {
		args = []string{"-"}
	}
	reports := make([]report, len(args))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers())
	for i, name := range args {
		g.Go(func() error {
			var r io.Reader = stdin
			if name == "-" {
				name = stdinName
			} else {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			v := jsontext.GetValidator(mode, jsontext.WithMaxDepth(opts.maxDepth))
			defer jsontext.PutValidator(v)
			result, err := validateStream(ctx, s, v, r, opts.chunkSize)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			reports[i] = report{name, result}
			logger.Debug("validated", "name", name, "result", result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for _, rep := range reports {
		err := rep.result.Error()
		if err != nil {
			failed = true
		}
		if opts.quiet {
			continue
		}
		var serr *jsontext.SyntaxError
		switch {
		case errors.As(err, &serr):
			fmt.Fprintf(stdout, "%s:%d:%d: %s\n", rep.name, serr.Line, serr.Column, serr.Message)
		case err != nil:
			fmt.Fprintf(stdout, "%s: %v\n", rep.name, err)
		}
	}
	if failed {
		return errInvalid
	}
	return nil
}

// maxInFlight bounds the chunks of one input scheduled ahead of the scans.
const maxInFlight = 4

// validateStream feeds r to v in chunks of the given size
// and returns the result of the last scan, or of the first failed one.
func validateStream(ctx context.Context, s *jsonjob.Scheduler, v *jsontext.Validator, r io.Reader, chunkSize int) (jsontext.ValidationResult, error) {
	type pending struct {
		job *jsonjob.Job
		buf []byte
	}
	var queue []pending
	var last jsontext.ValidationResult

	// wait completes the oldest scheduled scan.
	wait := func() (bool, error) {
		p := queue[0]
		queue = queue[1:]
		res, err := p.job.Wait(ctx)
		if err != nil {
			<-p.job.Done() // the scan may still be reading p.buf
		}
		bufpools.Put(p.buf)
		if err != nil {
			return false, err
		}
		last = res
		return res.Actual == jsontext.EOF && res.Err == nil, nil
	}
	// drain waits for the remaining scans, which are no-ops after a failure.
	drain := func() {
		for len(queue) > 0 {
			<-queue[0].job.Done()
			bufpools.Put(queue[0].buf)
			queue = queue[1:]
		}
	}
	defer drain()

	scheduled := false
	for {
		buf := bufpools.Get(chunkSize)[:chunkSize]
		n, rerr := io.ReadFull(r, buf)
		if n > 0 {
			job, err := s.ScheduleValidation(v, buf[:n])
			if err != nil {
				bufpools.Put(buf)
				return last, err
			}
			queue = append(queue, pending{job, buf})
			scheduled = true
		} else {
			bufpools.Put(buf)
		}

		done := rerr == io.EOF || rerr == io.ErrUnexpectedEOF
		if rerr != nil && !done {
			return last, rerr
		}
		for len(queue) >= maxInFlight || (done && len(queue) > 0) {
			ok, err := wait()
			if err != nil || !ok {
				return last, err
			}
		}
		if done {
			if !scheduled {
				// Empty input: report what a fresh validator expects.
				last = v.Validate(nil)
			}
			return last, nil
		}
	}
}
