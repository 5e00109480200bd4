package schemadiff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Source is anything that can capture a Snapshot of a database.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (*Snapshot, error)

// Snapshot calls f(ctx).
func (f SourceFunc) Snapshot(ctx context.Context) (*Snapshot, error) {
	return f(ctx)
}

// Report is the outcome of a comparison run.
type Report struct {
	Result *Result
	Stats  Stats
	// Duration is the wall time of the run, including extraction.
	Duration time.Duration
}

// Option is a Comparer option function
type Option func(*Comparer)

// IgnoreTables is an option for setting the tables that are left out of the
// comparison. It accepts entries in either of the following formats:
//     <schema>.<table>
//     <schema>.*
//     <table>
// Any tables in this list will negate any whitelisted tables set via WhitelistTables().
func IgnoreTables(tables []string) Option {
	return func(c *Comparer) {
		c.ignoreTables = tables
	}
}

// WhitelistTables is an option for restricting the comparison to a list of
// tables. It accepts the same formats as IgnoreTables().
func WhitelistTables(tables []string) Option {
	return func(c *Comparer) {
		c.whitelistTables = tables
	}
}

// Strict is an option that makes duplicate identity keys in a snapshot fail
// the comparison instead of being logged.
func Strict(strict bool) Option {
	return func(c *Comparer) {
		c.strict = strict
	}
}

// WithLogger is an option for setting the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Comparer) {
		c.logger = logger
	}
}

// Comparer captures two databases and diffs them.
type Comparer struct {
	ignoreTables    []string
	whitelistTables []string
	strict          bool
	logger          *logrus.Logger
	pipeline        *Pipeline
}

// NewComparer initializes and returns a new Comparer.
func NewComparer(opts ...Option) *Comparer {
	c := &Comparer{
		logger: logrus.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.pipeline = NewPipeline()
	if c.whitelistTables != nil {
		c.pipeline.AddStage("whitelist_tables", WhitelistTablesStage(c.whitelistTables))
	}
	if c.ignoreTables != nil {
		c.pipeline.AddStage("ignore_tables", IgnoreTablesStage(c.ignoreTables))
	}

	return c
}

// Pipeline returns the pipeline applied to each snapshot. Stages added to it
// run after the table filters.
func (c *Comparer) Pipeline() *Pipeline {
	return c.pipeline
}

// Compare captures both databases concurrently and diffs the snapshots. Any
// extraction failure aborts the comparison.
func (c *Comparer) Compare(ctx context.Context, a, b Source, labelA, labelB string) (*Report, error) {
	start := time.Now()
	log := c.logger.WithFields(logrus.Fields{
		"component": "comparer",
		"label_a":   labelA,
		"label_b":   labelB,
	})

	var snapA, snapB *Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := a.Snapshot(gctx)
		if err != nil {
			return fmt.Errorf("unable to capture `%s`: %w", labelA, err)
		}
		snapA = s
		return nil
	})
	g.Go(func() error {
		s, err := b.Snapshot(gctx)
		if err != nil {
			return fmt.Errorf("unable to capture `%s`: %w", labelB, err)
		}
		snapB = s
		return nil
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("comparison aborted")
		return nil, err
	}

	var err error
	if snapA, err = c.prepare(snapA, labelA); err != nil {
		return nil, err
	}
	if snapB, err = c.prepare(snapB, labelB); err != nil {
		return nil, err
	}

	result := Diff(snapA, snapB, labelA, labelB)
	report := &Report{
		Result:   result,
		Stats:    ComputeStats(result),
		Duration: time.Since(start),
	}

	log.WithFields(logrus.Fields{
		"differences": report.Stats.Total(),
		"duration":    report.Duration.String(),
	}).Info("comparison complete")

	return report, nil
}

// prepare validates a snapshot and runs it through the pipeline.
func (c *Comparer) prepare(s *Snapshot, label string) (*Snapshot, error) {
	if err := s.Validate(); err != nil {
		if c.strict {
			return nil, fmt.Errorf("snapshot `%s` failed validation: %w", label, err)
		}

		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				c.logger.WithField("database", label).
					WithError(e).
					Warn("duplicate identity key, the last record wins")
			}
		}
	}

	out, err := c.pipeline.Run(s)
	if err != nil {
		return nil, fmt.Errorf("snapshot `%s`: %w", label, err)
	}
	return out, nil
}
