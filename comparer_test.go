package schemadiff_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	schemadiff "github.com/perangel/schema-diff"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticSource(s *schemadiff.Snapshot) schemadiff.Source {
	return schemadiff.SourceFunc(func(context.Context) (*schemadiff.Snapshot, error) {
		return s, nil
	})
}

func TestComparerCompare(t *testing.T) {
	logger, hook := test.NewNullLogger()

	a := fullSnapshot()
	b := fullSnapshot()
	b.Tables = append(b.Tables, schemadiff.Table{Name: "payments"})
	b.Enums = enumValues("status", "active", "inactive", "archived")

	c := schemadiff.NewComparer(schemadiff.WithLogger(logger))
	report, err := c.Compare(context.Background(), staticSource(a), staticSource(b), "staging", "production")
	require.NoError(t, err)

	assert.Equal(t, "staging", report.Result.LabelA)
	assert.Equal(t, "production", report.Result.LabelB)
	assert.Equal(t, []string{"payments"}, report.Result.Tables.OnlyInB)
	assert.Equal(t, 1, report.Stats.TablesOnlyInB)
	assert.Equal(t, 1, report.Stats.EnumsChanged)
	assert.Equal(t, 2, report.Stats.Total())
	assert.True(t, report.Duration >= 0)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "comparison complete", entry.Message)
	assert.Equal(t, 2, entry.Data["differences"])
	assert.Equal(t, "comparer", entry.Data["component"])
}

func TestComparerExtractionFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	errDown := errors.New("connection refused")

	failing := schemadiff.SourceFunc(func(context.Context) (*schemadiff.Snapshot, error) {
		return nil, errDown
	})

	c := schemadiff.NewComparer(schemadiff.WithLogger(logger))
	report, err := c.Compare(context.Background(), staticSource(fullSnapshot()), failing, "A", "B")
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, errDown))
	assert.Contains(t, err.Error(), "unable to capture `B`")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestComparerCancelsOtherExtraction(t *testing.T) {
	errDown := errors.New("authentication failed")
	var cancelled int32

	failing := schemadiff.SourceFunc(func(context.Context) (*schemadiff.Snapshot, error) {
		return nil, errDown
	})
	blocking := schemadiff.SourceFunc(func(ctx context.Context) (*schemadiff.Snapshot, error) {
		<-ctx.Done()
		atomic.StoreInt32(&cancelled, 1)
		return nil, ctx.Err()
	})

	logger, _ := test.NewNullLogger()
	c := schemadiff.NewComparer(schemadiff.WithLogger(logger))
	_, err := c.Compare(context.Background(), blocking, failing, "A", "B")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDown))
	assert.Equal(t, int32(1), atomic.LoadInt32(&cancelled))
}

func TestComparerDuplicateKeys(t *testing.T) {
	dup := fullSnapshot()
	dup.Indexes = append(dup.Indexes, dup.Indexes[0])

	t.Run("logged by default", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		c := schemadiff.NewComparer(schemadiff.WithLogger(logger))

		report, err := c.Compare(context.Background(), staticSource(dup), staticSource(fullSnapshot()), "A", "B")
		require.NoError(t, err)
		assert.False(t, report.Stats.HasDifferences())

		var warnings []*logrus.Entry
		for _, e := range hook.AllEntries() {
			if e.Level == logrus.WarnLevel {
				warnings = append(warnings, e)
			}
		}
		require.Len(t, warnings, 1)
		assert.Equal(t, "A", warnings[0].Data["database"])
	})

	t.Run("fails when strict", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		c := schemadiff.NewComparer(schemadiff.WithLogger(logger), schemadiff.Strict(true))

		_, err := c.Compare(context.Background(), staticSource(fullSnapshot()), staticSource(dup), "A", "B")
		require.Error(t, err)

		var integrityErr *schemadiff.DataIntegrityError
		require.True(t, errors.As(err, &integrityErr))
		assert.Equal(t, "users.users_pkey", integrityErr.Key)
		assert.Contains(t, err.Error(), "snapshot `B` failed validation")
	})
}

func TestComparerTableFilters(t *testing.T) {
	a := fullSnapshot()
	b := fullSnapshot()
	b.Tables = b.Tables[:1] // drop orders
	b.Columns = b.Columns[:2]
	b.ForeignKeys = nil
	b.Policies = nil
	b.Triggers = nil

	logger, _ := test.NewNullLogger()

	c := schemadiff.NewComparer(schemadiff.WithLogger(logger), schemadiff.IgnoreTables([]string{"orders"}))
	assert.Equal(t, []string{"ignore_tables"}, c.Pipeline().Stages())
	report, err := c.Compare(context.Background(), staticSource(a), staticSource(b), "A", "B")
	require.NoError(t, err)
	assert.False(t, report.Stats.HasDifferences())
	assert.Equal(t, []string{"users"}, report.Result.Tables.Common)

	c = schemadiff.NewComparer(
		schemadiff.WithLogger(logger),
		schemadiff.WhitelistTables([]string{"public.*"}),
		schemadiff.IgnoreTables([]string{"users"}),
	)
	assert.Equal(t, []string{"whitelist_tables", "ignore_tables"}, c.Pipeline().Stages())
	report, err = c.Compare(context.Background(), staticSource(a), staticSource(b), "A", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, report.Result.Tables.OnlyInA)
	assert.Empty(t, report.Result.Tables.Common)
}

func TestComparerCustomStage(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := schemadiff.NewComparer(schemadiff.WithLogger(logger))
	c.Pipeline().AddStage("fail", func(*schemadiff.Snapshot) (*schemadiff.Snapshot, error) {
		return nil, errors.New("rejected")
	})

	_, err := c.Compare(context.Background(), staticSource(fullSnapshot()), staticSource(fullSnapshot()), "A", "B")
	assert.EqualError(t, err, "snapshot `A`: pipeline stage `fail`: rejected")
}
