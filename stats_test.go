package schemadiff_test

import (
	"testing"

	schemadiff "github.com/perangel/schema-diff"
	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	r := &schemadiff.Result{
		Tables: schemadiff.TableDiff{
			OnlyInA: []string{"orders"},
			OnlyInB: []string{"payments", "refunds"},
			Common:  []string{"users", "accounts", "sessions"},
		},
		Columns: map[string]schemadiff.TableColumnDiff{
			"users": {
				OnlyInA: []string{"legacy_id"},
				Changed: []schemadiff.ColumnChange{{Column: "email"}, {Column: "name"}},
			},
			"accounts": {
				OnlyInA: []string{"a", "b"},
				OnlyInB: []string{"c"},
				Changed: []schemadiff.ColumnChange{{Column: "balance"}},
			},
		},
		Indexes:     schemadiff.ObjectDiff{OnlyInA: []string{"i1"}, Changed: []schemadiff.Change{{Key: "i2"}}},
		ForeignKeys: schemadiff.ObjectDiff{OnlyInB: []string{"fk"}},
		Enums:       schemadiff.EnumDiff{Changed: []schemadiff.EnumChange{{Name: "status"}}},
		Policies:    schemadiff.ObjectDiff{OnlyInA: []string{"p1", "p2"}},
		Functions:   schemadiff.ObjectDiff{Changed: []schemadiff.Change{{Key: "f()"}}},
		Triggers:    schemadiff.ObjectDiff{OnlyInB: []string{"t"}},
	}

	s := schemadiff.ComputeStats(r)
	assert.Equal(t, schemadiff.Stats{
		TablesOnlyInA:      1,
		TablesOnlyInB:      2,
		TablesCommon:       3,
		ColumnsOnlyInA:     3,
		ColumnsOnlyInB:     1,
		ColumnsChanged:     3,
		IndexesOnlyInA:     1,
		IndexesChanged:     1,
		ForeignKeysOnlyInB: 1,
		EnumsChanged:       1,
		PoliciesOnlyInA:    2,
		FunctionsChanged:   1,
		TriggersOnlyInB:    1,
	}, s)

	// common tables are not differences
	assert.Equal(t, 18, s.Total())
	assert.True(t, s.HasDifferences())
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, schemadiff.Stats{}, schemadiff.ComputeStats(nil))

	s := schemadiff.ComputeStats(schemadiff.Diff(nil, nil, "A", "B"))
	assert.Zero(t, s.Total())
	assert.False(t, s.HasDifferences())
}

func TestStatsCategories(t *testing.T) {
	s := schemadiff.Stats{TablesOnlyInA: 1, TablesCommon: 4, TriggersChanged: 2}

	var names []string
	for _, c := range s.Categories() {
		names = append(names, c.Category)
	}
	assert.Equal(t, []string{"tables", "columns", "indexes", "foreign_keys", "enums", "policies", "functions", "triggers"}, names)
	assert.Equal(t, schemadiff.CategoryStats{Category: "tables", OnlyInA: 1}, s.Categories()[0])
	assert.Equal(t, schemadiff.CategoryStats{Category: "triggers", Changed: 2}, s.Categories()[7])
}
